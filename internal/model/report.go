package model

import (
	"github.com/tidwall/gjson"
)

// DisplayValue holds any JSON scalar exactly as it should be printed. Absent
// and null values print as "N/A".
type DisplayValue struct {
	value string
	set   bool
}

func NewDisplayValue(s string) DisplayValue {
	return DisplayValue{value: s, set: true}
}

func (v *DisplayValue) UnmarshalJSON(data []byte) error {
	r := gjson.ParseBytes(data)
	if r.Type == gjson.Null {
		*v = DisplayValue{}
		return nil
	}
	*v = DisplayValue{value: r.String(), set: true}
	return nil
}

func (v DisplayValue) String() string {
	if !v.set {
		return "N/A"
	}
	return v.value
}

type LegacyQA struct {
	Question string
	Answer   string
	Feedback string
}

// LegacyTranscript is the per-question summary older clients attach to a
// report. Anything other than an array of objects is ignored.
type LegacyTranscript []LegacyQA

func (t *LegacyTranscript) UnmarshalJSON(data []byte) error {
	r := gjson.ParseBytes(data)
	if !r.IsArray() {
		*t = nil
		return nil
	}
	var out LegacyTranscript
	r.ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			out = append(out, LegacyQA{
				Question: item.Get("question").String(),
				Answer:   item.Get("answer").String(),
				Feedback: item.Get("feedback").String(),
			})
		}
		return true
	})
	*t = out
	return nil
}

type ReportPayload struct {
	ATSScore       DisplayValue     `json:"atsScore"`
	InterviewScore DisplayValue     `json:"interviewScore"`
	OverallGrade   DisplayValue     `json:"overallGrade"`
	TotalQuestions DisplayValue     `json:"totalQuestions"`
	CompletedAt    DisplayValue     `json:"completedAt"`
	Strengths      []string         `json:"strengths"`
	Improvements   []string         `json:"improvements"`
	InterviewData  LegacyTranscript `json:"interviewData"`
}
