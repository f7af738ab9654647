package dto

import "github.com/fadilmartias/careermate-api/internal/util"

type AnalyzeResumeResponse struct {
	ATSScore   float64 `json:"atsScore"`
	ResumeText string  `json:"resumeText"`
}

type ExtractNameRequest struct {
	ResumeText string `json:"resumeText"`
}

type ExtractNameResponse struct {
	Name string `json:"name"`
}

type CareerCoachRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	UserMessage    string `json:"userMessage"`
}

func (r CareerCoachRequest) Validate() error {
	if blank(r.UserMessage) {
		return util.NewFormError("Missing userMessage", map[string]string{"userMessage": "required"})
	}
	return nil
}

type CareerCoachResponse struct {
	Response string `json:"response"`
}

type StatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
