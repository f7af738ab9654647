package model

// ChatTurn is one answered question of a caller-held interview transcript.
type ChatTurn struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Score    *float64 `json:"score,omitempty"`
}

type InterviewQuestion struct {
	Question    string `json:"question"`
	Answer      string `json:"answer,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	MainSubject string `json:"main_subject,omitempty"`
}

// InterviewItem is the normalised input of the final report narrative.
type InterviewItem struct {
	Question        string
	ExpectedAnswer  string
	CandidateAnswer string
	Difficulty      string
	Topic           string
	Feedback        string
}

type AnswerEvaluation struct {
	Score        float64  `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`

	FollowUpQuestions []string `json:"followUpQuestions,omitempty"`
}

// ResumeInfo is the structured resume summary sent by older clients.
type ResumeInfo struct {
	Skills     []string `json:"skills"`
	Experience float64  `json:"experience"`
	Education  string   `json:"education"`
	TargetRole string   `json:"targetRole"`
	ResumeText string   `json:"resumeText"`
}
