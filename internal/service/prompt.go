package service

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/careermate-api/internal/model"
)

const (
	SystemInterviewer = "You are an experienced technical interviewer conducting a realistic mock interview."
	SystemEvaluator   = "You are a helpful AI interview evaluator."
	SystemCareerCoach = "You are a helpful AI career coach."
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionGenerationPrompt asks for the full question set of an interview.
func (pb *PromptBuilder) BuildQuestionGenerationPrompt(resumeText string) string {
	return fmt.Sprintf(`Based on the candidate's resume below, generate 7 interview questions that mix technical depth, past projects and behavioural topics.

RESUME:
%s

Return ONLY a JSON array, no explanatory text, where every element has this shape:
{
  "question": "<the question>",
  "answer": "<a concise expected answer>",
  "difficulty": "<easy|medium|hard>",
  "main_subject": "<topic of the question>"
}`, resumeText)
}

// BuildAnswerEvaluationPrompt grades one answer against the resume context.
func (pb *PromptBuilder) BuildAnswerEvaluationPrompt(question, answer, resumeText string) string {
	return fmt.Sprintf(`Evaluate the candidate's answer to an interview question. Use the resume only as context for what the candidate should know.

RESUME:
%s

QUESTION:
%s

CANDIDATE ANSWER:
%s

Return ONLY JSON in this format:
{
  "score": <number 0-10>,
  "feedback": "<2-4 sentences addressed to the candidate>",
  "strengths": ["<strength>", ...],
  "improvements": ["<improvement>", ...]
}`, resumeText, question, answer)
}

// BuildNextQuestionPrompt continues a caller-held conversation with exactly
// one new question.
func (pb *PromptBuilder) BuildNextQuestionPrompt(resumeText string, history []model.ChatTurn, userIntro *string) string {
	var sb strings.Builder

	sb.WriteString("You are interviewing a candidate for a role that matches their resume.\n\n")
	sb.WriteString("RESUME:\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n\n")

	if userIntro != nil && strings.TrimSpace(*userIntro) != "" {
		sb.WriteString("CANDIDATE INTRODUCTION:\n")
		sb.WriteString(strings.TrimSpace(*userIntro))
		sb.WriteString("\n\n")
	}

	if len(history) == 0 {
		sb.WriteString("The interview is just starting. Ask the first question, building on the introduction if there is one.\n")
	} else {
		sb.WriteString("CONVERSATION SO FAR:\n")
		for i, turn := range history {
			fmt.Fprintf(&sb, "Q%d: %s\nA%d: %s\n", i+1, turn.Question, i+1, turn.Answer)
		}
		sb.WriteString("\nAsk the next question. Follow up on the last answer where it was vague, otherwise move to a new topic from the resume. Do not repeat earlier questions.\n")
	}

	sb.WriteString("Reply with exactly one question and nothing else.")
	return sb.String()
}

// BuildFinalReportPrompt asks for the narrative report over a whole transcript.
func (pb *PromptBuilder) BuildFinalReportPrompt(items []model.InterviewItem, userName string) string {
	var sb strings.Builder

	sb.WriteString(`You are an expert AI interviewer tasked with evaluating a candidate's technical interview performance.
Based on the interview questions, expected answers, and the candidate's actual responses, provide a comprehensive evaluation report.

Your report should include:
1. An overall assessment of the candidate's technical knowledge
2. Specific strengths identified during the interview
3. Areas for improvement
4. Detailed feedback on each question, comparing the expected answer with what the candidate provided
5. Concrete recommendations for the candidate to improve their knowledge and interview performance
6. Be a little bit harsh and in the same time encouraging
7. Talk directly to the candidate
8. Use "you" and "your" to address the candidate
9. Be professional and respectful
10. Provide constructive and realistic feedback
`)
	if userName != "" {
		fmt.Fprintf(&sb, "11. The candidate's name is %s; greet them by name at the start\n", userName)
	}

	sb.WriteString("\nInterview Data:\n")
	for i, item := range items {
		fmt.Fprintf(&sb, "\nQuestion %d: %s\n", i+1, item.Question)
		fmt.Fprintf(&sb, "Expected Answer: %s\n", orNA(item.ExpectedAnswer))
		fmt.Fprintf(&sb, "Candidate's Response: %s\n", item.CandidateAnswer)
		fmt.Fprintf(&sb, "Difficulty: %s\n", orNA(item.Difficulty))
		fmt.Fprintf(&sb, "Topic: %s\n", orNA(item.Topic))
		if item.Feedback != "" {
			fmt.Fprintf(&sb, "Interviewer Feedback: %s\n", item.Feedback)
		}
	}
	return sb.String()
}

func (pb *PromptBuilder) BuildCareerCoachPrompt(resumeText, jobDescription, userMessage string) string {
	return fmt.Sprintf(`You are an expert AI career coach. Given the following resume and job description, provide a detailed, helpful, and personalized response to the user's message. Be specific, actionable, and encouraging.
Resume: %s
Job Description: %s
User Message: %s`, resumeText, jobDescription, userMessage)
}

// BuildLegacyQuestionsPrompt serves clients that send a structured resume
// summary instead of the raw text.
func (pb *PromptBuilder) BuildLegacyQuestionsPrompt(info model.ResumeInfo) string {
	var sb strings.Builder
	sb.WriteString("Generate 5 personalised interview questions for this candidate.\n\n")
	if info.TargetRole != "" {
		fmt.Fprintf(&sb, "Target role: %s\n", info.TargetRole)
	}
	if len(info.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(info.Skills, ", "))
	}
	if info.Experience > 0 {
		fmt.Fprintf(&sb, "Years of experience: %g\n", info.Experience)
	}
	if info.Education != "" {
		fmt.Fprintf(&sb, "Education: %s\n", info.Education)
	}
	if info.ResumeText != "" {
		fmt.Fprintf(&sb, "Resume:\n%s\n", info.ResumeText)
	}
	sb.WriteString(`
Return ONLY a JSON array where every element has this shape:
{"question": "<the question>", "difficulty": "<easy|medium|hard>", "main_subject": "<topic>"}`)
	return sb.String()
}

func (pb *PromptBuilder) BuildLegacyEvaluationPrompt(question, answer string) string {
	return fmt.Sprintf(`Evaluate this interview answer.

QUESTION:
%s

ANSWER:
%s

Return ONLY JSON in this format:
{
  "score": <number 0-10>,
  "feedback": "<short feedback>",
  "strengths": ["<strength>", ...],
  "improvements": ["<improvement>", ...],
  "followUpQuestions": ["<question>", ...]
}`, question, answer)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
