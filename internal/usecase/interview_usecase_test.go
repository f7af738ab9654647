package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fadilmartias/careermate-api/internal/model"
	"github.com/fadilmartias/careermate-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	reply    string
	err      error
	requests []service.CompletionRequest
}

func (f *fakeGateway) Complete(_ context.Context, req service.CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

type staticTagger []service.Entity

func (s staticTagger) Entities(string) ([]service.Entity, error) { return s, nil }

func newInterview(gw service.LLMGateway) *InterviewUsecase {
	names := service.NewNameService(staticTagger{{Text: "Jordan Lee", Label: "PERSON"}})
	return NewInterviewUsecase(gw, service.NewPromptBuilder(), names)
}

func TestStartInterview_ParsesReplyShapes(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []model.InterviewQuestion
	}{
		{
			name: "fenced array of objects",
			reply: "```json\n[{\"question\":\"What is a goroutine?\",\"answer\":\"A lightweight thread\"," +
				"\"difficulty\":\"easy\",\"main_subject\":\"Go\"}]\n```",
			want: []model.InterviewQuestion{{
				Question: "What is a goroutine?", Answer: "A lightweight thread",
				Difficulty: "easy", MainSubject: "Go",
			}},
		},
		{
			name:  "wrapped plain strings",
			reply: `{"questions": ["Why Go?", "  ", "Describe a hard bug."]}`,
			want:  []model.InterviewQuestion{{Question: "Why Go?"}, {Question: "Describe a hard bug."}},
		},
		{
			name:  "prose around the array",
			reply: "Here are your questions:\n[\"Tell me about yourself.\"]\nGood luck!",
			want:  []model.InterviewQuestion{{Question: "Tell me about yourself."}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{reply: tt.reply}
			got, err := newInterview(gw).StartInterview(context.Background(), "resume")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			require.Len(t, gw.requests, 1)
			assert.Equal(t, service.SystemInterviewer, gw.requests[0].SystemPrompt)
			assert.Contains(t, gw.requests[0].Prompt, "resume")
		})
	}
}

func TestStartInterview_Unparseable(t *testing.T) {
	_, err := newInterview(&fakeGateway{reply: "I cannot help with that."}).
		StartInterview(context.Background(), "resume")
	assert.Error(t, err)

	_, err = newInterview(&fakeGateway{reply: `{"items": []}`}).
		StartInterview(context.Background(), "resume")
	assert.Error(t, err)
}

func TestEvaluateAnswer(t *testing.T) {
	t.Run("json reply", func(t *testing.T) {
		gw := &fakeGateway{reply: `{"score": 12, "feedback": "Solid.", "strengths": ["clear"], "improvements": "add metrics"}`}
		eval, err := newInterview(gw).EvaluateAnswer(context.Background(), "q", "a", "r")
		require.NoError(t, err)

		assert.Equal(t, 10.0, eval.Score)
		assert.Equal(t, "Solid.", eval.Feedback)
		assert.Equal(t, []string{"clear"}, eval.Strengths)
		assert.Equal(t, []string{"add metrics"}, eval.Improvements)
		assert.Nil(t, eval.FollowUpQuestions)
	})

	t.Run("free text reply", func(t *testing.T) {
		gw := &fakeGateway{reply: "  Good answer overall.  "}
		eval, err := newInterview(gw).EvaluateAnswer(context.Background(), "q", "a", "r")
		require.NoError(t, err)

		assert.Zero(t, eval.Score)
		assert.Equal(t, "Good answer overall.", eval.Feedback)
		assert.Empty(t, eval.Strengths)
		assert.NotNil(t, eval.Strengths)
	})
}

func TestNextQuestion(t *testing.T) {
	tests := []struct {
		reply string
		want  string
	}{
		{`Question: "How do you test HTTP handlers?"`, "How do you test HTTP handlers?"},
		{"  What drew you to backend work?\n", "What drew you to backend work?"},
		{"'Why Postgres?'", "Why Postgres?"},
	}
	for _, tt := range tests {
		gw := &fakeGateway{reply: tt.reply}
		got, err := newInterview(gw).NextQuestion(context.Background(), "resume", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestNextQuestion_UsesHistoryAndIntro(t *testing.T) {
	gw := &fakeGateway{reply: "Next?"}
	intro := "I am a Go developer"
	history := []model.ChatTurn{{Question: "Why Go?", Answer: "Simplicity"}}

	_, err := newInterview(gw).NextQuestion(context.Background(), "resume", history, &intro)
	require.NoError(t, err)

	prompt := gw.requests[0].Prompt
	assert.Contains(t, prompt, "I am a Go developer")
	assert.Contains(t, prompt, "Q1: Why Go?")
	assert.Contains(t, prompt, "A1: Simplicity")
}

func TestNextQuestion_EmptyReply(t *testing.T) {
	_, err := newInterview(&fakeGateway{reply: `""`}).NextQuestion(context.Background(), "resume", nil, nil)
	assert.Error(t, err)
}

func TestNextQuestion_QuotaPropagates(t *testing.T) {
	gw := &fakeGateway{err: fmt.Errorf("groq: %w", service.ErrQuotaExceeded)}
	_, err := newInterview(gw).NextQuestion(context.Background(), "resume", nil, nil)
	assert.True(t, errors.Is(err, service.ErrQuotaExceeded))
}

func TestFinalReport_NameFallback(t *testing.T) {
	items := []model.InterviewItem{{Question: "Why Go?", CandidateAnswer: "Simplicity"}}

	gw := &fakeGateway{reply: " Report body "}
	report, err := newInterview(gw).FinalReport(context.Background(), items, "", "Jordan Lee, Go developer")
	require.NoError(t, err)
	assert.Equal(t, "Report body", report)
	assert.Contains(t, gw.requests[0].Prompt, "Jordan Lee")
	assert.Equal(t, reportMaxTokens, gw.requests[0].MaxTokens)
	assert.Equal(t, service.SystemEvaluator, gw.requests[0].SystemPrompt)

	gw = &fakeGateway{reply: "ok"}
	_, err = newInterview(gw).FinalReport(context.Background(), items, "Sam", "Jordan Lee, Go developer")
	require.NoError(t, err)
	assert.Contains(t, gw.requests[0].Prompt, "Sam")
	assert.NotContains(t, gw.requests[0].Prompt, "Jordan Lee")
}

func TestLegacyEvaluate_FollowUps(t *testing.T) {
	gw := &fakeGateway{reply: `{"score": 7, "feedback": "ok", "strengths": [], "improvements": [], "followUpQuestions": ["Why?"]}`}
	eval, err := newInterview(gw).LegacyEvaluate(context.Background(), "q", "a")
	require.NoError(t, err)
	assert.Equal(t, 7.0, eval.Score)
	assert.Equal(t, []string{"Why?"}, eval.FollowUpQuestions)
}

func TestEstimatedTime(t *testing.T) {
	assert.Equal(t, "15-25 minutes", EstimatedTime(5))
	assert.Equal(t, "0-0 minutes", EstimatedTime(0))
}

func TestCareerCoach(t *testing.T) {
	gw := &fakeGateway{reply: "   "}
	reply, err := NewCareerUsecase(gw, service.NewPromptBuilder()).Coach(context.Background(), "r", "j", "How do I prepare?")
	require.NoError(t, err)
	assert.Equal(t, careerFallbackReply, reply)
	assert.Equal(t, service.SystemCareerCoach, gw.requests[0].SystemPrompt)

	gw = &fakeGateway{reply: " Practise system design. "}
	reply, err = NewCareerUsecase(gw, service.NewPromptBuilder()).Coach(context.Background(), "r", "j", "How do I prepare?")
	require.NoError(t, err)
	assert.Equal(t, "Practise system design.", reply)
}
