package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/careermate-api/internal/service"
	"github.com/fadilmartias/careermate-api/internal/usecase"
	"github.com/fadilmartias/careermate-api/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	reply string
	err   error
}

func (f *fakeGateway) Complete(context.Context, service.CompletionRequest) (string, error) {
	return f.reply, f.err
}

type noEntities struct{}

func (noEntities) Entities(string) ([]service.Entity, error) { return nil, nil }

type failingTranscoder struct{}

func (failingTranscoder) ToWAV(context.Context, []byte, string) ([]byte, error) {
	return nil, fmt.Errorf("invalid data")
}

type silentRecognizer struct{}

func (silentRecognizer) Recognize(context.Context, []byte, int) (string, error) {
	return "", service.ErrSpeechNotUnderstood
}

func newTestApp(gw service.LLMGateway) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(true)})

	prompts := service.NewPromptBuilder()
	names := service.NewNameService(noEntities{})
	similarity := service.NewSimilarityService(service.NewLexicalEmbedder())
	speech := service.NewSpeechService(failingTranscoder{}, silentRecognizer{}, 500*time.Millisecond)

	h := &Handlers{
		Resume:    NewResumeHandler(usecase.NewResumeUsecase(util.NewTextExtractor("", ""), similarity, names)),
		Interview: NewInterviewHandler(usecase.NewInterviewUsecase(gw, prompts, names)),
		Career:    NewCareerHandler(usecase.NewCareerUsecase(gw, prompts)),
		Report:    NewReportHandler(usecase.NewReportUsecase(service.NewReportService())),
		Speech:    NewSpeechHandler(usecase.NewSpeechUsecase(speech)),
	}
	h.RegisterRoutes(app, nil)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp, decode(t, resp)
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return out
}

func TestStatus(t *testing.T) {
	resp, err := newTestApp(&fakeGateway{}).Test(httptest.NewRequest(http.MethodGet, "/api/test", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"message": "Backend server is running!", "status": "ok"}, decode(t, resp))
}

func TestValidationErrors(t *testing.T) {
	app := newTestApp(&fakeGateway{reply: "unused"})

	tests := []struct {
		path, body, want string
	}{
		{"/api/interview/start", `{}`, "Missing resumeText"},
		{"/api/interview/evaluate", `{"question":"q"}`, "Missing question, answer, or resumeText"},
		{"/api/interview/report", `{"interviewData":[]}`, "Missing interviewData"},
		{"/api/interview/next-question", `{"resumeText":"r"}`, "Missing resumeText or chatHistory"},
		{"/api/interview/next-question", `{"resumeText":"r","chatHistory":{"a":1}}`, "chatHistory must be an array"},
		{"/api/career-coach", `{"resumeText":"r"}`, "Missing userMessage"},
		{"/api/evaluate-answer", `{"answer":"a"}`, "Question and answer are required"},
		{"/api/generate-questions", `{}`, "Resume information is required"},
	}
	for _, tt := range tests {
		t.Run(tt.path+" "+tt.body, func(t *testing.T) {
			resp, body := postJSON(t, app, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.want, body["error"])
		})
	}
}

func TestQuotaExceededMapsTo429(t *testing.T) {
	app := newTestApp(&fakeGateway{err: fmt.Errorf("groq: rate limited: %w", service.ErrQuotaExceeded)})

	for path, body := range map[string]string{
		"/api/interview/next-question": `{"resumeText":"r","chatHistory":[]}`,
		"/api/interview/start":         `{"resumeText":"r"}`,
		"/api/career-coach":            `{"userMessage":"help"}`,
	} {
		resp, got := postJSON(t, app, path, body)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode, path)
		assert.Equal(t, service.ErrQuotaExceeded.Error(), got["error"], path)
	}
}

func TestGatewayFailureIs500(t *testing.T) {
	app := newTestApp(&fakeGateway{err: fmt.Errorf("connection refused")})

	resp, body := postJSON(t, app, "/api/interview/evaluate", `{"question":"q","answer":"a","resumeText":"r"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body["error"], "connection refused")
}

func TestNextQuestion(t *testing.T) {
	app := newTestApp(&fakeGateway{reply: `Question: "Why Go?"`})

	resp, body := postJSON(t, app, "/api/interview/next-question",
		`{"resumeText":"r","chatHistory":[{"question":"Intro?","answer":"Hi"}]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Why Go?", body["question"])
}

func TestGenerateQuestions_Wrapped(t *testing.T) {
	app := newTestApp(&fakeGateway{reply: `["Q1?","Q2?"]`})

	resp, body := postJSON(t, app, "/api/generate-questions",
		`{"resumeInfo":{"skills":["Go"],"experience":3,"targetRole":"Backend Engineer"}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["totalQuestions"])
	assert.Equal(t, "6-10 minutes", body["estimatedTime"])
}

func TestEvaluateAnswer_LegacyShape(t *testing.T) {
	app := newTestApp(&fakeGateway{reply: "not json at all"})

	resp, body := postJSON(t, app, "/api/evaluate-answer", `{"question":"q","answer":"a"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["score"])
	assert.Equal(t, "not json at all", body["feedback"])
	assert.Equal(t, []any{}, body["followUpQuestions"])
}

func TestGenerateReport(t *testing.T) {
	app := newTestApp(&fakeGateway{})

	req := httptest.NewRequest(http.MethodPost, "/api/generate-report",
		strings.NewReader(`{"reportData":{"atsScore":71.2,"strengths":["Ownership"],"improvements":[]}}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "attachment; filename=CareerMate-Report.pdf", resp.Header.Get(fiber.HeaderContentDisposition))
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGenerateReport_InvalidBody(t *testing.T) {
	resp, body := postJSON(t, newTestApp(&fakeGateway{}), "/api/generate-report", `{"atsScore":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func multipartRequest(t *testing.T, path, field, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func TestAnalyzeResume(t *testing.T) {
	app := newTestApp(&fakeGateway{})

	req := multipartRequest(t, "/api/analyze-resume", "resume", "cv.txt",
		[]byte("Experienced Python developer with AWS skills"),
		map[string]string{"job_description": "Looking for Python developer with AWS and Docker"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := decode(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 60.0, body["atsScore"])
	assert.Equal(t, "Experienced Python developer with AWS skills", body["resumeText"])
}

func TestAnalyzeResume_BadInput(t *testing.T) {
	app := newTestApp(&fakeGateway{})

	tests := []struct {
		name     string
		req      *http.Request
		contains string
	}{
		{
			name:     "missing file",
			req:      multipartRequest(t, "/api/analyze-resume", "resume", "", nil, map[string]string{"job_description": "jd"}),
			contains: "resume file is required",
		},
		{
			name:     "missing job description",
			req:      multipartRequest(t, "/api/analyze-resume", "resume", "cv.txt", []byte("text"), nil),
			contains: "job_description is required",
		},
		{
			name:     "unsupported type",
			req:      multipartRequest(t, "/api/analyze-resume", "resume", "cv.png", []byte("x"), map[string]string{"job_description": "jd"}),
			contains: "unsupported file type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(tt.req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, decode(t, resp)["error"], tt.contains)
		})
	}
}

func TestExtractName_NoPerson(t *testing.T) {
	resp, body := postJSON(t, newTestApp(&fakeGateway{}), "/api/extract-name", `{"resumeText":"Go developer"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "", body["name"])
}

func TestSpeechToText(t *testing.T) {
	app := newTestApp(&fakeGateway{})

	t.Run("missing file", func(t *testing.T) {
		resp, err := app.Test(multipartRequest(t, "/api/speech-to-text", "audio", "", nil, map[string]string{"x": "y"}), -1)
		require.NoError(t, err)
		body := decode(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "", body["text"])
	})

	t.Run("undecodable audio", func(t *testing.T) {
		resp, err := app.Test(multipartRequest(t, "/api/speech-to-text", "audio", "answer.webm", []byte("junk"), nil), -1)
		require.NoError(t, err)
		body := decode(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Unsupported audio format: webm. Error: invalid data", body["error"])
	})
}
