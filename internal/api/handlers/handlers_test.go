package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewgen/internal/bank"
	"interviewgen/internal/config"
	"interviewgen/internal/generator"
	"interviewgen/internal/resume"
	"interviewgen/pkg/models"
)

type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	return cfg
}

func testGenerator(t *testing.T, completer generator.Completer) *generator.Generator {
	t.Helper()
	return generator.New(completer, bank.New(), testConfig(t))
}

func postJSON(t *testing.T, handler echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, handler(c))
	return rec
}

func TestGenerateQuestionsHandler_Success(t *testing.T) {
	cfg := testConfig(t)
	gen := testGenerator(t, &stubCompleter{
		response: `["Q one?", "Q two?", "Q three?", "Q four?", "Q five?"]`,
	})
	handler := GenerateQuestionsHandler(cfg, gen, nil, nil, nil)

	rec := postJSON(t, handler, `{"job_role":"Python Developer","experience_level":"entry","skills":["Python"],"num_questions":5}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.GenerateQuestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Questions, 5)
	assert.False(t, resp.Degraded)
	assert.Empty(t, resp.Notice)
	assert.Equal(t, "Python Developer", resp.JobRole)
	assert.Equal(t, models.LevelEntry, resp.ExperienceLevel)
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.RequestID)
}

func TestGenerateQuestionsHandler_DegradedHasNotice(t *testing.T) {
	cfg := testConfig(t)
	gen := testGenerator(t, &stubCompleter{err: errors.New("provider down")})
	handler := GenerateQuestionsHandler(cfg, gen, nil, nil, nil)

	rec := postJSON(t, handler, `{"job_role":"Python Developer","experience_level":"entry","num_questions":3}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.GenerateQuestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Questions, 3)
	assert.True(t, resp.Degraded)
	assert.NotEmpty(t, resp.Notice)
	for _, q := range resp.Questions {
		assert.Equal(t, "bank", q.Source)
	}
}

func TestGenerateQuestionsHandler_MissingFields(t *testing.T) {
	handler := GenerateQuestionsHandler(testConfig(t), testGenerator(t, nil), nil, nil, nil)

	rec := postJSON(t, handler, `{"skills":["Go"]}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp.Error)
}

func TestGenerateQuestionsHandler_CountOutOfRange(t *testing.T) {
	handler := GenerateQuestionsHandler(testConfig(t), testGenerator(t, nil), nil, nil, nil)

	rec := postJSON(t, handler, `{"job_role":"X","experience_level":"entry","num_questions":51}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateQuestionsHandler_MalformedJSON(t *testing.T) {
	handler := GenerateQuestionsHandler(testConfig(t), testGenerator(t, nil), nil, nil, nil)

	rec := postJSON(t, handler, `{"job_role": `)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_request", resp.Error)
}

func TestGenerateQuestionsHandler_ExplicitMix(t *testing.T) {
	cfg := testConfig(t)
	gen := testGenerator(t, &stubCompleter{err: errors.New("down")})
	handler := GenerateQuestionsHandler(cfg, gen, nil, nil, nil)

	rec := postJSON(t, handler, `{"job_role":"Python Developer","experience_level":"mid","question_types":{"technical":2,"behavioral":2}}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.GenerateQuestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Questions, 4)
	assert.Equal(t, models.CategoryTechnical, resp.Questions[0].Category)
	assert.Equal(t, models.CategoryBehavioral, resp.Questions[3].Category)
}

func multipartRequest(t *testing.T, fields map[string]string, fileField, fileName string, fileContent []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestParseResumeHandler_MissingFile(t *testing.T) {
	handler := ParseResumeHandler(testConfig(t), resume.NewExtractor(nil))

	e := echo.New()
	req := multipartRequest(t, nil, "", "", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseResumeHandler_NonPDF(t *testing.T) {
	handler := ParseResumeHandler(testConfig(t), resume.NewExtractor(nil))

	e := echo.New()
	req := multipartRequest(t, nil, "resume", "resume.docx", []byte("hi"))
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "unsupported_file_type", resp.Error)
}

func TestParseResumeHandler_UnreadablePDFStillSucceeds(t *testing.T) {
	handler := ParseResumeHandler(testConfig(t), resume.NewExtractor(nil))

	e := echo.New()
	req := multipartRequest(t, nil, "resume", "resume.pdf", []byte("not a real pdf"))
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ParseResumeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.TextPreview)
	assert.NotEmpty(t, resp.Notice)
	assert.NotNil(t, resp.Skills)
}

func TestPersonalizedQuestionsHandler_UnreadableResumeDegrades(t *testing.T) {
	cfg := testConfig(t)
	gen := testGenerator(t, &stubCompleter{err: errors.New("down")})
	handler := PersonalizedQuestionsHandler(cfg, gen, resume.NewExtractor(nil), nil, nil, nil)

	e := echo.New()
	req := multipartRequest(t, map[string]string{
		"job_role":         "Python Developer",
		"experience_level": "entry",
		"num_questions":    "4",
	}, "resume", "resume.pdf", []byte("broken pdf bytes"))
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.GenerateQuestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Questions, 4)
	assert.Contains(t, resp.Notice, "not personalized")
}

func TestPersonalizedQuestionsHandler_MissingRole(t *testing.T) {
	handler := PersonalizedQuestionsHandler(testConfig(t), testGenerator(t, nil), resume.NewExtractor(nil), nil, nil, nil)

	e := echo.New()
	req := multipartRequest(t, map[string]string{"experience_level": "entry"}, "resume", "resume.pdf", []byte("x"))
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchQuestionsHandler_UnavailableWithoutVectorStore(t *testing.T) {
	handler := SearchQuestionsHandler(testConfig(t), nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?query=rate+limiting", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSearchQuestionsHandler_MissingQuery(t *testing.T) {
	handler := SearchQuestionsHandler(testConfig(t), nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecentSessionsHandler_UnavailableWithoutRedis(t *testing.T) {
	handler := RecentSessionsHandler(testConfig(t), nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, HealthHandler(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestReadinessHandler_DegradedLLMIsStillReady(t *testing.T) {
	handler := ReadinessHandler(nil, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "degraded", resp.Checks["llm"])
}
