package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"feedback_backend/internal/config"
	"feedback_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

func (m *capturingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = codePattern.FindString(body)
	return nil
}

func (m *capturingMailer) code(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[to]
}

func newTestApp(t *testing.T) (*App, *capturingMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: gin.TestMode, AppName: "Random Feedback"},
		JWT:       config.JWTConfig{Secret: "app-test-secret", ExpireTime: time.Hour},
		OTP:       config.OTPConfig{TTLMinutes: 60, ResendCooldownSeconds: 60},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	mailer := &capturingMailer{codes: make(map[string]string)}
	return New(cfg, testutil.NewDB(t), nil, mailer), mailer
}

func call(t *testing.T, h http.Handler, method, path, token string, body any) (int, json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w.Code, env.Data
}

func signUpAndIn(t *testing.T, a *App, mailer *capturingMailer, username, role string) string {
	t.Helper()
	email := username + "@example.com"
	status, _ := call(t, a.Router, http.MethodPost, "/api/sign-up", "", map[string]string{
		"username": username, "email": email, "password": "Secret123", "role": role,
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = call(t, a.Router, http.MethodPost, "/api/verify", "", map[string]string{
		"identifier": username, "code": mailer.code(email),
	})
	require.Equal(t, http.StatusOK, status)

	status, data := call(t, a.Router, http.MethodPost, "/api/sign-in", "", map[string]string{
		"identifier": email, "password": "Secret123",
	})
	require.Equal(t, http.StatusOK, status)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	return out.Token
}

func TestHealth(t *testing.T) {
	a, _ := newTestApp(t)
	status, _ := call(t, a.Router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestFeedbackRoundTrip(t *testing.T) {
	a, mailer := newTestApp(t)
	token := signUpAndIn(t, a, mailer, "feedback_fan", "")

	status, _ := call(t, a.Router, http.MethodGet, "/api/messages", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, a.Router, http.MethodPost, "/api/send-message", "", map[string]string{
		"username": "feedback_fan", "content": "Great talk!",
	})
	require.Equal(t, http.StatusCreated, status)

	status, data := call(t, a.Router, http.MethodGet, "/api/messages", token, nil)
	require.Equal(t, http.StatusOK, status)
	var feed struct {
		Messages []struct {
			Content string `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(data, &feed))
	require.Len(t, feed.Messages, 1)
	assert.Equal(t, "Great talk!", feed.Messages[0].Content)

	status, _ = call(t, a.Router, http.MethodPost, "/api/resend-otp", "", map[string]string{"identifier": "feedback_fan"})
	assert.Equal(t, http.StatusPaymentRequired, status)
}

func TestRoleGates(t *testing.T) {
	a, mailer := newTestApp(t)
	student := signUpAndIn(t, a, mailer, "some_student", "student")
	teacher := signUpAndIn(t, a, mailer, "some_teacher", "teacher")

	body := map[string]any{
		"title":     "Quiz",
		"topic":     "Algebra",
		"startTime": time.Now().Add(time.Hour).UTC(),
		"endTime":   time.Now().Add(2 * time.Hour).UTC(),
	}
	status, _ := call(t, a.Router, http.MethodPost, "/api/tests", student, body)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, a.Router, http.MethodPost, "/api/tests", teacher, body)
	assert.Equal(t, http.StatusCreated, status)

	status, _ = call(t, a.Router, http.MethodGet, "/api/question-set?testId=x", teacher, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestConfigCallbacksReplaceOrigins(t *testing.T) {
	a, _ := newTestApp(t)
	require.True(t, a.Origins.Allowed("http://localhost:3000"))

	next := *a.Config
	next.Server.Mode = gin.TestMode
	next.CORS.AllowedOrigins = []string{"https://feedback.example.com"}
	for _, cb := range a.configCallbacks {
		cb(&next)
	}

	assert.False(t, a.Origins.Allowed("http://localhost:3000"))
	assert.True(t, a.Origins.Allowed("https://feedback.example.com"))
}
