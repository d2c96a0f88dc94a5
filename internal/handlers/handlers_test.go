package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"spendlog/internal/config"
	"spendlog/internal/logger"
	"spendlog/internal/middleware"
	"spendlog/internal/models"
	"spendlog/internal/services"
	"spendlog/internal/validator"
	"spendlog/web"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// --- mock session service ---

type mockSessionService struct {
	sessions map[string]*models.Session
	deleted  []string
}

func newMockSessionService() *mockSessionService {
	return &mockSessionService{sessions: map[string]*models.Session{}}
}

func (m *mockSessionService) CreateSession(userID uint) (*models.Session, error) {
	s := &models.Session{ID: "sess-" + time.Now().Format("150405.000000000"), UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}
	m.sessions[s.ID] = s
	return s, nil
}

func (m *mockSessionService) ValidateSession(id string) (*models.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, io.EOF
}

func (m *mockSessionService) RenewSession(*models.Session) (bool, error) { return false, nil }

func (m *mockSessionService) DeleteSession(id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionService) PurgeExpired() (int64, error) { return 0, nil }

var _ services.SessionServicer = (*mockSessionService)(nil)

// --- mock audit service ---

type auditEntry struct {
	userID     uint
	action     string
	resourceID uint
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(userID uint, action, _ string, resourceID uint, _ string, _ map[string]interface{}) {
	m.entries = append(m.entries, auditEntry{userID: userID, action: action, resourceID: resourceID})
}

var _ services.AuditServicer = (*mockAuditService)(nil)

var testConfig = &config.Config{SessionSecret: "handler-test-secret", SessionTTL: time.Hour}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	return r
}

func injectUserID(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func postForm(r *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("expected redirect to %s, got %s", location, got)
	}
}

func assertBodyContains(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if !strings.Contains(rec.Body.String(), want) {
		t.Errorf("expected body to contain %q, got:\n%s", want, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r := gin.New()
	r.GET("/api/health", Health)

	rec := doRequest(r, http.MethodGet, "/api/health")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
}
