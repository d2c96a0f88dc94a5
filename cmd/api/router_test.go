package main

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"spendlog/internal/config"
	"spendlog/internal/logger"
	"spendlog/internal/models"
	"spendlog/internal/testutil"
	"spendlog/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// testApp is a running server plus the database behind it.
type testApp struct {
	DB     *gorm.DB
	Server *httptest.Server
}

func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{SessionSecret: "router-test-secret", SessionTTL: time.Hour}

	router, err := setupRouter(cfg, db)
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		testutil.TeardownTestDB(t, db)
	})
	return &testApp{DB: db, Server: srv}
}

// client is a browser-like user agent that keeps cookies and does not follow
// redirects, so tests can assert on them.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func (app *testApp) newClient(t *testing.T) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{
		t:    t,
		base: app.Server.URL,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *client) do(req *http.Request) (*http.Response, string) {
	c.t.Helper()
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(body)
}

func (c *client) get(path string) (*http.Response, string) {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.base+path, http.NoBody)
	require.NoError(c.t, err)
	return c.do(req)
}

func (c *client) post(path string, form url.Values) (*http.Response, string) {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodPost, c.base+path, strings.NewReader(form.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) upload(path, field string, content []byte) (*http.Response, string) {
	c.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, "backup.json")
	require.NoError(c.t, err)
	_, err = fw.Write(content)
	require.NoError(c.t, err)
	require.NoError(c.t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, c.base+path, &body)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

// signup creates an account and logs in with it.
func (c *client) signup(username string) {
	c.t.Helper()
	resp, body := c.post("/signup", url.Values{
		"username":         {username},
		"password":         {"s3cret-pass"},
		"confirm_password": {"s3cret-pass"},
	})
	require.Equal(c.t, http.StatusFound, resp.StatusCode, body)
	require.Equal(c.t, "/login", resp.Header.Get("Location"))

	resp, body = c.post("/login", url.Values{"username": {username}, "password": {"s3cret-pass"}})
	require.Equal(c.t, http.StatusFound, resp.StatusCode, body)
	require.Equal(c.t, "/list", resp.Header.Get("Location"))
}

func expenseForm(title, amount, category, date string) url.Values {
	return url.Values{
		"title":           {title},
		"amount":          {amount},
		"category":        {category},
		"date":            {date},
		"recurrence_type": {"NONE"},
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	app := setupApp(t)
	c := app.newClient(t)

	resp, body := c.get("/api/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	resp, _ = c.get("/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/list", resp.Header.Get("Location"))

	resp, body = c.get("/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="password"`)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, body = c.get("/no-such-page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page not found")
}

func TestRouter_ProtectedRoutesRedirectToLogin(t *testing.T) {
	app := setupApp(t)
	c := app.newClient(t)

	for _, path := range []string{"/list", "/add", "/edit/1", "/export_csv", "/export_xlsx", "/backup_json", "/restore_json"} {
		resp, _ := c.get(path)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	resp, _ := c.post("/delete/1", url.Values{})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRouter_ExpenseLifecycle(t *testing.T) {
	app := setupApp(t)
	c := app.newClient(t)
	c.signup("alice")

	// Authenticated users are sent away from the auth forms.
	resp, _ := c.get("/login")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/list", resp.Header.Get("Location"))

	resp, body := c.post("/add", expenseForm("Coffee", "4.50", "FOOD", "2024-01-05"))
	require.Equal(t, http.StatusFound, resp.StatusCode, body)
	resp, body = c.post("/add", expenseForm("Train", "12", "TRAVEL", "2024-02-10"))
	require.Equal(t, http.StatusFound, resp.StatusCode, body)

	resp, body = c.get("/list")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Coffee")
	assert.Contains(t, body, "Train")
	assert.Contains(t, body, "16.50")

	resp, body = c.get("/list?category=FOOD")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Coffee")
	assert.NotContains(t, body, "Train")
	assert.Contains(t, body, "4.50")

	var coffee models.Expense
	require.NoError(t, app.DB.Where("title = ?", "Coffee").First(&coffee).Error)
	id := strconv.FormatUint(uint64(coffee.ID), 10)

	resp, body = c.post("/edit/"+id, expenseForm("Coffee beans", "9.99", "SHOPPING", "2024-01-06"))
	require.Equal(t, http.StatusFound, resp.StatusCode, body)

	require.NoError(t, app.DB.First(&coffee, coffee.ID).Error)
	assert.Equal(t, "Coffee beans", coffee.Title)
	assert.Equal(t, "9.99", coffee.AmountString())
	assert.Equal(t, models.CategoryShopping, coffee.Category)

	resp, _ = c.post("/delete/"+id, url.Values{})
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	var count int64
	app.DB.Model(&models.Expense{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var audits int64
	app.DB.Model(&models.AuditLog{}).Count(&audits)
	assert.Equal(t, int64(4), audits)
}

func TestRouter_OwnershipIsolation(t *testing.T) {
	app := setupApp(t)

	alice := app.newClient(t)
	alice.signup("alice")
	resp, _ := alice.post("/add", expenseForm("Private", "10", "BILLS", "2024-03-01"))
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var expense models.Expense
	require.NoError(t, app.DB.First(&expense).Error)
	id := strconv.FormatUint(uint64(expense.ID), 10)

	bob := app.newClient(t)
	bob.signup("bob")

	resp, body := bob.get("/list")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "Private")

	resp, _ = bob.get("/edit/" + id)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = bob.post("/edit/"+id, expenseForm("Hijacked", "1", "FOOD", "2024-03-01"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = bob.post("/delete/"+id, url.Values{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = bob.get("/export_csv")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Title,Amount,Category,Date,Notes\n", body)

	require.NoError(t, app.DB.First(&expense, expense.ID).Error)
	assert.Equal(t, "Private", expense.Title)
}

func TestRouter_BackupAndRestore(t *testing.T) {
	app := setupApp(t)
	c := app.newClient(t)
	c.signup("alice")

	resp, _ := c.post("/add", expenseForm("Rent", "1200", "BILLS", "2024-03-01"))
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp, backup := c.get("/backup_json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="backup.json"`, resp.Header.Get("Content-Disposition"))

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(backup), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "1200.00", records[0]["amount"])

	// Restoring the same backup updates in place.
	resp, body := c.upload("/restore_json", "backup_file", []byte(backup))
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, "Restored 0 new and 1 existing expenses.")

	// A new item is added alongside.
	extra := `[{"title":"Gym","amount":"30.00","category":"OTHER","date":"2024-03-02","recurring":true,"recurrence_type":"MONTHLY"}]`
	resp, body = c.upload("/restore_json", "backup_file", []byte(extra))
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, "Restored 1 new and 0 existing expenses.")

	// An invalid document changes nothing.
	bad := `[{"title":"Ok","amount":"1","category":"FOOD","date":"2024-01-01"},{"title":"Bad","amount":"1","category":"FOOD"}]`
	resp, body = c.upload("/restore_json", "backup_file", []byte(bad))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Invalid backup: item 2")

	var count int64
	app.DB.Model(&models.Expense{}).Count(&count)
	assert.Equal(t, int64(2), count)

	resp, body = c.get("/export_xlsx")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, "PK"), "xlsx is a zip archive")
}

func TestRouter_LoginLogout(t *testing.T) {
	app := setupApp(t)

	c := app.newClient(t)
	c.signup("carol")

	resp, _ := c.post("/logout", url.Values{})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, _ = c.get("/list")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, body := c.post("/login", url.Values{"username": {"carol"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password")

	resp, _ = c.post("/login", url.Values{"username": {"carol"}, "password": {"s3cret-pass"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/list", resp.Header.Get("Location"))

	resp, _ = c.get("/list")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var sessions int64
	app.DB.Model(&models.Session{}).Count(&sessions)
	assert.Equal(t, int64(1), sessions)
}
