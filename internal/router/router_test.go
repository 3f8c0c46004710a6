package router

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/invite"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/limiter"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/model"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/session"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/config"
)

const (
	adminHost     = "admin.localhost:8080"
	platformHost  = "platform.localhost:8080"
	marketingHost = "faithinteractive.com"
	password      = "correct-horse"
)

type app struct {
	e  *echo.Echo
	db *gorm.DB

	tenantA *model.Tenant // gracechurch, active
	tenantB *model.Tenant // hopechapel, active
	tenantC *model.Tenant // closedchapel, suspended
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080", Env: "development"},
		Session: config.SessionConfig{
			CookieName: "fi_session", Days: 7, LoginPath: "/login",
		},
		RateLimit: config.RateLimitConfig{
			Max: 100, Window: time.Minute,
			LeadMax: 2, LeadWindow: time.Hour,
			SweepInterval: time.Minute,
		},
		Invite: config.InviteConfig{SigningKey: "test-signing-key", ExpirationHours: 72},
	}
}

func newApp(t *testing.T) *app {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Tenant{}, &model.User{}, &model.Membership{}, &model.Session{},
		&model.Page{}, &model.Sermon{}, &model.Event{}, &model.FormSubmission{},
		&model.Lead{},
	))

	cfg := testConfig()
	invite.Initialize(&cfg.Invite)

	store := limiter.NewMemoryStore(nil)
	t.Cleanup(store.Stop)

	a := &app{db: db}
	a.e = New(Options{
		DB:       db,
		Cfg:      cfg,
		Sessions: session.NewService(db, &cfg.Session, nil),
		Store:    store,
	})

	a.tenantA = a.seedTenant(t, "Grace Church", "gracechurch", model.TenantStatusActive)
	a.tenantB = a.seedTenant(t, "Hope Chapel", "hopechapel", model.TenantStatusActive)
	a.tenantC = a.seedTenant(t, "Closed Chapel", "closedchapel", model.TenantStatusSuspended)

	return a
}

func (a *app) seedTenant(t *testing.T, name, slug, status string) *model.Tenant {
	t.Helper()
	tenant := &model.Tenant{Name: name, Slug: slug, Status: status}
	require.NoError(t, a.db.Create(tenant).Error)
	return tenant
}

func (a *app) seedUser(t *testing.T, email string, platformRole *string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{Email: email, Password: string(hash), Name: "Test User", PlatformRole: platformRole}
	require.NoError(t, a.db.Create(user).Error)
	return user
}

func (a *app) seedMember(t *testing.T, email string, tenantID uint, role string) *model.User {
	t.Helper()
	user := a.seedUser(t, email, nil)
	require.NoError(t, a.db.Create(&model.Membership{
		UserID: user.ID, TenantID: tenantID, Role: role, Active: true,
	}).Error)
	return user
}

func (a *app) seedPage(t *testing.T, tenantID uint, slug string, published bool) *model.Page {
	t.Helper()
	page := &model.Page{Slug: slug, Title: "Title " + slug, Published: published}
	page.SetTenantID(tenantID)
	require.NoError(t, a.db.Create(page).Error)
	return page
}

func (a *app) request(method, host, path string, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "http://"+host+path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// login authenticates on the given host and returns the session cookie.
func (a *app) login(t *testing.T, host, email string) *http.Cookie {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := a.request(http.MethodPost, host, loginPath(host), body, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == "fi_session" {
			return c
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}

func loginPath(host string) string {
	if strings.HasPrefix(host, "platform.") {
		return "/platform/api/auth/login"
	}
	return "/admin/api/auth/login"
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthOnEverySurface(t *testing.T) {
	a := newApp(t)
	for _, host := range []string{adminHost, platformHost, marketingHost, "gracechurch.localhost:8080"} {
		rec := a.request(http.MethodGet, host, "/health", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, host)
	}
}

func TestAdminAPIRequiresSession(t *testing.T) {
	a := newApp(t)

	rec := a.request(http.MethodGet, adminHost, "/admin/api/pages", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication required", decode(t, rec)["error"])
}

func TestBrowserNavigationRedirectsToLogin(t *testing.T) {
	a := newApp(t)

	req := httptest.NewRequest(http.MethodGet, "http://"+adminHost+"/admin/api/pages", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLoginBadCredentials(t *testing.T) {
	a := newApp(t)
	a.seedMember(t, "admin@gracechurch.org", a.tenantA.ID, "ADMIN")

	rec := a.request(http.MethodPost, adminHost, "/admin/api/auth/login",
		`{"email":"admin@gracechurch.org","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	recUnknown := a.request(http.MethodPost, adminHost, "/admin/api/auth/login",
		`{"email":"nobody@example.org","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, rec.Body.String(), recUnknown.Body.String(),
		"unknown email and bad password must be indistinguishable")
}

func TestLoginGrantsAccess(t *testing.T) {
	a := newApp(t)
	a.seedMember(t, "admin@gracechurch.org", a.tenantA.ID, "ADMIN")
	a.seedPage(t, a.tenantA.ID, "welcome", true)
	a.seedPage(t, a.tenantA.ID, "draft-page", false)

	cookie := a.login(t, adminHost, "admin@gracechurch.org")
	assert.True(t, cookie.HttpOnly)

	rec := a.request(http.MethodGet, adminHost, "/admin/api/pages", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	pages := decode(t, rec)["pages"].([]interface{})
	assert.Len(t, pages, 2, "the dashboard sees drafts too")
}

func TestWrongSurfaceIs404(t *testing.T) {
	a := newApp(t)
	a.seedMember(t, "admin@gracechurch.org", a.tenantA.ID, "ADMIN")
	cookie := a.login(t, adminHost, "admin@gracechurch.org")

	// The admin API does not exist on a church's public host.
	rec := a.request(http.MethodGet, "gracechurch.localhost:8080", "/admin/api/pages", "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", decode(t, rec)["error"])
}

func TestForeignTenantRowIndistinguishableFromMissing(t *testing.T) {
	a := newApp(t)
	a.seedMember(t, "admin@gracechurch.org", a.tenantA.ID, "ADMIN")
	foreign := a.seedPage(t, a.tenantB.ID, "theirs", true)
	cookie := a.login(t, adminHost, "admin@gracechurch.org")

	recForeign := a.request(http.MethodGet, adminHost,
		fmt.Sprintf("/admin/api/pages/%d", foreign.ID), "", cookie)
	recMissing := a.request(http.MethodGet, adminHost, "/admin/api/pages/999999", "", cookie)

	assert.Equal(t, http.StatusNotFound, recForeign.Code)
	assert.Equal(t, http.StatusNotFound, recMissing.Code)
	assert.Equal(t, recMissing.Body.String(), recForeign.Body.String(),
		"bodies must be byte-identical")
}

func TestViewerCannotWrite(t *testing.T) {
	a := newApp(t)
	a.seedMember(t, "viewer@gracechurch.org", a.tenantA.ID, "VIEWER")
	cookie := a.login(t, adminHost, "viewer@gracechurch.org")

	rec := a.request(http.MethodGet, adminHost, "/admin/api/pages", "", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.request(http.MethodPost, adminHost, "/admin/api/pages",
		`{"slug":"new-page","title":"New Page"}`, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.request(http.MethodDelete, adminHost, "/admin/api/pages/1", "", cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEditorCannotManageTeam(t *testing.T) {
	a := newApp(t)
	a.seedMember(t, "editor@gracechurch.org", a.tenantA.ID, "EDITOR")
	cookie := a.login(t, adminHost, "editor@gracechurch.org")

	rec := a.request(http.MethodGet, adminHost, "/admin/api/team", "", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.request(http.MethodPost, adminHost, "/admin/api/team/invites",
		`{"email":"new@example.org","role":"VIEWER"}`, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Content writes stay open to editors.
	rec = a.request(http.MethodPost, adminHost, "/admin/api/pages",
		`{"slug":"sermon-archive","title":"Sermon Archive"}`, cookie)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestTenantSelectionFlow(t *testing.T) {
	a := newApp(t)
	user := a.seedMember(t, "multi@example.org", a.tenantA.ID, "ADMIN")
	require.NoError(t, a.db.Create(&model.Membership{
		UserID: user.ID, TenantID: a.tenantB.ID, Role: "EDITOR", Active: true,
	}).Error)

	cookie := a.login(t, adminHost, "multi@example.org")

	// Two memberships, no default: tenant-scoped routes demand a selection.
	rec := a.request(http.MethodGet, adminHost, "/admin/api/pages", "", cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "tenant selection required", decode(t, rec)["error"])

	rec = a.request(http.MethodPost, adminHost, "/admin/api/tenant/select",
		fmt.Sprintf(`{"tenant_id":%d}`, a.tenantB.ID), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	tenant := decode(t, rec)["tenant"].(map[string]interface{})
	assert.Equal(t, "hopechapel", tenant["slug"])
	assert.Equal(t, "EDITOR", tenant["role"])

	rec = a.request(http.MethodGet, adminHost, "/admin/api/pages", "", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Selecting a tenant without a membership is refused.
	rec = a.request(http.MethodPost, adminHost, "/admin/api/tenant/select",
		fmt.Sprintf(`{"tenant_id":%d}`, a.tenantC.ID), cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSuspendedTenantLockedOut(t *testing.T) {
	a := newApp(t)
	a.seedMember(t, "admin@closedchapel.org", a.tenantC.ID, "ADMIN")
	cookie := a.login(t, adminHost, "admin@closedchapel.org")

	rec := a.request(http.MethodGet, adminHost, "/admin/api/pages", "", cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogoutClearsCookieAndSession(t *testing.T) {
	a := newApp(t)
	a.seedMember(t, "admin@gracechurch.org", a.tenantA.ID, "ADMIN")
	cookie := a.login(t, adminHost, "admin@gracechurch.org")

	rec := a.request(http.MethodPost, adminHost, "/admin/api/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "fi_session" {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// The old token no longer resolves.
	rec = a.request(http.MethodGet, adminHost, "/admin/api/pages", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInviteLifecycle(t *testing.T) {
	a := newApp(t)
	a.seedMember(t, "admin@gracechurch.org", a.tenantA.ID, "ADMIN")
	a.seedUser(t, "new.editor@example.org", nil)

	adminCookie := a.login(t, adminHost, "admin@gracechurch.org")
	rec := a.request(http.MethodPost, adminHost, "/admin/api/team/invites",
		`{"email":"new.editor@example.org","role":"EDITOR"}`, adminCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token := decode(t, rec)["invite_token"].(string)
	require.NotEmpty(t, token)

	// A different account cannot redeem the token.
	a.seedUser(t, "thief@example.org", nil)
	thiefCookie := a.login(t, adminHost, "thief@example.org")
	rec = a.request(http.MethodPost, adminHost, "/admin/api/invites/accept",
		fmt.Sprintf(`{"token":%q}`, token), thiefCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The invitee redeems it and gains editor access.
	inviteeCookie := a.login(t, adminHost, "new.editor@example.org")
	rec = a.request(http.MethodPost, adminHost, "/admin/api/invites/accept",
		fmt.Sprintf(`{"token":%q}`, token), inviteeCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.request(http.MethodPost, adminHost, "/admin/api/tenant/select",
		fmt.Sprintf(`{"tenant_id":%d}`, a.tenantA.ID), inviteeCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.request(http.MethodPost, adminHost, "/admin/api/pages",
		`{"slug":"from-invitee","title":"From Invitee"}`, inviteeCookie)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestPublicSiteServesPublishedContentOnly(t *testing.T) {
	a := newApp(t)
	a.seedPage(t, a.tenantA.ID, "welcome", true)
	a.seedPage(t, a.tenantA.ID, "draft-page", false)
	a.seedPage(t, a.tenantB.ID, "other-church", true)

	rec := a.request(http.MethodGet, "gracechurch.localhost:8080", "/site/pages", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pages := decode(t, rec)["pages"].([]interface{})
	require.Len(t, pages, 1)
	assert.Equal(t, "welcome", pages[0].(map[string]interface{})["slug"])

	rec = a.request(http.MethodGet, "gracechurch.localhost:8080", "/site/pages/welcome", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.request(http.MethodGet, "gracechurch.localhost:8080", "/site/pages/draft-page", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicSiteUnknownAndSuspendedTenants(t *testing.T) {
	a := newApp(t)
	a.seedPage(t, a.tenantC.ID, "welcome", true)

	recUnknown := a.request(http.MethodGet, "nosuchchurch.localhost:8080", "/site/pages", "", nil)
	recSuspended := a.request(http.MethodGet, "closedchapel.localhost:8080", "/site/pages", "", nil)

	assert.Equal(t, http.StatusNotFound, recUnknown.Code)
	assert.Equal(t, http.StatusNotFound, recSuspended.Code)
	assert.Equal(t, recUnknown.Body.String(), recSuspended.Body.String(),
		"probing must not reveal which churches exist")
}

func TestFormSubmissionStoredUnderHostTenant(t *testing.T) {
	a := newApp(t)

	rec := a.request(http.MethodPost, "gracechurch.localhost:8080", "/site/forms",
		`{"form":"contact","fields":{"name":"Sam","message":"hello"}}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var submissions []model.FormSubmission
	require.NoError(t, a.db.Find(&submissions).Error)
	require.Len(t, submissions, 1)
	assert.Equal(t, a.tenantA.ID, submissions[0].OwnerTenantID())
	assert.Equal(t, "contact", submissions[0].FormName)
}

func TestLeadCaptureRateLimit(t *testing.T) {
	a := newApp(t)
	body := `{"name":"Sam Lee","email":"sam@example.org","church_name":"New Plant"}`

	for i := 0; i < 2; i++ {
		rec := a.request(http.MethodPost, marketingHost, "/marketing/leads", body, nil)
		require.Equal(t, http.StatusCreated, rec.Code, "request %d: %s", i+1, rec.Body.String())
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, fmt.Sprintf("%d", 1-i), rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
	}

	rec := a.request(http.MethodPost, marketingHost, "/marketing/leads", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "too many requests", decode(t, rec)["error"])

	var count int64
	a.db.Model(&model.Lead{}).Count(&count)
	assert.Equal(t, int64(2), count, "the denied request must not store a lead")
}

func TestPlatformSurfaceGates(t *testing.T) {
	a := newApp(t)
	a.seedMember(t, "admin@gracechurch.org", a.tenantA.ID, "ADMIN")
	staffRole := model.PlatformRoleStaff
	adminRole := model.PlatformRoleAdmin
	a.seedUser(t, "staff@faithinteractive.com", &staffRole)
	a.seedUser(t, "ops@faithinteractive.com", &adminRole)

	// A church admin has no business on the operator surface.
	churchCookie := a.login(t, platformHost, "admin@gracechurch.org")
	rec := a.request(http.MethodGet, platformHost, "/platform/api/tenants", "", churchCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	staffCookie := a.login(t, platformHost, "staff@faithinteractive.com")
	rec = a.request(http.MethodGet, platformHost, "/platform/api/tenants", "", staffCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	tenants := decode(t, rec)["tenants"].([]interface{})
	assert.Len(t, tenants, 3)

	// Suspension is platform-admin only.
	suspendPath := fmt.Sprintf("/platform/api/tenants/%d/suspend", a.tenantA.ID)
	rec = a.request(http.MethodPost, platformHost, suspendPath, "", staffCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	opsCookie := a.login(t, platformHost, "ops@faithinteractive.com")
	rec = a.request(http.MethodPost, platformHost, suspendPath, "", opsCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var tenant model.Tenant
	require.NoError(t, a.db.First(&tenant, a.tenantA.ID).Error)
	assert.Equal(t, model.TenantStatusSuspended, tenant.Status)

	// The suspended church drops off its admin dashboard and public site.
	rec = a.request(http.MethodGet, adminHost, "/admin/api/pages", "", churchCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = a.request(http.MethodGet, "gracechurch.localhost:8080", "/site/pages", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Reactivation restores service.
	rec = a.request(http.MethodPost, platformHost,
		fmt.Sprintf("/platform/api/tenants/%d/reactivate", a.tenantA.ID), "", opsCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = a.request(http.MethodGet, "gracechurch.localhost:8080", "/site/pages", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLeadPipelineForPlatformStaff(t *testing.T) {
	a := newApp(t)
	staffRole := model.PlatformRoleStaff
	a.seedUser(t, "staff@faithinteractive.com", &staffRole)

	rec := a.request(http.MethodPost, marketingHost, "/marketing/leads",
		`{"name":"Sam Lee","email":"sam@example.org"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	staffCookie := a.login(t, platformHost, "staff@faithinteractive.com")
	rec = a.request(http.MethodGet, platformHost, "/platform/api/leads?status=new", "", staffCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	leads := decode(t, rec)["leads"].([]interface{})
	require.Len(t, leads, 1)
	leadID := uint(leads[0].(map[string]interface{})["id"].(float64))

	rec = a.request(http.MethodPatch, platformHost,
		fmt.Sprintf("/platform/api/leads/%d", leadID), `{"status":"contacted"}`, staffCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.request(http.MethodPatch, platformHost,
		fmt.Sprintf("/platform/api/leads/%d", leadID), `{"status":"on-hold"}`, staffCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidationErrorsCarryFieldDetail(t *testing.T) {
	a := newApp(t)
	a.seedMember(t, "admin@gracechurch.org", a.tenantA.ID, "ADMIN")
	cookie := a.login(t, adminHost, "admin@gracechurch.org")

	rec := a.request(http.MethodPost, adminHost, "/admin/api/pages",
		`{"slug":"Not A Slug!","title":""}`, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "invalid request", body["error"])
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "slug")
	assert.Contains(t, fields, "title")
}

func TestDuplicateSlugConflicts(t *testing.T) {
	a := newApp(t)
	a.seedMember(t, "admin@gracechurch.org", a.tenantA.ID, "ADMIN")
	a.seedMember(t, "admin@hopechapel.org", a.tenantB.ID, "ADMIN")
	a.seedPage(t, a.tenantA.ID, "welcome", false)

	cookieA := a.login(t, adminHost, "admin@gracechurch.org")
	rec := a.request(http.MethodPost, adminHost, "/admin/api/pages",
		`{"slug":"welcome","title":"Welcome Again"}`, cookieA)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Slugs are unique per tenant, not globally.
	cookieB := a.login(t, adminHost, "admin@hopechapel.org")
	rec = a.request(http.MethodPost, adminHost, "/admin/api/pages",
		`{"slug":"welcome","title":"Welcome"}`, cookieB)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestPublishLifecycle(t *testing.T) {
	a := newApp(t)
	a.seedMember(t, "editor@gracechurch.org", a.tenantA.ID, "EDITOR")
	page := a.seedPage(t, a.tenantA.ID, "welcome", false)
	cookie := a.login(t, adminHost, "editor@gracechurch.org")

	rec := a.request(http.MethodGet, "gracechurch.localhost:8080", "/site/pages/welcome", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.request(http.MethodPost, adminHost,
		fmt.Sprintf("/admin/api/pages/%d/publish", page.ID), "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.request(http.MethodGet, "gracechurch.localhost:8080", "/site/pages/welcome", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.request(http.MethodPost, adminHost,
		fmt.Sprintf("/admin/api/pages/%d/unpublish", page.ID), "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.request(http.MethodGet, "gracechurch.localhost:8080", "/site/pages/welcome", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSelfManagementBlocked(t *testing.T) {
	a := newApp(t)
	admin := a.seedMember(t, "admin@gracechurch.org", a.tenantA.ID, "ADMIN")
	cookie := a.login(t, adminHost, "admin@gracechurch.org")

	rec := a.request(http.MethodPatch, adminHost,
		fmt.Sprintf("/admin/api/team/%d", admin.ID), `{"role":"VIEWER"}`, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.request(http.MethodDelete, adminHost,
		fmt.Sprintf("/admin/api/team/%d", admin.ID), "", cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
