package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/findmymess/internal/memstore"
	"github.com/joshua-takyi/findmymess/internal/models"
	"github.com/joshua-takyi/findmymess/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminKey = "web-admin-key"

func init() {
	gin.SetMode(gin.TestMode)
}

type testSite struct {
	router  *gin.Engine
	messes  *services.MessService
	reviews *services.ReviewService
}

func newTestSite(t *testing.T, adminKey string) *testSite {
	t.Helper()
	s := &testSite{
		router:  gin.New(),
		messes:  services.NewMessService(memstore.NewMessRepo()),
		reviews: services.NewReviewService(memstore.NewReviewRepo()),
	}
	Register(s.router, Deps{
		Messes:   s.messes,
		Reviews:  s.reviews,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		AdminKey: adminKey,
	})
	return s
}

func (s *testSite) create(t *testing.T, name, area string, asAdmin bool) *models.Mess {
	t.Helper()
	m, err := s.messes.CreateMess(context.Background(), &models.Mess{
		Name: name, Area: area, PriceRange: "2500", Phone: "98765",
	}, asAdmin)
	require.NoError(t, err)
	return m
}

func (s *testSite) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testSite) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func adminSession() *http.Cookie {
	return &http.Cookie{Name: adminCookie, Value: testAdminKey}
}

func TestHomeListsApprovedOnly(t *testing.T) {
	s := newTestSite(t, testAdminKey)
	s.create(t, "Visible Mess", "Kothrud", true)
	s.create(t, "Hidden Mess", "Kothrud", false)

	w := s.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Visible Mess")
	assert.NotContains(t, w.Body.String(), "Hidden Mess")

	w = s.get("/?area=baner")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No messes found.")
}

func TestMessDetailAndReview(t *testing.T) {
	s := newTestSite(t, testAdminKey)
	m := s.create(t, "Annapurna", "Kothrud", true)
	path := "/mess/" + m.ID.Hex()

	w := s.get(path)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Annapurna")
	assert.Contains(t, w.Body.String(), "No reviews yet.")

	form := url.Values{"userIdentifier": {"asha"}, "rating": {"5"}, "text": {"Lovely dal"}}
	w = s.postForm(path+"/reviews", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, path+"?reviewed=1", w.Header().Get("Location"))

	w = s.get(path)
	assert.Contains(t, w.Body.String(), "Lovely dal")
	assert.Contains(t, w.Body.String(), "5.0 / 5")

	w = s.postForm(path+"/reviews", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already reviewed")

	w = s.postForm(path+"/reviews", url.Values{"userIdentifier": {"ravi"}, "rating": {"9"}, "text": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessDetailHidesUnapproved(t *testing.T) {
	s := newTestSite(t, testAdminKey)
	m := s.create(t, "Pending Mess", "Kothrud", false)

	assert.Equal(t, http.StatusNotFound, s.get("/mess/"+m.ID.Hex()).Code)
	assert.Equal(t, http.StatusOK, s.get("/mess/"+m.ID.Hex(), adminSession()).Code)
	assert.Equal(t, http.StatusNotFound, s.get("/mess/not-an-id").Code)
}

func TestSubmit(t *testing.T) {
	s := newTestSite(t, testAdminKey)

	w := s.get("/submit")
	require.Equal(t, http.StatusOK, w.Code)

	form := url.Values{"name": {"New Mess"}, "area": {"Baner"}, "priceRange": {"3000"}, "phone": {"12345"}}
	w = s.postForm("/submit", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/submit?submitted=pending", w.Header().Get("Location"))

	pending, err := s.messes.GetPendingMesses(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)

	w = s.postForm("/submit", form, adminSession())
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/submit?submitted=approved", w.Header().Get("Location"))

	w = s.postForm("/submit", url.Values{"name": {"Only a name"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `value="Only a name"`)
}

func TestAdminLogin(t *testing.T) {
	s := newTestSite(t, testAdminKey)

	w := s.get("/admin")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	w = s.postForm("/admin/login", url.Values{"key": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.postForm("/admin/login", url.Values{"key": {testAdminKey}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, adminCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	assert.Equal(t, http.StatusOK, s.get("/admin", cookies[0]).Code)

	w = s.postForm("/admin/logout", nil, cookies[0])
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAdminUnconfigured(t *testing.T) {
	s := newTestSite(t, "")

	assert.Equal(t, http.StatusInternalServerError, s.get("/admin").Code)
	assert.Equal(t, http.StatusInternalServerError, s.postForm("/admin/login", url.Values{"key": {""}}).Code)
}

func TestDashboardTabsAndModeration(t *testing.T) {
	s := newTestSite(t, testAdminKey)
	pending := s.create(t, "Pending Mess", "Kothrud", false)
	s.create(t, "Approved Mess", "Baner", true)

	w := s.get("/admin", adminSession())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pending Mess")
	assert.NotContains(t, w.Body.String(), "Approved Mess")

	w = s.get("/admin?tab=all", adminSession())
	assert.Contains(t, w.Body.String(), "Pending Mess")
	assert.Contains(t, w.Body.String(), "Approved Mess")

	w = s.get("/admin?tab=all&q=baner", adminSession())
	assert.NotContains(t, w.Body.String(), "Pending Mess")
	assert.Contains(t, w.Body.String(), "Approved Mess")

	statusPath := "/admin/messes/" + pending.ID.Hex() + "/status"
	w = s.postForm(statusPath, url.Values{"status": {"PENDING"}, "tab": {"submissions"}}, adminSession())
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "msg=Invalid+status")

	w = s.postForm(statusPath, url.Values{"status": {"APPROVED"}, "tab": {"submissions"}}, adminSession())
	require.Equal(t, http.StatusSeeOther, w.Code)

	current, err := s.messes.GetMessByID(context.Background(), pending.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, current.Status)

	// moderation needs a session
	w = s.postForm(statusPath, url.Values{"status": {"REJECTED"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	w = s.postForm("/admin/messes/"+pending.ID.Hex()+"/delete", url.Values{"tab": {"all"}}, adminSession())
	require.Equal(t, http.StatusSeeOther, w.Code)
	gone, err := s.messes.GetMessByID(context.Background(), pending.ID.Hex())
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAdminEdit(t *testing.T) {
	s := newTestSite(t, testAdminKey)
	m := s.create(t, "Old Name", "Kothrud", true)
	path := "/admin/messes/" + m.ID.Hex() + "/edit"

	w := s.get(path, adminSession())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Old Name"`)

	w = s.postForm(path, url.Values{
		"name":            {"New Name"},
		"area":            {"Kothrud"},
		"priceRange":      {"2500"},
		"phone":           {"98765"},
		"isMenuAvailable": {"true"},
		"menu":            {`{"tuesday":{"dinner":{"item":"Khichdi","description":""}}}`},
	}, adminSession())
	require.Equal(t, http.StatusSeeOther, w.Code)

	updated, err := s.messes.GetMessByID(context.Background(), m.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, models.StatusApproved, updated.Status)
	require.NotNil(t, updated.Menu)
	assert.Equal(t, "Khichdi", updated.Menu.Tuesday.Dinner.Item)

	w = s.get("/mess/"+m.ID.Hex())
	assert.Contains(t, w.Body.String(), "Khichdi")
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AM", initials("annapurna mess hall"))
	assert.Equal(t, "A", initials("Annapurna"))
	assert.Equal(t, "?", initials("  "))
}
