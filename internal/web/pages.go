package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/findmymess/internal/handlers"
	"github.com/joshua-takyi/findmymess/internal/middleware"
	"github.com/joshua-takyi/findmymess/internal/models"
	"github.com/joshua-takyi/findmymess/internal/services"
)

func (s *site) isAdmin(c *gin.Context) bool {
	key, err := c.Cookie(adminCookie)
	if err != nil {
		return false
	}
	return middleware.KeyMatches(s.AdminKey, key)
}

func (s *site) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
		"IsAdmin": s.isAdmin(c),
	})
}

func (s *site) home(c *gin.Context) {
	area := strings.TrimSpace(c.Query("area"))

	var (
		messes []*models.Mess
		err    error
	)
	if area != "" {
		messes, err = s.Messes.SearchMessesByArea(c.Request.Context(), area, models.StatusApproved)
	} else {
		messes, err = s.Messes.GetAllMesses(c.Request.Context(), models.StatusApproved)
	}
	if err != nil {
		_ = c.Error(err)
		s.renderError(c, http.StatusInternalServerError, "Failed to fetch messes")
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title":   "Find your mess",
		"Area":    area,
		"Messes":  messes,
		"IsAdmin": s.isAdmin(c),
	})
}

func (s *site) renderDetail(c *gin.Context, status int, mess *models.Mess, form gin.H) {
	reviews, err := s.Reviews.GetReviewsByMessID(c.Request.Context(), mess.ID.Hex())
	if err != nil {
		_ = c.Error(err)
		s.renderError(c, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	c.HTML(status, "mess.html", gin.H{
		"Title":    mess.Name,
		"Mess":     mess,
		"Reviews":  reviews,
		"Average":  averageRating(reviews),
		"Form":     form,
		"Reviewed": c.Query("reviewed") == "1",
		"IsAdmin":  s.isAdmin(c),
	})
}

// visibleMess loads a mess the current visitor may see. Unapproved messes are
// only shown to the admin.
func (s *site) visibleMess(c *gin.Context) (*models.Mess, bool) {
	mess, err := s.Messes.GetMessByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		s.renderError(c, http.StatusInternalServerError, "Failed to fetch mess")
		return nil, false
	}
	if mess == nil || (mess.Status != models.StatusApproved && !s.isAdmin(c)) {
		s.renderError(c, http.StatusNotFound, "Mess not found")
		return nil, false
	}
	return mess, true
}

func (s *site) messDetail(c *gin.Context) {
	mess, ok := s.visibleMess(c)
	if !ok {
		return
	}
	s.renderDetail(c, http.StatusOK, mess, nil)
}

func (s *site) createReview(c *gin.Context) {
	mess, ok := s.visibleMess(c)
	if !ok {
		return
	}

	var in services.CreateReviewInput
	if err := c.ShouldBind(&in); err != nil {
		s.renderDetail(c, http.StatusBadRequest, mess, gin.H{"Error": "Rating must be a number between 1 and 5"})
		return
	}
	in.MessID = mess.ID.Hex()

	_, err := s.Reviews.CreateReview(c.Request.Context(), in)
	switch {
	case errors.Is(err, models.ErrDuplicateReview):
		s.renderDetail(c, http.StatusBadRequest, mess, gin.H{"Error": "You have already reviewed this mess"})
		return
	case errors.Is(err, models.ErrValidation):
		s.renderDetail(c, http.StatusBadRequest, mess, gin.H{"Error": "Please give a rating from 1 to 5 and a review of at most 500 characters"})
		return
	case err != nil:
		_ = c.Error(err)
		s.renderError(c, http.StatusInternalServerError, "Failed to create review")
		return
	}

	c.Redirect(http.StatusSeeOther, "/mess/"+mess.ID.Hex()+"?reviewed=1")
}

func (s *site) submitForm(c *gin.Context) {
	c.HTML(http.StatusOK, "submit.html", gin.H{
		"Title":     "Submit a mess",
		"Submitted": c.Query("submitted"),
		"IsAdmin":   s.isAdmin(c),
	})
}

func (s *site) submit(c *gin.Context) {
	asAdmin := s.isAdmin(c)
	render := func(status int, message string, draft *models.Mess) {
		c.HTML(status, "submit.html", gin.H{
			"Title":   "Submit a mess",
			"Error":   message,
			"Draft":   draft,
			"IsAdmin": asAdmin,
		})
	}

	input, err := handlers.BindMessInput(c, s.Logger)
	if err != nil {
		render(http.StatusBadRequest, "The form could not be read", nil)
		return
	}

	draft := input.ToMess()
	created, err := s.Messes.CreateMess(c.Request.Context(), draft, asAdmin)
	if errors.Is(err, models.ErrValidation) {
		render(http.StatusBadRequest, "Name, area, price range and phone are required", draft)
		return
	}
	if err != nil {
		_ = c.Error(err)
		render(http.StatusInternalServerError, "Failed to submit mess", draft)
		return
	}

	c.Redirect(http.StatusSeeOther, "/submit?submitted="+strings.ToLower(string(created.Status)))
}

func (s *site) loginForm(c *gin.Context) {
	if s.isAdmin(c) {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": "Admin login"})
}

func (s *site) login(c *gin.Context) {
	if s.AdminKey == "" {
		s.Logger.Error("ADMIN_KEY is not set in environment variables", "path", c.Request.URL.Path)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Title": "Admin login",
			"Error": "Admin configuration missing",
		})
		return
	}

	key := c.PostForm("key")
	if !middleware.KeyMatches(s.AdminKey, key) {
		s.Logger.Warn("Rejected admin login", "client_ip", c.ClientIP())
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Title": "Admin login",
			"Error": "Invalid admin key",
		})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(adminCookie, key, 12*60*60, "/", "", s.SecureCookie, true)
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (s *site) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(adminCookie, "", -1, "/", "", s.SecureCookie, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *site) requireAdmin(c *gin.Context) {
	if s.AdminKey == "" {
		s.Logger.Error("ADMIN_KEY is not set in environment variables", "path", c.Request.URL.Path)
		s.renderError(c, http.StatusInternalServerError, "Admin configuration missing")
		c.Abort()
		return
	}
	if !s.isAdmin(c) {
		c.Redirect(http.StatusSeeOther, "/admin/login")
		c.Abort()
		return
	}
	c.Next()
}

const (
	tabSubmissions = "submissions"
	tabAll         = "all"
)

func dashboardURL(tab, msg string) string {
	v := url.Values{}
	if tab != tabAll {
		tab = tabSubmissions
	}
	v.Set("tab", tab)
	if msg != "" {
		v.Set("msg", msg)
	}
	return "/admin?" + v.Encode()
}

func (s *site) dashboard(c *gin.Context) {
	tab := c.DefaultQuery("tab", tabSubmissions)
	if tab != tabAll {
		tab = tabSubmissions
	}
	query := strings.TrimSpace(c.Query("q"))

	statuses := []models.MessStatus{models.StatusPending}
	if tab == tabAll {
		statuses = []models.MessStatus{models.StatusPending, models.StatusApproved, models.StatusRejected}
	}

	messes := []*models.Mess{}
	for _, status := range statuses {
		found, err := s.Messes.GetAllMesses(c.Request.Context(), status)
		if err != nil {
			_ = c.Error(err)
			s.renderError(c, http.StatusInternalServerError, "Failed to fetch messes")
			return
		}
		for _, m := range found {
			if matchesQuery(m, query) {
				messes = append(messes, m)
			}
		}
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Title":   "Dashboard",
		"Tab":     tab,
		"Query":   query,
		"Messes":  messes,
		"Message": c.Query("msg"),
		"IsAdmin": true,
	})
}

func (s *site) setStatus(c *gin.Context) {
	tab := c.PostForm("tab")
	status, err := models.ParseStatus(c.PostForm("status"))
	if err != nil || !models.IsTransitionTarget(status) {
		c.Redirect(http.StatusSeeOther, dashboardURL(tab, "Invalid status"))
		return
	}

	mess, err := s.Messes.UpdateMessStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		_ = c.Error(err)
		s.renderError(c, http.StatusInternalServerError, "Failed to update status")
		return
	}
	if mess == nil {
		c.Redirect(http.StatusSeeOther, dashboardURL(tab, "Mess not found"))
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardURL(tab, mess.Name+" is now "+string(mess.Status)))
}

func (s *site) deleteMess(c *gin.Context) {
	tab := c.PostForm("tab")
	deleted, err := s.Messes.DeleteMess(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		s.renderError(c, http.StatusInternalServerError, "Failed to delete mess")
		return
	}
	if !deleted {
		c.Redirect(http.StatusSeeOther, dashboardURL(tab, "Mess not found"))
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardURL(tab, "Mess deleted"))
}

func (s *site) editForm(c *gin.Context) {
	mess, err := s.Messes.GetMessByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		s.renderError(c, http.StatusInternalServerError, "Failed to fetch mess")
		return
	}
	if mess == nil {
		s.renderError(c, http.StatusNotFound, "Mess not found")
		return
	}
	c.HTML(http.StatusOK, "edit.html", gin.H{
		"Title":   "Edit " + mess.Name,
		"Mess":    mess,
		"IsAdmin": true,
	})
}

func (s *site) update(c *gin.Context) {
	id := c.Param("id")
	input, err := handlers.BindMessInput(c, s.Logger)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, "The form could not be read")
		return
	}
	// An unticked checkbox is absent from the form.
	if input.IsMenuAvailable == nil {
		off := false
		input.IsMenuAvailable = &off
	}

	updated, err := s.Messes.UpdateMess(c.Request.Context(), id, input)
	if errors.Is(err, models.ErrValidation) {
		s.renderError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		_ = c.Error(err)
		s.renderError(c, http.StatusInternalServerError, "Failed to update mess")
		return
	}
	if updated == nil {
		s.renderError(c, http.StatusNotFound, "Mess not found")
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardURL(tabAll, updated.Name+" updated"))
}
