// Package web serves the server-rendered pages: public browsing, submission
// and review forms, and the moderation dashboard.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/findmymess/internal/models"
	"github.com/joshua-takyi/findmymess/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

const adminCookie = "findmymess_admin"

type Deps struct {
	Messes   *services.MessService
	Reviews  *services.ReviewService
	Logger   *slog.Logger
	AdminKey string
	// Upload stores a multipart logo before the handler runs.
	Upload gin.HandlerFunc
	// Limiter throttles public submissions.
	Limiter      gin.HandlerFunc
	SecureCookie bool
}

type site struct {
	Deps
}

var funcs = template.FuncMap{
	"initials": initials,
	"lower":    strings.ToLower,
	"stars": func(n int) string {
		if n < 0 {
			n = 0
		}
		return strings.Repeat("★", n) + strings.Repeat("☆", max(0, 5-n))
	},
	"statusClass": func(s models.MessStatus) string {
		return strings.ToLower(string(s))
	},
	"menuJSON": func(menu *models.WeeklyMenu) string {
		if menu == nil {
			return ""
		}
		b, err := json.MarshalIndent(menu, "", "  ")
		if err != nil {
			return ""
		}
		return string(b)
	},
}

func parseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// Register mounts the pages on r and installs their templates.
func Register(r *gin.Engine, deps Deps) {
	s := &site{Deps: deps}
	if s.Upload == nil {
		s.Upload = passThrough
	}
	if s.Limiter == nil {
		s.Limiter = passThrough
	}

	r.SetHTMLTemplate(parseTemplates())

	r.GET("/", s.home)
	r.GET("/mess/:id", s.messDetail)
	r.POST("/mess/:id/reviews", s.createReview)
	r.GET("/submit", s.submitForm)
	r.POST("/submit", s.Limiter, s.Upload, s.submit)

	r.GET("/admin/login", s.loginForm)
	r.POST("/admin/login", s.login)
	r.POST("/admin/logout", s.logout)

	admin := r.Group("/admin")
	admin.Use(s.requireAdmin)
	{
		admin.GET("", s.dashboard)
		admin.POST("/messes/:id/status", s.setStatus)
		admin.POST("/messes/:id/delete", s.deleteMess)
		admin.GET("/messes/:id/edit", s.editForm)
		admin.POST("/messes/:id/edit", s.Upload, s.update)
	}
}

func passThrough(c *gin.Context) { c.Next() }

func initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(word))[0])
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

func averageRating(reviews []*models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews))
}

// matchesQuery reports whether q occurs in the mess name or area, ignoring case.
func matchesQuery(m *models.Mess, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Name), q) || strings.Contains(strings.ToLower(m.Area), q)
}
