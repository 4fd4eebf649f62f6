package ui

import (
	"embed"
	"html/template"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"coatlas/internal/colorscale"
	"coatlas/internal/dataset"
	"coatlas/internal/errors"
)

//go:embed templates/* content/*
var embeddedFiles embed.FS

// Server is the dashboard web server. It owns the dataset store, the shared
// ramp configuration, and the parsed templates. All derived structures are
// recomputed per request; the store's one-shot load is the only cache besides
// the rendered about panel.
type Server struct {
	router *gin.Engine
	store  *dataset.Store
	ramp   colorscale.RampSpec

	templates *template.Template

	infoOnce sync.Once
	infoHTML template.HTML
	infoErr  error
}

// NewServer creates the dashboard server and registers all routes.
func NewServer(store *dataset.Store, ramp colorscale.RampSpec) (*Server, error) {
	if !colorscale.KnownRamp(ramp.Name) {
		return nil, errors.ConfigInvalid("COLOR_RAMP " + ramp.Name + " is not a registered ramp")
	}

	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse embedded templates")
	}

	s := &Server{
		router:    gin.New(),
		store:     store,
		ramp:      ramp,
		templates: templates,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.GET("/", s.handleDashboard)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/years", s.handleYears)
	api.GET("/states", s.handleStates)
	api.GET("/map/:year", s.handleMap)
	api.GET("/summary/:year", s.handleSummary)
	api.GET("/series/:state", s.handleSeries)
	api.GET("/info", s.handleInfo)
	api.GET("/export/:year", s.handleExport)
}

// Router exposes the gin engine; main mounts it on its http.Server and tests
// drive it directly.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// infoPanel renders content/about.md once and caches the HTML. The panel is
// static text; re-rendering per request buys nothing.
func (s *Server) infoPanel() (template.HTML, error) {
	s.infoOnce.Do(func() {
		source, err := embeddedFiles.ReadFile("content/about.md")
		if err != nil {
			s.infoErr = errors.Wrap(err, "about panel content missing from embedded files")
			return
		}
		p := parser.NewWithExtensions(parser.CommonExtensions)
		renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
		s.infoHTML = template.HTML(markdown.ToHTML(source, p, renderer))
	})
	return s.infoHTML, s.infoErr
}
