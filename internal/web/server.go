package web

import (
	"embed"
	"html/template"
	"strconv"
	"sync"
	"time"

	"meal-dashboard/internal/config"
	"meal-dashboard/internal/dashboard"
	"meal-dashboard/internal/loader"
	"meal-dashboard/internal/metrics"
	"meal-dashboard/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server serves the dashboard and recipe pages.
type Server struct {
	router    *gin.Engine
	store     *store.Store
	loader    *loader.Loader
	dashboard *dashboard.Controller
	metrics   *metrics.Store
	hub       *Hub
	started   time.Time

	mu              sync.Mutex
	query           string
	recipeID        int64
	recipeRequested bool
}

// NewServer creates a new server instance and registers its routes.
func NewServer(
	cfg *config.Config,
	st *store.Store,
	ld *loader.Loader,
	dash *dashboard.Controller,
	metricsStore *metrics.Store,
) *Server {
	s := &Server{
		router:    gin.Default(),
		store:     st,
		loader:    ld,
		dashboard: dash,
		metrics:   metricsStore,
		hub:       NewHub(cfg.CORSOrigins),
		started:   time.Now(),
	}

	if len(cfg.CORSOrigins) > 0 {
		s.router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowMethods: []string{"GET", "POST"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	s.router.SetHTMLTemplate(template.Must(
		template.New("").Funcs(template.FuncMap{"amount": formatAmount}).ParseFS(templatesFS, "templates/*.html"),
	))

	s.setupRoutes()
	return s
}

// setupRoutes configures the routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleDashboard)
	s.router.POST("/mealplans/fetch", s.handleFetch)
	s.router.POST("/mealplans/:id/grocery", s.handleGroceryButton)
	s.router.POST("/mealplans/:id/details", s.handleDetailsButton)
	s.router.POST("/mealplans/:id/delete", s.handleDeleteButton)
	s.router.GET("/grocery/:id", s.handleGroceryPage)

	s.router.GET("/recipes", s.handleRecipeSearch)
	s.router.GET("/recipes/view", s.handleRecipeByIndex)
	s.router.GET("/recipes/:id", s.handleRecipeByID)

	s.router.GET("/ws", s.hub.handleWebSocket)
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))

	api := s.router.Group("/api")
	{
		api.GET("/dashboard", s.handleDashboardJSON)
		api.GET("/recipes/view", s.handleRecipeJSON)
	}
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
