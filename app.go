// @title           caKnak Email Security API
// @version         1.0
// @description     Checks email addresses against a breach registry for the caKnak digital-safety site.

// @contact.name   caKnak

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/caknak/email_check_api/config"
	_ "github.com/caknak/email_check_api/docs"
	"github.com/caknak/email_check_api/handlers"
	"github.com/caknak/email_check_api/pkg/breach"
	"github.com/caknak/email_check_api/pkg/handoff"
	"github.com/caknak/email_check_api/pkg/utils"
)

const requestIDHeader = "X-Request-ID"

// App encapsulates all the components of the application
type App struct {
	Router             *gin.Engine
	EmailCheckHandlers *handlers.EmailCheckHandlers
	HealthHandler      *handlers.HealthHandler
	Handoffs           *handoff.Store
	Config             config.Config
}

// NewApp creates and initializes a new application instance
func NewApp(cfg config.Config) (*App, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if cfg.APIKey == "" {
		log.Println("WARN: no breach registry API key configured; email checks will fail with a configuration error.")
	}

	handoffs := handoff.NewStoreWithLimit(cfg.HandoffTTL, cfg.HandoffMax)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), requestID())
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Printf("WARN: could not set trusted proxies: %v", err)
	}

	app := &App{
		Router:             router,
		EmailCheckHandlers: handlers.NewEmailCheckHandlers(newChecker(cfg), handoffs),
		HealthHandler:      handlers.NewHealthHandler(cfg.APIKey != "", handoffs),
		Handoffs:           handoffs,
		Config:             cfg,
	}

	app.setupRoutes()
	return app, nil
}

func newChecker(cfg config.Config) *breach.Checker {
	return breach.NewChecker(breach.Options{
		BaseURL:         cfg.UpstreamBaseURL,
		APIKey:          cfg.APIKey,
		UserAgent:       cfg.UserAgent,
		SimulationDelay: cfg.SimulationDelay,
		Fetcher:         utils.NewClient(cfg.UpstreamTimeout),
	})
}

// requestID tags every request with an ID, reusing a well-formed inbound one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(handlers.RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// setupRoutes defines all the application routes
func (app *App) setupRoutes() {
	app.Router.GET("/api/v1/health", app.HealthHandler.HealthCheckHandler)

	// Path the site has always posted to.
	app.Router.POST("/api/check-email", app.EmailCheckHandlers.CheckEmailHandler)

	emailV1 := app.Router.Group("/api/v1/email")
	{
		emailV1.POST("/check", app.EmailCheckHandlers.CheckEmailHandler)
		emailV1.GET("/results/:token", app.EmailCheckHandlers.HandoffResultHandler)
	}

	app.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
}

// Server wraps the router in an http.Server listening on addr.
func (app *App) Server(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
