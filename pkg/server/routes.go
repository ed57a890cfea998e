package server

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/riandyrn/otelchi"

	"github.com/nerview/nerview/internal"
	"github.com/nerview/nerview/pkg/analysis"
	"github.com/nerview/nerview/pkg/article"
	"github.com/nerview/nerview/pkg/auth"
	"github.com/nerview/nerview/pkg/models"
	"github.com/nerview/nerview/pkg/server/apihandlers"
	"github.com/nerview/nerview/pkg/web"
)

var log = internal.GetLogger()

const (
	ReadHeaderTimeout = 5 * time.Second
	RouterName        = "nerview"
)

// Create creates a new HTTP server with the given app state
func Create(appState *models.AppState) (*http.Server, error) {
	router, err := setupRouter(appState)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr: fmt.Sprintf(
			"%s:%d",
			appState.Config.Server.Host,
			appState.Config.Server.Port,
		),
		Handler:           router,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}, nil
}

// @title						nerview API
// @version					0.x
// @license.name				Apache 2.0
// @license.url				http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath					/api/v1
// @schemes					http https
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and JWT token.
func setupRouter(appState *models.AppState) (*chi.Mux, error) {
	service := analysis.NewService(appState)

	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.CleanPath)
	router.Use(SendVersion)
	router.Use(middleware.Heartbeat("/healthz"))
	if appState.Config.Server.MaxRequestSize > 0 {
		router.Use(middleware.RequestSize(appState.Config.Server.MaxRequestSize))
	}
	router.Use(otelchi.Middleware(RouterName, otelchi.WithChiRoutes(router)))

	var apiAuth []func(http.Handler) http.Handler
	if appState.Config.Auth.Required {
		log.Info("JWT authentication required")
		verifier, err := auth.JWTVerifier(appState.Config)
		if err != nil {
			return nil, err
		}
		apiAuth = append(apiAuth, verifier, jwtauth.Authenticator)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowOriginFunc: func(_ *http.Request, _ string) bool { return true },
			AllowedMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:  []string{"Authorization", "Content-Type"},
		}))
		r.Get("/health", apihandlers.GetHealthHandler(service))

		r.Group(func(r chi.Router) {
			r.Use(apiAuth...)
			r.Post("/analyze", apihandlers.AnalyzeHandler(service))
			r.Get("/analyses/{analysisId}", apihandlers.GetAnalysisHandler(service))
		})
	})

	if appState.Config.Server.WebEnabled {
		if err := setupWebRoutes(router, appState, service); err != nil {
			return nil, err
		}
	}

	return router, nil
}

func setupWebRoutes(router chi.Router, appState *models.AppState, service *analysis.Service) error {
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("failed to load static assets: %w", err)
	}

	fetcher := article.NewFetcher(article.NewHTTPClient(appState.Config.NLP.Timeout))
	handlers := web.NewHandlers(service, fetcher, appState.Config.Analysis.MaxTextLength)

	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	router.Get("/", handlers.IndexHandler)
	router.Post("/analyze", handlers.AnalyzeHandler)
	router.Get("/analyses/{analysisId}", handlers.AnalysisHandler)
	router.Post("/fetch", handlers.FetchHandler)
	router.NotFound(web.NotFoundHandler())

	return nil
}
