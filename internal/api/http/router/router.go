package router

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/studentinfo-server/internal/api/http/handler"
	"github.com/dtroode/studentinfo-server/internal/api/http/middleware"
	"github.com/dtroode/studentinfo-server/internal/logger"
	"github.com/dtroode/studentinfo-server/internal/metrics"
	"github.com/dtroode/studentinfo-server/internal/model"
)

// AuthService is everything the router needs from the auth service.
type AuthService interface {
	handler.AuthService
	middleware.Authenticator
}

// Router wires HTTP handlers and middleware.
type Router struct {
	authService    AuthService
	studentService handler.StudentService
	contextManager model.ContextManager
	metrics        *metrics.Metrics
	gatherer       prometheus.Gatherer
	requestTimeout time.Duration
	logger         *logger.Logger
}

// New creates new HTTP Router instance. gatherer may be nil to disable /metrics.
func New(
	authService AuthService,
	studentService handler.StudentService,
	contextManager model.ContextManager,
	metrics *metrics.Metrics,
	gatherer prometheus.Gatherer,
	requestTimeout time.Duration,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		studentService: studentService,
		contextManager: contextManager,
		metrics:        metrics,
		gatherer:       gatherer,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Register builds the handler tree.
func (r *Router) Register() http.Handler {
	mux := http.NewServeMux()

	r.registerAuthRoutes(mux)
	r.registerStudentRoutes(mux)

	mux.HandleFunc("GET /{$}", handler.Root)
	if r.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))
	}
	// Method-less patterns above answer 405 for known paths; everything else is 404.
	mux.HandleFunc("/", handler.NotFound)

	logging := middleware.NewLogging(r.logger, r.metrics)

	return middleware.RequestID(
		middleware.Timeout(r.requestTimeout)(
			logging.Handle(mux),
		),
	)
}

func (r *Router) registerAuthRoutes(mux *http.ServeMux) {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)

	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/token", authHandler.Token)
	mux.Handle("GET /auth/me", authenticate.Handle(http.HandlerFunc(authHandler.Me)))

	mux.HandleFunc("/auth/register", handler.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc("/auth/token", handler.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc("/auth/me", handler.MethodNotAllowed(http.MethodGet))
}

func (r *Router) registerStudentRoutes(mux *http.ServeMux) {
	studentHandler := handler.NewStudent(r.studentService, r.logger)
	protect := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger).Handle

	mux.Handle("POST /students", protect(http.HandlerFunc(studentHandler.Create)))
	mux.Handle("POST /students/{$}", protect(http.HandlerFunc(studentHandler.Create)))
	mux.Handle("GET /students/{enrollment_number}", protect(http.HandlerFunc(studentHandler.Get)))
	mux.Handle("PUT /students/{enrollment_number}", protect(http.HandlerFunc(studentHandler.Update)))
	mux.Handle("DELETE /students/{enrollment_number}", protect(http.HandlerFunc(studentHandler.Delete)))

	mux.HandleFunc("/students", handler.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc("/students/{$}", handler.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc("/students/{enrollment_number}",
		handler.MethodNotAllowed(http.MethodGet, http.MethodPut, http.MethodDelete))
}
