package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/qurehealth/qure/internal/auth/domain"
	"github.com/qurehealth/qure/internal/auth/service"
	"github.com/qurehealth/qure/internal/auth/store"
	"github.com/qurehealth/qure/pkg/httpx"
	"github.com/qurehealth/qure/pkg/jwtx"
	"github.com/qurehealth/qure/pkg/slogx"

	_ "github.com/qurehealth/qure/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	signer       jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	errors       Errors
	metrics      *httpx.Metrics

	store                store.Store
	RegistrationService  *service.RegistrationService
	SessionService       *service.SessionService
	AccessService        *service.AccessService
	PasswordResetService *service.PasswordResetService
}

// NewRouter creates a router. exposeErrors adds the underlying error text
// to 500 responses and should only be set in development. metrics may be
// nil.
func NewRouter(
	signer jwtx.Signer,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	metrics *httpx.Metrics,
	exposeErrors bool,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		errors:       Errors{Expose: exposeErrors},
		metrics:      metrics,
	}

	// Set default middleware chain. Metrics must stay innermost so the
	// matched route pattern is visible to it.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(exposeErrors),
	}
	if metrics != nil {
		r.middlewares = append(r.middlewares, metrics.Middleware())
	}

	return r
}

// ApplyRoutes registers every route. It must be called once before the
// router serves requests.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPatient()
	r.registerStaff()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.Handle("/", NotFoundHandler())

	r.handler = httpx.Chain(r.Mux, r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Qure API
//	@version		0.1.0
//	@description	Authentication and access control for the Qure patient and hospital staff applications.
//	@description
//	@description				Session tokens are HS256 JWTs valid for 24 hours. Send them as "Authorization: Bearer {token}".
//
//	@contact.name				Qure Health
//	@contact.url				https://github.com/qurehealth/qure
//
//	@host						localhost:5000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Router) authenticate() httpx.Middleware {
	return Authenticate(r.SessionService, r.errors)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /api/auth/register", &RegisterHandler{
		RegistrationService: r.RegistrationService,
		Errors:              r.errors,
	})
	r.Mux.Handle("POST /api/auth/login", &LoginHandler{
		SessionService: r.SessionService,
		Errors:         r.errors,
	})
	r.Mux.Handle("POST /api/auth/forgot-password", &ForgotPasswordHandler{
		PasswordResetService: r.PasswordResetService,
		Errors:               r.errors,
	})
	r.Mux.Handle("POST /api/auth/reset-password", &ResetPasswordHandler{
		PasswordResetService: r.PasswordResetService,
		Errors:               r.errors,
	})

	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(&UserHandler{Message: "User authenticated", Errors: r.errors},
			r.authenticate(),
		),
	)

	r.Mux.Handle("GET /api/session",
		httpx.Chain(SessionHandler(),
			OptionalAuthenticate(r.SessionService),
		),
	)
}

func (r *Router) registerPatient() {
	r.Mux.Handle("GET /api/patient/dashboard",
		httpx.Chain(PatientDashboard(r.errors),
			r.authenticate(),
			RequireRole(domain.RolePatient, r.errors),
		),
	)
}

func (r *Router) registerStaff() {
	// Verification itself must not require verification.
	r.Mux.Handle("POST /api/staff/verify-access",
		httpx.Chain(&VerifyAccessHandler{AccessService: r.AccessService, Errors: r.errors},
			r.authenticate(),
			RequireRole(domain.RoleStaff, r.errors),
		),
	)

	r.Mux.Handle("GET /api/staff/dashboard",
		httpx.Chain(StaffDashboard(r.errors),
			r.authenticate(),
			RequireRole(domain.RoleStaff, r.errors),
			RequireStaffVerified(r.errors),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /health", HealthHandler())
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer))

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
