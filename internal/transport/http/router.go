package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/ceidigital/backoffice/internal/application/auth"
	"github.com/ceidigital/backoffice/internal/application/company"
	"github.com/ceidigital/backoffice/internal/application/notification"
	"github.com/ceidigital/backoffice/internal/application/product"
	"github.com/ceidigital/backoffice/internal/application/registration"
	"github.com/ceidigital/backoffice/internal/application/role"
	"github.com/ceidigital/backoffice/internal/application/user"
	"github.com/ceidigital/backoffice/internal/config"
	"github.com/ceidigital/backoffice/internal/domain"
	jwtinfra "github.com/ceidigital/backoffice/internal/infrastructure/jwt"
	s3infra "github.com/ceidigital/backoffice/internal/infrastructure/s3"
	"github.com/ceidigital/backoffice/internal/transport/http/handler"
	appmiddleware "github.com/ceidigital/backoffice/internal/transport/http/middleware"
	"github.com/ceidigital/backoffice/internal/verification"
)

// Deps holds the infrastructure the router wires the services from.
type Deps struct {
	Pool      *pgxpool.Pool
	Users     UserRepository
	Roles     RoleRepository
	Companies CompanyRepository
	Products  ProductRepository
	Images    *s3infra.ImageStore
	Codes     *verification.Store
	Signer    *jwtinfra.Signer
	Notifier  *notification.Service
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// The gate never rejects; route guards do.
	r.Use(appmiddleware.Authenticate(deps.Users, deps.Signer))

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(deps.Users, deps.Signer)
	regSvc := registration.NewService(registration.Deps{
		Codes:     deps.Codes,
		Users:     deps.Users,
		Companies: deps.Companies,
		Notifier:  deps.Notifier,
		CodeTTL:   time.Duration(cfg.VerificationTTLMinutes) * time.Minute,
	})
	userSvc := user.NewService(deps.Users)
	companySvc := company.NewService(deps.Companies)
	productSvc := product.NewService(deps.Products, deps.Images)
	roleSvc := role.NewService(deps.Roles)

	healthH := handler.NewHealthHandler(deps.Pool)
	authH := handler.NewAuthHandler(authSvc)
	registerH := handler.NewRegisterHandler(regSvc)
	userH := handler.NewUserHandler(userSvc)
	companyH := handler.NewCompanyHandler(companySvc)
	productH := handler.NewProductHandler(productSvc)
	roleH := handler.NewRoleHandler(roleSvc)
	debugH := handler.NewDebugNotificationHandler(deps.Notifier)

	adminOnly := appmiddleware.RequireAuthority(
		domain.RolePrefix+domain.RoleMaster,
		domain.RolePrefix+domain.RoleAdminMain,
	)

	// ── Public ───────────────────────────────────────────────────────────
	r.Get("/healthz", healthH.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.With(sensitiveRL.Limit).Post("/login", authH.Login)
		r.Route("/register", func(r chi.Router) {
			r.With(sensitiveRL.Limit).Post("/request-token", registerH.RequestCode)
			r.With(sensitiveRL.Limit).Post("/confirm", registerH.Confirm)
		})
	})

	// ── Authenticated back office ────────────────────────────────────────
	r.Route("/usuarios", func(r chi.Router) {
		r.Use(appmiddleware.RequireAuthenticated)
		r.Get("/{id}", userH.Get)
		r.Put("/{id}", userH.Update)
		r.With(adminOnly).Get("/", userH.List)
		r.With(adminOnly).Post("/", userH.Create)
	})

	r.Route("/empresas", func(r chi.Router) {
		r.Use(appmiddleware.RequireAuthenticated)
		r.Get("/", companyH.List)
		r.Get("/{id}", companyH.Get)
		r.Get("/doc/{docType}/{docNumber}", companyH.GetByDoc)
		r.With(appmiddleware.RequireAuthority(
			"CADASTRAR_EMPRESA",
			domain.RolePrefix+domain.RoleMaster,
		)).Post("/", companyH.Create)
		r.With(adminOnly).Put("/{id}", companyH.Update)
	})

	r.Route("/produtos", func(r chi.Router) {
		r.Use(appmiddleware.RequireAuthenticated)
		r.Get("/", productH.List)
		r.Get("/{id}", productH.Get)
		r.Post("/", productH.Create)
		r.Put("/{id}", productH.Update)
		r.Delete("/{id}", productH.Delete)
		r.Post("/{id}/imagem", productH.UploadImage)
		r.Post("/{id}/imagem/base64", productH.UploadImageBase64)
		r.Get("/{id}/imagem", productH.DownloadImage)
	})

	r.Route("/perfis", func(r chi.Router) {
		r.Use(appmiddleware.RequireAuthenticated)
		r.Get("/", roleH.List)
		r.Get("/{name}", roleH.Get)
		r.With(adminOnly).Post("/{name}/permissoes", roleH.Grant)
	})
	r.With(appmiddleware.RequireAuthenticated).Get("/permissoes", roleH.ListPermissions)

	// ── Notification introspection ───────────────────────────────────────
	r.Route("/__debug/notifications", func(r chi.Router) {
		r.Use(adminOnly)
		r.Get("/sms", debugH.SMSHistory)
		r.Delete("/sms", debugH.ClearSMSHistory)
		r.Get("/whatsapp", debugH.WhatsappHistory)
		r.Delete("/whatsapp", debugH.ClearWhatsappHistory)
		r.Get("/config", debugH.Config)
		r.Post("/send", debugH.Send)
	})

	return r
}
