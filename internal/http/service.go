package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	apicontract "github.com/tuanvumaihuynh/bizsuite/api-contract"
	"github.com/tuanvumaihuynh/bizsuite/internal/access"
	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/config"
	"github.com/tuanvumaihuynh/bizsuite/internal/http/metric"
	"github.com/tuanvumaihuynh/bizsuite/internal/http/middleware"
	"github.com/tuanvumaihuynh/bizsuite/internal/http/swagger"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/cache"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
	"github.com/tuanvumaihuynh/bizsuite/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Services are the application services behind the API.
type Services struct {
	Auth      service.AuthService
	User      service.UserService
	Lead      service.LeadService
	Catalog   service.CatalogService
	Product   service.ProductService
	Order     service.OrderService
	POS       service.POSService
	Dashboard service.DashboardService
	Settings  model.Settings
	// Health backs /readyz. Nil reports ready.
	Health db.HealthChecker
}

// Service represents the HTTP service.
type Service struct {
	cfg         config.HTTP
	logger      *slog.Logger
	metrics     *metric.Metrics
	validator   validator.Validator
	rateLimiter cache.RateLimiter

	svcs Services
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	metrics *metric.Metrics,
	v validator.Validator,
	rateLimiter cache.RateLimiter,
	svcs Services,
) *Service {
	return &Service{
		cfg:         cfg,
		logger:      log.With(slog.String("service", "http")),
		metrics:     metrics,
		validator:   v,
		rateLimiter: rateLimiter,
		svcs:        svcs,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	handler, err := s.Handler()
	if err != nil {
		return nil, err
	}
	return s.RunWithServer(ctx, handler)
}

// Handler builds the router with every middleware and route.
func (s *Service) Handler() (http.Handler, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	if err := s.RegisterHandlers(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", srv.Addr, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.ErrorContext(ctx, "http server stopped unexpectedly", slog.Any("error", err))
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		chimiddleware.RealIP,
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(s.cfg.CORSOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) error {
	validateRequest := func(next http.Handler) http.Handler { return next }
	if s.cfg.ValidateRequests {
		mw, err := middleware.RequestValidator(apicontract.GetSpecBytes(), s.logger)
		if err != nil {
			return fmt.Errorf("create request validator: %w", err)
		}
		validateRequest = mw
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/readyz", s.handle(s.ready))

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))

	var (
		authH      = newAuthHandler(s.svcs.Auth, s.validator)
		userH      = newUserHandler(s.svcs.User, s.validator)
		leadH      = newLeadHandler(s.svcs.Lead, s.validator)
		catalogH   = newCatalogHandler(s.svcs.Catalog, s.validator)
		productH   = newProductHandler(s.svcs.Product, s.validator)
		orderH     = newOrderHandler(s.svcs.Order, s.svcs.POS, s.validator)
		posH       = newPOSHandler(s.svcs.POS, s.validator)
		dashboardH = newDashboardHandler(s.svcs.Dashboard, s.svcs.Settings)
		navH       = navigationHandler{}
	)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(s.rateLimiter, s.logger), validateRequest)
			r.Post("/auth/register", s.handle(authH.Register))
			r.Post("/auth/login", s.handle(authH.Login))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.svcs.Auth, s.logger), validateRequest)

			r.Get("/auth/me", s.handle(authH.Me))
			r.Get("/navigation", s.handle(navH.GetNavigation))
			r.Get("/navigation/check", s.handle(navH.CheckRoute))

			r.With(s.authorize(access.ResourceUsers)).Route("/users", func(r chi.Router) {
				r.Get("/", s.handle(userH.ListUsers))
				r.Post("/", s.handle(userH.CreateUser))
				r.Get("/{id}", s.handle(userH.GetUser))
				r.Put("/{id}", s.handle(userH.UpdateUser))
				r.Delete("/{id}", s.handle(userH.DeleteUser))
			})

			r.With(s.authorize(access.ResourceLeads)).Route("/leads", func(r chi.Router) {
				r.Get("/", s.handle(leadH.ListLeads))
				r.Post("/", s.handle(leadH.CreateLead))
				r.Get("/{id}", s.handle(leadH.GetLead))
				r.Put("/{id}", s.handle(leadH.UpdateLead))
				r.Delete("/{id}", s.handle(leadH.DeleteLead))
				r.Get("/{id}/interactions", s.handle(leadH.ListInteractions))
				r.Post("/{id}/interactions", s.handle(leadH.AddInteraction))
			})

			r.With(s.authorize(access.ResourceCatalog)).Route("/categories", func(r chi.Router) {
				r.Get("/", s.handle(catalogH.ListCategories))
				r.Post("/", s.handle(catalogH.CreateCategory))
				r.Get("/{id}", s.handle(catalogH.GetCategory))
				r.Put("/{id}", s.handle(catalogH.UpdateCategory))
				r.Delete("/{id}", s.handle(catalogH.DeleteCategory))
			})

			r.With(s.authorize(access.ResourceCatalog)).Route("/suppliers", func(r chi.Router) {
				r.Get("/", s.handle(catalogH.ListSuppliers))
				r.Post("/", s.handle(catalogH.CreateSupplier))
				r.Get("/{id}", s.handle(catalogH.GetSupplier))
				r.Put("/{id}", s.handle(catalogH.UpdateSupplier))
				r.Delete("/{id}", s.handle(catalogH.DeleteSupplier))
			})

			r.With(s.authorize(access.ResourceCatalog)).Route("/products", func(r chi.Router) {
				r.Get("/", s.handle(productH.ListProducts))
				r.Post("/", s.handle(productH.CreateProduct))
				r.Get("/{id}", s.handle(productH.GetProduct))
				r.Put("/{id}", s.handle(productH.UpdateProduct))
				r.Delete("/{id}", s.handle(productH.DeleteProduct))
			})

			r.With(s.authorize(access.ResourceOrders)).Route("/orders", func(r chi.Router) {
				r.Get("/", s.handle(orderH.ListOrders))
				r.Post("/", s.handle(orderH.CreateOrder))
				r.Get("/{id}", s.handle(orderH.GetOrder))
				r.Put("/{id}", s.handle(orderH.UpdateOrder))
			})

			r.With(s.authorize(access.ResourcePOS)).Route("/pos", func(r chi.Router) {
				r.Get("/cart", s.handle(posH.GetCart))
				r.Delete("/cart", s.handle(posH.ClearCart))
				r.Post("/cart/items", s.handle(posH.AddItem))
				r.Put("/cart/items/{product_id}", s.handle(posH.SetQuantity))
				r.Delete("/cart/items/{product_id}", s.handle(posH.RemoveItem))
				r.Put("/cart/discount", s.handle(posH.SetDiscount))
				r.Post("/checkout", s.handle(posH.Checkout))
			})

			r.With(s.authorize(access.ResourceDashboard)).Get("/dashboard/stats", s.handle(dashboardH.GetStats))

			r.With(s.authorize(access.ResourceReports)).Route("/reports", func(r chi.Router) {
				r.Get("/sales", s.handle(dashboardH.SalesReport))
				r.Get("/inventory", s.handle(dashboardH.InventoryReport))
				r.Get("/leads", s.handle(dashboardH.LeadsReport))
			})

			r.With(s.authorize(access.ResourceSettings)).Get("/settings", s.handle(dashboardH.GetSettings))
		})
	})

	return nil
}

func (s *Service) ready(w http.ResponseWriter, r *http.Request) error {
	if s.svcs.Health != nil {
		if _, err := s.svcs.Health.IsHealthy(r.Context()); err != nil {
			return apperr.DataUnavailableErr.WrapParent(err)
		}
	}
	return writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Service) authorize(resource access.Resource) func(http.Handler) http.Handler {
	return middleware.Authorize(resource, s.logger)
}
