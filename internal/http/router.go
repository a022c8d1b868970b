package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/MrJamesThe3rd/fixnet/internal/auth"
	"github.com/MrJamesThe3rd/fixnet/internal/http/diagnostic"
	"github.com/MrJamesThe3rd/fixnet/internal/http/pricing"
	"github.com/MrJamesThe3rd/fixnet/internal/http/repair"
	"github.com/MrJamesThe3rd/fixnet/internal/http/request"
)

const serviceName = "fixnet-api"

type Options struct {
	CORSOrigins []string
	// JWTSecret guards the operator routes. Empty leaves them open.
	JWTSecret string
	Metrics   http.Handler
	// TracerProvider receives a span per request. Nil disables tracing.
	TracerProvider trace.TracerProvider
}

func New(
	diagnosticV1 *diagnostic.Handler,
	pricingV1 *pricing.Handler,
	repairV1 *repair.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/", root)

		r.Route("/diagnostic", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			diagnosticV1.Routes(r)
		})

		r.Route("/price-estimate", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			pricingV1.Routes(r)
		})

		r.Route("/repair-request", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			repairV1.SubmitRoutes(r)
		})

		r.Route("/repair-requests", func(r chi.Router) {
			r.Use(auth.Middleware(opts.JWTSecret))
			repairV1.Routes(r)
		})
	})

	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	if opts.TracerProvider == nil {
		return router
	}

	return otelhttp.NewHandler(router, serviceName, otelhttp.WithTracerProvider(opts.TracerProvider))
}

func root(w http.ResponseWriter, _ *http.Request) {
	request.WriteJSON(w, http.StatusOK, map[string]string{"message": "FixNet API v1.0"})
}
