// Package site_api собирает HTTP-поверхность сайта: страницы, формы,
// поиск отгрузок и JSON API.
package site_api

import (
	"context"
	_ "embed"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/BearBump/FreightSite/internal/cache"
	"github.com/BearBump/FreightSite/internal/forms"
	"github.com/BearBump/FreightSite/internal/metrics"
	"github.com/BearBump/FreightSite/internal/models"
	"github.com/BearBump/FreightSite/internal/services/submissions"
	"github.com/BearBump/FreightSite/internal/services/tracking"
	"github.com/BearBump/FreightSite/internal/web"
)

//go:embed swagger.json
var swaggerJSON []byte

type TrackingService interface {
	Lookup(ctx context.Context, raw string) (*tracking.View, error)
}

type SubmissionService interface {
	Submit(ctx context.Context, v submissions.Variant, in submissions.Input) (*models.Submission, error)
}

// ReadyCheck проверяет одну зависимость для /readyz.
type ReadyCheck func(ctx context.Context) error

type Options struct {
	// SwaggerPath переопределяет встроенный swagger.json файлом с диска.
	SwaggerPath    string
	RequestTimeout time.Duration

	// Limiter == nil или SubmitLimit <= 0 отключают лимит на отправку форм.
	Limiter     cache.Limiter
	SubmitLimit int64

	ReadyChecks map[string]ReadyCheck
}

type SiteAPI struct {
	tracking TrackingService
	subs     SubmissionService
	forms    *forms.Registry
	pages    *web.Renderer
	opts     Options
	now      func() time.Time
}

func New(tr TrackingService, subs SubmissionService, reg *forms.Registry, pages *web.Renderer, opts Options) *SiteAPI {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	return &SiteAPI{
		tracking: tr,
		subs:     subs,
		forms:    reg,
		pages:    pages,
		opts:     opts,
		now:      time.Now,
	}
}

func (a *SiteAPI) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metrics.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.healthz)
	r.Get("/readyz", a.readyz)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger.json", a.swagger)
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger.json"),
	))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(a.opts.RequestTimeout))
		r.Use(a.session)

		r.Get("/", a.page(web.PageHome))
		r.Get("/PrivacyNotice", a.page(web.PagePrivacy))
		r.Get("/TermsOfUse", a.page(web.PageTerms))
		r.Get("/legal-terms", a.page(web.PageLegal))
		r.Get("/become-a-partner", a.page(web.PageBecomePartner))
		r.Get("/contact-us", a.page(web.PageContact))

		r.Get("/track-shipment", a.trackPage)
		r.Post("/track-shipment", a.trackForm)

		r.Group(func(r chi.Router) {
			r.Use(a.rateLimit)
			r.Post("/contact-us", a.formPost(submissions.ContactPage, "/contact-us"))
			r.Post("/become-a-partner/consultation", a.formPost(submissions.Consultation, "/become-a-partner#consultation"))
			r.Post("/become-a-partner/application", a.formPost(submissions.PartnerApplication, "/become-a-partner#application"))
			r.Post("/contact", a.formPost(submissions.FooterContact, ""))
		})

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/shipments/{trackingNumber}", a.getShipment)
			r.With(a.rateLimit).Post("/submissions/{kind}", a.createSubmission)
		})

		r.NotFound(a.notFound)
	})

	return r
}

func (a *SiteAPI) swagger(w http.ResponseWriter, r *http.Request) {
	if a.opts.SwaggerPath != "" {
		http.ServeFile(w, r, a.opts.SwaggerPath)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(swaggerJSON)
}
