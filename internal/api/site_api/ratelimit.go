package site_api

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BearBump/FreightSite/internal/cache"
	"github.com/BearBump/FreightSite/internal/metrics"
)

const rateLimitMessage = "Too many submissions. Please try again later."

// rateLimit ограничивает число отправок форм с одного адреса за минуту.
// Если redis недоступен, запрос пропускается.
func (a *SiteAPI) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.opts.Limiter == nil || a.opts.SubmitLimit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		d, err := a.opts.Limiter.Allow(r.Context(), cache.SubmitLimitKey(clientIP(r)), a.opts.SubmitLimit, time.Minute)
		if err != nil {
			slog.Warn("rate limiter unavailable", "err", err)
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(a.opts.SubmitLimit, 10))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(d.Remaining, 10))
		if d.Allowed {
			next.ServeHTTP(w, r)
			return
		}

		route := metrics.RoutePattern(r)
		metrics.RateLimitExceededTotal.WithLabelValues(r.Method, route).Inc()
		slog.Warn("rate limit exceeded", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)

		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(d.RetryAfter)))
		if strings.HasPrefix(r.URL.Path, "/api/") {
			writeError(w, http.StatusTooManyRequests, rateLimitMessage, "")
			return
		}
		http.Error(w, rateLimitMessage, http.StatusTooManyRequests)
	})
}

// retryAfterSeconds округляет вверх: клиент не должен вернуться до конца окна.
func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	return max(secs, 1)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
