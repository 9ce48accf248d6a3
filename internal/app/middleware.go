package app

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/caley/caley/internal/metrics"
	"github.com/caley/caley/internal/rest"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {
	r.Use(PanicRecovery(deps.Metrics))
	r.Use(LogRequest())
	if deps.Metrics != nil {
		r.Use(RequestMetrics(deps.Metrics))
	}
}

func PanicRecovery(metricsManager *metrics.Manager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			resp := newResponseWriter(w)
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("http: panic serving %s: %v\n%s", req.URL.Path, r, debug.Stack())
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.Inc()
					}
					// a started response cannot change its status anymore
					if !resp.wroteHeader {
						rest.WriteError(resp, http.StatusInternalServerError, "Internal server error", "")
					}
				}
			}()

			next.ServeHTTP(resp, req)
		})
	}
}

func LogRequest() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			begin := time.Now()
			resp := newResponseWriter(w)
			next.ServeHTTP(resp, r)
			log.Debugf("request [%s] path: [%s] status: %d took %s", r.Method, r.URL.Path, resp.statusCode, time.Since(begin))
		})
	}
}

func RequestMetrics(metricsManager *metrics.Manager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			metricsManager.GaugeRequests.Inc()
			defer func(begin time.Time) {
				metricsManager.GaugeRequests.Dec()
				metricsManager.HistogramRequestDuration.WithLabelValues(req.Method).Observe(time.Since(begin).Seconds())
			}(time.Now())

			resp := newResponseWriter(w)
			next.ServeHTTP(resp, req)

			metricsManager.CounterRequests.With(
				prometheus.Labels{
					"method": req.Method,
					"status": strconv.Itoa(resp.statusCode),
				},
			).Inc()
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (r *responseWriter) WriteHeader(statusCode int) {
	if r.wroteHeader {
		return
	}
	r.ResponseWriter.WriteHeader(statusCode)
	r.statusCode = statusCode
	r.wroteHeader = true
}

func (r *responseWriter) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}
