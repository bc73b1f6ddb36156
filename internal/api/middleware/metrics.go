package middleware

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	},
	[]string{"method", "route", "status"},
)

// Metrics counts every request against the given mux. The route label
// uses the registered mux pattern so path parameters do not explode the
// label cardinality; unmatched requests are labelled with the raw path.
func Metrics(mux *http.ServeMux) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{
				ResponseWriter: w,
				status:         http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			_, route := mux.Handler(r)
			if route == "" {
				route = r.URL.Path
			}
			requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		})
	}
}
