package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal cuenta requests HTTP por método y status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plantos_http_requests_total",
		Help: "HTTP requests atendidos, por método y status.",
	}, []string{"method", "status"})

	// PlantMutations cuenta altas/ediciones/bajas exitosas.
	PlantMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plantos_plant_mutations_total",
		Help: "Mutaciones exitosas sobre plantas, por operación.",
	}, []string{"op"})

	// ListRefreshes cuenta los refrescos advisory del listado tras mutar.
	ListRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plantos_list_refreshes_total",
		Help: "Refrescos best-effort de la vista de listado tras una mutación.",
	})
)

// Handler expone /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware cuenta cada request con su status final.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
