package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AppMetrics counts session transitions and record-collection activity.
type AppMetrics struct {
	LoginsTotal         prometheus.Counter
	LogoutsTotal        prometheus.Counter
	RecordsCreatedTotal prometheus.Counter
	AuthDeniedTotal     *prometheus.CounterVec
}

// NewAppMetrics creates and registers application metrics on the given registry.
func NewAppMetrics(reg prometheus.Registerer) *AppMetrics {
	m := &AppMetrics{
		LoginsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "logins_total",
			Help:      "Total number of logins.",
		}),
		LogoutsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "logouts_total",
			Help:      "Total number of logouts.",
		}),
		RecordsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "created_total",
			Help:      "Total number of records created.",
		}),
		AuthDeniedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "auth_denied_total",
			Help:      "Requests rejected because the visitor was not logged in, by response format.",
		}, []string{"format"}),
	}

	reg.MustRegister(m.LoginsTotal, m.LogoutsTotal, m.RecordsCreatedTotal, m.AuthDeniedTotal)
	return m
}

// RegisterStoreGauges exposes the current session and record counts,
// sampled at scrape time.
func RegisterStoreGauges(reg prometheus.Registerer, sessions func() float64, records func() float64) {
	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Number of session ids held in memory.",
		}, sessions),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "stored",
			Help:      "Number of records in the collection.",
		}, records),
	)
}
