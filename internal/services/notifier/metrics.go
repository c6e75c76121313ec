package notifier

import "github.com/prometheus/client_golang/prometheus"

// Metrics — счётчики уведомителя.
type Metrics struct {
	Published *prometheus.CounterVec
	Failed    *prometheus.CounterVec
	Scans     prometheus.Counter
}

// NewMetrics создаёт счётчики и регистрирует их в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rental_tracker",
			Subsystem: "notifier",
			Name:      "published_total",
			Help:      "Number of expiry events published, by routing key.",
		}, []string{"routing_key"}),
		Failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rental_tracker",
			Subsystem: "notifier",
			Name:      "failed_total",
			Help:      "Number of expiry events that could not be published, by routing key.",
		}, []string{"routing_key"}),
		Scans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rental_tracker",
			Subsystem: "notifier",
			Name:      "scans_total",
			Help:      "Number of completed scans.",
		}),
	}
	reg.MustRegister(m.Published, m.Failed, m.Scans)
	return m
}
