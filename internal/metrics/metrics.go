package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shiftcal",
			Name:      "api_requests_total",
			Help:      "Count of shift store API requests by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	shiftMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shiftcal",
			Name:      "shift_mutations_total",
			Help:      "Count of shift create/update/delete actions completed.",
		},
		[]string{"action"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(apiRequests, shiftMutations)
	})
}

func IncAPIRequest(operation, outcome string) {
	apiRequests.WithLabelValues(operation, outcome).Inc()
}

func IncShiftMutation(action string) {
	shiftMutations.WithLabelValues(action).Inc()
}
