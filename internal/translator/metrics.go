package translator

import "github.com/prometheus/client_golang/prometheus"

var (
	// problemResponses counts problem bodies written, by kind and status.
	problemResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "problem_responses_total",
			Help: "Total number of errors translated into problem responses.",
		},
		[]string{"kind", "status"},
	)

	// problemReraised counts errors handed back to the caller, by kind.
	// Unknown errors and errors on committed responses land here.
	problemReraised = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "problem_reraised_total",
			Help: "Total number of errors re-raised instead of translated.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(problemResponses, problemReraised)
}
