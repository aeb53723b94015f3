// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsValidated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_turns_validated_total",
			Help: "Total number of validation passes run over candidate orders",
		},
	)

	CorrectionsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_corrections_recorded_total",
			Help: "Total number of auto-corrections applied during validation",
		},
	)

	ClarificationsRequested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_clarifications_requested_total",
			Help: "Total number of clarification questions queued for the customer",
		},
	)

	UpsellPromptsOffered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_upsell_prompts_offered_total",
			Help: "Total number of upsell prompts emitted, by kind",
		},
		[]string{"kind"},
	)

	DealsBundled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_deals_bundled_total",
			Help: "Total number of paired-deal lines created by bundling, by deal",
		},
		[]string{"deal"},
	)

	OrdersCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_sessions_completed_total",
			Help: "Total number of ordering sessions finished with a priced summary",
		},
	)
)
