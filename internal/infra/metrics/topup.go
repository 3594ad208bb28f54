package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		topupOrdersTotal,
		topupPollTicksTotal,
		topupPollSuppressedTotal,
		topupFlowTerminalTotal,
	)
}

var topupOrdersTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "topup_orders_total",
		Help: "Top-up order creations, labeled by outcome.",
	},
	[]string{"outcome"}, // 'created', 'failed'
)

var topupPollTicksTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "topup_poll_ticks_total",
		Help: "Payment status queries issued, labeled by trigger and result.",
	},
	[]string{"trigger", "result"}, // trigger: 'scheduled'|'manual'; result: 'pending'|'paid'|'failed'|'error'
)

var topupPollSuppressedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "topup_poll_suppressed_total",
		Help: "Poll ticks dropped because a status query was already in flight.",
	},
)

var topupFlowTerminalTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "topup_flow_terminal_total",
		Help: "Top-up flows reaching a terminal state.",
	},
	[]string{"state"}, // 'succeeded', 'abandoned'
)

func IncTopUpOrder(outcome string)       { topupOrdersTotal.WithLabelValues(norm(outcome)).Inc() }
func IncPollTick(trigger, result string) { topupPollTicksTotal.WithLabelValues(norm(trigger), norm(result)).Inc() }
func IncPollSuppressed()                 { topupPollSuppressedTotal.Inc() }
func IncFlowTerminal(state string)       { topupFlowTerminalTotal.WithLabelValues(norm(state)).Inc() }
