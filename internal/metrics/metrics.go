package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счетчики жизненного цикла заявок и рассылок.
// Отдаются через /metrics observability-сервера.
var (
	PurchasesSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jembox_purchases_submitted_total",
		Help: "Number of purchase requests submitted through the storefront",
	})

	PurchasesApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jembox_purchases_approved_total",
		Help: "Number of purchases approved by operators",
	})

	PurchasesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jembox_purchases_rejected_total",
		Help: "Number of purchases rejected by operators",
	})

	BroadcastSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jembox_broadcast_sent_total",
		Help: "Number of broadcast messages delivered",
	})

	BroadcastFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jembox_broadcast_failed_total",
		Help: "Number of broadcast messages that failed to deliver",
	})
)
