package ws

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	notificationsDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voin_notifications_delivered_total",
			Help: "Notifications written to at least one live connection",
		},
	)

	notificationsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voin_notifications_dropped_total",
			Help: "Notifications dropped before delivery",
		},
		[]string{"reason"},
	)

	connectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "voin_ws_connected_clients",
			Help: "Open WebSocket connections on this instance",
		},
	)
)

const (
	dropOffline   = "offline"
	dropQueueFull = "queue_full"
	dropSlow      = "slow_client"
)
