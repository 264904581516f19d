package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voin_signups_total",
			Help: "Completed signups",
		},
	)

	friendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voin_friend_requests_total",
			Help: "Friend request transitions",
		},
		[]string{"action"}, // sent, accepted, rejected
	)

	cardsMintedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voin_cards_minted_total",
			Help: "Cards created",
		},
		[]string{"kind"}, // self, gift
	)
)
