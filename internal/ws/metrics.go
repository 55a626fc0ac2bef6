package ws

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	connectionsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chat_connections",
			Help: "Open chat connections per channel",
		},
		[]string{"channel"},
	)
	broadcastCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_frames_sent_total",
			Help: "Chat frames delivered to clients",
		},
		[]string{"channel", "type"},
	)
)

func init() {
	prometheus.MustRegister(connectionsGauge)
	prometheus.MustRegister(broadcastCounter)
}
