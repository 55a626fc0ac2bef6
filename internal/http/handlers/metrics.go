package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
)

var questCompletions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quest_completions_total",
		Help: "Quest completion attempts by outcome",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(questCompletions)
}
