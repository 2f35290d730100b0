package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var deploymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "deployer_deployments_total",
	Help: "Deployments processed, by outcome.",
}, []string{"outcome"})

var notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "deployer_notifications_total",
	Help: "Evaluation notifications delivered, by result.",
}, []string{"result"})
