package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	transformsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coord_transforms_total",
		Help: "Total number of coordinate transforms",
	}, []string{"from", "to"})
	locateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coord_locate_total",
		Help: "Total number of tile lookups",
	}, []string{"layer"})
	requestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coord_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100},
	}, []string{"method", "status"})
	layersLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "coord_layers_loaded",
		Help: "Number of tile layers currently loaded",
	})
)

func init() {
	prometheus.MustRegister(transformsTotal)
	prometheus.MustRegister(locateTotal)
	prometheus.MustRegister(requestDurationMs)
	prometheus.MustRegister(layersLoaded)
}
