package repository

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Rows of the current dataset that passed normalization
	datasetRowsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_rows_loaded",
			Help: "Number of valid street records in the current dataset",
		},
	)

	// Rows the last load silently excluded for missing mandatory fields
	datasetRowsDropped = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_rows_dropped",
			Help: "Number of source rows excluded by the last dataset load",
		},
	)

	// Total dataset parses, including mtime-triggered reloads
	datasetLoadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dataset_loads_total",
			Help: "Total number of dataset parses performed",
		},
	)
)
