// Package metrics - Prometheus metrics for the optimization pipeline
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OptimizeDuration tracks end-to-end /optimize request duration
	OptimizeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimize_request_duration_seconds",
		Help:    "Duration of a full optimize request",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
	})

	// OptimizeBidsTotal counts emitted bids by shipment class
	OptimizeBidsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "optimize_bids_total",
		Help: "Total bids emitted, by shipment type",
	}, []string{"shipment_type"})

	// WarehouseLookupErrorsTotal counts non-fatal warehouse inventory lookup failures
	WarehouseLookupErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warehouse_lookup_errors_total",
		Help: "Total warehouse inventory lookup errors, treated as empty",
	})

	// SolverInfeasibleTotal counts VRP classes that yielded zero bids
	SolverInfeasibleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_infeasible_total",
		Help: "Total vehicle classes for which the solver returned no solution",
	}, []string{"vehicle_type"})

	// WarehouseCacheHitsTotal counts warehouse lookup cache hits
	WarehouseCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warehouse_cache_hits_total",
		Help: "Total warehouse inventory cache hits",
	})

	// WarehouseCacheMissesTotal counts warehouse lookup cache misses
	WarehouseCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warehouse_cache_misses_total",
		Help: "Total warehouse inventory cache misses",
	})
)
