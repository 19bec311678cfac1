// Package metrics defines all custom Prometheus metrics for the shipment
// tracker. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hiptrack"

// TrackingReadsTotal counts tracking lookups.
// Label:
//   - result: "ok", "not_found", or "error" (store failure)
var TrackingReadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_reads_total",
		Help:      "Total number of tracking reads, by result.",
	},
	[]string{"result"},
)

// ReconcilePersistsTotal counts write-behind entries flushed to the store.
var ReconcilePersistsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconcile_persists_total",
		Help:      "Total number of background progress updates written to the store.",
	},
)

// PersistErrorsTotal counts write-behind store failures. These never reach
// the read caller; the counter is how they stay observable.
var PersistErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "persist_errors_total",
		Help:      "Total number of failed background progress writes.",
	},
)

// WriteQueueDepth tracks pending write-behind entries per worker channel.
var WriteQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "write_queue_depth",
		Help:      "Current number of progress updates pending in each writer worker channel.",
	},
	[]string{"worker_id"},
)

// SimulationTicksTotal counts forced reconciliation passes applied through
// the simulate-movement endpoint.
var SimulationTicksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulation_ticks_total",
		Help:      "Total number of forced simulation ticks applied.",
	},
)

// NotificationsTotal counts admin-comment notification outcomes.
// Label:
//   - result: "sent", "error", or "deduplicated"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of admin comment notifications, by outcome.",
	},
	[]string{"result"},
)

// ShipmentsCreatedTotal counts newly registered shipments.
// Label:
//   - mode: the shipment mode, e.g. "Land Shipping"
var ShipmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created, by shipment mode.",
	},
	[]string{"mode"},
)
