package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BlogsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogs_created_total",
			Help: "Total number of blogs created by status",
		},
		[]string{"status"},
	)

	BlogsUpdated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogs_updated_total",
			Help: "Total number of blog updates by status",
		},
		[]string{"status"},
	)

	BlogsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blogs_deleted_total",
			Help: "Total number of blogs deleted",
		},
	)

	BlogWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_write_failures_total",
			Help: "Total number of rolled back blog writes",
		},
	)
)
