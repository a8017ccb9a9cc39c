// Package metrics holds the prometheus collectors of the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// ResultOK labels a successful operation.
	ResultOK = "ok"
	// ResultError labels a failed operation.
	ResultError = "error"
	// ResultRejected labels input refused before any remote call.
	ResultRejected = "rejected"
)

var (
	// ContentMutations counts writes to the content tables.
	ContentMutations = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "landing_content_mutations_total",
			Help: "Number of content mutations by collection, operation and result.",
		},
		[]string{"collection", "operation", "result"},
	)

	// Uploads counts image uploads.
	Uploads = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "landing_uploads_total",
			Help: "Number of image uploads by folder and result.",
		},
		[]string{"folder", "result"},
	)

	// UploadBytes sums the size of stored uploads.
	UploadBytes = promauto.NewCounter( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "landing_upload_bytes_total",
			Help: "Total size of stored uploads in bytes.",
		},
	)

	// LinkClicks counts outbound service link navigations.
	LinkClicks = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "landing_link_clicks_total",
			Help: "Number of outbound service link clicks by result.",
		},
		[]string{"result"},
	)

	// Logins counts sign-in attempts.
	Logins = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "landing_logins_total",
			Help: "Number of sign-in attempts by result.",
		},
		[]string{"result"},
	)
)

// Result maps an error to the result label.
func Result(err error) string {
	if err != nil {
		return ResultError
	}

	return ResultOK
}
