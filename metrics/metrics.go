// Package metrics exposes Prometheus counters for the operations worth
// watching in production: login attempts, media mutations, and uploads.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts counts logins by outcome (success, invalid_credentials,
	// not_approved, error).
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	// MediaCreated counts media records created by type.
	MediaCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_media_created_total",
		Help: "Media records created, by type.",
	}, []string{"type"})

	// MediaDeleted counts media records deleted by type.
	MediaDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_media_deleted_total",
		Help: "Media records deleted, by type.",
	}, []string{"type"})

	// UploadFailures counts photo uploads rejected or failed, by reason
	// (invalid_file, upload_failed).
	UploadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_upload_failures_total",
		Help: "Failed photo uploads, by reason.",
	}, []string{"reason"})
)
