// Package metrics defines and registers the custom Prometheus metrics for
// the site API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "site_api"

// LoginsTotal counts login attempts by entrypoint role and outcome.
// Labels:
//   - role: "user" or "admin" (the entrypoint, not the stored role)
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by role and result.",
	},
	[]string{"role", "result"},
)

// RegistrationsTotal counts successful registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, labelled by role.",
	},
	[]string{"role"},
)

// OTPIssuedTotal counts password-reset codes issued and mailed.
var OTPIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of password-reset OTP codes issued.",
	},
)

// OTPVerificationsTotal counts OTP verification outcomes.
// Label:
//   - result: "ok", "invalid", "expired", "not_requested"
var OTPVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of OTP verification attempts, labelled by result.",
	},
	[]string{"result"},
)

// UploadsTotal counts files stored through the upload endpoints.
// Label:
//   - kind: "profile", "event", "product", "resume"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of files uploaded, labelled by kind.",
	},
	[]string{"kind"},
)

// PasswordResetsTotal counts completed password resets.
var PasswordResetsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of successfully completed password resets.",
	},
)
