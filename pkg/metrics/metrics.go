// Package metrics expone los contadores Prometheus del servicio.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "team_feedback"

var (
	// FeedbackSubmitted feedback registrado por tipo.
	FeedbackSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_submitted_total",
		Help:      "Feedback registrado, por tipo.",
	}, []string{"type"})

	// FeedbackToggles cambios de estado por estado resultante.
	FeedbackToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_status_toggles_total",
		Help:      "Cambios de estado de feedback de mejora, por estado resultante.",
	}, []string{"status"})

	// MemberOperations operaciones del directorio por resultado (ok, error, partial_failure).
	MemberOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "member_operations_total",
		Help:      "Operaciones sobre members, por operación y resultado.",
	}, []string{"op", "result"})

	// Logins intentos de login por resultado.
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_login_total",
		Help:      "Intentos de login, por resultado.",
	}, []string{"result"})
)
