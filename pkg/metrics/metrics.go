package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReconcilesTotal counts gig reconciliation attempts by outcome
	// (applied, write_conflict, validation_error, denied, error).
	ReconcilesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crewcall_gig_reconciles_total",
		Help: "Gig reconciliation attempts by outcome.",
	}, []string{"outcome"})

	// ConflictChecksTotal counts equipment conflict checks by outcome
	// (clear, conflict, error).
	ConflictChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crewcall_kit_conflict_checks_total",
		Help: "Equipment conflict checks by outcome.",
	}, []string{"outcome"})
)
