// Package workflow defines the status transition tables for appointments,
// claims, and payments. Every mutating endpoint consults the same table, so
// the allowed edges cannot drift between routes.
package workflow

import (
	"fmt"

	"MediClaim/models"
)

// Machine is a transition table over string-like status values.
type Machine[S ~string] struct {
	Name  string
	Edges map[S][]S
}

// Can reports whether the edge from -> to exists.
func (m Machine[S]) Can(from, to S) bool {
	for _, next := range m.Edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Step validates the edge from -> to and returns a descriptive error when the
// transition is not allowed.
func (m Machine[S]) Step(from, to S) error {
	if from == to {
		return fmt.Errorf("%s is already %s", m.Name, from)
	}
	if !m.Can(from, to) {
		return fmt.Errorf("cannot move %s from %s to %s", m.Name, from, to)
	}
	return nil
}

// Terminal reports whether no edge leaves the given status.
func (m Machine[S]) Terminal(s S) bool {
	return len(m.Edges[s]) == 0
}

// Appointments: CONSULTED is an explicit doctor action after ACCEPTED;
// COMPLETED is only ever reached as a side effect of report creation.
var Appointments = Machine[models.AppointmentStatus]{
	Name: "appointment",
	Edges: map[models.AppointmentStatus][]models.AppointmentStatus{
		models.AppointmentPending: {
			models.AppointmentAccepted,
			models.AppointmentRejected,
			models.AppointmentCancelled,
		},
		models.AppointmentAccepted: {
			models.AppointmentConsulted,
			models.AppointmentCompleted,
		},
		models.AppointmentConsulted: {
			models.AppointmentCompleted,
		},
	},
}

// Claims: strictly forward, each forward edge stamps its timestamp in the
// claim service.
var Claims = Machine[models.ClaimStatus]{
	Name: "claim",
	Edges: map[models.ClaimStatus][]models.ClaimStatus{
		models.ClaimDraft:       {models.ClaimSubmitted},
		models.ClaimSubmitted:   {models.ClaimUnderReview},
		models.ClaimUnderReview: {models.ClaimApproved, models.ClaimRejected},
		models.ClaimApproved:    {models.ClaimPaid},
	},
}

// Payments: bank-created payments start in PROCESSING; PENDING exists for
// seeded data only. Completing a payment marks the parent claim PAID.
var Payments = Machine[models.PaymentStatus]{
	Name: "payment",
	Edges: map[models.PaymentStatus][]models.PaymentStatus{
		models.PaymentPending: {
			models.PaymentProcessing,
			models.PaymentCompleted,
			models.PaymentFailed,
			models.PaymentCancelled,
		},
		models.PaymentProcessing: {
			models.PaymentCompleted,
			models.PaymentFailed,
			models.PaymentCancelled,
		},
		models.PaymentCompleted: {
			models.PaymentRefunded,
		},
	},
}
