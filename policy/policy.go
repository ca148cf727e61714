// Package policy is the single authorization table for the portal. Every
// handler funnels through Decide with an explicit principal; the rules are
// pure functions over (role, ownership, resource state) and never touch HTTP
// or the database.
package policy

import (
	"errors"
	"fmt"

	"MediClaim/models"
)

// ErrDenied is wrapped by every denial so handlers can map it to 403.
var ErrDenied = errors.New("forbidden")

// Principal is the authenticated actor making a request.
type Principal struct {
	UserID string
	Role   models.Role
}

// Action names one protected operation.
type Action string

const (
	AppointmentView       Action = "appointment.view"
	AppointmentCreate     Action = "appointment.create"
	AppointmentUpdate     Action = "appointment.update"
	AppointmentReschedule Action = "appointment.reschedule"
	AppointmentDelete     Action = "appointment.delete"

	ClaimView       Action = "claim.view"
	ClaimCreate     Action = "claim.create"
	ClaimUpdate     Action = "claim.update"
	ClaimTransition Action = "claim.transition"
	ClaimDelete     Action = "claim.delete"
	ClaimAttach     Action = "claim.attach_report"
	ClaimDetach     Action = "claim.detach_report"

	ReportView   Action = "report.view"
	ReportCreate Action = "report.create"
	ReportUpdate Action = "report.update"
	ReportDelete Action = "report.delete"

	PaymentView   Action = "payment.view"
	PaymentCreate Action = "payment.create"
	PaymentUpdate Action = "payment.update"

	DocumentUpload Action = "document.upload"
	UserList       Action = "user.list"
)

// Facts carries the ownership and state of the resource under decision.
// Fields that do not apply to an action are left zero.
type Facts struct {
	// OwnerPatientID / OwnerDoctorID identify the counterparties on the
	// resource (or, for creates, on the parent resource).
	OwnerPatientID string
	OwnerDoctorID  string

	// RelatedPatientID is the owner of the second resource on two-resource
	// actions (attaching a report to a claim).
	RelatedPatientID string

	// Status is the resource's current lifecycle state.
	Status string

	// Target is the requested state on transition actions.
	Target string
}

func deny(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDenied, fmt.Sprintf(format, args...))
}

type rule func(p Principal, f Facts) error

// viewRecord implements the shared read rule: insurers and banks see
// everything, patients and doctors only their own records.
func viewRecord(p Principal, f Facts) error {
	switch p.Role {
	case models.RoleInsurance, models.RoleBank:
		return nil
	case models.RolePatient:
		if p.UserID == f.OwnerPatientID {
			return nil
		}
		return deny("patients can only view their own records")
	case models.RoleDoctor:
		if p.UserID == f.OwnerDoctorID {
			return nil
		}
		return deny("doctors can only view records they are party to")
	}
	return deny("role %s cannot view this record", p.Role)
}

var table = map[Action]rule{
	AppointmentView: viewRecord,
	ClaimView:       viewRecord,
	ReportView:      viewRecord,

	AppointmentCreate: func(p Principal, f Facts) error {
		if p.Role != models.RolePatient {
			return deny("only patients can book appointments")
		}
		return nil
	},
	AppointmentUpdate: func(p Principal, f Facts) error {
		switch p.Role {
		case models.RoleInsurance, models.RoleBank:
			return nil
		case models.RolePatient:
			if p.UserID == f.OwnerPatientID {
				return nil
			}
		case models.RoleDoctor:
			if p.UserID == f.OwnerDoctorID {
				return nil
			}
		}
		return deny("only parties to the appointment may update it")
	},
	AppointmentReschedule: func(p Principal, f Facts) error {
		if p.Role == models.RolePatient && p.UserID == f.OwnerPatientID {
			return nil
		}
		if p.Role == models.RoleDoctor && p.UserID == f.OwnerDoctorID {
			return nil
		}
		return deny("only the booking patient or the doctor may reschedule")
	},
	AppointmentDelete: func(p Principal, f Facts) error {
		if p.Role != models.RolePatient || p.UserID != f.OwnerPatientID {
			return deny("only the booking patient can delete an appointment")
		}
		if f.Status != string(models.AppointmentPending) {
			return deny("only pending appointments can be deleted")
		}
		return nil
	},

	ClaimCreate: func(p Principal, f Facts) error {
		if p.Role != models.RolePatient {
			return deny("only patients can create claims")
		}
		return nil
	},
	ClaimUpdate: func(p Principal, f Facts) error {
		switch p.Role {
		case models.RoleInsurance, models.RoleBank:
			return nil
		case models.RoleDoctor:
			if p.UserID == f.OwnerDoctorID {
				return nil
			}
		case models.RolePatient:
			if p.UserID != f.OwnerPatientID {
				return deny("patients can only update their own claims")
			}
			if f.Status != string(models.ClaimDraft) {
				return deny("claims can only be edited while in draft")
			}
			return nil
		}
		return deny("only parties to the claim may update it")
	},
	ClaimTransition: func(p Principal, f Facts) error {
		switch p.Role {
		case models.RoleInsurance:
			switch models.ClaimStatus(f.Target) {
			case models.ClaimSubmitted, models.ClaimUnderReview, models.ClaimApproved, models.ClaimRejected:
				return nil
			}
			return deny("insurers cannot set claim status %s", f.Target)
		case models.RoleBank:
			if models.ClaimStatus(f.Target) == models.ClaimPaid {
				return nil
			}
			return deny("banks can only mark claims as paid")
		}
		return deny("role %s cannot change claim status", p.Role)
	},
	ClaimDelete: func(p Principal, f Facts) error {
		if p.Role != models.RolePatient || p.UserID != f.OwnerPatientID {
			return deny("only the claim owner can delete a claim")
		}
		if f.Status != string(models.ClaimDraft) {
			return deny("only draft claims can be deleted")
		}
		return nil
	},
	ClaimAttach: attachRule,
	ClaimDetach: attachRule,

	ReportCreate: func(p Principal, f Facts) error {
		if p.Role != models.RoleDoctor {
			return deny("only doctors can create patient reports")
		}
		if f.OwnerDoctorID != "" && p.UserID != f.OwnerDoctorID {
			return deny("doctors can only report on their own appointments")
		}
		return nil
	},
	ReportUpdate: reportAuthorRule,
	ReportDelete: reportAuthorRule,

	PaymentView: func(p Principal, f Facts) error {
		switch p.Role {
		case models.RoleInsurance, models.RoleBank:
			return nil
		case models.RolePatient:
			if p.UserID == f.OwnerPatientID {
				return nil
			}
			return deny("patients can only view payments on their own claims")
		}
		return deny("role %s cannot view payments", p.Role)
	},
	PaymentCreate: bankOnly("only bank users can create payments"),
	PaymentUpdate: bankOnly("only bank users can update payments"),

	DocumentUpload: func(p Principal, f Facts) error {
		if p.Role == models.RoleDoctor && p.UserID == f.OwnerDoctorID {
			return nil
		}
		if p.Role == models.RolePatient && p.UserID == f.OwnerPatientID {
			return nil
		}
		return deny("only parties to the record may upload documents for it")
	},
	UserList: func(p Principal, f Facts) error {
		if p.Role == models.RoleInsurance || p.Role == models.RoleBank {
			return nil
		}
		return deny("role %s cannot list users", p.Role)
	},
}

// attachRule: the patient must own both the claim (OwnerPatientID) and the
// report (RelatedPatientID).
func attachRule(p Principal, f Facts) error {
	if p.Role != models.RolePatient {
		return deny("only patients can attach reports to claims")
	}
	if p.UserID != f.OwnerPatientID || p.UserID != f.RelatedPatientID {
		return deny("patients can only attach their own reports to their own claims")
	}
	return nil
}

func reportAuthorRule(p Principal, f Facts) error {
	if p.Role != models.RoleDoctor || p.UserID != f.OwnerDoctorID {
		return deny("only the authoring doctor can modify a report")
	}
	return nil
}

func bankOnly(msg string) rule {
	return func(p Principal, f Facts) error {
		if p.Role != models.RoleBank {
			return deny(msg)
		}
		return nil
	}
}

// Decide checks the principal against the rule table for the given action.
func Decide(p Principal, action Action, f Facts) error {
	rule, ok := table[action]
	if !ok {
		return deny("no rule for action %s", action)
	}
	return rule(p, f)
}
