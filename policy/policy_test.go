package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediClaim/models"
)

var (
	patient = Principal{UserID: "pat-1", Role: models.RolePatient}
	doctor  = Principal{UserID: "doc-1", Role: models.RoleDoctor}
	insurer = Principal{UserID: "ins-1", Role: models.RoleInsurance}
	banker  = Principal{UserID: "bnk-1", Role: models.RoleBank}
)

func TestViewRecordOwnership(t *testing.T) {
	owned := Facts{OwnerPatientID: "pat-1", OwnerDoctorID: "doc-1"}
	other := Facts{OwnerPatientID: "pat-2", OwnerDoctorID: "doc-2"}

	for _, action := range []Action{AppointmentView, ClaimView, ReportView} {
		assert.NoError(t, Decide(patient, action, owned), action)
		assert.NoError(t, Decide(doctor, action, owned), action)
		assert.NoError(t, Decide(insurer, action, other), action)
		assert.NoError(t, Decide(banker, action, other), action)

		err := Decide(patient, action, other)
		require.Error(t, err, action)
		assert.ErrorIs(t, err, ErrDenied)
		assert.ErrorIs(t, Decide(doctor, action, other), ErrDenied, action)
	}
}

func TestAppointmentCreateIsPatientOnly(t *testing.T) {
	assert.NoError(t, Decide(patient, AppointmentCreate, Facts{}))
	for _, p := range []Principal{doctor, insurer, banker} {
		assert.ErrorIs(t, Decide(p, AppointmentCreate, Facts{}), ErrDenied, p.Role)
	}
}

func TestAppointmentUpdateAndReschedule(t *testing.T) {
	f := Facts{OwnerPatientID: "pat-1", OwnerDoctorID: "doc-1"}

	assert.NoError(t, Decide(patient, AppointmentUpdate, f))
	assert.NoError(t, Decide(doctor, AppointmentUpdate, f))
	assert.NoError(t, Decide(insurer, AppointmentUpdate, f))
	assert.NoError(t, Decide(banker, AppointmentUpdate, f))
	assert.ErrorIs(t, Decide(Principal{UserID: "pat-9", Role: models.RolePatient}, AppointmentUpdate, f), ErrDenied)

	// reschedule is never open to insurers or banks
	assert.NoError(t, Decide(patient, AppointmentReschedule, f))
	assert.NoError(t, Decide(doctor, AppointmentReschedule, f))
	assert.ErrorIs(t, Decide(insurer, AppointmentReschedule, f), ErrDenied)
	assert.ErrorIs(t, Decide(banker, AppointmentReschedule, f), ErrDenied)
}

func TestAppointmentDeleteOnlyWhilePending(t *testing.T) {
	pending := Facts{OwnerPatientID: "pat-1", Status: string(models.AppointmentPending)}
	accepted := Facts{OwnerPatientID: "pat-1", Status: string(models.AppointmentAccepted)}

	assert.NoError(t, Decide(patient, AppointmentDelete, pending))
	assert.ErrorIs(t, Decide(patient, AppointmentDelete, accepted), ErrDenied)
	assert.ErrorIs(t, Decide(doctor, AppointmentDelete, pending), ErrDenied)
}

func TestClaimUpdateRules(t *testing.T) {
	draft := Facts{OwnerPatientID: "pat-1", Status: string(models.ClaimDraft)}
	submitted := Facts{OwnerPatientID: "pat-1", Status: string(models.ClaimSubmitted)}

	assert.NoError(t, Decide(patient, ClaimUpdate, draft))
	assert.ErrorIs(t, Decide(patient, ClaimUpdate, submitted), ErrDenied)

	withDoctor := Facts{OwnerPatientID: "pat-1", OwnerDoctorID: "doc-1", Status: string(models.ClaimSubmitted)}
	assert.NoError(t, Decide(doctor, ClaimUpdate, withDoctor))
	assert.ErrorIs(t, Decide(doctor, ClaimUpdate, Facts{OwnerDoctorID: "doc-2"}), ErrDenied)

	assert.NoError(t, Decide(insurer, ClaimUpdate, submitted))
	assert.NoError(t, Decide(banker, ClaimUpdate, submitted))
}

func TestClaimTransitionByRole(t *testing.T) {
	for _, target := range []models.ClaimStatus{
		models.ClaimSubmitted, models.ClaimUnderReview, models.ClaimApproved, models.ClaimRejected,
	} {
		assert.NoError(t, Decide(insurer, ClaimTransition, Facts{Target: string(target)}), target)
	}
	assert.ErrorIs(t, Decide(insurer, ClaimTransition, Facts{Target: string(models.ClaimPaid)}), ErrDenied)

	assert.NoError(t, Decide(banker, ClaimTransition, Facts{Target: string(models.ClaimPaid)}))
	assert.ErrorIs(t, Decide(banker, ClaimTransition, Facts{Target: string(models.ClaimApproved)}), ErrDenied)

	assert.ErrorIs(t, Decide(patient, ClaimTransition, Facts{Target: string(models.ClaimSubmitted)}), ErrDenied)
	assert.ErrorIs(t, Decide(doctor, ClaimTransition, Facts{Target: string(models.ClaimSubmitted)}), ErrDenied)
}

func TestClaimDeleteOnlyOwnDraft(t *testing.T) {
	draft := Facts{OwnerPatientID: "pat-1", Status: string(models.ClaimDraft)}
	submitted := Facts{OwnerPatientID: "pat-1", Status: string(models.ClaimSubmitted)}

	assert.NoError(t, Decide(patient, ClaimDelete, draft))
	assert.ErrorIs(t, Decide(patient, ClaimDelete, submitted), ErrDenied)
	assert.ErrorIs(t, Decide(insurer, ClaimDelete, draft), ErrDenied)
}

func TestAttachRequiresOwnershipOfBoth(t *testing.T) {
	both := Facts{OwnerPatientID: "pat-1", RelatedPatientID: "pat-1"}
	claimOnly := Facts{OwnerPatientID: "pat-1", RelatedPatientID: "pat-2"}

	for _, action := range []Action{ClaimAttach, ClaimDetach} {
		assert.NoError(t, Decide(patient, action, both), action)
		assert.ErrorIs(t, Decide(patient, action, claimOnly), ErrDenied, action)
		assert.ErrorIs(t, Decide(doctor, action, both), ErrDenied, action)
	}
}

func TestReportRules(t *testing.T) {
	own := Facts{OwnerDoctorID: "doc-1"}
	foreign := Facts{OwnerDoctorID: "doc-2"}

	assert.NoError(t, Decide(doctor, ReportCreate, own))
	assert.ErrorIs(t, Decide(doctor, ReportCreate, foreign), ErrDenied)
	assert.ErrorIs(t, Decide(patient, ReportCreate, own), ErrDenied)

	assert.NoError(t, Decide(doctor, ReportUpdate, own))
	assert.NoError(t, Decide(doctor, ReportDelete, own))
	assert.ErrorIs(t, Decide(doctor, ReportDelete, foreign), ErrDenied)
	assert.ErrorIs(t, Decide(insurer, ReportDelete, own), ErrDenied)
}

func TestPaymentRules(t *testing.T) {
	assert.NoError(t, Decide(banker, PaymentCreate, Facts{}))
	assert.NoError(t, Decide(banker, PaymentUpdate, Facts{}))
	for _, p := range []Principal{patient, doctor, insurer} {
		assert.ErrorIs(t, Decide(p, PaymentCreate, Facts{}), ErrDenied, p.Role)
		assert.ErrorIs(t, Decide(p, PaymentUpdate, Facts{}), ErrDenied, p.Role)
	}

	own := Facts{OwnerPatientID: "pat-1"}
	assert.NoError(t, Decide(patient, PaymentView, own))
	assert.ErrorIs(t, Decide(patient, PaymentView, Facts{OwnerPatientID: "pat-2"}), ErrDenied)
	assert.NoError(t, Decide(insurer, PaymentView, Facts{}))
	assert.NoError(t, Decide(banker, PaymentView, Facts{}))
	assert.ErrorIs(t, Decide(doctor, PaymentView, own), ErrDenied)
}

func TestUserListRoles(t *testing.T) {
	assert.NoError(t, Decide(insurer, UserList, Facts{}))
	assert.NoError(t, Decide(banker, UserList, Facts{}))
	assert.ErrorIs(t, Decide(patient, UserList, Facts{}), ErrDenied)
	assert.ErrorIs(t, Decide(doctor, UserList, Facts{}), ErrDenied)
}

func TestUnknownActionIsDenied(t *testing.T) {
	assert.ErrorIs(t, Decide(insurer, Action("nope"), Facts{}), ErrDenied)
}
