package services

import (
	"context"
	"log"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"MediClaim/models"
	"MediClaim/policy"
	"MediClaim/repositories"
	"MediClaim/utils"
	"MediClaim/workflow"
)

// CreateClaimRequest is the payload for opening a claim; claims always start
// in DRAFT.
type CreateClaimRequest struct {
	DoctorID      *string         `json:"doctor_id"`
	Diagnosis     string          `json:"diagnosis"`
	TreatmentDate time.Time       `json:"treatment_date"`
	ClaimAmount   decimal.Decimal `json:"claim_amount"`
}

func (r CreateClaimRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Diagnosis, validation.Required),
		validation.Field(&r.TreatmentDate, validation.Required),
	)
}

// UpdateClaimRequest carries the mutable fields of a general PUT; nil means
// unchanged.
type UpdateClaimRequest struct {
	DoctorID      *string          `json:"doctor_id"`
	Diagnosis     *string          `json:"diagnosis"`
	TreatmentDate *time.Time       `json:"treatment_date"`
	ClaimAmount   *decimal.Decimal `json:"claim_amount"`
}

// TransitionClaimRequest is the PATCH payload driving the claim lifecycle.
type TransitionClaimRequest struct {
	Status          models.ClaimStatus `json:"status"`
	ApprovedAmount  *decimal.Decimal   `json:"approved_amount"`
	RejectionReason string             `json:"rejection_reason"`
}

type ClaimService struct {
	claims  repositories.ClaimRepository
	reports repositories.ReportRepository
	users   repositories.UserRepository
}

func NewClaimService(claims repositories.ClaimRepository, reports repositories.ReportRepository, users repositories.UserRepository) *ClaimService {
	return &ClaimService{claims: claims, reports: reports, users: users}
}

func (s *ClaimService) Create(ctx context.Context, p policy.Principal, req CreateClaimRequest) (*models.Claim, error) {
	if err := policy.Decide(p, policy.ClaimCreate, policy.Facts{}); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, invalidf("%v", err)
	}
	if !req.ClaimAmount.IsPositive() {
		return nil, invalidf("claim amount must be positive")
	}

	claim := &models.Claim{
		ClaimNumber:   utils.GenerateClaimNumber(),
		PatientID:     p.UserID,
		DoctorID:      req.DoctorID,
		Diagnosis:     req.Diagnosis,
		TreatmentDate: req.TreatmentDate,
		ClaimAmount:   req.ClaimAmount,
		Status:        models.ClaimDraft,
	}
	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

func (s *ClaimService) Get(ctx context.Context, p policy.Principal, id uint) (*models.Claim, error) {
	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, notFound("claim")
	}
	if err := policy.Decide(p, policy.ClaimView, claimFacts(claim)); err != nil {
		return nil, err
	}
	return claim, nil
}

func (s *ClaimService) List(ctx context.Context, p policy.Principal, filter repositories.ClaimFilter) ([]models.Claim, int64, error) {
	switch p.Role {
	case models.RolePatient:
		filter.PatientID = p.UserID
	case models.RoleDoctor:
		filter.DoctorID = p.UserID
	}
	return s.claims.List(ctx, filter)
}

func (s *ClaimService) Update(ctx context.Context, p policy.Principal, id uint, req UpdateClaimRequest) (*models.Claim, error) {
	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, notFound("claim")
	}
	if err := policy.Decide(p, policy.ClaimUpdate, claimFacts(claim)); err != nil {
		return nil, err
	}

	if req.DoctorID != nil {
		claim.DoctorID = req.DoctorID
	}
	if req.Diagnosis != nil {
		if *req.Diagnosis == "" {
			return nil, invalidf("diagnosis cannot be blank")
		}
		claim.Diagnosis = *req.Diagnosis
	}
	if req.TreatmentDate != nil {
		claim.TreatmentDate = *req.TreatmentDate
	}
	if req.ClaimAmount != nil {
		if !req.ClaimAmount.IsPositive() {
			return nil, invalidf("claim amount must be positive")
		}
		claim.ClaimAmount = *req.ClaimAmount
	}

	if err := s.claims.Update(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

// Transition moves a claim along its lifecycle, stamping the timestamp for
// each forward edge. Insurers drive review; banks only mark approved claims
// paid.
func (s *ClaimService) Transition(ctx context.Context, p policy.Principal, id uint, req TransitionClaimRequest) (*models.Claim, error) {
	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, notFound("claim")
	}

	facts := claimFacts(claim)
	facts.Target = string(req.Status)
	if err := policy.Decide(p, policy.ClaimTransition, facts); err != nil {
		return nil, err
	}

	if req.Status == models.ClaimPaid && claim.Status != models.ClaimApproved {
		return nil, invalidf("Only approved claims can be marked as paid")
	}
	if err := workflow.Claims.Step(claim.Status, req.Status); err != nil {
		return nil, invalidf("%v", err)
	}

	now := time.Now()
	claim.Status = req.Status
	switch req.Status {
	case models.ClaimSubmitted:
		claim.SubmittedAt = &now
	case models.ClaimApproved:
		claim.ApprovedAt = &now
		if req.ApprovedAmount != nil {
			if !req.ApprovedAmount.IsPositive() {
				return nil, invalidf("approved amount must be positive")
			}
			claim.ApprovedAmount = req.ApprovedAmount
		}
	case models.ClaimRejected:
		claim.RejectedAt = &now
		claim.RejectionReason = req.RejectionReason
	case models.ClaimPaid:
		claim.PaidAt = &now
	}

	if err := s.claims.Update(ctx, claim); err != nil {
		return nil, err
	}

	if req.Status == models.ClaimApproved || req.Status == models.ClaimRejected {
		s.notifyDecision(ctx, claim)
	}
	return claim, nil
}

func (s *ClaimService) Delete(ctx context.Context, p policy.Principal, id uint) error {
	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if claim == nil {
		return notFound("claim")
	}
	if err := policy.Decide(p, policy.ClaimDelete, claimFacts(claim)); err != nil {
		return err
	}
	return s.claims.Delete(ctx, id)
}

// AttachReport links a patient report to a claim as evidence; the pair must
// not already exist.
func (s *ClaimService) AttachReport(ctx context.Context, p policy.Principal, claimID, reportID uint) (*models.ClaimReport, error) {
	claim, report, err := s.loadPair(ctx, claimID, reportID)
	if err != nil {
		return nil, err
	}
	err = policy.Decide(p, policy.ClaimAttach, policy.Facts{
		OwnerPatientID:   claim.PatientID,
		RelatedPatientID: report.PatientID,
	})
	if err != nil {
		return nil, err
	}

	existing, err := s.claims.GetAttachment(ctx, claimID, reportID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, invalidf("report already attached to this claim")
	}

	attachment := &models.ClaimReport{
		ClaimID:      claimID,
		ReportID:     reportID,
		AttachedByID: p.UserID,
	}
	if err := s.claims.CreateAttachment(ctx, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

func (s *ClaimService) DetachReport(ctx context.Context, p policy.Principal, claimID, reportID uint) error {
	claim, report, err := s.loadPair(ctx, claimID, reportID)
	if err != nil {
		return err
	}
	err = policy.Decide(p, policy.ClaimDetach, policy.Facts{
		OwnerPatientID:   claim.PatientID,
		RelatedPatientID: report.PatientID,
	})
	if err != nil {
		return err
	}

	existing, err := s.claims.GetAttachment(ctx, claimID, reportID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("attachment")
	}
	return s.claims.DeleteAttachment(ctx, claimID, reportID)
}

func (s *ClaimService) loadPair(ctx context.Context, claimID, reportID uint) (*models.Claim, *models.PatientReport, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, nil, err
	}
	if claim == nil {
		return nil, nil, notFound("claim")
	}
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	if report == nil {
		return nil, nil, notFound("patient report")
	}
	return claim, report, nil
}

// notifyDecision emails the patient off the request path; a failed email
// never fails the transition.
func (s *ClaimService) notifyDecision(ctx context.Context, claim *models.Claim) {
	patient, err := s.users.GetUserByID(ctx, claim.PatientID)
	if err != nil || patient == nil {
		log.Printf("Failed to load patient %s for claim notification: %v", claim.PatientID, err)
		return
	}
	go func(email, number, status, reason string, amount *decimal.Decimal) {
		if err := utils.SendClaimDecisionEmail(email, number, status, reason, amount); err != nil {
			log.Printf("Failed to send claim decision email: %v", err)
		}
	}(patient.Email, claim.ClaimNumber, string(claim.Status), claim.RejectionReason, claim.ApprovedAmount)
}

func claimFacts(claim *models.Claim) policy.Facts {
	facts := policy.Facts{
		OwnerPatientID: claim.PatientID,
		Status:         string(claim.Status),
	}
	if claim.DoctorID != nil {
		facts.OwnerDoctorID = *claim.DoctorID
	}
	return facts
}
