package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"MediClaim/models"
	"MediClaim/policy"
	"MediClaim/repositories"
	"MediClaim/storage"
)

// ViewURLTTL bounds how long a signed document link stays valid.
const ViewURLTTL = 15 * time.Minute

// UploadURLTTL bounds the window for completing a pre-signed upload.
const UploadURLTTL = time.Hour

// UploadDocumentRequest is the payload for a doctor uploading a file against
// an appointment.
type UploadDocumentRequest struct {
	AppointmentID uint
	Type          models.DocumentType
	OriginalName  string
	MimeType      string
	Body          io.Reader
}

// UploadURLRequest is the payload for the pre-signed upload flow used for
// claim documents.
type UploadURLRequest struct {
	ClaimID      uint                `json:"claim_id"`
	Type         models.DocumentType `json:"type"`
	Filename     string              `json:"filename"`
	MimeType     string              `json:"mime_type"`
}

// UploadURLResponse hands the client a document record and the signed URL to
// PUT the binary to.
type UploadURLResponse struct {
	Document  *models.Document `json:"document"`
	UploadURL string           `json:"upload_url"`
}

type DocumentService struct {
	documents    repositories.DocumentRepository
	appointments repositories.AppointmentRepository
	claims       repositories.ClaimRepository
	store        storage.ObjectStore
	signer       *storage.URLSigner
}

func NewDocumentService(
	documents repositories.DocumentRepository,
	appointments repositories.AppointmentRepository,
	claims repositories.ClaimRepository,
	store storage.ObjectStore,
	signer *storage.URLSigner,
) *DocumentService {
	return &DocumentService{
		documents:    documents,
		appointments: appointments,
		claims:       claims,
		store:        store,
		signer:       signer,
	}
}

// UploadForAppointment stores a file a doctor uploads against one of their
// appointments. Unlike report creation, this path requires the appointment
// to be ACCEPTED or CONSULTED.
func (s *DocumentService) UploadForAppointment(ctx context.Context, p policy.Principal, req UploadDocumentRequest) (*models.Document, error) {
	if !models.ValidDocumentType(req.Type) {
		return nil, invalidf("unknown document type %s", req.Type)
	}
	if !storage.AllowedMimeTypes[req.MimeType] {
		return nil, invalidf("unsupported content type %s", req.MimeType)
	}

	appointment, err := s.appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, notFound("appointment")
	}
	if err := policy.Decide(p, policy.DocumentUpload, policy.Facts{OwnerDoctorID: appointment.DoctorID}); err != nil {
		return nil, err
	}
	if appointment.Status != models.AppointmentAccepted && appointment.Status != models.AppointmentConsulted {
		return nil, invalidf("documents can only be uploaded for accepted or consulted appointments")
	}

	key := uuid.New().String()
	size, err := s.store.Put(key, req.Body)
	if err != nil {
		if err == storage.ErrObjectTooLarge {
			return nil, invalidf("file exceeds the maximum allowed size")
		}
		return nil, err
	}

	document := &models.Document{
		Type:          req.Type,
		Filename:      key,
		OriginalName:  req.OriginalName,
		StorageKey:    key,
		Size:          size,
		MimeType:      req.MimeType,
		AppointmentID: &req.AppointmentID,
		UploadedByID:  p.UserID,
	}
	document.URL = s.ViewURL(document)
	if err := s.documents.Create(ctx, document); err != nil {
		return nil, err
	}
	return document, nil
}

// CreateUploadURL registers a claim document and returns a signed URL the
// client PUTs the binary to within the next hour.
func (s *DocumentService) CreateUploadURL(ctx context.Context, p policy.Principal, req UploadURLRequest) (*UploadURLResponse, error) {
	if !models.ValidDocumentType(req.Type) {
		return nil, invalidf("unknown document type %s", req.Type)
	}
	if req.Filename == "" {
		return nil, invalidf("filename is required")
	}
	if !storage.AllowedMimeTypes[req.MimeType] {
		return nil, invalidf("unsupported content type %s", req.MimeType)
	}

	claim, err := s.claims.GetByID(ctx, req.ClaimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, notFound("claim")
	}
	if err := policy.Decide(p, policy.DocumentUpload, policy.Facts{OwnerPatientID: claim.PatientID}); err != nil {
		return nil, err
	}

	key := uuid.New().String()
	document := &models.Document{
		Type:         req.Type,
		Filename:     key,
		OriginalName: req.Filename,
		StorageKey:   key,
		MimeType:     req.MimeType,
		ClaimID:      &req.ClaimID,
		UploadedByID: p.UserID,
	}
	document.URL = s.ViewURL(document)
	if err := s.documents.Create(ctx, document); err != nil {
		return nil, err
	}

	return &UploadURLResponse{
		Document:  document,
		UploadURL: s.signer.Sign(fmt.Sprintf("/documents/content/%s", key), UploadURLTTL),
	}, nil
}

// ReceiveContent accepts the binary for a pre-signed upload. The signature
// was already verified by the handler; the key alone identifies the document.
func (s *DocumentService) ReceiveContent(ctx context.Context, key string, body io.Reader) (*models.Document, error) {
	document, err := s.documents.GetByStorageKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, notFound("document")
	}

	size, err := s.store.Put(key, body)
	if err != nil {
		if err == storage.ErrObjectTooLarge {
			return nil, invalidf("file exceeds the maximum allowed size")
		}
		return nil, err
	}
	document.Size = size
	if err := s.documents.Update(ctx, document); err != nil {
		return nil, err
	}
	return document, nil
}

// Authorize checks that the principal may read the document by deferring to
// its parent record's view rule.
func (s *DocumentService) Authorize(ctx context.Context, p policy.Principal, document *models.Document) error {
	switch {
	case document.AppointmentID != nil:
		appointment, err := s.appointments.GetByID(ctx, *document.AppointmentID)
		if err != nil {
			return err
		}
		if appointment == nil {
			return notFound("appointment")
		}
		return policy.Decide(p, policy.AppointmentView, policy.Facts{
			OwnerPatientID: appointment.PatientID,
			OwnerDoctorID:  appointment.DoctorID,
		})
	case document.ClaimID != nil:
		claim, err := s.claims.GetByID(ctx, *document.ClaimID)
		if err != nil {
			return err
		}
		if claim == nil {
			return notFound("claim")
		}
		return policy.Decide(p, policy.ClaimView, claimFacts(claim))
	}
	// orphan documents are only visible to their uploader
	if p.UserID == document.UploadedByID {
		return nil
	}
	return policy.Decide(p, policy.UserList, policy.Facts{})
}

// GetByKey looks a document up by its opaque storage key. Used on the signed
// content routes where no session is present.
func (s *DocumentService) GetByKey(ctx context.Context, key string) (*models.Document, error) {
	document, err := s.documents.GetByStorageKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, notFound("document")
	}
	return document, nil
}

func (s *DocumentService) Get(ctx context.Context, id uint) (*models.Document, error) {
	document, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, notFound("document")
	}
	return document, nil
}

// Open returns the stored binary for streaming to the client.
func (s *DocumentService) Open(document *models.Document) (io.ReadCloser, int64, error) {
	r, size, err := s.store.Get(document.StorageKey)
	if err == storage.ErrObjectNotFound {
		return nil, 0, notFound("document content")
	}
	return r, size, err
}

// List scopes documents to the caller's uploads unless they are an insurer
// or bank.
func (s *DocumentService) List(ctx context.Context, p policy.Principal, filter repositories.DocumentFilter) ([]models.Document, int64, error) {
	if p.Role != models.RoleInsurance && p.Role != models.RoleBank {
		filter.UploadedByID = p.UserID
	}
	return s.documents.List(ctx, filter)
}

// ViewURL mints a fresh signed link for reading the document.
func (s *DocumentService) ViewURL(document *models.Document) string {
	return s.signer.Sign(fmt.Sprintf("/documents/content/%s", document.StorageKey), ViewURLTTL)
}

// VerifySignature validates a signed content URL for the given key.
func (s *DocumentService) VerifySignature(key, expires, sig string) error {
	err := s.signer.Verify(fmt.Sprintf("/documents/content/%s", key), expires, sig)
	if err != nil {
		return invalidf("%v", err)
	}
	return nil
}
