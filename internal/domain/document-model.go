package domain

import "time"

type DocumentStatus string

const (
	DocStatusPending  DocumentStatus = "pending"
	DocStatusUploaded DocumentStatus = "uploaded"
	DocStatusReviewed DocumentStatus = "reviewed"
	DocStatusVerified DocumentStatus = "verified"
	DocStatusRejected DocumentStatus = "rejected"
)

func (d DocumentStatus) IsValid() bool {
	switch d {
	case DocStatusPending, DocStatusUploaded, DocStatusReviewed, DocStatusVerified, DocStatusRejected:
		return true
	default:
		return false
	}
}

// RequiresVerifier reports whether reaching this status is a verifier
// decision that must carry the deciding actor's identity.
func (d DocumentStatus) RequiresVerifier() bool {
	return d == DocStatusVerified || d == DocStatusRejected
}

type DocumentType string

const (
	DocTypeAadhaar     DocumentType = "aadhaar"
	DocTypeMarksheet10 DocumentType = "marksheet_10"
	DocTypeMarksheet12 DocumentType = "marksheet_12"
	DocTypeScorecard   DocumentType = "scorecard"
	DocTypeCertificate DocumentType = "certificate"
	DocTypePhoto       DocumentType = "photo"
)

// RequiredDocumentTypes is the fixed slate every student record is created
// with, one pending slot per type.
var RequiredDocumentTypes = []DocumentType{
	DocTypeAadhaar,
	DocTypeMarksheet10,
	DocTypeMarksheet12,
	DocTypeScorecard,
	DocTypeCertificate,
	DocTypePhoto,
}

type StudentDocument struct {
	ID         string         `json:"id"`
	Type       DocumentType   `json:"type"`
	Status     DocumentStatus `json:"status"`
	FileURL    string         `json:"file_url,omitempty"`
	Remarks    string         `json:"remarks,omitempty"`
	VerifiedBy string         `json:"verified_by,omitempty"`
	UploadedAt *time.Time     `json:"uploaded_at,omitempty"`
	ReviewedAt *time.Time     `json:"reviewed_at,omitempty"`
}

// documentTransitions holds every legal edge of the document slot state
// machine. uploaded→verified is the fast path for slots that skip review;
// rejected→uploaded restarts the loop on re-submission.
var documentTransitions = map[DocumentStatus][]DocumentStatus{
	DocStatusPending:  {DocStatusUploaded},
	DocStatusUploaded: {DocStatusReviewed, DocStatusVerified},
	DocStatusReviewed: {DocStatusVerified, DocStatusRejected},
	DocStatusRejected: {DocStatusUploaded},
	DocStatusVerified: {},
}

// CanDocumentTransition reports whether from→to is a legal document edge.
func CanDocumentTransition(from, to DocumentStatus) bool {
	for _, allowed := range documentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// DocumentTransitionMeta carries the caller-supplied context of a document
// status change.
type DocumentTransitionMeta struct {
	FileURL    string `json:"file_url,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
	VerifiedBy string `json:"verified_by,omitempty"`
}
