package catalog

import "time"

// VerificationStatus is the product's position in the verification state
// machine. Transitions during a run are Pending -> Verified or
// Pending -> Failed only; a terminal status never regresses to Pending
// except through an explicit resubmission.
type VerificationStatus string

const (
	StatusNotSubmitted VerificationStatus = "NotSubmitted"
	StatusPending      VerificationStatus = "Pending"
	StatusVerified     VerificationStatus = "Verified"
	StatusFailed       VerificationStatus = "Failed"
)

// Material is one entry in a product's bill of materials. Percentage,
// recycled content, and origin are supplier-declared and optional.
type Material struct {
	Name            string   `json:"name"`
	Percentage      *float64 `json:"percentage,omitempty"`
	RecycledContent *float64 `json:"recycledContent,omitempty"`
	Origin          string   `json:"origin,omitempty"`
}

// Declarations is the sparse per-regulation self-declaration block suppliers
// fill in. An absent sub-object means "not declared", which checkers treat
// the same as a false flag.
type Declarations struct {
	RoHS  *RoHSDeclaration  `json:"rohs,omitempty"`
	REACH *REACHDeclaration `json:"reach,omitempty"`
	WEEE  *WEEEDeclaration  `json:"weee,omitempty"`
	EUDR  *EUDRDeclaration  `json:"eudr,omitempty"`
}

type RoHSDeclaration struct {
	Compliant bool `json:"compliant"`
}

type REACHDeclaration struct {
	SVHCDeclared bool `json:"svhcDeclared"`
}

type WEEEDeclaration struct {
	Registered bool `json:"registered"`
}

type EUDRDeclaration struct {
	Compliant bool `json:"compliant"`
}

// Product is a digital product passport record. Only the orchestrator sets
// LastVerificationDate and ComplianceSummary.
type Product struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	Category             string             `json:"category"`
	Description          string             `json:"description,omitempty"`
	Materials            []Material         `json:"materials,omitempty"`
	SustainabilityScore  *int               `json:"sustainabilityScore,omitempty"`
	Declarations         Declarations       `json:"compliance"`
	VerificationStatus   VerificationStatus `json:"verificationStatus"`
	LastVerificationDate *time.Time         `json:"lastVerificationDate,omitempty"`
	ComplianceSummary    string             `json:"complianceSummary,omitempty"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

// VerificationUpdate is one staged outcome of a verification run, applied
// to storage as part of a single atomic batch.
type VerificationUpdate struct {
	ProductID            string
	Status               VerificationStatus
	LastVerificationDate time.Time
	ComplianceSummary    string
}
