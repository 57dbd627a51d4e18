// Package transport defines request/response DTOs for the leads module.
package transport

import (
	"encoding/json"
	"time"

	calctransport "meteory_backend/internal/calculators/transport"
	"meteory_backend/platform/numeric"
)

// Lead pipeline statuses. The set is closed; unknown values are rejected.
const (
	StatusNew        = "New"
	StatusContacted  = "Contacted"
	StatusInProgress = "In Progress"
	StatusArchived   = "Archived"
)

// ValidStatuses lists the accepted pipeline statuses.
var ValidStatuses = []string{StatusNew, StatusContacted, StatusInProgress, StatusArchived}

// IsValidStatus reports whether s is a known pipeline status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// =============================================================================
// Submission payload (tagged union)
// =============================================================================

// Submission kinds, one per intake surface.
const (
	KindContact       = "contact"
	KindQuote         = "quote"
	KindExtinguishers = "extinguishers"
	KindCleanAgent    = "clean_agent"
	KindSprinklers    = "sprinklers"
	KindHoseReels     = "hose_reels"
	KindHydrants      = "hydrants"
)

// ContactSubmission carries a plain contact-form message.
type ContactSubmission struct {
	Message string `json:"message,omitempty"`
}

// QuoteSubmission carries a quote request.
type QuoteSubmission struct {
	Service string `json:"service,omitempty"`
	Message string `json:"message,omitempty"`
}

// CalculatorSubmission pairs the raw form inputs with the typed results the
// calculator produced at submission time. Inputs are kept verbatim so the
// sales team sees exactly what the visitor typed.
type CalculatorSubmission struct {
	Inputs  json.RawMessage `json:"inputs,omitempty"`
	Results json.RawMessage `json:"results,omitempty"`
}

// SubmissionPayload is a tagged union: Kind names the intake surface and
// exactly one matching record must be set. Compliance checks are advisory
// planning annotations carried along for the printable report.
type SubmissionPayload struct {
	Kind          string                            `json:"kind" validate:"required,oneof=contact quote extinguishers clean_agent sprinklers hose_reels hydrants"`
	Contact       *ContactSubmission                `json:"contact,omitempty"`
	Quote         *QuoteSubmission                  `json:"quote,omitempty"`
	Extinguishers *CalculatorSubmission             `json:"extinguishers,omitempty"`
	CleanAgent    *CalculatorSubmission             `json:"cleanAgent,omitempty"`
	Sprinklers    *CalculatorSubmission             `json:"sprinklers,omitempty"`
	HoseReels     *CalculatorSubmission             `json:"hoseReels,omitempty"`
	Hydrants      *CalculatorSubmission             `json:"hydrants,omitempty"`
	Compliance    []calctransport.ComplianceCheck   `json:"compliance,omitempty"`
}

// MatchesKind reports whether exactly one record is set and it matches Kind.
func (p *SubmissionPayload) MatchesKind() bool {
	set := 0
	matched := false

	check := func(kind string, present bool) {
		if present {
			set++
			if p.Kind == kind {
				matched = true
			}
		}
	}

	check(KindContact, p.Contact != nil)
	check(KindQuote, p.Quote != nil)
	check(KindExtinguishers, p.Extinguishers != nil)
	check(KindCleanAgent, p.CleanAgent != nil)
	check(KindSprinklers, p.Sprinklers != nil)
	check(KindHoseReels, p.HoseReels != nil)
	check(KindHydrants, p.Hydrants != nil)

	return set == 1 && matched
}

// =============================================================================
// Requests
// =============================================================================

// CreateLeadRequest is the public intake body. Only name and email are
// mandatory; everything else depends on which surface submitted the lead.
type CreateLeadRequest struct {
	Name         string             `json:"name" validate:"required"`
	Email        string             `json:"email" validate:"required"`
	Phone        string             `json:"phone"`
	AppName      string             `json:"app_name"`
	FacilityType string             `json:"facility_type"`
	Area         *numeric.Flexible  `json:"area"`
	HazardLevel  string             `json:"hazard_level"`
	TotalUnits   *numeric.Flexible  `json:"total_units"`
	Data         *SubmissionPayload `json:"data"`
}

// UpdateLeadStatusRequest moves a lead through the pipeline.
type UpdateLeadStatusRequest struct {
	ID     int64  `json:"id" validate:"required"`
	Status string `json:"status" validate:"required"`
}

// =============================================================================
// Responses
// =============================================================================

// CreateLeadResponse acknowledges an intake submission.
type CreateLeadResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// LeadResponse is the admin-facing lead row.
type LeadResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        *string         `json:"phone"`
	AppName      *string         `json:"app_name"`
	FacilityType *string         `json:"facility_type"`
	Area         *float64        `json:"area"`
	HazardLevel  *string         `json:"hazard_level"`
	TotalUnits   *int            `json:"total_units"`
	Data         json.RawMessage `json:"data"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// UpdateLeadStatusResponse acknowledges a status change.
type UpdateLeadStatusResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}
