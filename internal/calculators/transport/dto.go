// Package transport defines request/response DTOs for the calculators module.
package transport

import "meteory_backend/platform/numeric"

// ComplianceLevel grades a single standards check.
type ComplianceLevel string

const (
	// CompliancePass means the check is satisfied by the given inputs.
	CompliancePass ComplianceLevel = "pass"
	// ComplianceWarn means the check needs attention or project-level review.
	ComplianceWarn ComplianceLevel = "warn"
)

// ComplianceCheck is a bilingual standards note attached to a calculation.
// The frontend renders titleEn/detailEn or titleAr/detailAr depending on the
// active language.
type ComplianceCheck struct {
	Level    ComplianceLevel `json:"level"`
	TitleEn  string          `json:"titleEn"`
	TitleAr  string          `json:"titleAr"`
	DetailEn string          `json:"detailEn"`
	DetailAr string          `json:"detailAr"`
}

// =============================================================================
// Extinguisher estimator
// =============================================================================

// ExtinguisherRequest estimates portable extinguisher counts per floor.
type ExtinguisherRequest struct {
	FacilityType string           `json:"facilityType"`
	Area         numeric.Flexible `json:"area"`
	Floors       numeric.Flexible `json:"floors"`
	HazardLevel  string           `json:"hazardLevel" validate:"omitempty,oneof=light ordinary extra"`
}

// ExtinguisherResult mirrors the printable report fields.
type ExtinguisherResult struct {
	CoveragePerUnit float64 `json:"coveragePerUnit"`
	PerFloor        int     `json:"perFloor"`
	Total           int     `json:"total"`
	Type            string  `json:"type"`
}

// ExtinguisherResponse bundles results with standards checks.
type ExtinguisherResponse struct {
	Results    ExtinguisherResult `json:"results"`
	Compliance []ComplianceCheck  `json:"compliance"`
}

// =============================================================================
// FM-200 total flooding
// =============================================================================

// CleanAgentRequest sizes an HFC-227ea total flooding system.
// Temperature, concentration and safety factor fall back to the design
// defaults when omitted.
type CleanAgentRequest struct {
	Length        numeric.Flexible  `json:"length"`
	Width         numeric.Flexible  `json:"width"`
	Height        numeric.Flexible  `json:"height"`
	TempC         *numeric.Flexible `json:"tempC"`
	Concentration *numeric.Flexible `json:"concentration"`
	SafetyFactor  *numeric.Flexible `json:"safetyFactor"`
}

// CleanAgentResult keys match the printable report payload.
type CleanAgentResult struct {
	VolumeM3                    float64 `json:"volume_m3"`
	SpecificVapourVolumeM3PerKg float64 `json:"specific_vapour_volume_m3_per_kg"`
	BaseAgentKg                 float64 `json:"base_agent_kg"`
	AgentKgWithSafetyFactor     float64 `json:"agent_kg_with_safety_factor"`
}

// CleanAgentResponse bundles results with standards checks.
type CleanAgentResponse struct {
	Results    CleanAgentResult  `json:"results"`
	Compliance []ComplianceCheck `json:"compliance"`
}

// =============================================================================
// Sprinkler layout
// =============================================================================

// SprinklerRequest estimates head counts from a rectangular room and hazard
// preset. Spacing overrides replace the preset grid when provided.
type SprinklerRequest struct {
	Length         numeric.Flexible  `json:"length"`
	Width          numeric.Flexible  `json:"width"`
	Hazard         string            `json:"hazard" validate:"omitempty,oneof=LH OH1 OH2 EH1 EH2"`
	SpacingAlong   *numeric.Flexible `json:"spacingAlong"`
	SpacingBetween *numeric.Flexible `json:"spacingBetween"`
}

// SprinklerResult reports both the grid count and the area-limit count.
type SprinklerResult struct {
	Area             float64 `json:"area"`
	CountAlong       int     `json:"countAlong"`
	CountBetween     int     `json:"countBetween"`
	SpacingAlong     float64 `json:"spacingAlong"`
	SpacingBetween   float64 `json:"spacingBetween"`
	CoveragePerHead  float64 `json:"coveragePerHead"`
	HeadsByGrid      int     `json:"headsByGrid"`
	HeadsByAreaMax   int     `json:"headsByAreaMax"`
	RecommendedHeads int     `json:"recommendedHeads"`
	PresetNote       string  `json:"presetNote"`
}

// SprinklerResponse bundles results with standards checks.
type SprinklerResponse struct {
	Results    SprinklerResult   `json:"results"`
	Compliance []ComplianceCheck `json:"compliance"`
}

// =============================================================================
// Hose reel coverage
// =============================================================================

// HoseReelRequest estimates reel counts covering a site area.
type HoseReelRequest struct {
	SiteArea    numeric.Flexible  `json:"siteArea"`
	HoseLength  *numeric.Flexible `json:"hoseLength"`
	Utilization *numeric.Flexible `json:"utilization"`
}

// HoseReelResult reports the effective coverage circle per reel.
type HoseReelResult struct {
	Area            float64 `json:"area"`
	Radius          float64 `json:"radius"`
	Utilization     float64 `json:"utilization"`
	CoveragePerReel float64 `json:"coveragePerReel"`
	Reels           int     `json:"reels"`
}

// HoseReelResponse bundles results with standards checks.
type HoseReelResponse struct {
	Results    HoseReelResult    `json:"results"`
	Compliance []ComplianceCheck `json:"compliance"`
}

// =============================================================================
// Hydrant planning
// =============================================================================

// HydrantRequest estimates hydrant counts from the building footprint,
// used as a proxy for the accessible perimeter.
type HydrantRequest struct {
	BuildingType string           `json:"buildingType" validate:"omitempty,oneof=dwelling other"`
	Length       numeric.Flexible `json:"length"`
	Width        numeric.Flexible `json:"width"`
}

// HydrantResult reports perimeter-based spacing guidance.
type HydrantResult struct {
	PerimeterM                float64 `json:"perimeter_m"`
	MaxSpacingM               float64 `json:"maxSpacing_m"`
	MaxDistanceToRemotePointM float64 `json:"maxDistanceToRemotePoint_m"`
	EstimatedHydrants         int     `json:"estimatedHydrants"`
}

// HydrantResponse bundles results with standards checks.
type HydrantResponse struct {
	Results    HydrantResult     `json:"results"`
	Compliance []ComplianceCheck `json:"compliance"`
}
