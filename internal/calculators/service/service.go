// Package service implements the fire-safety estimation suite.
//
// All five calculators are planning heuristics: they size equipment from
// simplified prescriptive limits so the sales team has a starting quantity.
// Every response carries compliance notes reminding the reader that final
// designs need AHJ approval.
package service

import (
	"fmt"
	"math"

	"meteory_backend/internal/calculators/transport"
	"meteory_backend/platform/apperr"
	"meteory_backend/platform/numeric"
)

// Service holds the loaded planning presets.
type Service struct {
	presets *presets
}

// New loads the embedded presets and returns the calculation service.
func New() (*Service, error) {
	p, err := loadPresets()
	if err != nil {
		return nil, err
	}
	return &Service{presets: p}, nil
}

func flexOr(v *numeric.Flexible, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return v.Float64()
}

// =============================================================================
// Extinguishers
// =============================================================================

// Extinguishers estimates portable extinguisher counts from floor area and
// hazard class. One unit serves a fixed coverage area per class; the count is
// repeated per floor.
func (s *Service) Extinguishers(req transport.ExtinguisherRequest) transport.ExtinguisherResponse {
	area := req.Area.Float64()

	floors := math.Round(req.Floors.Float64())
	if floors < 1 {
		floors = 1
	}

	coverage, ok := s.presets.Extinguishers.CoverageM2[req.HazardLevel]
	if !ok {
		coverage = s.presets.Extinguishers.CoverageM2["light"]
	}

	perFloor := int(math.Max(1, math.Ceil(area/coverage)))
	total := perFloor * int(floors)

	unitType := "Powder + Foam"
	if req.HazardLevel == "" || req.HazardLevel == "light" {
		unitType = "CO2 + Powder"
	}

	return transport.ExtinguisherResponse{
		Results: transport.ExtinguisherResult{
			CoveragePerUnit: coverage,
			PerFloor:        perFloor,
			Total:           total,
			Type:            unitType,
		},
		Compliance: extinguisherCompliance(area),
	}
}

func extinguisherCompliance(area float64) []transport.ComplianceCheck {
	inputs := transport.ComplianceCheck{
		Level:    transport.CompliancePass,
		TitleEn:  "Inputs present",
		TitleAr:  "اكتمال المدخلات",
		DetailEn: "Area provided — calculator can estimate quantity.",
		DetailAr: "تم إدخال المساحة — يمكن للحاسبة حساب تقدير.",
	}
	if area <= 0 {
		inputs.Level = transport.ComplianceWarn
		inputs.DetailEn = "Enter area to calculate an estimate."
		inputs.DetailAr = "أدخل المساحة لبدء الحساب."
	}

	return []transport.ComplianceCheck{
		inputs,
		{
			Level:    transport.ComplianceWarn,
			TitleEn:  "Travel distance (layout) not evaluated",
			TitleAr:  "مسافة الوصول (التوزيع) غير مُقَيَّمة",
			DetailEn: "Extinguisher placement must satisfy max travel distances (e.g., 22.9m for Class A and 15.2m for Class B) based on the final floor plan.",
			DetailAr: "توزيع الطفايات يجب أن يحقق مسافات وصول قصوى (مثل 22.9م للفئة A و15.2م للفئة B) بناءً على مخطط الدور النهائي.",
		},
	}
}

// =============================================================================
// FM-200 total flooding
// =============================================================================

// CleanAgent sizes an HFC-227ea total flooding system using the NFPA 2001
// flooding equation. The specific vapour volume S is linear in the minimum
// expected temperature. Concentration must sit strictly inside (0, 100).
func (s *Service) CleanAgent(req transport.CleanAgentRequest) (transport.CleanAgentResponse, error) {
	defaults := s.presets.CleanAgent

	length := req.Length.Float64()
	width := req.Width.Float64()
	height := req.Height.Float64()
	tempC := flexOr(req.TempC, defaults.DefaultTempC)
	conc := flexOr(req.Concentration, defaults.DefaultConcentrationPct)

	if conc <= 0 || conc >= 100 {
		return transport.CleanAgentResponse{}, apperr.Validation(
			fmt.Sprintf("design concentration must be between 0 and 100 percent, got %g", conc)).
			WithOp("calculators.CleanAgent")
	}

	safetyFactor := math.Max(1, flexOr(req.SafetyFactor, defaults.DefaultSafetyFactor))

	volume := math.Max(0, length*width*height)
	vapourVolume := 0.1269 + 0.0005131*tempC
	baseKg := volume / vapourVolume * (conc / (100 - conc))
	finalKg := baseKg * safetyFactor

	return transport.CleanAgentResponse{
		Results: transport.CleanAgentResult{
			VolumeM3:                    volume,
			SpecificVapourVolumeM3PerKg: vapourVolume,
			BaseAgentKg:                 baseKg,
			AgentKgWithSafetyFactor:     finalKg,
		},
		Compliance: cleanAgentCompliance(length > 0 && width > 0 && height > 0, conc, safetyFactor),
	}, nil
}

func cleanAgentCompliance(hasDims bool, conc, safetyFactor float64) []transport.ComplianceCheck {
	dims := transport.ComplianceCheck{
		Level:    transport.CompliancePass,
		TitleEn:  "Room dimensions",
		TitleAr:  "أبعاد الغرفة",
		DetailEn: "Dimensions provided — agent estimate calculated.",
		DetailAr: "تم إدخال الأبعاد — تم حساب التقدير.",
	}
	if !hasDims {
		dims.Level = transport.ComplianceWarn
		dims.DetailEn = "Enter length, width, and height to calculate."
		dims.DetailAr = "أدخل الطول والعرض والارتفاع لبدء الحساب."
	}

	concLevel := transport.ComplianceWarn
	if conc >= 6 && conc <= 9 {
		concLevel = transport.CompliancePass
	}

	sfLevel := transport.ComplianceWarn
	if safetyFactor >= 1.05 {
		sfLevel = transport.CompliancePass
	}

	return []transport.ComplianceCheck{
		dims,
		{
			Level:    concLevel,
			TitleEn:  "Concentration sanity range",
			TitleAr:  "نطاق تركيز منطقي",
			DetailEn: "Typical engineered concentrations vary by hazard. Double-check the design concentration with NFPA 2001 / manufacturer software.",
			DetailAr: "تركيز التصميم يختلف حسب الخطورة. راجع تركيز التصميم عبر NFPA 2001 أو برامج الشركة المصنعة.",
		},
		{
			Level:    sfLevel,
			TitleEn:  "Safety factor",
			TitleAr:  "معامل الأمان",
			DetailEn: "Consider a safety factor and include room integrity / leakage considerations in the final design.",
			DetailAr: "يفضل استخدام معامل أمان وأخذ تسرب الغرفة/إحكامها في الاعتبار في التصميم النهائي.",
		},
	}
}

// =============================================================================
// Sprinkler layout
// =============================================================================

// Sprinklers estimates head counts two ways, a spacing grid and the hazard's
// max coverage per head, and recommends the higher count.
func (s *Service) Sprinklers(req transport.SprinklerRequest) transport.SprinklerResponse {
	cfg := s.presets.Sprinklers

	hazard := req.Hazard
	preset, ok := cfg.Presets[hazard]
	if !ok {
		hazard = cfg.DefaultHazard
		preset = cfg.Presets[hazard]
	}

	spacingAlong := flexOr(req.SpacingAlong, 0)
	if spacingAlong == 0 {
		spacingAlong = preset.SpacingAlong
	}
	spacingAlong = math.Max(cfg.MinSpacing, spacingAlong)

	spacingBetween := flexOr(req.SpacingBetween, 0)
	if spacingBetween == 0 {
		spacingBetween = preset.SpacingBetween
	}
	spacingBetween = math.Max(cfg.MinSpacing, spacingBetween)

	length := req.Length.Float64()
	width := req.Width.Float64()
	area := math.Max(0, length*width)

	countAlong := 0
	if length > 0 {
		countAlong = int(math.Max(1, math.Ceil(length/spacingAlong)))
	}
	countBetween := 0
	if width > 0 {
		countBetween = int(math.Max(1, math.Ceil(width/spacingBetween)))
	}
	headsByGrid := countAlong * countBetween

	coveragePerHead := spacingAlong * spacingBetween
	headsByAreaMax := headsByGrid
	if preset.MaxAreaPerHead > 0 {
		headsByAreaMax = int(math.Max(1, math.Ceil(area/preset.MaxAreaPerHead)))
	}

	recommended := headsByGrid
	if headsByAreaMax > recommended {
		recommended = headsByAreaMax
	}

	return transport.SprinklerResponse{
		Results: transport.SprinklerResult{
			Area:             area,
			CountAlong:       countAlong,
			CountBetween:     countBetween,
			SpacingAlong:     spacingAlong,
			SpacingBetween:   spacingBetween,
			CoveragePerHead:  coveragePerHead,
			HeadsByGrid:      headsByGrid,
			HeadsByAreaMax:   headsByAreaMax,
			RecommendedHeads: recommended,
			PresetNote:       preset.Note,
		},
		Compliance: sprinklerCompliance(length > 0 && width > 0, hazard, coveragePerHead, preset.MaxAreaPerHead),
	}
}

func sprinklerCompliance(hasDims bool, hazard string, coveragePerHead, maxAreaPerHead float64) []transport.ComplianceCheck {
	dims := transport.ComplianceCheck{
		Level:    transport.CompliancePass,
		TitleEn:  "Room dimensions",
		TitleAr:  "أبعاد الغرفة",
		DetailEn: "Dimensions provided — head count calculated.",
		DetailAr: "تم إدخال الأبعاد — تم حساب العدد.",
	}
	if !hasDims {
		dims.Level = transport.ComplianceWarn
		dims.DetailEn = "Enter length and width to calculate."
		dims.DetailAr = "أدخل الطول والعرض لبدء الحساب."
	}

	coverageLevel := transport.ComplianceWarn
	if coveragePerHead <= maxAreaPerHead {
		coverageLevel = transport.CompliancePass
	}

	return []transport.ComplianceCheck{
		dims,
		{
			Level:    coverageLevel,
			TitleEn:  "Coverage per head",
			TitleAr:  "تغطية الرشاش الواحد",
			DetailEn: fmt.Sprintf("Current spacing covers ~%.1f m²/head. Planning limit for %s preset is ~%g m²/head (verify per project).", coveragePerHead, hazard, maxAreaPerHead),
			DetailAr: fmt.Sprintf("التباعد الحالي يغطي حوالي %.1f م²/رشاش. الحد التخطيطي لإعداد %s هو حوالي %g م²/رشاش (راجع المشروع).", coveragePerHead, hazard, maxAreaPerHead),
		},
	}
}

// =============================================================================
// Hose reel coverage
// =============================================================================

// HoseReels estimates reel counts from the site area and the effective reach
// circle of one reel. The utilization factor discounts the circle for overlap
// and obstructions.
func (s *Service) HoseReels(req transport.HoseReelRequest) transport.HoseReelResponse {
	cfg := s.presets.HoseReels

	area := req.SiteArea.Float64()

	radius := flexOr(req.HoseLength, 0)
	if radius == 0 {
		radius = cfg.DefaultHoseLength
	}
	radius = math.Max(1, radius)

	utilization := flexOr(req.Utilization, 0)
	if utilization == 0 {
		utilization = cfg.DefaultUtilization
	}
	utilization = numeric.Clamp(utilization, cfg.MinUtilization, cfg.MaxUtilization)

	coverage := math.Pi * radius * radius * utilization
	reels := 0
	if area > 0 {
		reels = int(math.Max(1, math.Ceil(area/coverage)))
	}

	return transport.HoseReelResponse{
		Results: transport.HoseReelResult{
			Area:            area,
			Radius:          radius,
			Utilization:     utilization,
			CoveragePerReel: coverage,
			Reels:           reels,
		},
		Compliance: hoseReelCompliance(area, radius),
	}
}

func hoseReelCompliance(area, radius float64) []transport.ComplianceCheck {
	siteArea := transport.ComplianceCheck{
		Level:    transport.CompliancePass,
		TitleEn:  "Site area",
		TitleAr:  "مساحة الموقع",
		DetailEn: "Area provided — reels estimate calculated.",
		DetailAr: "تم إدخال المساحة — تم حساب التقدير.",
	}
	if area <= 0 {
		siteArea.Level = transport.ComplianceWarn
		siteArea.DetailEn = "Enter site area to calculate."
		siteArea.DetailAr = "أدخل مساحة الموقع لبدء الحساب."
	}

	lengthLevel := transport.ComplianceWarn
	if radius >= 30 {
		lengthLevel = transport.CompliancePass
	}

	return []transport.ComplianceCheck{
		siteArea,
		{
			Level:    lengthLevel,
			TitleEn:  "Hose length",
			TitleAr:  "طول الخرطوم",
			DetailEn: "Confirm hose reel length and reach based on local civil defense requirements and obstruction layout.",
			DetailAr: "تأكد من طول خرطوم البكرة ومدى الوصول حسب اشتراطات الدفاع المدني وطبيعة العوائق.",
		},
	}
}

// =============================================================================
// Hydrant planning
// =============================================================================

// Hydrants estimates hydrant counts by distributing them along the accessible
// perimeter, using the building footprint as a perimeter proxy. The spacing
// criterion drives the minimum count.
func (s *Service) Hydrants(req transport.HydrantRequest) transport.HydrantResponse {
	buildingType := req.BuildingType
	rule, ok := s.presets.Hydrants[buildingType]
	if !ok {
		buildingType = "other"
		rule = s.presets.Hydrants[buildingType]
	}

	length := math.Max(0, req.Length.Float64())
	width := math.Max(0, req.Width.Float64())
	perimeter := 2 * (length + width)

	count := 0
	if perimeter > 0 {
		count = int(math.Max(1, math.Ceil(perimeter/rule.MaxSpacing)))
	}

	return transport.HydrantResponse{
		Results: transport.HydrantResult{
			PerimeterM:                perimeter,
			MaxSpacingM:               rule.MaxSpacing,
			MaxDistanceToRemotePointM: rule.MaxDistanceToRemotePoint,
			EstimatedHydrants:         count,
		},
		Compliance: hydrantCompliance(length > 0 && width > 0, rule),
	}
}

func hydrantCompliance(hasDims bool, rule hydrantRule) []transport.ComplianceCheck {
	footprint := transport.ComplianceCheck{
		Level:    transport.CompliancePass,
		TitleEn:  "Building footprint",
		TitleAr:  "أبعاد المبنى",
		DetailEn: "Footprint provided — perimeter and hydrant spacing estimate calculated.",
		DetailAr: "تم إدخال الأبعاد — تم حساب المحيط والتقدير.",
	}
	if !hasDims {
		footprint.Level = transport.ComplianceWarn
		footprint.DetailEn = "Enter building length and width to calculate."
		footprint.DetailAr = "أدخل طول وعرض المبنى لبدء الحساب."
	}

	return []transport.ComplianceCheck{
		footprint,
		{
			Level:    transport.ComplianceWarn,
			TitleEn:  "AHJ / local code verification",
			TitleAr:  "مراجعة اشتراطات الجهة المختصة",
			DetailEn: fmt.Sprintf("This is a planning estimate using common limits (max spacing ≈ %g m, max distance to remote point ≈ %g m). Final hydrant location and fire flow must be approved by the AHJ.", rule.MaxSpacing, rule.MaxDistanceToRemotePoint),
			DetailAr: fmt.Sprintf("هذا تقدير تخطيطي باستخدام حدود شائعة (أقصى تباعد ≈ %g م، أقصى مسافة للنقطة الأبعد ≈ %g م). يجب اعتماد المواقع والتصرف من الجهة المختصة.", rule.MaxSpacing, rule.MaxDistanceToRemotePoint),
		},
	}
}
