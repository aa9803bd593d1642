package scoring

// Section identifies one scored category of the assessment.
type Section string

const (
	SectionFoundation     Section = "foundation"
	SectionStrategicWheel Section = "strategic_wheel"
	SectionProfitability  Section = "profitability"
	SectionEngines        Section = "engines"
	SectionDisciplines    Section = "disciplines"
)

// Maximum points per section. They sum to MaxTotalScore.
const (
	MaxFoundation     = 40.0
	MaxStrategicWheel = 60.0
	MaxProfitability  = 30.0
	MaxEngines        = 100.0
	MaxDisciplines    = 60.0

	MaxTotalScore = MaxFoundation + MaxStrategicWheel + MaxProfitability + MaxEngines + MaxDisciplines
)

// Sections lists every section in report order.
var Sections = []Section{
	SectionFoundation,
	SectionStrategicWheel,
	SectionProfitability,
	SectionEngines,
	SectionDisciplines,
}

// HealthStatus is the ordinal business health label derived from the percentage.
type HealthStatus string

const (
	HealthThriving   HealthStatus = "THRIVING"
	HealthStrong     HealthStatus = "STRONG"
	HealthStable     HealthStatus = "STABLE"
	HealthBuilding   HealthStatus = "BUILDING"
	HealthStruggling HealthStatus = "STRUGGLING"
	HealthUrgent     HealthStatus = "URGENT"
)

// SectionScore is the clamped result of one section scorer.
type SectionScore struct {
	Category Section `json:"category"`
	RawScore float64 `json:"rawScore"`
	MaxScore float64 `json:"maxScore"`
}

// Ratio returns RawScore/MaxScore, or 0 for a zero max.
func (s SectionScore) Ratio() float64 {
	if s.MaxScore <= 0 {
		return 0
	}
	return s.RawScore / s.MaxScore
}

// Assessment is the computed outcome of one questionnaire.
type Assessment struct {
	TotalScore    float64        `json:"totalScore"`
	Percentage    int            `json:"percentage"`
	HealthStatus  HealthStatus   `json:"healthStatus"`
	SectionScores []SectionScore `json:"sectionScores"`
}

func newSectionScore(section Section, raw, max float64) SectionScore {
	return SectionScore{
		Category: section,
		RawScore: clamp(raw, 0, max),
		MaxScore: max,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
