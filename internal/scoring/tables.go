package scoring

import "strconv"

// pointTable maps an answer token to the points it earns. Tokens absent from
// the table earn nothing.
type pointTable map[string]float64

func (t pointTable) points(token string) float64 {
	return t[token]
}

// tableQuestion binds a question key to its table.
type tableQuestion struct {
	key   string
	table pointTable
}

// Foundation.

var revenueStage = pointTable{
	"under_250k": 0,
	"250k_500k":  2,
	"500k_1m":    4,
	"1m_2.5m":    6,
	"2.5m_10m":   8,
	"10m_plus":   10,
}

var profitMargin = pointTable{
	"losing_money":  0,
	"break_even":    2,
	"1_5_percent":   4,
	"5_10_percent":  6,
	"10_20_percent": 8,
	"over_20":       10,
}

var ownerSalary = pointTable{
	"no_salary":           0,
	"below_market":        2,
	"market_inconsistent": 3,
	"market_rate":         4,
	"above_market":        5,
}

var ownerDependency = pointTable{
	"completely_dependent": 0,
	"very_dependent":       2,
	"somewhat_dependent":   4,
	"independent":          5,
}

var revenuePredictability = pointTable{
	"unpredictable":        0,
	"somewhat_predictable": 3,
	"predictable":          7,
	"very_predictable":     10,
}

var foundationQuestions = []tableQuestion{
	{"q1", revenueStage},
	{"q2", profitMargin},
	{"q3", ownerSalary},
	{"q5", ownerDependency},
	{"q6", revenuePredictability},
}

// Strategic Wheel.

// maturityLevels is shared by every Strategic Wheel question. Several answer
// vocabularies are used across the questions; each tops out at 5.
var maturityLevels = pointTable{
	// clarity
	"very_unclear":   0,
	"unclear":        1,
	"somewhat_clear": 2,
	"mostly_clear":   3,
	"clear":          4,
	"crystal_clear":  5,

	// alignment
	"not_aligned":       0,
	"slightly_aligned":  1,
	"partially_aligned": 2,
	"mostly_aligned":    4,
	"fully_aligned":     5,

	// frequency
	"never":     0,
	"rarely":    1,
	"sometimes": 2,
	"often":     4,
	"always":    5,

	// documentation
	"not_defined":         0,
	"in_my_head":          1,
	"informal":            2,
	"documented":          4,
	"documented_and_used": 5,

	// confidence
	"not_confident":      0,
	"slightly_confident": 1,
	"somewhat_confident": 2,
	"confident":          4,
	"very_confident":     5,
}

var uniqueSellingProposition = pointTable{
	"no_usp":     0,
	"not_sure":   1,
	"generic":    2,
	"clear_usp":  4,
	"proven_usp": 5,
}

const uspQuestion = "q11"

var strategicWheelQuestions = questionRange(7, 20)

// Profitability.

var pricingReview = pointTable{
	"never":           0,
	"every_few_years": 1,
	"annually":        3,
	"quarterly":       5,
}

var marginKnowledge = pointTable{
	"dont_know":        0,
	"rough_idea":       3,
	"know_overall":     6,
	"know_by_product":  8,
	"know_by_customer": 10,
}

var costControl = pointTable{
	"no_tracking":       0,
	"annual_review":     2,
	"monthly_review":    4,
	"active_management": 5,
}

var profitFirst = pointTable{
	"no":          0,
	"considering": 1,
	"partially":   3,
	"yes":         5,
}

var cashReserves = pointTable{
	"none":          0,
	"under_1_month": 1,
	"1_3_months":    3,
	"3_6_months":    4,
	"over_6_months": 5,
}

var profitabilityQuestions = []tableQuestion{
	{"q22", pricingReview},
	{"q23", marginKnowledge},
	{"q24", costControl},
	{"q25", profitFirst},
	{"q26", cashReserves},
}

// Engines.

var idealCustomer = pointTable{
	"not_defined":      0,
	"vague":            1,
	"defined":          3,
	"defined_and_used": 5,
}

var leadSources = pointTable{
	"none":           0,
	"referrals_only": 1,
	"two_channels":   3,
	"three_plus":     4,
	"diversified":    5,
}

var marketingBudget = pointTable{
	"none":      0,
	"ad_hoc":    1,
	"fixed":     3,
	"roi_based": 5,
}

var leadTracking = pointTable{
	"not_tracked": 0,
	"spreadsheet": 2,
	"crm_partial": 3,
	"crm_full":    5,
}

var attractQuestions = []tableQuestion{
	{"q27", idealCustomer},
	{"q28", leadSources},
	{"q31", marketingBudget},
	{"q35", leadTracking},
}

// processMaturity is shared by the sales, delivery and team process questions.
var processMaturity = pointTable{
	"none":         0,
	"informal":     1,
	"documented":   3,
	"systematized": 5,
}

var processQuestions = []string{"q29", "q32", "q37"}

// yesCountQuestions hold composite answers; each "yes" inside earns yesPoints.
var yesCountQuestions = []string{"q30", "q33", "q34", "q39", "q42", "q45", "q49"}

const yesPoints = 1.25

var conversionRate = pointTable{
	"dont_know": 0,
	"under_10":  1,
	"10_25":     3,
	"25_50":     4,
	"over_50":   5,
}

var customerSatisfaction = pointTable{
	"dont_measure":   0,
	"mostly_unhappy": 1,
	"mixed":          2,
	"satisfied":      4,
	"delighted":      5,
}

var measurementPractice = pointTable{
	"none":      0,
	"gut_feel":  1,
	"some_kpis": 2,
	"dashboard": 3,
}

var talentProcess = pointTable{
	"none":       0,
	"ad_hoc":     1,
	"defined":    2,
	"scorecards": 3,
}

var reviewProcess = pointTable{
	"none":      0,
	"annual":    1,
	"quarterly": 2,
	"monthly":   3,
}

var documentationLevel = pointTable{
	"none":     0,
	"some":     1,
	"most":     2,
	"complete": 3,
}

var auditCadence = pointTable{
	"never":     0,
	"annually":  1,
	"quarterly": 2,
}

var budgeting = pointTable{
	"none":           0,
	"annual":         1,
	"annual_tracked": 2,
	"rolling":        3,
}

var cashFlowForecast = pointTable{
	"none":      0,
	"monthly":   1,
	"quarterly": 2,
	"13_week":   3,
}

var pricingSophistication = pointTable{
	"match_competitors": 0,
	"cost_plus":         1,
	"tiered":            2,
	"value_based":       3,
}

var engineTokenQuestions = []tableQuestion{
	{"q36", conversionRate},
	{"q38", customerSatisfaction},
	{"q40", measurementPractice},
	{"q41", talentProcess},
	{"q43", reviewProcess},
	{"q44", documentationLevel},
	{"q46", auditCadence},
	{"q47", budgeting},
	{"q48", cashFlowForecast},
	{"q50", pricingSophistication},
}

// Disciplines.

const disciplineCount = 12

var disciplineKeys = disciplineRange(disciplineCount)

func questionRange(from, to int) []string {
	keys := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		keys = append(keys, "q"+strconv.Itoa(i))
	}
	return keys
}

func disciplineRange(n int) []string {
	keys := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		keys = append(keys, "discipline_"+strconv.Itoa(i))
	}
	return keys
}
