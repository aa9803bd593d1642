package scoring

import "math"

// Classification thresholds, checked from the top down.
const (
	thresholdThriving   = 90
	thresholdStrong     = 80
	thresholdStable     = 70
	thresholdBuilding   = 60
	thresholdStruggling = 50
)

// Aggregate sums section scores and converts the total to a rounded
// percentage of MaxTotalScore.
func Aggregate(scores []SectionScore) (float64, int) {
	var total float64
	for _, s := range scores {
		total += s.RawScore
	}
	percentage := int(math.Round(total / MaxTotalScore * 100))
	return total, percentage
}

// Classify maps a percentage to a health status.
func Classify(percentage int) HealthStatus {
	switch {
	case percentage >= thresholdThriving:
		return HealthThriving
	case percentage >= thresholdStrong:
		return HealthStrong
	case percentage >= thresholdStable:
		return HealthStable
	case percentage >= thresholdBuilding:
		return HealthBuilding
	case percentage >= thresholdStruggling:
		return HealthStruggling
	default:
		return HealthUrgent
	}
}

// ComputeAssessment scores a raw answer bag. It never fails: missing or
// unrecognized answers contribute nothing.
func ComputeAssessment(raw map[string]any) Assessment {
	answers := Normalize(raw)

	scores := []SectionScore{
		ScoreFoundation(answers),
		ScoreStrategicWheel(answers),
		ScoreProfitability(answers),
		ScoreEngines(answers),
		ScoreDisciplines(answers),
	}

	total, percentage := Aggregate(scores)
	return Assessment{
		TotalScore:    total,
		Percentage:    percentage,
		HealthStatus:  Classify(percentage),
		SectionScores: scores,
	}
}
