package scoring

import (
	"math"
	"sort"
)

const recommendationCount = 3

// Recommendation pairs a weak section with a canned next action.
type Recommendation struct {
	Section    Section `json:"section"`
	Percentage int     `json:"percentage"`
	Advice     string  `json:"advice"`
}

var sectionAdvice = map[Section]string{
	SectionFoundation:     "Stabilize the fundamentals: pay yourself consistently, reduce owner dependency and build predictable recurring revenue.",
	SectionStrategicWheel: "Complete the Strategic Wheel: clarify vision, core values, target market and your unique selling proposition.",
	SectionProfitability:  "Review pricing and margins by product, control costs monthly and build a cash reserve.",
	SectionEngines:        "Document and systematize the Attract, Convert and Deliver engines so they run without you.",
	SectionDisciplines:    "Adopt the business disciplines one at a time, starting with a weekly meeting rhythm and a scorecard.",
}

// Recommend returns advice for the weakest sections by raw/max ratio. Ties
// keep section order.
func Recommend(scores []SectionScore) []Recommendation {
	ranked := make([]SectionScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Ratio() < ranked[j].Ratio()
	})

	n := recommendationCount
	if len(ranked) < n {
		n = len(ranked)
	}

	out := make([]Recommendation, 0, n)
	for _, s := range ranked[:n] {
		out = append(out, Recommendation{
			Section:    s.Category,
			Percentage: int(math.Round(s.Ratio() * 100)),
			Advice:     sectionAdvice[s.Category],
		})
	}
	return out
}
