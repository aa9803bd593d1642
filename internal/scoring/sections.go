package scoring

// ScoreFoundation scores revenue stage, margin, owner pay, owner dependency
// and revenue predictability.
func ScoreFoundation(a Answers) SectionScore {
	return newSectionScore(SectionFoundation, sumTables(a, foundationQuestions), MaxFoundation)
}

// ScoreStrategicWheel scores q7..q20 against the shared maturity table. The
// USP question q11 is scored only by its own table. Fourteen questions at five
// points each can exceed the section max; the excess saturates.
func ScoreStrategicWheel(a Answers) SectionScore {
	var total float64
	for _, key := range strategicWheelQuestions {
		if key == uspQuestion {
			total += uniqueSellingProposition.points(a.Token(key))
			continue
		}
		total += maturityLevels.points(a.Token(key))
	}
	return newSectionScore(SectionStrategicWheel, total, MaxStrategicWheel)
}

// ScoreProfitability scores q22..q26.
func ScoreProfitability(a Answers) SectionScore {
	return newSectionScore(SectionProfitability, sumTables(a, profitabilityQuestions), MaxProfitability)
}

// ScoreEngines scores the Attract, Convert, Deliver, People, Systems and
// Money engine questions.
func ScoreEngines(a Answers) SectionScore {
	total := sumTables(a, attractQuestions)

	for _, key := range processQuestions {
		total += processMaturity.points(a.Token(key))
	}
	for _, key := range yesCountQuestions {
		total += yesCountPoints(a, key)
	}

	total += sumTables(a, engineTokenQuestions)
	return newSectionScore(SectionEngines, total, MaxEngines)
}

// ScoreDisciplines awards one point per "yes" in each discipline answer.
func ScoreDisciplines(a Answers) SectionScore {
	var total float64
	for _, key := range disciplineKeys {
		total += float64(a.countYes(key))
	}
	return newSectionScore(SectionDisciplines, total, MaxDisciplines)
}

func yesCountPoints(a Answers, key string) float64 {
	return float64(a.countYes(key)) * yesPoints
}

func sumTables(a Answers, questions []tableQuestion) float64 {
	var total float64
	for _, q := range questions {
		total += q.table.points(a.Token(q.key))
	}
	return total
}
