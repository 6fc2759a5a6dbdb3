package assessment

// AnswerSet maps a question ID to the chosen option value. It may omit any
// subset of the questionnaire; missing or unmatched answers contribute zero.
type AnswerSet map[int]string

// Level is a skill level in [1,8]. The scoring ladder never produces 7:
// the thresholds jump from 0.75 (level 6) to 0.90 (level 8). This matches
// the shipped product behavior and is left as-is pending a product decision.
type Level int

// Score maps an answer set to a skill level. It is a pure function of its
// input and the fixed question table, and it never fails: absent or invalid
// answers degrade to a zero contribution.
func Score(answers AnswerSet) Level {
	return ScoreAgainst(Questions, answers)
}

// ScoreAgainst scores answers against an explicit question table.
func ScoreAgainst(questions []Question, answers AnswerSet) Level {
	total := 0
	for _, q := range questions {
		chosen, ok := answers[q.ID]
		if !ok {
			continue
		}
		for _, o := range q.Options {
			if o.Value == chosen {
				total += o.Score
				break
			}
		}
	}

	max := MaxScore(questions)
	if max <= 0 {
		return 1
	}
	pct := float64(total) / float64(max)

	switch {
	case pct >= 0.90:
		return 8
	case pct >= 0.75:
		return 6
	case pct >= 0.60:
		return 5
	case pct >= 0.45:
		return 4
	case pct >= 0.30:
		return 3
	case pct >= 0.15:
		return 2
	default:
		return 1
	}
}
