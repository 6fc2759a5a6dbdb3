package assessment

import "testing"

// answersWithScore picks, for each question, an option carrying the given
// score, skipping questions that have no such option.
func answersWithScore(t *testing.T, score int) AnswerSet {
	t.Helper()
	answers := AnswerSet{}
	for _, q := range Questions {
		for _, o := range q.Options {
			if o.Score == score {
				answers[q.ID] = o.Value
				break
			}
		}
	}
	return answers
}

func TestMaxScore(t *testing.T) {
	if got := MaxScore(Questions); got != 15 {
		t.Errorf("MaxScore = %d, want 15", got)
	}
}

func TestScore_AllBest(t *testing.T) {
	answers := answersWithScore(t, 3)
	if len(answers) != len(Questions) {
		t.Fatalf("every question should offer a 3-point option")
	}
	if got := Score(answers); got != 8 {
		t.Errorf("Score = %d, want 8", got)
	}
}

func TestScore_AllWorst(t *testing.T) {
	answers := answersWithScore(t, 0)
	if got := Score(answers); got != 1 {
		t.Errorf("Score = %d, want 1", got)
	}
}

func TestScore_Empty(t *testing.T) {
	if got := Score(AnswerSet{}); got != 1 {
		t.Errorf("Score(empty) = %d, want 1", got)
	}
	if got := Score(nil); got != 1 {
		t.Errorf("Score(nil) = %d, want 1", got)
	}
}

func TestScore_Boundaries(t *testing.T) {
	// q1:c=3, q2:c=3, q3:c=3 -> total 9, pct 0.60, inclusive boundary
	nine := AnswerSet{1: "c", 2: "c", 3: "c"}
	if got := Score(nine); got != 5 {
		t.Errorf("Score(total=9) = %d, want 5", got)
	}

	// q1:c=3, q2:c=3, q3:b=1, q4:b=1, q5:a=1 -> total 8, pct 0.5333
	eight := AnswerSet{1: "c", 2: "c", 3: "b", 4: "b", 5: "a"}
	if got := Score(eight); got != 4 {
		t.Errorf("Score(total=8) = %d, want 4", got)
	}
}

func TestScore_UnknownValuesIgnored(t *testing.T) {
	answers := AnswerSet{1: "z", 2: "c", 99: "a"}
	// Only q2 matches (3 points), pct 0.20 -> level 2.
	if got := Score(answers); got != 2 {
		t.Errorf("Score = %d, want 2", got)
	}
}

func TestScore_Deterministic(t *testing.T) {
	answers := AnswerSet{1: "b", 2: "c", 3: "c", 4: "d", 5: "b"}
	first := Score(answers)
	for i := 0; i < 100; i++ {
		if got := Score(answers); got != first {
			t.Fatalf("Score not deterministic: %d then %d", first, got)
		}
	}
}

// TestScore_Bounds enumerates every possible answer set over the fixed
// questionnaire (each question answered a-d or left out) and checks the
// output stays within the reachable level set. Level 7 must never appear.
func TestScore_Bounds(t *testing.T) {
	reachable := map[Level]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 8: true}
	choices := []string{"", "a", "b", "c", "d"}

	var walk func(i int, answers AnswerSet)
	walk = func(i int, answers AnswerSet) {
		if i == len(Questions) {
			got := Score(answers)
			if !reachable[got] {
				t.Fatalf("Score(%v) = %d, outside reachable set", answers, got)
			}
			return
		}
		for _, c := range choices {
			if c == "" {
				walk(i+1, answers)
				continue
			}
			answers[Questions[i].ID] = c
			walk(i+1, answers)
			delete(answers, Questions[i].ID)
		}
	}
	walk(0, AnswerSet{})
}

// TestScore_Monotonic replaces single answers with strictly higher-scoring
// options and checks the level never decreases.
func TestScore_Monotonic(t *testing.T) {
	base := AnswerSet{1: "a", 2: "a", 3: "a", 4: "a", 5: "a"}

	for _, q := range Questions {
		for _, lo := range q.Options {
			for _, hi := range q.Options {
				if hi.Score <= lo.Score {
					continue
				}
				answers := AnswerSet{}
				for k, v := range base {
					answers[k] = v
				}
				answers[q.ID] = lo.Value
				before := Score(answers)
				answers[q.ID] = hi.Value
				after := Score(answers)
				if after < before {
					t.Errorf("q%d %s->%s: level dropped %d -> %d",
						q.ID, lo.Value, hi.Value, before, after)
				}
			}
		}
	}
}

func TestScoreAgainst_DerivedMax(t *testing.T) {
	// A two-question table has a 6-point scale; a perfect run should
	// still land on level 8 because the maximum is table-derived.
	table := []Question{
		{ID: 1, Options: []Option{{Value: "a", Score: 3}, {Value: "b", Score: 0}}},
		{ID: 2, Options: []Option{{Value: "a", Score: 3}, {Value: "b", Score: 1}}},
	}
	if got := ScoreAgainst(table, AnswerSet{1: "a", 2: "a"}); got != 8 {
		t.Errorf("ScoreAgainst(perfect) = %d, want 8", got)
	}
	if got := ScoreAgainst(table, AnswerSet{2: "b"}); got != 2 {
		t.Errorf("ScoreAgainst(1/6) = %d, want 2", got)
	}
}

func TestQuestionTable_Shape(t *testing.T) {
	if len(Questions) != 5 {
		t.Fatalf("question table has %d entries, want 5", len(Questions))
	}
	for _, q := range Questions {
		if len(q.Options) != 4 {
			t.Errorf("q%d has %d options, want 4", q.ID, len(q.Options))
		}
		seen := map[string]bool{}
		for _, o := range q.Options {
			if seen[o.Value] {
				t.Errorf("q%d has duplicate option value %q", q.ID, o.Value)
			}
			seen[o.Value] = true
			if o.Score < 0 || o.Score > 3 {
				t.Errorf("q%d option %s score %d out of range", q.ID, o.Value, o.Score)
			}
		}
	}
}
