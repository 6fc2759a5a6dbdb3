package assessment

// Option is one selectable answer for a question. Value is a single-letter
// key unique within the question; Score contributes 0-3 points.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Question is a fixed questionnaire entry. The table below is static
// configuration; it is never mutated at runtime.
type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"question"`
	Options []Option `json:"options"`
}

// Questions is the fixed skill-assessment questionnaire.
var Questions = []Question{
	{
		ID:   1,
		Text: "What percentage of your trading capital should you risk on a single trade?",
		Options: []Option{
			{Value: "a", Text: "25-50% - Go big or go home", Score: 0},
			{Value: "b", Text: "10-15% - Moderate risk for moderate reward", Score: 1},
			{Value: "c", Text: "1-2% - Preserve capital, consistent growth", Score: 3},
			{Value: "d", Text: "0.5% or less - Ultra conservative", Score: 2},
		},
	},
	{
		ID:   2,
		Text: "A trade is going against you. What's your exit strategy?",
		Options: []Option{
			{Value: "a", Text: "Hold and hope it recovers", Score: 0},
			{Value: "b", Text: "Double down to average the entry price", Score: 0},
			{Value: "c", Text: "Exit at my predetermined stop loss", Score: 3},
			{Value: "d", Text: "Exit immediately at any loss", Score: 1},
		},
	},
	{
		ID:   3,
		Text: "How do you determine your position size?",
		Options: []Option{
			{Value: "a", Text: "All-in on high conviction trades", Score: 0},
			{Value: "b", Text: "Based on how much I want to make", Score: 1},
			{Value: "c", Text: "Based on my maximum acceptable loss", Score: 3},
			{Value: "d", Text: "Random amount each time", Score: 0},
		},
	},
	{
		ID:   4,
		Text: "You've had 3 losing trades in a row. What do you do?",
		Options: []Option{
			{Value: "a", Text: "Increase size to make back losses quickly", Score: 0},
			{Value: "b", Text: "Keep trading with the same size", Score: 1},
			{Value: "c", Text: "Stop, review my journal, identify issues", Score: 3},
			{Value: "d", Text: "Stop trading for the week", Score: 2},
		},
	},
	{
		ID:   5,
		Text: "What's the ideal risk-to-reward ratio for a trade?",
		Options: []Option{
			{Value: "a", Text: "1:1 - Equal risk and reward", Score: 1},
			{Value: "b", Text: "1:2 or higher - Risk less than potential gain", Score: 3},
			{Value: "c", Text: "2:1 - Risk more for smaller gains", Score: 0},
			{Value: "d", Text: "Doesn't matter if the trade is a winner", Score: 0},
		},
	},
}

// MaxScore returns the highest total attainable from the question table.
// Derived from the table so the scale follows the configured question set.
func MaxScore(questions []Question) int {
	total := 0
	for _, q := range questions {
		best := 0
		for _, o := range q.Options {
			if o.Score > best {
				best = o.Score
			}
		}
		total += best
	}
	return total
}
