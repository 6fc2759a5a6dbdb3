package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newthinker/stratix/internal/assessment"
)

var assessCmd = &cobra.Command{
	Use:   "assess [answers.json]",
	Short: "Score a skill assessment from a JSON answer file",
	Long: `Score an answer file against the questionnaire and print the
resulting level. The file maps question IDs to answer values, e.g.
{"1": "c", "2": "d", "3": "b", "4": "c", "5": "a"}.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

func init() {
	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading answer file: %w", err)
	}

	var answers assessment.AnswerSet
	if err := json.Unmarshal(data, &answers); err != nil {
		return fmt.Errorf("parsing answer file: %w", err)
	}

	level := assessment.Score(answers)
	fmt.Printf("Questions answered: %d/%d\n", len(answers), len(assessment.Questions))
	fmt.Printf("Level: %d\n", level)

	return nil
}
