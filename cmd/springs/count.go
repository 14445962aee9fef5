package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/timewinder-dev/springs/model"
)

var (
	countRepeat   int
	countStrategy string
)

var countCmd = &cobra.Command{
	Use:   "count RECORD...",
	Short: "Count the arrangements of individual records",
	Example: `  springs count "???.### 1,1,3"
  springs count --repeat 5 --strategy interval "?###???????? 3,2,1"`,
	Args: cobra.MinimumNArgs(1),
	Run:  countCommand,
}

func init() {
	countCmd.Flags().IntVar(&countRepeat, "repeat", 1, "Unfold each record this many times before counting")
	countCmd.Flags().StringVar(&countStrategy, "strategy", "interval", "Counting algorithm (backtrack or interval)")
}

func countCommand(cmd *cobra.Command, args []string) {
	strategy, err := model.ParseStrategy(countStrategy)
	if err != nil {
		log.Fatal().Err(err).Msg("Bad strategy")
	}
	for i, arg := range args {
		job := model.NewJob(i+1, arg, strategy, countRepeat)
		result := model.RunJob(0, job)
		if result.Err != nil {
			log.Fatal().Err(result.Err).Msg("Couldn't count record")
		}
		fmt.Printf("%s\t%d\n", job.Line, result.Count)
	}
}
