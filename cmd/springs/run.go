package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/timewinder-dev/springs/model"
)

var (
	debugFlag     bool
	keepGoing     bool
	statsFlag     bool
	progressFlag  bool
	specFlag      string
	workersFlag   int
	repeatFlag    int
	cacheSizeFlag int
)

var runCmd = &cobra.Command{
	Use:   "run [INPUT]",
	Short: "Count every record in an input file and print both sums",
	Args:  cobra.MaximumNArgs(1),
	Run:   runCommand,
}

func init() {
	runCmd.Flags().BoolVar(&debugFlag, "debug", false, "Print each job as a worker picks it up")
	runCmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Keep counting after the first failed record and report every failure")
	runCmd.Flags().BoolVar(&statsFlag, "stats", false, "Print run statistics")
	runCmd.Flags().BoolVar(&progressFlag, "progress", false, "Show job progress")
	runCmd.Flags().StringVar(&specFlag, "spec", "", "TOML run spec (input file and run settings)")
	runCmd.Flags().IntVar(&workersFlag, "workers", 0, "Worker pool size (default from spec, or 32)")
	runCmd.Flags().IntVar(&repeatFlag, "repeat", 0, "Unfold factor for the second sum (default from spec, or 5)")
	runCmd.Flags().IntVar(&cacheSizeFlag, "cache-size", 0, "Number of finished results to keep")
}

func loadSpec(args []string) *model.Spec {
	spec := &model.Spec{}
	if specFlag != "" {
		s, err := model.LoadSpecFromFile(specFlag)
		if err != nil {
			log.Fatal().Err(err).Str("spec", specFlag).Msg("Couldn't load spec file")
		}
		spec = s
	}
	if len(args) > 0 {
		spec.Input.File = args[0]
	}
	if spec.Input.File == "" {
		log.Fatal().Msg("No input file: pass INPUT or --spec")
	}
	if workersFlag != 0 {
		spec.Run.Workers = workersFlag
	}
	if repeatFlag != 0 {
		spec.Run.Repeat = repeatFlag
	}
	if cacheSizeFlag != 0 {
		spec.Run.CacheSize = cacheSizeFlag
	}
	if keepGoing {
		spec.Run.KeepGoing = true
	}
	return spec
}

func runCommand(cmd *cobra.Command, args []string) {
	spec := loadSpec(args)
	lines, err := spec.ReadInput()
	if err != nil {
		log.Fatal().Err(err).Str("input", spec.Input.File).Msg("Couldn't read input")
	}
	exec, err := spec.BuildExecutor(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't build executor")
	}
	if debugFlag {
		exec.DebugWriter = os.Stderr
	}
	if progressFlag {
		exec.Reporter = &model.ColorReporter{Writer: os.Stderr}
	}
	err = exec.Initialize()
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't init executor")
	}

	fmt.Fprintln(os.Stderr, color.Cyan.Sprintf("Counting %d records with %d workers...", countRecords(lines), exec.Workers))

	answer, err := exec.Solve(context.Background(), lines)
	for _, r := range []*model.RunResult{answer.Part1, answer.Part2} {
		if r == nil {
			continue
		}
		if len(r.Failures) > 0 {
			fmt.Fprint(os.Stderr, model.FormatAllFailures(r.Failures))
		}
		if statsFlag {
			fmt.Fprint(os.Stderr, model.FormatStatistics(r.Statistics))
		}
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Counting failed")
	}

	fmt.Printf("Part 1: %d\n", answer.Part1.Sum)
	fmt.Printf("Part 2: %d\n", answer.Part2.Sum)

	if err := spec.Check(answer); err != nil {
		log.Fatal().Err(err).Msg("Answer does not match spec")
	}
	if spec.Expect != nil {
		fmt.Fprintln(os.Stderr, color.Green.Sprint("✓ Answers match the spec's expectations"))
	}
}

func countRecords(lines []string) int {
	n := 0
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			n++
		}
	}
	return n
}
