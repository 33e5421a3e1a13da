package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagTerm     string
	flagFixtures string
	flagJSON     bool
)

func main() {
	log.SetFlags(0)

	rootCmd := &cobra.Command{
		Use:   "schedulease",
		Short: "Generate conflict-free class schedules from registration listings",
		Long: `schedulease fetches the sections of every requested course, infers which
labs and discussions belong to which lecture, and lists every combination of
sections whose meetings do not overlap.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config.json (defaults to the one next to the executable)")
	rootCmd.PersistentFlags().StringVar(&flagTerm, "term", "", "Registration term code, e.g. 202540 (defaults to the configured term)")
	rootCmd.PersistentFlags().StringVar(&flagFixtures, "fixtures", "", "Read search responses from <dir>/<COURSE>.json instead of the registration server")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(sectionsCmd())
	rootCmd.AddCommand(suggestCmd())
	rootCmd.AddCommand(subjectCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
