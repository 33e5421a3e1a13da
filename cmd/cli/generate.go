package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/limaJavier/schedulease/pkg/export"
	"github.com/limaJavier/schedulease/pkg/model"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func generateCmd() *cobra.Command {
	var (
		flagOut      string
		flagICS      string
		flagSchedule int
		flagCSV      string
		flagLimit    int
	)

	cmd := &cobra.Command{
		Use:   "generate COURSE...",
		Short: "List every conflict-free schedule for the given courses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}

			courseCodes := lo.Map(args, func(arg string, _ int) string { return model.NormalizeCourseCode(arg) })

			ctx, cancel := interruptible()
			defer cancel()
			started := time.Now()
			result := application.enumerator().Enumerate(ctx, courseCodes, application.term)
			elapsed := time.Since(started)

			//** Output
			switch {
			case flagJSON || flagOut != "":
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("an error occurred while building output json: %w", err)
				}
				if flagOut == "" {
					fmt.Println(string(data))
				} else if err := os.WriteFile(flagOut, data, 0666); err != nil {
					return fmt.Errorf("an error occurred while writing to the output file: %w", err)
				}
			default:
				printResult(os.Stdout, result, flagLimit)
				fmt.Printf("%s\n", dim(fmt.Sprintf("Finished in %v", elapsed.Round(time.Millisecond))))
			}

			if !result.Success {
				return fmt.Errorf("%v", result.Error)
			}

			//** Exports
			if flagCSV != "" {
				if err := writeCSV(flagCSV, result.ValidSchedules); err != nil {
					return err
				}
			}
			if flagICS != "" {
				if err := writeCalendar(flagICS, result.ValidSchedules, flagSchedule, application); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagOut, "out", "", "Write the JSON result to this file instead of the Standard Output")
	cmd.Flags().StringVar(&flagICS, "ics", "", "Export one schedule as an iCalendar file")
	cmd.Flags().IntVar(&flagSchedule, "schedule", 1, "Schedule id exported by --ics")
	cmd.Flags().StringVar(&flagCSV, "csv", "", "Export every valid schedule as CSV rows")
	cmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of schedules printed (0 prints all)")

	return cmd
}

func writeCSV(file string, schedules []model.Schedule) error {
	out, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("cannot create %v: %w", file, err)
	}

	if err := export.WriteCSV(out, schedules); err != nil {
		out.Close()
		return fmt.Errorf("cannot write %v: %w", file, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("cannot write %v: %w", file, err)
	}
	fmt.Printf("%s %s\n", green("CSV written to"), bold(file))
	return nil
}

func writeCalendar(file string, schedules []model.Schedule, id int, application *app) error {
	schedule, ok := lo.Find(schedules, func(schedule model.Schedule) bool { return schedule.ID == id })
	if !ok {
		return fmt.Errorf("schedule %d does not exist (%d valid schedules)", id, len(schedules))
	}

	location, err := time.LoadLocation(application.config.Calendar.Location)
	if err != nil {
		return err
	}

	document, report, err := export.Calendar(schedule, export.CalendarOptions{
		Reference: time.Now(),
		Weeks:     application.config.Calendar.Weeks,
		Location:  location,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, []byte(document), 0666); err != nil {
		return fmt.Errorf("cannot write %v: %w", file, err)
	}

	fmt.Printf("%s %s (%d events)\n", green("Calendar written to"), bold(file), report.Events)
	if len(report.Skipped) > 0 {
		fmt.Printf("%s %v\n", yellow("Sections without a meeting time were left out:"), report.Skipped)
	}
	return nil
}
