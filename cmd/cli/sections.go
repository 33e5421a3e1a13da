package main

import (
	"os"

	"github.com/limaJavier/schedulease/pkg/model"
	"github.com/spf13/cobra"
)

func sectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections COURSE",
		Short: "Show how the sections of one course were classified and linked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}

			ctx, cancel := interruptible()
			defer cancel()
			course, err := application.enumerator().AnalyzeCourse(ctx, model.NormalizeCourseCode(args[0]), application.term)
			if err != nil {
				return err
			}

			if flagJSON {
				return outputJSON(course)
			}

			printCourse(os.Stdout, course)
			return nil
		},
	}
}
