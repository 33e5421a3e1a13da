package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/limaJavier/schedulease/pkg/model"
	"github.com/limaJavier/schedulease/pkg/registration"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest QUERY",
		Short: "Suggest course codes matching a partial query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			client, err := application.requireClient("suggest")
			if err != nil {
				return err
			}

			ctx, cancel := interruptible()
			defer cancel()
			suggestions, err := client.Suggest(ctx, strings.TrimSpace(args[0]), application.term)
			if err != nil {
				return err
			}

			if flagJSON {
				return outputJSON(suggestions)
			}
			printSuggestions(os.Stdout, suggestions)
			return nil
		},
	}
}

func subjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subject SUBJECT",
		Short: "List the courses offered under a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			client, err := application.requireClient("subject")
			if err != nil {
				return err
			}

			ctx, cancel := interruptible()
			defer cancel()
			sections, err := client.SearchSubject(ctx, model.NormalizeCourseCode(args[0]), application.term)
			if err != nil {
				return err
			}

			courses := lo.UniqBy(lo.Map(sections, func(section registration.RawSection, _ int) registration.Suggestion {
				return registration.Suggestion{Code: section.CourseCode(), Description: section.CourseTitle}
			}), func(suggestion registration.Suggestion) string { return suggestion.Code })

			if flagJSON {
				return outputJSON(courses)
			}
			printSuggestions(os.Stdout, courses)
			return nil
		},
	}
}

func outputJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
