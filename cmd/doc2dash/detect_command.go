package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"doc2dash/internal/logging"
	"doc2dash/internal/parsers"
)

func newDetectCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:         "detect SOURCE",
		Short:       "Report which parser recognizes SOURCE",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logger, err := logging.New(logging.Options{Level: level, Writer: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			source, err := resolveSource(args[0])
			if err != nil {
				return err
			}
			format, project, err := parsers.Default().Detect(source, logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Parser:  %s\n", format.Name)
			fmt.Fprintf(out, "Project: %s\n", docsetName("", project, source))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Be verbose")
	return cmd
}
