package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	var configFlag string
	var opts convertOptions

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "doc2dash [flags] SOURCE",
		Short:         "Convert docs from SOURCE to Dash's docset format",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, args[0], opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.name, "name", "n", "", "Name docset explicitly; defaults to the project name the parser detects")
	flags.StringVarP(&opts.destination, "destination", "d", "", "Destination directory for the docset (default from config, \".\"); ignored with --add-to-global")
	flags.BoolVarP(&opts.force, "force", "f", false, "Overwrite the docset if it already exists")
	flags.StringVarP(&opts.icon, "icon", "i", "", "Add PNG icon to docset")
	flags.StringVar(&opts.icon2x, "icon-2x", "", "Add a 2x-sized PNG icon for hires displays to docset")
	flags.StringVarP(&opts.indexPage, "index-page", "I", "", "File shown when the docset is opened in Dash, relative to SOURCE")
	flags.BoolVarP(&opts.addToDash, "add-to-dash", "a", false, "Add the resulting docset to Dash (macOS only)")
	flags.BoolVarP(&opts.addToGlobal, "add-to-global", "A", false, "Create the docset in the global directory and add it to Dash (macOS only)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Limit output to errors and warnings")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Be verbose")
	flags.BoolVarP(&opts.enableJS, "enable-js", "j", false, "Enable bundled and external JavaScript")
	flags.StringVarP(&opts.onlineRedirectURL, "online-redirect-url", "u", "", "Base URL of the online documentation")
	flags.StringVar(&opts.playgroundURL, "playground-url", "", "URL of a docset playground")
	flags.StringVar(&opts.parser, "parser", "", "Parser to use instead of auto-detection (intersphinx)")
	flags.StringVar(&opts.fullTextSearch, "full-text-search", "", "Full-text search: on, off, or forbidden (default from config, off)")
	rootCmd.MarkFlagsMutuallyExclusive("quiet", "verbose")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDetectCommand())

	return rootCmd
}
