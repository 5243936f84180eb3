package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"doc2dash/internal/config"
	"doc2dash/internal/convert"
	"doc2dash/internal/docset"
	"doc2dash/internal/logging"
	"doc2dash/internal/parsers"
	"doc2dash/internal/patcher"
	"doc2dash/internal/progress"
)

type convertOptions struct {
	name              string
	destination       string
	force             bool
	icon              string
	icon2x            string
	indexPage         string
	addToDash         bool
	addToGlobal       bool
	quiet             bool
	verbose           bool
	enableJS          bool
	onlineRedirectURL string
	playgroundURL     string
	parser            string
	fullTextSearch    string
}

func runConvert(cmd *cobra.Command, cc *commandContext, source string, opts convertOptions) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}
	stderr := cmd.ErrOrStderr()
	logger, err := logging.NewFromConfig(cfg, stderr, opts.verbose, opts.quiet)
	if err != nil {
		return err
	}

	source, err = resolveSource(source)
	if err != nil {
		return err
	}
	for _, icon := range []string{opts.icon, opts.icon2x} {
		if icon == "" {
			continue
		}
		if err := docset.ValidateIcon(icon); err != nil {
			return err
		}
	}
	if err := docset.CheckIndexPage(source, opts.indexPage); err != nil {
		return err
	}
	manifest, err := buildManifest(cmd, cfg, opts)
	if err != nil {
		return err
	}

	format, project, err := parsers.Default().Resolve(source, opts.parser, logger)
	if err != nil {
		return err
	}
	manifest.Name = docsetName(opts.name, project, source)

	destDir := cfg.Paths.Destination
	if opts.destination != "" {
		if destDir, err = config.ExpandPath(opts.destination); err != nil {
			return fmt.Errorf("resolve destination: %w", err)
		}
	}
	if opts.addToGlobal {
		destDir = cfg.Paths.GlobalDir
	}

	lock, err := docset.AcquireLock(docset.Destination(destDir, manifest.Name))
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release docset lock", logging.Error(err))
		}
	}()

	dest, err := docset.SetupDestination(destDir, manifest.Name, opts.force)
	if err != nil {
		if errors.Is(err, docset.ErrDestinationExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}

	ctx := cmd.Context()
	store, ds, err := docset.Prepare(ctx, source, dest, docset.Options{
		Manifest: manifest,
		Icon:     opts.icon,
		Icon2x:   opts.icon2x,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	parser := format.New(ds.Documents, logger)
	logger.Info(fmt.Sprintf("Converting %s docs from '%s' to '%s'.", parser.Name(), source, dest))

	w, err := store.Begin(ctx)
	if err != nil {
		return err
	}
	defer w.Rollback()

	tracker := progress.New(stderr, "Patching for TOCs", progress.Enabled(stderr, cfg.Patch.Progress, opts.quiet))
	toc := patcher.New(ds.Documents, parser, patcher.WithLogger(logger), patcher.WithProgress(tracker))

	if _, err := convert.Run(ctx, parser, w, toc, logger); err != nil {
		return err
	}

	if !opts.quiet {
		counts, err := store.CountByType(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(counts))
	}

	if opts.addToDash || opts.addToGlobal {
		logger.Info("Adding to Dash...")
		if err := docset.AddToDash(ctx, dest); err != nil {
			return err
		}
	}
	return nil
}

func resolveSource(source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", fmt.Errorf("resolve source: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("source: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("source %s is not a directory", abs)
	}
	return abs, nil
}

// docsetName prefers the explicit name, then the detected project, then the
// source directory name.
func docsetName(explicit, detected, source string) string {
	for _, name := range []string{explicit, detected} {
		if name = docset.BundleName(name); name != "" {
			return name
		}
	}
	return docset.BundleName(filepath.Base(source))
}

// buildManifest merges the [docset] config section with the flags; flags
// that were set on the command line win.
func buildManifest(cmd *cobra.Command, cfg *config.Config, opts convertOptions) (docset.Manifest, error) {
	flags := cmd.Flags()
	m := docset.Manifest{
		IndexPage:         filepath.ToSlash(strings.TrimSpace(opts.indexPage)),
		EnableJS:          cfg.Docset.EnableJS || opts.enableJS,
		OnlineRedirectURL: cfg.Docset.OnlineRedirectURL,
		PlaygroundURL:     cfg.Docset.PlaygroundURL,
	}
	if flags.Changed("online-redirect-url") {
		m.OnlineRedirectURL = opts.onlineRedirectURL
	}
	if flags.Changed("playground-url") {
		m.PlaygroundURL = opts.playgroundURL
	}

	mode := cfg.Docset.FullTextSearch
	if flags.Changed("full-text-search") {
		mode = strings.ToLower(strings.TrimSpace(opts.fullTextSearch))
	}
	fts, err := docset.ParseFullTextSearch(mode)
	if err != nil {
		return docset.Manifest{}, err
	}
	m.FullTextSearch = fts
	return m, nil
}
