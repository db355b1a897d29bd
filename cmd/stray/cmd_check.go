package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dhamidi/stray/java/codebase"
	"github.com/dhamidi/stray/java/diagnose"
)

func newCheckCmd() *cobra.Command {
	var outputFormat string
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Report members declared outside of a class and other syntax errors",
		Long: `Check parses every Java file below the given paths and reports members
that were written outside of the class they belong to, together with the
syntax errors the outline parser found.

The command exits with status 1 when anything was reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := scan(cmd.Context(), args, !noProgress)
			if err != nil {
				return err
			}

			switch outputFormat {
			case "text":
				writeText(os.Stdout, cb.Files())
			case "json":
				if err := writeJSON(os.Stdout, cb.Files()); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if cb.DiagnosticCount() > 0 {
				return errFindings
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "never show a progress bar")

	return cmd
}

// scan analyzes the files below paths, defaulting to the current directory.
// A progress bar is drawn on stderr when it is a terminal.
func scan(ctx context.Context, paths []string, progress bool) (*codebase.Codebase, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	opts := []codebase.Option{codebase.WithConfig(cfg)}
	if progress && isatty.IsTerminal(os.Stderr.Fd()) {
		opts = append(opts, codebase.WithProgress(newProgress()))
	}

	cb := codebase.New(".", opts...)
	if err := cb.ScanPaths(ctx, paths...); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return cb, nil
}

func newProgress() codebase.ProgressFunc {
	var bar *progressbar.ProgressBar
	var mu sync.Mutex

	return func(done, total int, path string) {
		mu.Lock()
		defer mu.Unlock()

		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Checking[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionClearOnFinish(),
			)
		}
		bar.Set(done)
	}
}

// writeText prints one line per diagnostic in the path:line:column form
// understood by editors and CI log parsers.
func writeText(w io.Writer, files []*codebase.FileInfo) {
	for _, f := range files {
		for _, d := range f.Diagnostics {
			fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n",
				f.Path, d.Start.Line, d.Start.Column, d.Severity, d.Message, d.Code)
		}
	}
}

type fileReport struct {
	Path        string                `json:"path"`
	Diagnostics []diagnose.Diagnostic `json:"diagnostics"`
}

func writeJSON(w io.Writer, files []*codebase.FileInfo) error {
	reports := []fileReport{}
	for _, f := range files {
		if len(f.Diagnostics) == 0 {
			continue
		}
		reports = append(reports, fileReport{Path: f.Path, Diagnostics: f.Diagnostics})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
