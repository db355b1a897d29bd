package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/stray/java/diagnose"
)

func newFixCmd() *cobra.Command {
	var dryRun bool
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "fix [path...]",
		Short: "Move members declared outside of a class into the class",
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := scan(cmd.Context(), args, !noProgress)
			if err != nil {
				return err
			}

			moved, changed := 0, 0
			for _, f := range cb.Files() {
				out, n, err := diagnose.FixAll(f.Content, f.Diagnostics)
				if err != nil {
					return fmt.Errorf("fix %s: %w", f.Path, err)
				}
				if n == 0 {
					continue
				}
				moved += n
				changed++

				if dryRun {
					fmt.Printf("%s: would move %d member(s)\n", f.Path, n)
					continue
				}
				info, err := os.Stat(f.Path)
				if err != nil {
					return fmt.Errorf("stat %s: %w", f.Path, err)
				}
				if err := os.WriteFile(f.Path, out, info.Mode().Perm()); err != nil {
					return fmt.Errorf("write %s: %w", f.Path, err)
				}
				fmt.Printf("%s: moved %d member(s)\n", f.Path, n)
			}

			verb := "Moved"
			if dryRun {
				verb = "Would move"
			}
			fmt.Printf("%s %d member(s) in %d file(s)\n", verb, moved, changed)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report what would change without writing files")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "never show a progress bar")

	return cmd
}
