// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/doc-converter/internal/export"
	"github.com/pdiddy/doc-converter/internal/modes"
	"github.com/pdiddy/doc-converter/internal/report"
	"github.com/pdiddy/doc-converter/internal/session"
	"github.com/pdiddy/doc-converter/internal/upload"
	"github.com/pdiddy/doc-converter/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.pdf>",
	Short: "Run one conversion and download the result",
	Long: `Convert selects the given PDF, runs the staged conversion in the
configured mode, prints the result, and writes <name>.docx (or <name>.md in
academic mode) into the output directory.

Only the file's name, size, and extension are used; its contents are never
read. Files whose extension does not map to application/pdf are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("format", "text", "result format: text, yaml, or json")
	convertCmd.Flags().Bool("no-download", false, "skip writing the result file")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	noDownload, _ := cmd.Flags().GetBool("no-download")

	candidate, err := upload.FromPath(args[0])
	if err != nil {
		return err
	}

	o := session.New(cfg, session.WithLogger(logger))
	if err := o.SelectFile(candidate); err != nil {
		return err
	}

	// Progress goes to stderr so structured output on stdout stays clean.
	progressOut := cmd.ErrOrStderr()
	if format == report.FormatText {
		progressOut = cmd.OutOrStdout()
	}

	events, unsubscribe := o.Subscribe()
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		defer unsubscribe()
		_, err := o.Start(ctx)
		return err
	})
	g.Go(func() error {
		printProgress(progressOut, events)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	snap := o.Snapshot()
	if err := report.Write(cmd.OutOrStdout(), format, snap); err != nil {
		return err
	}
	if noDownload {
		return nil
	}

	artifact, err := export.BuildArtifact(snap)
	if err != nil {
		return err
	}
	path, err := export.Save(cmd.Context(), artifact, cfg.OutputDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(progressOut, "\n%s: %s\n", modes.ConfigOf(snap.Mode).DownloadLabel, path)
	return nil
}

// printProgress writes a line for every checkpoint until events closes.
func printProgress(w io.Writer, events <-chan types.ProgressEvent) {
	for ev := range events {
		printEvent(w, ev)
	}
}

func printEvent(w io.Writer, ev types.ProgressEvent) {
	if ev.Progress == 0 {
		return
	}
	fmt.Fprintln(w, report.ProgressLine(ev))
}
