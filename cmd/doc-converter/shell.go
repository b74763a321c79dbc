// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-converter/internal/export"
	"github.com/pdiddy/doc-converter/internal/journal"
	"github.com/pdiddy/doc-converter/internal/modes"
	"github.com/pdiddy/doc-converter/internal/report"
	"github.com/pdiddy/doc-converter/internal/session"
	"github.com/pdiddy/doc-converter/internal/upload"
	"github.com/pdiddy/doc-converter/pkg/types"
)

// shellHelp lists the shell commands. It is shared by the command's long
// help and the help command.
const shellHelp = `Commands:
  modes              list the conversion modes
  mode <name>        switch mode (discards any file or run in progress)
  select <path>      attach a PDF
  remove             detach the PDF
  start              begin the conversion
  wait               block until the conversion ends
  status             show the session
  download           write the result file to the output directory
  reset | another    clear the session, keeping the mode
  history            list conversions completed in this shell
  help               show this list
  quit | exit        leave the shell`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive conversion session",
	Long: `Shell opens one conversion session and reads commands from stdin,
one per line. start runs the conversion in the background so mode, reset,
and status stay usable while it progresses; wait blocks until it ends.
Completed runs are listed by history until the shell exits.

` + shellHelp,
	Args: cobra.NoArgs,
	RunE: runShellCmd,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShellCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	j, err := journal.Open()
	if err != nil {
		return err
	}
	defer j.Close()

	o := session.New(cfg, session.WithLogger(logger), session.WithRecorder(j))
	return runShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), o, j, cfg)
}

// lockedWriter serializes writes from the prompt loop and the background
// run so lines do not interleave.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type shell struct {
	ctx context.Context
	out io.Writer
	o   *session.Orchestrator
	j   *journal.Journal
	cfg types.Config

	// runs counts started runs whose outcome is not yet printed.
	runs     sync.WaitGroup
	outcomes chan session.Outcome
}

// runShell reads commands from in until EOF or quit. A run still in flight
// when the shell ends is cancelled.
func runShell(ctx context.Context, in io.Reader, out io.Writer, o *session.Orchestrator, j *journal.Journal, cfg types.Config) error {
	s := &shell{
		ctx: ctx,
		out: &lockedWriter{w: out},
		o:   o,
		j:   j,
		cfg: cfg,

		outcomes: make(chan session.Outcome),
	}

	events, unsubscribe := o.Subscribe()
	printerDone := make(chan struct{})
	go func() {
		defer close(printerDone)
		s.print(events)
	}()
	defer func() {
		o.Reset()
		s.runs.Wait()
		unsubscribe()
		<-printerDone
	}()

	fmt.Fprintf(s.out, "doc-converter %s, mode %s. Type help for commands.\n", version, o.Mode())
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		name, arg := strings.ToLower(fields[0]), strings.Join(fields[1:], " ")
		if name == "quit" || name == "exit" {
			return nil
		}
		if err := s.dispatch(name, arg); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (s *shell) dispatch(name, arg string) error {
	switch name {
	case "help":
		fmt.Fprintln(s.out, shellHelp)
	case "modes":
		report.WriteModes(s.out, s.o.Mode())
	case "mode":
		m, err := types.ParseMode(arg)
		if err != nil {
			return err
		}
		if err := s.o.SetMode(m); err != nil {
			return err
		}
		cfg := modes.ConfigOf(m)
		fmt.Fprintf(s.out, "Mode: %s (%s)\n", cfg.Label, cfg.Tagline)
	case "select":
		return s.selectFile(arg)
	case "remove":
		if err := s.o.RemoveFile(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "File removed.")
	case "start":
		return s.start()
	case "wait":
		s.runs.Wait()
	case "status":
		return report.WriteText(s.out, s.o.Snapshot())
	case "download":
		return s.download()
	case "reset", "another":
		s.o.Reset()
		fmt.Fprintln(s.out, "Session cleared.")
	case "history":
		entries, err := s.j.List(s.ctx)
		if err != nil {
			return err
		}
		report.WriteHistory(s.out, entries)
	default:
		return fmt.Errorf("unknown command %q (type help)", name)
	}
	return nil
}

func (s *shell) selectFile(path string) error {
	if path == "" {
		return errors.New("select needs a file path")
	}
	c, err := upload.FromPath(path)
	if err != nil {
		return err
	}
	if err := s.o.SelectFile(c); err != nil {
		return err
	}
	snap := s.o.Snapshot()
	fmt.Fprintf(s.out, "Selected %s (%s). Next: %s\n",
		snap.File.Name, snap.File.SizeMB(), modes.ConfigOf(snap.Mode).ActionLabel)
	return nil
}

func (s *shell) start() error {
	done, err := s.o.Begin(s.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s...\n", modes.ConfigOf(s.o.Mode()).ActionLabel)

	s.runs.Add(1)
	go func() {
		s.outcomes <- <-done
	}()
	return nil
}

// print writes progress lines as events arrive and each run's outcome once
// its final checkpoint has been written. It returns when events closes.
func (s *shell) print(events <-chan types.ProgressEvent) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			printEvent(s.out, ev)
		case out := <-s.outcomes:
			// A run publishes its last event before its outcome is sent.
			drainEvents(s.out, events)
			s.printOutcome(out)
			s.runs.Done()
		}
	}
}

func drainEvents(w io.Writer, events <-chan types.ProgressEvent) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			printEvent(w, ev)
		default:
			return
		}
	}
}

func (s *shell) printOutcome(out session.Outcome) {
	switch {
	case errors.Is(out.Err, session.ErrCanceled):
		fmt.Fprintln(s.out, "Conversion canceled.")
	case out.Err != nil:
		fmt.Fprintf(s.out, "error: %v\n", out.Err)
	default:
		var buf strings.Builder
		buf.WriteString("\n")
		report.WriteResult(&buf, out.Result)
		fmt.Fprint(s.out, buf.String())
	}
}

func (s *shell) download() error {
	a, err := export.BuildArtifact(s.o.Snapshot())
	if err != nil {
		return err
	}
	path, err := export.Save(s.ctx, a, s.cfg.OutputDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Saved %s\n", path)
	return nil
}
