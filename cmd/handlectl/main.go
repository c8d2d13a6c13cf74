package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/nativeref/binding/wasm"
	"github.com/wippyai/nativeref/ownership"
	"github.com/wippyai/nativeref/resource"
)

func main() {
	var (
		scriptFile  = flag.String("script", "", "Read commands from file")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log every acquire and release")
		wasmFile    = flag.String("wasm", "", "Compile and instantiate a core wasm module and report its teardown")
	)
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = log.Sync() }()
		ownership.SetLogger(log.Named("ownership"))
		resource.SetLogger(log.Named("resource"))
		wasm.SetLogger(log.Named("wasm"))
	}

	if err := run(*scriptFile, *wasmFile, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(scriptFile, wasmFile string, interactive bool) error {
	if wasmFile != "" {
		data, err := os.ReadFile(wasmFile)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		return reportTeardown(context.Background(), os.Stdout, data)
	}

	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		return runScript(f, os.Stdout, false)
	}

	tty := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		if !tty {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runInteractive()
	}
	return runScript(os.Stdin, os.Stdout, tty)
}

// runScript executes commands line by line, printing each command's events
// and the slot table after it. Failed commands are reported and skipped; the
// returned error combines all of them.
func runScript(r io.Reader, w io.Writer, prompt bool) (err error) {
	s := newSession()
	defer func() { err = multierr.Append(err, s.Close()) }()

	var failures error
	lineNo := 0
	sc := bufio.NewScanner(r)
	for {
		if prompt {
			fmt.Fprint(w, "> ")
		}
		if !sc.Scan() {
			break
		}
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !prompt {
			fmt.Fprintf(w, "> %s\n", line)
		}

		msg, execErr := s.Exec(line)
		if stderrors.Is(execErr, errQuit) {
			break
		}
		if execErr != nil {
			failures = multierr.Append(failures, fmt.Errorf("line %d: %w", lineNo, execErr))
			fmt.Fprintf(w, "error: %v\n", execErr)
			continue
		}
		if msg != "" {
			fmt.Fprintln(w, msg)
		}
		for _, e := range s.Events() {
			fmt.Fprintf(w, "  * %s\n", formatEvent(e))
		}
		s.WriteTable(w)
	}
	if scanErr := sc.Err(); scanErr != nil {
		return fmt.Errorf("read commands: %w", scanErr)
	}
	return failures
}
