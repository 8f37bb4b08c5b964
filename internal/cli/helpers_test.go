package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w

	outputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, r)
		_ = r.Close()
		if copyErr != nil {
			errCh <- copyErr
			return
		}
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	select {
	case err := <-errCh:
		t.Fatalf("io.Copy: %v", err)
		return ""
	case output := <-outputCh:
		return output
	}
}

var testNow = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.Local)

// resetCLIState restores every global the commands read, before and after the test.
func resetCLIState(t *testing.T) {
	t.Helper()

	reset := func() {
		configPath, verbose, jsonOutput = "", false, false
		resolvedConfigPath, cfg, logger = "", nil, nil

		linkLines, linkWrite, linkReference, linkDate = "", false, "", ""
		linkDateFormat, linkFrom = dateFormatValue{}, sourceFormatValue{}
		linkUser, linkReplacement, linkMaxLength = "", "", 0
		linkExplain, linkCreateNotes, linkNotesDir, linkNoCombine = false, false, "", false

		stdin = strings.NewReader("")
		stdinIsTerminal = func() bool { return false }
		stdoutIsTerminal = func() bool { return false }
		clockNow = func() time.Time { return testNow }

		var walk func(c *cobra.Command)
		walk = func(c *cobra.Command) {
			c.SilenceErrors = false
			for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
				fs.VisitAll(func(f *pflag.Flag) { f.Changed = false })
			}
			for _, sub := range c.Commands() {
				walk(sub)
			}
		}
		walk(rootCmd)
	}

	prevStdin, prevStdinTTY, prevStdoutTTY, prevNow := stdin, stdinIsTerminal, stdoutIsTerminal, clockNow
	reset()
	t.Cleanup(func() {
		reset()
		stdin, stdinIsTerminal, stdoutIsTerminal, clockNow = prevStdin, prevStdinTTY, prevStdoutTTY, prevNow
	})

	for _, key := range []string{
		"AGENDALINK_USER_NAME", "AGENDALINK_DATE_FORMAT", "AGENDALINK_REPLACEMENT_CHAR",
		"AGENDALINK_MAX_FILENAME_LENGTH", "AGENDALINK_NOTES_DIR", "AGENDALINK_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

// executeCLI runs the root command with args and returns what it printed to stdout.
func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var runErr error
	out := captureStdout(t, func() {
		rootCmd.SetArgs(args)
		runErr = rootCmd.Execute()
	})
	return out, runErr
}

// writeTestConfig writes config.toml into a temp dir and returns its path.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

type envelope struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Error    *ErrorInfo      `json:"error"`
	Warnings []Warning       `json:"warnings"`
	Meta     *Meta           `json:"meta"`
}

func decodeEnvelope(t *testing.T, out string) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	return env
}
