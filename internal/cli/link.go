package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/agendalink/internal/agenda"
	"github.com/aidanlsb/agendalink/internal/atomicfile"
	"github.com/aidanlsb/agendalink/internal/config"
	"github.com/aidanlsb/agendalink/internal/dates"
	"github.com/aidanlsb/agendalink/internal/notes"
	"github.com/aidanlsb/agendalink/internal/selection"
	"github.com/aidanlsb/agendalink/internal/settings"
	"github.com/aidanlsb/agendalink/internal/source"
	"github.com/aidanlsb/agendalink/internal/ui"
)

var (
	linkLines       string
	linkWrite       bool
	linkReference   string
	linkDate        string
	linkDateFormat  dateFormatValue
	linkUser        string
	linkReplacement string
	linkMaxLength   int
	linkFrom        sourceFormatValue
	linkExplain     bool
	linkCreateNotes bool
	linkNotesDir    string
	linkNoCombine   bool
)

// Seams for tests.
var (
	stdin            io.Reader = os.Stdin
	stdinIsTerminal            = func() bool { return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) }
	stdoutIsTerminal           = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }
	clockNow                   = time.Now
)

var linkCmd = &cobra.Command{
	Use:     "link [file]",
	Aliases: []string{"split"},
	Short:   "Convert agenda lines into [[note links]]",
	Long: `Reads agenda text from a file (or stdin), drops noise lines, and prints one
[[link]] per meeting.

Noise lines are "All day", time ranges, "City, ST" locations, URLs and blank
lines. With agenda.user_name configured, "Jacob / Shawn" becomes
"Jacob one-on-one". Every title is made safe as a filename, gets the date
from the reference filename (or today), and meetings with the same person on
the same day are merged.`,
	Example: `  pbpaste | agendalink link --reference 2026-02-18
  agendalink link daily/2026-02-18.md --lines 12:20 --write
  agendalink link calendar.ics --date tomorrow --create-notes`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 && args[0] != "-" {
			path = args[0]
		}
		return runLink(cmd, path)
	},
}

// linkOutput is the JSON payload of the link command.
type linkOutput struct {
	Titles            []string        `json:"titles"`
	Message           string          `json:"message"`
	Date              string          `json:"date,omitempty"`
	DateFromReference bool            `json:"date_from_reference"`
	Candidates        []string        `json:"candidates,omitempty"`
	Skipped           []skippedOutput `json:"skipped,omitempty"`
	Merged            []mergedOutput  `json:"merged,omitempty"`
	Written           string          `json:"written,omitempty"`
	Notes             []notes.Outcome `json:"notes,omitempty"`
}

type skippedOutput struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

type mergedOutput struct {
	Person string   `json:"person"`
	Date   string   `json:"date"`
	From   []string `json:"from"`
	Title  string   `json:"title"`
}

func runLink(cmd *cobra.Command, path string) error {
	log := getLogger()
	conf := getConfig()
	flags := cmd.Flags()

	s, err := linkSettings(conf, flags)
	if err != nil {
		return handleError(ErrInvalidInput, err, "Check --date-format, --replacement and --max-length")
	}
	log.Debug("settings resolved", "config", getConfigPath(), "date_format", string(s.DateFormat),
		"replacement", s.ReplacementChar, "max_length", s.MaxFilenameLength, "one_on_one", s.OneOnOneEnabled())

	format := linkFrom.format
	if !flagChanged(flags, "from") {
		format = source.Detect(path)
	}

	var rng *selection.Range
	if strings.TrimSpace(linkLines) != "" {
		r, err := selection.ParseRange(linkLines)
		if err != nil {
			return handleError(ErrInvalidInput, err, "Use --lines START:END, e.g. --lines 12:20")
		}
		rng = &r
	}
	if rng != nil && format == source.FormatICS {
		return handleErrorMsg(ErrInvalidInput, "--lines cannot be used with calendar input", "Use --date to choose the day instead")
	}
	if linkWrite && (path == "" || rng == nil) {
		return handleErrorMsg(ErrInvalidInput, "--write needs an input file and --lines", "Pass the file and the range to replace, e.g. agendalink link note.md --lines 3:9 --write")
	}

	// An explicit --date wins over any date in the reference filename.
	clock := clockNow()
	reference := linkReference
	if !flagChanged(flags, "reference") && path != "" && format != source.FormatICS {
		reference = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if strings.TrimSpace(linkDate) != "" {
		day, err := dates.ParseDateArg(linkDate, clock)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		clock = day
		reference = ""
	}

	content, err := readInput(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return handleError(ErrFileNotFound, err, "Check the file path")
		case errors.Is(err, errNoInput):
			return handleError(ErrMissingArgument, err, "Pass a file or pipe agenda text on stdin")
		default:
			return handleError(ErrFileReadError, err, "")
		}
	}
	log.Info("input read", "path", displayPath(path), "bytes", len(content), "format", string(format))

	var warnings []Warning
	var doc *selection.Document
	var lines []string
	if rng != nil {
		doc = selection.Parse(string(content))
		lines, err = doc.Lines(*rng)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if rng.End > doc.Len() {
			warnings = append(warnings, Warning{
				Code:    WarnRangeTruncated,
				Message: fmt.Sprintf("line range %s extends past the end of the file (%d lines)", rng, doc.Len()),
			})
		}
		if format == source.FormatMarkdown {
			lines = source.MarkdownLines([]byte(strings.Join(lines, "\n")))
		}
	} else {
		lines, err = source.Lines(format, content, source.Options{Day: clock, Logger: log})
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
	}

	pipeline := agenda.New(s, log)
	pipeline.Clock = func() time.Time { return clock }
	pipeline.SkipCombine = linkNoCombine

	res := pipeline.Process(lines, reference)
	switch res.Status {
	case agenda.StatusEmptySelection:
		return handleErrorMsg(ErrNothingToProcess, res.Message(), "Pass a file, --lines range or stdin with agenda text")
	case agenda.StatusNothingProduced:
		return handleErrorWithDetails(ErrNothingProduced, res.Message(), "Every line looked like a time, location, URL or all-day marker", skippedRows(res))
	}

	if !s.OneOnOneEnabled() && looksLikeOneOnOne(lines) {
		warnings = append(warnings, Warning{
			Code:    WarnOneOnOneOff,
			Message: "one-on-one normalization is off; set agenda.user_name to enable it",
		})
	}

	out := linkOutput{
		Titles:            res.Titles,
		Message:           res.Message(),
		Date:              res.DateSource,
		DateFromReference: res.FromReference,
		Skipped:           skippedRows(res),
	}
	if linkExplain {
		out.Candidates = res.Candidates
	}
	for _, g := range res.Merged {
		m := mergedOutput{Person: g.Person, Date: g.Date, Title: g.Title()}
		for _, ev := range g.Events {
			m.From = append(m.From, ev.Original)
		}
		out.Merged = append(out.Merged, m)
	}

	if linkWrite {
		updated, err := doc.Replace(*rng, res.Titles)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if err := atomicfile.WriteFile(path, []byte(updated), 0); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		out.Written = path
		log.Info("selection replaced", "path", path, "range", rng.String(), "links", len(res.Titles))
	}

	if linkCreateNotes || (conf.Notes.Create && !flagChanged(flags, "create-notes")) {
		dir := linkNotesDir
		if dir == "" {
			dir = conf.Notes.Dir
		}
		if strings.TrimSpace(dir) == "" {
			return handleErrorMsg(ErrInvalidInput, "no notes directory configured", "Pass --notes-dir or run 'agendalink config set notes.dir <path>'")
		}
		outcomes, err := notes.CreateStubs(config.ExpandHome(dir), res.Titles, clock)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		for _, o := range outcomes {
			if !o.Created {
				warnings = append(warnings, Warning{Code: WarnNoteExists, Message: "note already exists", Path: o.Path})
			}
		}
		out.Notes = outcomes
		log.Info("stub notes processed", "dir", dir, "count", len(outcomes))
	}

	if isJSONOutput() {
		outputSuccessWithWarnings(out, warnings, &Meta{Count: len(res.Titles)})
		return nil
	}

	printLinkText(out, warnings)
	return nil
}

// linkSettings layers flags over the loaded configuration.
func linkSettings(conf *config.Config, flags *pflag.FlagSet) (settings.Settings, error) {
	s, err := conf.Settings()
	if err != nil {
		return s, err
	}
	if flagChanged(flags, "date-format") {
		s.DateFormat = linkDateFormat.format
	}
	if flagChanged(flags, "user") {
		s.UserName = strings.TrimSpace(linkUser)
	}
	if flagChanged(flags, "replacement") {
		s.ReplacementChar = linkReplacement
	}
	if flagChanged(flags, "max-length") {
		s.MaxFilenameLength = linkMaxLength
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

var errNoInput = errors.New("no input: stdin is a terminal")

// readInput reads path, or stdin when path is empty.
func readInput(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return data, nil
	}
	if stdinIsTerminal() {
		return nil, errNoInput
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

func displayPath(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}

func skippedRows(res agenda.Result) []skippedOutput {
	if len(res.Skipped) == 0 {
		return nil
	}
	rows := make([]skippedOutput, len(res.Skipped))
	for i, sk := range res.Skipped {
		rows[i] = skippedOutput{Line: sk.Line, Text: sk.Text, Reason: string(sk.Reason)}
	}
	return rows
}

// looksLikeOneOnOne reports whether any line has a one-on-one separator.
func looksLikeOneOnOne(lines []string) bool {
	for _, line := range lines {
		if strings.Contains(line, " / ") || strings.Contains(line, "<>") {
			return true
		}
	}
	return false
}

// printLinkText writes the links to stdout and everything else to stderr, so
// that piped output is exactly the new selection text.
func printLinkText(out linkOutput, warnings []Warning) {
	styled := stdoutIsTerminal()
	for _, title := range out.Titles {
		if styled {
			fmt.Println(ui.Link(title))
		} else {
			fmt.Println(title)
		}
	}

	if linkExplain {
		if len(out.Skipped) > 0 {
			rows := make([]ui.SkipRow, len(out.Skipped))
			for i, sk := range out.Skipped {
				rows[i] = ui.SkipRow{Line: sk.Line, Reason: sk.Reason, Text: sk.Text}
			}
			fmt.Fprintln(os.Stderr, ui.Header("Skipped "+ui.Count(len(rows), "line", "lines")))
			fmt.Fprintln(os.Stderr, ui.RenderSkips(rows, ui.NewDisplayContext(os.Stderr)))
		}
		for _, m := range out.Merged {
			fmt.Fprintln(os.Stderr, ui.Infof("merged %s into %s", strings.Join(m.From, " + "), m.Title))
		}
		if out.Date != "" {
			from := "today"
			if out.DateFromReference {
				from = "reference"
			}
			fmt.Fprintln(os.Stderr, ui.Hint(fmt.Sprintf("date %s (from %s)", out.Date, from)))
		}
	}

	for _, w := range warnings {
		if w.Path != "" {
			fmt.Fprintln(os.Stderr, ui.Warningf("%s: %s", w.Message, ui.FilePath(w.Path)))
			continue
		}
		fmt.Fprintln(os.Stderr, ui.Warning(w.Message))
	}
	if out.Written != "" {
		fmt.Fprintln(os.Stderr, ui.Successf("Updated %s", ui.FilePath(out.Written)))
	}
	for _, n := range out.Notes {
		if n.Created {
			fmt.Fprintln(os.Stderr, ui.Successf("Created %s", ui.FilePath(n.Path)))
		}
	}
	fmt.Fprintln(os.Stderr, ui.Success(out.Message))
}

func init() {
	f := linkCmd.Flags()
	f.StringVar(&linkLines, "lines", "", "Only read this 1-indexed inclusive line range (START:END)")
	f.BoolVar(&linkWrite, "write", false, "Replace the --lines range in the file with the links")
	f.StringVar(&linkReference, "reference", "", "Filename whose date is stamped on titles (default: input file name)")
	f.StringVar(&linkDate, "date", "", "Date to stamp on titles and to read from calendars (YYYY-MM-DD, today, yesterday, tomorrow)")
	f.Var(&linkDateFormat, "date-format", "Date suffix format "+formatChoices(dates.Formats))
	f.StringVar(&linkUser, "user", "", "Your name, for one-on-one normalization")
	f.StringVar(&linkReplacement, "replacement", "", "Replacement for characters illegal in filenames")
	f.IntVar(&linkMaxLength, "max-length", 0, "Maximum title length before the date")
	f.Var(&linkFrom, "from", "Input format "+formatChoices(source.Formats)+" (default: from file extension)")
	f.BoolVar(&linkExplain, "explain", false, "Show skipped lines, merges and the date source")
	f.BoolVar(&linkCreateNotes, "create-notes", false, "Create a stub note for every link that has none")
	f.StringVar(&linkNotesDir, "notes-dir", "", "Directory for --create-notes (default: notes.dir)")
	f.BoolVar(&linkNoCombine, "no-combine", false, "Do not merge same-person, same-day meetings")
	rootCmd.AddCommand(linkCmd)
}
