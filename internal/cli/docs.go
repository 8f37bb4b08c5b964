package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	builtindocs "github.com/aidanlsb/agendalink/docs"
	"github.com/aidanlsb/agendalink/internal/ui"
)

const docsIndexPath = "index.yaml"

var docsMarkdownRender = ui.RenderMarkdown

type docsTopic struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Path  string `json:"path" yaml:"path"`
}

type docsIndex struct {
	Topics []docsTopic `yaml:"topics"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the bundled guides",
	Long: `Read the guides bundled into the agendalink binary.

Examples:
  agendalink docs
  agendalink docs rules
  agendalink docs config --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := loadDocsIndexFS(builtindocs.FS)
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild agendalink so bundled docs are available")
		}

		if len(args) == 0 {
			return outputDocsTopics(topics)
		}

		topic, ok := findDocsTopic(topics, args[0])
		if !ok {
			available := make([]string, len(topics))
			for i, t := range topics {
				available[i] = t.ID
			}
			sort.Strings(available)
			return handleErrorMsg(
				ErrInvalidInput,
				fmt.Sprintf("unknown docs topic: %s", args[0]),
				fmt.Sprintf("Run 'agendalink docs' to list topics (available: %s)", strings.Join(available, ", ")),
			)
		}
		return outputDocsTopicContent(topic)
	},
}

func outputDocsTopics(topics []docsTopic) error {
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"topics": topics}, &Meta{Count: len(topics)})
		return nil
	}

	fmt.Println(ui.Header("Guides"))
	for _, t := range topics {
		fmt.Printf("  %-28s %s\n", "agendalink docs "+t.ID, t.Title)
	}
	return nil
}

func outputDocsTopicContent(topic docsTopic) error {
	content, err := fs.ReadFile(builtindocs.FS, topic.Path)
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"id":      topic.ID,
			"title":   topic.Title,
			"path":    topic.Path,
			"content": string(content),
		}, nil)
		return nil
	}

	text := string(content)
	if stdoutIsTerminal() {
		display := ui.NewDisplayContext(os.Stdout)
		if rendered, renderErr := docsMarkdownRender(text, display.TermWidth); renderErr == nil {
			text = rendered
		}
	}
	fmt.Print(text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}
	return nil
}

// loadDocsIndexFS reads the topic list and checks that every topic file exists.
func loadDocsIndexFS(fsys fs.FS) ([]docsTopic, error) {
	data, err := fs.ReadFile(fsys, docsIndexPath)
	if err != nil {
		return nil, fmt.Errorf("read docs index: %w", err)
	}

	var index docsIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parse docs index: %w", err)
	}
	if len(index.Topics) == 0 {
		return nil, fmt.Errorf("docs index has no topics")
	}

	seen := make(map[string]bool, len(index.Topics))
	for i, t := range index.Topics {
		t.ID = normalizeDocsID(t.ID)
		if t.ID == "" {
			return nil, fmt.Errorf("docs topic %d has no id", i+1)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate docs topic %q", t.ID)
		}
		seen[t.ID] = true

		t.Path = path.Clean(strings.TrimSpace(t.Path))
		if _, err := fs.Stat(fsys, t.Path); err != nil {
			return nil, fmt.Errorf("docs topic %q: %w", t.ID, err)
		}
		if strings.TrimSpace(t.Title) == "" {
			t.Title = t.ID
		}
		index.Topics[i] = t
	}
	return index.Topics, nil
}

func findDocsTopic(topics []docsTopic, input string) (docsTopic, bool) {
	id := normalizeDocsID(input)
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return docsTopic{}, false
}

// normalizeDocsID maps "Rules.md", " rules " and "RULES" to "rules".
func normalizeDocsID(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, ".md")
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	return strings.Trim(s, "-")
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
