package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/x/term"
	"github.com/studiowebux/nlpbrowser/internal/client"
	"github.com/studiowebux/nlpbrowser/internal/config"
	"github.com/studiowebux/nlpbrowser/internal/filter"
	"github.com/studiowebux/nlpbrowser/internal/input"
	"github.com/studiowebux/nlpbrowser/internal/render"
	"github.com/studiowebux/nlpbrowser/internal/types"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"
)

const defaultWidth = 80

// Analyzer is the part of the client the CLI needs
type Analyzer interface {
	SearchSimilar(ctx context.Context, prompt string, topK int) ([]types.SimilarItem, error)
	Classify(ctx context.Context, prompt string) (*types.ClassificationResult, error)
	Sentiment(ctx context.Context, prompt string) (*types.SentimentResult, error)
	FullAnalysis(ctx context.Context, prompt string, topK int) (*types.FullAnalysisResult, error)
}

// RunOptions contains options for running one analysis in CLI mode
type RunOptions struct {
	Kind         types.AnalysisKind
	Prompt       string
	TopK         int
	OutputFormat string // text, json, yaml, html
	SavePath     string
	Filter       string // JMESPath filter expression
	Query        string // JMESPath query or $(shell command)
	Similar      filter.SimilarOptions
	Width        int
	Color        bool // style text output and highlight JSON
}

// Run validates the prompt, performs one request and writes the formatted
// result to w. Validation and request failures are returned unchanged so
// the caller can describe them.
func Run(ctx context.Context, c Analyzer, opts RunOptions, w io.Writer) error {
	req, err := input.NewRequest(opts.Kind, opts.Prompt, opts.TopK)
	if err != nil {
		return err
	}
	if err := validateExpressions(opts); err != nil {
		return err
	}

	payload, err := Execute(ctx, c, opts.Kind, req)
	if err != nil {
		return err
	}
	payload = narrow(payload, opts.Similar)

	output, err := FormatResult(opts.Kind, payload, opts)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.SavePath != "" {
		if err := os.WriteFile(opts.SavePath, []byte(output), config.FilePermissions); err != nil {
			return fmt.Errorf("failed to save result: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Resultado salvo em %s\n", opts.SavePath)
		return nil
	}

	_, err = io.WriteString(w, output)
	return err
}

// validateExpressions rejects a malformed filter or query before anything is sent
func validateExpressions(opts RunOptions) error {
	if opts.Filter != "" && !filter.IsValidJMESPath(opts.Filter) {
		return fmt.Errorf("invalid JMESPath filter %q", opts.Filter)
	}
	if opts.Query != "" && !filter.IsShellCommand(opts.Query) && !filter.IsValidJMESPath(opts.Query) {
		return fmt.Errorf("invalid JMESPath query %q", opts.Query)
	}
	return nil
}

// Execute sends req to the route serving kind and returns the decoded result
func Execute(ctx context.Context, c Analyzer, kind types.AnalysisKind, req types.AnalysisRequest) (any, error) {
	switch kind {
	case types.KindSimilar:
		return c.SearchSimilar(ctx, req.Prompt, req.TopK)
	case types.KindClassification:
		return c.Classify(ctx, req.Prompt)
	case types.KindSentiment:
		return c.Sentiment(ctx, req.Prompt)
	case types.KindFull:
		return c.FullAnalysis(ctx, req.Prompt, req.TopK)
	}
	return nil, fmt.Errorf("unknown analysis kind %q", kind)
}

// narrow applies the similar-item options to any result carrying similar texts
func narrow(payload any, opts filter.SimilarOptions) any {
	if len(opts.Categories) == 0 && len(opts.Languages) == 0 && opts.MinSimilarity == 0 {
		return payload
	}
	switch p := payload.(type) {
	case []types.SimilarItem:
		return filter.SimilarItems(p, opts)
	case *types.FullAnalysisResult:
		narrowed := *p
		narrowed.SimilarItems = filter.SimilarItems(p.SimilarItems, opts)
		return &narrowed
	}
	return payload
}

// FormatResult renders payload in the requested output format.
// A filter or query always produces JSON.
func FormatResult(kind types.AnalysisKind, payload any, opts RunOptions) (string, error) {
	if opts.Filter != "" || opts.Query != "" {
		out, err := filter.ApplyValue(payload, opts.Filter, opts.Query)
		if err != nil {
			return "", err
		}
		if opts.Color && !filter.IsShellCommand(opts.Query) {
			return highlightJSON(out), nil
		}
		return out + "\n", nil
	}

	switch opts.OutputFormat {
	case FormatJSON:
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return "", err
		}
		if opts.Color {
			return highlightJSON(string(data)), nil
		}
		return string(data) + "\n", nil

	case FormatYAML:
		data, err := yaml.Marshal(payload)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case FormatHTML:
		node, err := render.ForKind(kind, payload)
		if err != nil {
			return "", err
		}
		out, err := render.HTML(node)
		if err != nil {
			return "", err
		}
		return out + "\n", nil

	case FormatText, "":
		node, err := render.ForKind(kind, payload)
		if err != nil {
			return "", err
		}
		if !opts.Color {
			return render.PlainText(node) + "\n", nil
		}
		width := opts.Width
		if width <= 0 {
			width = defaultWidth
		}
		return render.Terminal(node, width) + "\n", nil
	}

	return "", fmt.Errorf("unsupported output format %q (use text, json, yaml or html)", opts.OutputFormat)
}

// highlightJSON colours JSON for a terminal, falling back to the plain text
func highlightJSON(src string) string {
	var sb strings.Builder
	if err := quick.Highlight(&sb, src, "json", "terminal256", "monokai"); err != nil {
		return src + "\n"
	}
	return sb.String() + "\n"
}

// ReadPrompt resolves the analysis text: arguments first, then piped stdin,
// then an interactive prompt when stdin is a terminal
func ReadPrompt(args []string, stdin *os.File) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if !IsTerminal(stdin) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(data), nil
	}

	fmt.Fprint(os.Stderr, "Texto para análise: ")
	reader := bufio.NewReader(stdin)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return line, nil
}

// IsTerminal checks if f is a character device (not piped or redirected)
func IsTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// TerminalWidth returns the width of the terminal behind f, falling back
// to $COLUMNS when f is not a terminal. It returns 0 when neither is known.
func TerminalWidth(f *os.File) int {
	if w, _, err := term.GetSize(f.Fd()); err == nil && w > 0 {
		return w
	}
	w, err := strconv.Atoi(os.Getenv("COLUMNS"))
	if err != nil || w <= 0 {
		return 0
	}
	return w
}

// Interface guard
var _ Analyzer = (*client.Client)(nil)
