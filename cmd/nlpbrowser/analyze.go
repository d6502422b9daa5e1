package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/studiowebux/nlpbrowser/internal/cli"
	"github.com/studiowebux/nlpbrowser/internal/filter"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

// Flags for the analysis commands
var (
	flagTopK          int
	flagOutput        string
	flagSave          string
	flagFilter        string
	flagQuery         string
	flagCategories    []string
	flagLanguages     []string
	flagMinSimilarity float64
)

var similarCmd = newAnalysisCommand(types.KindSimilar, "similar [text...]", "Search texts similar to the input")
var classifyCmd = newAnalysisCommand(types.KindClassification, "classify [text...]", "Classify the input into a category")
var sentimentCmd = newAnalysisCommand(types.KindSentiment, "sentiment [text...]", "Analyze the sentiment of the input")
var analyzeCmd = newAnalysisCommand(types.KindFull, "analyze [text...]", "Run similar, classification and sentiment at once")

// newAnalysisCommand builds the one-shot command for kind.
// The text comes from the arguments, piped stdin or an interactive prompt.
func newAnalysisCommand(kind types.AnalysisKind, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := cli.ReadPrompt(args, os.Stdin)
			if err != nil {
				return err
			}

			logger := cliLogger()
			c, mgr, err := newClient(logger)
			if err != nil {
				return err
			}
			if mgr != nil {
				defer mgr.Close()
			}

			topK := cfg.DefaultTopK
			if cmd.Flags().Changed("top-k") {
				topK = flagTopK
			}
			output := cfg.Output
			if cmd.Flags().Changed("output") {
				output = flagOutput
			}

			return cli.Run(cmd.Context(), c, cli.RunOptions{
				Kind:         kind,
				Prompt:       prompt,
				TopK:         topK,
				OutputFormat: output,
				SavePath:     flagSave,
				Filter:       flagFilter,
				Query:        flagQuery,
				Similar: filter.SimilarOptions{
					Categories:    flagCategories,
					Languages:     flagLanguages,
					MinSimilarity: flagMinSimilarity,
				},
				Width: cli.TerminalWidth(os.Stdout),
				Color: useColor() && flagSave == "",
			}, os.Stdout)
		},
	}

	if kind.UsesTopK() {
		cmd.Flags().IntVarP(&flagTopK, "top-k", "k", 0, "Number of similar texts (default from config)")
		cmd.Flags().StringSliceVar(&flagCategories, "category", nil, "Keep similar texts in these categories")
		cmd.Flags().StringSliceVar(&flagLanguages, "language", nil, "Keep similar texts in these languages")
		cmd.Flags().Float64Var(&flagMinSimilarity, "min-similarity", 0, "Drop similar texts below this score")
	}
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (text/json/yaml/html)")
	cmd.Flags().StringVarP(&flagSave, "save", "s", "", "Save result to file")
	cmd.Flags().StringVar(&flagFilter, "filter", "", "JMESPath filter applied to the JSON result")
	cmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query or $(shell command) applied after the filter")
	return cmd
}

