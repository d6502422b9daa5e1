package filter

import (
	"strings"
	"testing"

	"github.com/studiowebux/nlpbrowser/internal/types"
)

const fullResult = `{
  "prompt": "Adorei",
  "textos_similares": [
    {"texto": "a", "categoria": "Elogio", "similitude": 0.9, "idioma": "pt"},
    {"texto": "b", "categoria": "Reclamação", "similitude": 0.4, "idioma": "en"}
  ],
  "classificacao": {"categoria": "Elogio", "confianca": 0.8},
  "sentimento": {"sentimento": "Positivo", "confianca": 0.7}
}`

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		query   string
		want    string
		wantErr bool
	}{
		{name: "no expressions", want: fullResult},
		{name: "query field", query: "sentimento.sentimento", want: `"Positivo"`},
		{name: "filter then query", filter: "textos_similares[?similitude > `0.5`]", query: "[].texto", want: "[\n  \"a\"\n]"},
		{name: "missing field", query: "nada", want: "null"},
		{name: "invalid expression", query: "[?", wantErr: true},
		{name: "shell query", query: "$(head -c 1)", want: "{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(fullResult, tt.filter, tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApply_InvalidJSON(t *testing.T) {
	_, err := Apply("not json", "", "a")
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("Apply() error = %v", err)
	}
}

func TestApplyValue(t *testing.T) {
	res := types.ClassificationResult{
		Category:   "Dúvida",
		Confidence: 0.6,
		AllCategories: []types.CategoryScore{
			{Category: "Dúvida", Score: 0.6},
			{Category: "Elogio", Score: 0.4},
		},
	}
	got, err := ApplyValue(res, "", "todas_categorias[].categoria")
	if err != nil {
		t.Fatalf("ApplyValue() error = %v", err)
	}
	if got != "[\n  \"Dúvida\",\n  \"Elogio\"\n]" {
		t.Errorf("ApplyValue() = %q", got)
	}
}

func TestIsShellCommand(t *testing.T) {
	if !IsShellCommand("$(jq .)") {
		t.Error("expected $(jq .) to be a shell command")
	}
	if IsShellCommand("textos[0]") {
		t.Error("plain JMESPath reported as shell command")
	}
	if IsValidJMESPath("[?") {
		t.Error("[? should not compile")
	}
}

func TestSimilarItems(t *testing.T) {
	items := []types.SimilarItem{
		{Text: "a", Category: "Elogio", Similarity: 0.9, Language: "pt"},
		{Text: "b", Category: "Reclamação", Similarity: 0.4, Language: "en"},
		{Text: "c", Category: "elogio", Similarity: 0.2, Language: "es"},
	}

	tests := []struct {
		name string
		opts SimilarOptions
		want []string
	}{
		{"no options", SimilarOptions{}, []string{"a", "b", "c"}},
		{"category ignores case", SimilarOptions{Categories: []string{"ELOGIO"}}, []string{"a", "c"}},
		{"language", SimilarOptions{Languages: []string{"en", "es"}}, []string{"b", "c"}},
		{"min similarity", SimilarOptions{MinSimilarity: 0.4}, []string{"a", "b"}},
		{"combined", SimilarOptions{Categories: []string{"Elogio"}, MinSimilarity: 0.5}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimilarItems(items, tt.opts)
			if len(got) != len(tt.want) {
				t.Fatalf("SimilarItems() = %d items, want %d", len(got), len(tt.want))
			}
			for i, item := range got {
				if item.Text != tt.want[i] {
					t.Errorf("item %d = %q, want %q", i, item.Text, tt.want[i])
				}
			}
		})
	}

	if cats := Categories(items); len(cats) != 3 || cats[0] != "Elogio" {
		t.Errorf("Categories() = %v", cats)
	}
}
