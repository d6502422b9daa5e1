package mock

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"github.com/studiowebux/nlpbrowser/internal/filter"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

// starLabels maps the five-star model output onto the labels the backend sends
var starLabels = map[int]string{
	1: "Muito Negativo",
	2: "Negativo",
	3: "Neutro",
	4: "Positivo",
	5: "Muito Positivo",
}

var (
	positiveWords = wordSet("adorei", "amei", "ótimo", "otimo", "excelente", "perfeito", "perfeitamente",
		"bom", "boa", "rápido", "rapido", "recomendo", "atenciosa", "atencioso", "maravilhoso",
		"great", "good", "love", "excellent", "fast", "bueno", "excelente", "genial")
	negativeWords = wordSet("péssimo", "pessimo", "ruim", "horrível", "horrivel", "quebrado", "quebrou",
		"atraso", "atrasado", "demora", "problema", "nunca", "ninguém", "nada", "defeito",
		"bad", "terrible", "broken", "late", "malo", "tarde", "dañada")
	categoryHints = map[string]map[string]struct{}{
		"Elogio":     wordSet("adorei", "amei", "ótimo", "excelente", "recomendo", "parabéns", "great", "love"),
		"Reclamação": wordSet("quebrado", "quebrou", "péssimo", "ruim", "atraso", "problema", "defeito", "broken"),
		"Dúvida":     wordSet("como", "qual", "quando", "onde", "quanto", "how", "what", "when"),
		"Sugestão":   wordSet("poderiam", "seria", "sugiro", "sugestão", "deveria", "could", "should"),
	}
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Analyzer answers analysis requests from a small in-memory corpus using
// word overlap instead of embeddings
type Analyzer struct {
	dataset    []types.SimilarItem
	tokens     []map[string]struct{}
	categories []string
}

// NewAnalyzer builds an analyzer over dataset. When categories is empty the
// classifier ranks the categories found in the dataset.
func NewAnalyzer(dataset []types.SimilarItem, categories []string) *Analyzer {
	a := &Analyzer{
		dataset: make([]types.SimilarItem, len(dataset)),
		tokens:  make([]map[string]struct{}, len(dataset)),
	}
	for i, item := range dataset {
		if item.ID == "" {
			item.ID = fmt.Sprintf("doc_%d", i)
		}
		if item.Language == "" {
			item.Language = "pt"
		}
		a.dataset[i] = item
		a.tokens[i] = tokenize(item.Text)
	}

	if len(categories) > 0 {
		a.categories = slices.Clone(categories)
	} else {
		a.categories = filter.Categories(a.dataset)
	}
	return a
}

// Similar returns up to topK corpus entries ranked by similarity to prompt
func (a *Analyzer) Similar(prompt string, topK int) []types.SimilarItem {
	query := tokenize(prompt)

	ranked := make([]types.SimilarItem, len(a.dataset))
	for i, item := range a.dataset {
		item.Similarity = jaccard(query, a.tokens[i])
		ranked[i] = item
	}
	slices.SortStableFunc(ranked, func(x, y types.SimilarItem) int {
		return cmp.Compare(y.Similarity, x.Similarity)
	})

	if topK < len(ranked) {
		ranked = ranked[:max(topK, 0)]
	}
	return ranked
}

// Classify ranks every category for prompt. Scores sum to 1.
func (a *Analyzer) Classify(prompt string) types.ClassificationResult {
	if len(a.categories) == 0 {
		return types.ClassificationResult{Error: "nenhuma categoria disponível"}
	}

	query := tokenize(prompt)
	raw := make(map[string]float64, len(a.categories))
	total := 0.0
	for _, category := range a.categories {
		score := 0.05
		for i, item := range a.dataset {
			if item.Category == category {
				score += jaccard(query, a.tokens[i])
			}
		}
		if hints, ok := categoryHints[category]; ok {
			score += 0.5 * float64(countHits(query, hints))
		}
		if category == "Dúvida" && strings.Contains(prompt, "?") {
			score += 0.5
		}
		raw[category] = score
		total += score
	}

	scores := lo.Map(a.categories, func(category string, _ int) types.CategoryScore {
		return types.CategoryScore{Category: category, Score: raw[category] / total}
	})
	slices.SortStableFunc(scores, func(x, y types.CategoryScore) int {
		return cmp.Compare(y.Score, x.Score)
	})

	return types.ClassificationResult{
		Category:      scores[0].Category,
		Confidence:    scores[0].Score,
		AllCategories: scores,
	}
}

// Sentiment scores prompt on a five-star scale from positive and negative
// word counts
func (a *Analyzer) Sentiment(prompt string) types.SentimentResult {
	query := tokenize(prompt)
	diff := countHits(query, positiveWords) - countHits(query, negativeWords)

	stars := 3 + max(min(diff, 2), -2)
	original := fmt.Sprintf("%d stars", stars)
	if stars == 1 {
		original = "1 star"
	}

	confidence := 0.5
	if diff != 0 {
		confidence = 0.55 + 0.1*float64(min(abs(diff), 4))
	}

	return types.SentimentResult{
		Label:         starLabels[stars],
		OriginalLabel: original,
		Confidence:    confidence,
	}
}

// Full runs the three analyses for prompt
func (a *Analyzer) Full(prompt string, topK int) types.FullAnalysisResult {
	return types.FullAnalysisResult{
		Prompt:         prompt,
		SimilarItems:   a.Similar(prompt, topK),
		Classification: a.Classify(prompt),
		Sentiment:      a.Sentiment(prompt),
	}
}

func tokenize(text string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return wordSet(words...)
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := countHits(a, b)
	return float64(shared) / float64(len(a)+len(b)-shared)
}

func countHits(words, set map[string]struct{}) int {
	n := 0
	for w := range words {
		if _, ok := set[w]; ok {
			n++
		}
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
