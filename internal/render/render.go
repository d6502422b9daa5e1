package render

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

// Region identifiers of the full-analysis panel
const (
	RegionClassification = "classificacaoResult"
	RegionSentiment      = "sentimentoResult"
	RegionSimilar        = "similaresResult"
)

// NoResultsText is shown when a similarity search returns nothing
const NoResultsText = "Nenhum resultado encontrado."

// DefaultLanguage is assumed when an item carries no language and detection fails
const DefaultLanguage = "pt"

// Percent formats a 0..1 ratio as a percentage with one decimal. Ties on the
// exact binary value round up, so 0.0625 gives "6.3%".
func Percent(v float64) string {
	r := new(big.Rat).SetFloat64(v * 100)
	if r == nil {
		return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
	}
	r.Mul(r, big.NewRat(10, 1))
	r.Add(r, big.NewRat(1, 2))
	tenths := new(big.Int).Div(r.Num(), r.Denom())

	digits := new(big.Int).Abs(tenths).String()
	if len(digits) < 2 {
		digits = "0" + digits
	}
	out := digits[:len(digits)-1] + "." + digits[len(digits)-1:]
	if tenths.Sign() < 0 {
		out = "-" + out
	}
	return out + "%"
}

// Language returns the item's language code, detecting it from the text when missing
func Language(item types.SimilarItem) string {
	if item.Language != "" {
		return item.Language
	}
	if strings.TrimSpace(item.Text) == "" {
		return DefaultLanguage
	}
	info := whatlanggo.Detect(item.Text)
	if info.Lang < 0 {
		return DefaultLanguage
	}
	if code := info.Lang.Iso6391(); code != "" {
		return code
	}
	return DefaultLanguage
}

// Similar renders the ranked similar-text list
func Similar(items []types.SimilarItem) *Node {
	list := &Node{Type: NodeList, Class: "similar-list"}
	if len(items) == 0 {
		list.Children = []*Node{newNode(NodePlaceholder, NoResultsText)}
		return list
	}

	list.Children = lo.Map(items, func(item types.SimilarItem, i int) *Node {
		lang := Language(item)
		return &Node{
			Type:  NodeItem,
			Class: "similar-item",
			Children: []*Node{
				{Type: NodeText, Class: "similar-texto", Label: fmt.Sprintf("#%d:", i+1), Text: `"` + item.Text + `"`},
				{Type: NodeField, Label: "Categoria", Text: item.Category},
				{Type: NodeField, Label: "Similaridade", Text: Percent(item.Similarity)},
				{Type: NodeBadge, Class: "badge badge-" + lang, Text: strings.ToUpper(lang)},
			},
		}
	})
	return list
}

// Classification renders the top category followed by the full ranked breakdown
func Classification(res *types.ClassificationResult) *Node {
	if res == nil {
		res = &types.ClassificationResult{}
	}
	if res.Error != "" {
		return errorNode(res.Error)
	}

	top := newNode(NodeSection, "",
		newNode(NodeHeading, "Categoria Principal"),
		&Node{Type: NodeStrong, Class: "categoria-principal", Text: res.Category},
		confidence(res.Confidence),
	)

	rows := lo.Map(res.AllCategories, func(c types.CategoryScore, _ int) *Node {
		return &Node{
			Type:  NodeItem,
			Class: "classificacao-item",
			Children: []*Node{
				{Type: NodeText, Class: "categoria", Text: c.Category},
				{Type: NodeBar, Class: "confidence-bar", Width: c.Score * 100, Text: Percent(c.Score)},
			},
		}
	})
	all := newNode(NodeSection, "",
		newNode(NodeHeading, "Todas as Categorias"),
		&Node{Type: NodeList, Class: "classificacao-list", Children: rows},
	)

	return &Node{Type: NodePanel, Class: "classificacao", Children: []*Node{top, all}}
}

// Sentiment renders the bucket emoji, raw label and confidence
func Sentiment(res *types.SentimentResult) *Node {
	if res == nil {
		res = &types.SentimentResult{}
	}
	if res.Error != "" {
		return errorNode(res.Error)
	}
	return &Node{Type: NodePanel, Class: "sentimento-box", Children: sentimentBody(res)}
}

// Full renders the combined analysis into its three regions
func Full(res *types.FullAnalysisResult) *Node {
	if res == nil {
		res = &types.FullAnalysisResult{}
	}

	class := &Node{Type: NodeSection, ID: RegionClassification}
	if res.Classification.Error != "" {
		class.Children = []*Node{errorNode(res.Classification.Error)}
	} else {
		class.Children = []*Node{
			{Type: NodeStrong, Class: "categoria-principal", Text: res.Classification.Category},
			confidence(res.Classification.Confidence),
		}
	}

	sent := &Node{Type: NodeSection, ID: RegionSentiment}
	if res.Sentiment.Error != "" {
		sent.Children = []*Node{errorNode(res.Sentiment.Error)}
	} else {
		sent.Children = sentimentBody(&res.Sentiment)
	}

	similar := &Node{Type: NodeSection, ID: RegionSimilar, Children: []*Node{Similar(res.SimilarItems)}}

	return &Node{
		Type:  NodePanel,
		Class: "analise-completa",
		Children: []*Node{
			titled("Classificação", class),
			titled("Sentimento", sent),
			titled("Textos Similares", similar),
		},
	}
}

// ForKind dispatches to the renderer matching kind. payload must be the
// result type the client returns for that kind.
func ForKind(kind types.AnalysisKind, payload any) (*Node, error) {
	switch kind {
	case types.KindSimilar:
		if items, ok := payload.([]types.SimilarItem); ok {
			return Similar(items), nil
		}
	case types.KindClassification:
		if res, ok := payload.(*types.ClassificationResult); ok {
			return Classification(res), nil
		}
	case types.KindSentiment:
		if res, ok := payload.(*types.SentimentResult); ok {
			return Sentiment(res), nil
		}
	case types.KindFull:
		if res, ok := payload.(*types.FullAnalysisResult); ok {
			return Full(res), nil
		}
	default:
		return nil, fmt.Errorf("unknown analysis kind %q", kind)
	}
	return nil, fmt.Errorf("unexpected payload %T for %s", payload, kind)
}

func sentimentBody(res *types.SentimentResult) []*Node {
	bucket := ClassifySentiment(res.Label)
	return []*Node{
		{Type: NodeEmoji, Class: bucket.String(), Text: bucket.Emoji()},
		{Type: NodeText, Class: "sentimento-label " + bucket.Class(), Text: res.Label},
		confidence(res.Confidence),
	}
}

func confidence(v float64) *Node {
	return &Node{Type: NodeField, Class: "score", Label: "Confiança", Text: Percent(v)}
}

func errorNode(msg string) *Node {
	return &Node{Type: NodeError, Text: "Erro: " + msg}
}

func titled(title string, section *Node) *Node {
	section.Children = append([]*Node{newNode(NodeHeading, title)}, section.Children...)
	return section
}
