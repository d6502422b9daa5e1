package render

import "strings"

// Bucket is the coarse polarity derived from a free-form sentiment label
type Bucket int

const (
	Neutral Bucket = iota
	VeryPositive
	Positive
	VeryNegative
	Negative
)

// ClassifySentiment maps a label to a bucket. Rules are case-sensitive
// substring checks and the first match wins, so "Muito Positivo e ótimo"
// is VeryPositive and "1 star" is VeryNegative.
func ClassifySentiment(label string) Bucket {
	switch {
	case strings.Contains(label, "Muito Positivo") || strings.Contains(label, "5 stars"):
		return VeryPositive
	case strings.Contains(label, "Positivo") && !strings.Contains(label, "Muito"):
		return Positive
	case strings.Contains(label, "Muito Negativo") || strings.Contains(label, "1 star"):
		return VeryNegative
	case strings.Contains(label, "Negativo") && !strings.Contains(label, "Muito"):
		return Negative
	default:
		return Neutral
	}
}

// Emoji returns the face shown next to the label
func (b Bucket) Emoji() string {
	switch b {
	case VeryPositive:
		return "😍"
	case Positive:
		return "😊"
	case VeryNegative:
		return "😤"
	case Negative:
		return "😞"
	default:
		return "😐"
	}
}

// Class returns the visual class used to colour the label
func (b Bucket) Class() string {
	switch b {
	case VeryPositive, Positive:
		return "sentimento-positivo"
	case VeryNegative, Negative:
		return "sentimento-negativo"
	default:
		return "sentimento-neutro"
	}
}

func (b Bucket) String() string {
	switch b {
	case VeryPositive:
		return "very-positive"
	case Positive:
		return "positive"
	case VeryNegative:
		return "very-negative"
	case Negative:
		return "negative"
	default:
		return "neutral"
	}
}
