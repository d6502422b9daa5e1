package types

// AnalysisKind identifies one of the four analyses the service offers
type AnalysisKind string

const (
	KindSimilar        AnalysisKind = "similar"
	KindClassification AnalysisKind = "classification"
	KindSentiment      AnalysisKind = "sentiment"
	KindFull           AnalysisKind = "full"
)

// AllKinds lists the analysis kinds in the order the UI presents them
var AllKinds = []AnalysisKind{KindFull, KindSimilar, KindClassification, KindSentiment}

// Path returns the backend route serving this kind
func (k AnalysisKind) Path() string {
	switch k {
	case KindSimilar:
		return PathSimilar
	case KindClassification:
		return PathClassify
	case KindSentiment:
		return PathSentiment
	case KindFull:
		return PathFullAnalysis
	}
	return ""
}

// KindForPath maps a backend route back to its analysis kind
func KindForPath(path string) (AnalysisKind, bool) {
	for _, k := range AllKinds {
		if k.Path() == path {
			return k, true
		}
	}
	return "", false
}

// UsesTopK reports whether requests of this kind carry top_k
func (k AnalysisKind) UsesTopK() bool {
	return k == KindSimilar || k == KindFull
}

// Label returns the human-readable name shown on buttons and panel titles
func (k AnalysisKind) Label() string {
	switch k {
	case KindSimilar:
		return "Textos Similares"
	case KindClassification:
		return "Classificação"
	case KindSentiment:
		return "Sentimento"
	case KindFull:
		return "Análise Completa"
	}
	return string(k)
}

// Backend routes
const (
	PathSimilar      = "/buscar_similares"
	PathClassify     = "/classificar"
	PathSentiment    = "/sentimento"
	PathFullAnalysis = "/analise_completa"
	PathHealth       = "/health"
	PathInfo         = "/"
)

// AnalysisRequest is the JSON body posted to every analysis route.
// TopK is omitted for routes that do not use it.
type AnalysisRequest struct {
	Prompt string `json:"prompt" yaml:"prompt" validate:"required"`
	TopK   int    `json:"top_k,omitempty" yaml:"top_k,omitempty" validate:"omitempty,min=1"`
}

// SimilarItem is one nearest-neighbour hit from the embedding search
type SimilarItem struct {
	ID         string  `json:"id,omitempty" yaml:"id,omitempty"`
	Text       string  `json:"texto" yaml:"texto"`
	Category   string  `json:"categoria" yaml:"categoria"`
	Similarity float64 `json:"similitude" yaml:"similitude"`
	Language   string  `json:"idioma" yaml:"idioma"`
}

// CategoryScore is a single entry of the classifier's ranked output
type CategoryScore struct {
	Category string  `json:"categoria" yaml:"categoria"`
	Score    float64 `json:"score" yaml:"score"`
}

// ClassificationResult is the zero-shot classifier output.
// AllCategories keeps the order the server sent.
type ClassificationResult struct {
	Category      string          `json:"categoria,omitempty" yaml:"categoria,omitempty"`
	Confidence    float64         `json:"confianca" yaml:"confianca"`
	AllCategories []CategoryScore `json:"todas_categorias,omitempty" yaml:"todas_categorias,omitempty"`
	Error         string          `json:"erro,omitempty" yaml:"erro,omitempty"`
}

// SentimentResult is the sentiment model output. Label is free-form text
// ("Muito Positivo", "5 stars", ...).
type SentimentResult struct {
	Label         string  `json:"sentimento,omitempty" yaml:"sentimento,omitempty"`
	OriginalLabel string  `json:"label_original,omitempty" yaml:"label_original,omitempty"`
	Confidence    float64 `json:"confianca" yaml:"confianca"`
	Error         string  `json:"erro,omitempty" yaml:"erro,omitempty"`
}

// FullAnalysisResult bundles the three analyses for one prompt
type FullAnalysisResult struct {
	Prompt         string               `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	SimilarItems   []SimilarItem        `json:"textos_similares" yaml:"textos_similares"`
	Classification ClassificationResult `json:"classificacao" yaml:"classificacao"`
	Sentiment      SentimentResult      `json:"sentimento" yaml:"sentimento"`
}

// SimilarResponse is the envelope returned by /buscar_similares
type SimilarResponse struct {
	Success  bool          `json:"sucesso"`
	Prompt   string        `json:"prompt,omitempty"`
	Quantity int           `json:"quantidade"`
	Items    []SimilarItem `json:"textos"`
}

// ClassificationResponse is the envelope returned by /classificar
type ClassificationResponse struct {
	Success        bool                 `json:"sucesso"`
	Prompt         string               `json:"prompt,omitempty"`
	Classification ClassificationResult `json:"classificacao"`
}

// SentimentResponse is the envelope returned by /sentimento
type SentimentResponse struct {
	Success   bool            `json:"sucesso"`
	Prompt    string          `json:"prompt,omitempty"`
	Sentiment SentimentResult `json:"sentimento"`
}

// FullAnalysisResponse is the envelope returned by /analise_completa
type FullAnalysisResponse struct {
	Success bool               `json:"sucesso"`
	Result  FullAnalysisResult `json:"resultado"`
}

// HealthStatus is returned by GET /health
type HealthStatus struct {
	Status         string `json:"status" yaml:"status"`
	NLPInitialized bool   `json:"nlp_initialized" yaml:"nlp_initialized"`
}

// ServiceInfo is returned by GET /
type ServiceInfo struct {
	Message   string   `json:"mensagem" yaml:"mensagem"`
	Version   string   `json:"versao" yaml:"versao"`
	Endpoints []string `json:"endpoints" yaml:"endpoints"`
}

// ErrorDetail is the body FastAPI sends with non-2xx statuses
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// TLSConfig contains TLS/mTLS settings for the backend connection
type TLSConfig struct {
	CertFile           string `json:"certFile,omitempty" yaml:"cert_file,omitempty" mapstructure:"cert_file"`
	KeyFile            string `json:"keyFile,omitempty" yaml:"key_file,omitempty" mapstructure:"key_file"`
	CAFile             string `json:"caFile,omitempty" yaml:"ca_file,omitempty" mapstructure:"ca_file"`
	InsecureSkipVerify bool   `json:"insecureSkipVerify,omitempty" yaml:"insecure_skip_verify,omitempty" mapstructure:"insecure_skip_verify"`
}

// IsZero reports whether no TLS option is set
func (t TLSConfig) IsZero() bool {
	return t == TLSConfig{}
}
