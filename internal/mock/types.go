package mock

import (
	"time"

	"github.com/studiowebux/nlpbrowser/internal/types"
)

// Config represents the mock backend configuration
type Config struct {
	Port        int                 `json:"port" yaml:"port"`                                   // Server port (default: 8000)
	Host        string              `json:"host" yaml:"host"`                                   // Server host (default: localhost)
	Routes      []Route             `json:"routes,omitempty" yaml:"routes,omitempty"`           // Fixed responses, checked before the built-in analyzer
	Dataset     []types.SimilarItem `json:"dataset,omitempty" yaml:"dataset,omitempty"`         // Corpus searched by the built-in analyzer
	Categories  []string            `json:"categories,omitempty" yaml:"categories,omitempty"`   // Labels the classifier ranks (default: dataset categories)
	Delay       int                 `json:"delay,omitempty" yaml:"delay,omitempty"`             // Delay in milliseconds applied to analyzer routes
	Unavailable bool                `json:"unavailable,omitempty" yaml:"unavailable,omitempty"` // Answer analyses with 500 as if the models failed to load
	Logging     bool                `json:"logging" yaml:"logging"`                             // Enable request logging (default: true)
}

// Route represents a fixed response for one method and path
type Route struct {
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
	Method      string            `json:"method" yaml:"method"`
	Path        string            `json:"path" yaml:"path"`
	PathType    string            `json:"pathType,omitempty" yaml:"pathType,omitempty"` // exact, prefix, regex (default: exact)
	Status      int               `json:"status" yaml:"status"`
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body        string            `json:"body,omitempty" yaml:"body,omitempty"`
	BodyFile    string            `json:"bodyFile,omitempty" yaml:"bodyFile,omitempty"`
	Delay       int               `json:"delay,omitempty" yaml:"delay,omitempty"` // milliseconds
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
}

// RequestLog represents a logged request
type RequestLog struct {
	Timestamp   time.Time     `json:"timestamp"`
	RequestID   string        `json:"requestId,omitempty"`
	Method      string        `json:"method"`
	Path        string        `json:"path"`
	Body        string        `json:"body"`
	MatchedRule string        `json:"matchedRule"`
	Status      int           `json:"status"`
	Duration    time.Duration `json:"duration"`
}
