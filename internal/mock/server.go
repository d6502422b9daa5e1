package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/studiowebux/nlpbrowser/internal/types"
)

const (
	defaultTopK = 5
	maxLogs     = 1000
	version     = "1.0.0"
)

// Server is a stand-in for the analysis backend
type Server struct {
	config     *Config
	analyzer   *Analyzer
	logger     *slog.Logger
	httpServer *http.Server
	addr       string
	logs       []RequestLog
	logsMutex  sync.Mutex
	workdir    string
	notifyCh   chan struct{}
}

// NewServer creates a new mock server. workdir resolves relative bodyFile paths.
func NewServer(config *Config, workdir string, logger *slog.Logger) *Server {
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.Host == "" {
		config.Host = DefaultHost
	}
	if len(config.Dataset) == 0 {
		config.Dataset = DefaultConfig().Dataset
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		config:   config,
		analyzer: NewAnalyzer(config.Dataset, config.Categories),
		logger:   logger.With("component", "mock"),
		logs:     make([]RequestLog, 0),
		workdir:  workdir,
		notifyCh: make(chan struct{}, 100),
	}
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRequest)
	return mux
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.addr = ln.Addr().String()

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("mock server stopped", "error", err)
		}
	}()

	s.logger.Info("mock server listening", "address", s.GetAddress(), "routes", len(s.config.Routes), "dataset", len(s.config.Dataset))
	return nil
}

// Stop stops the mock server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// handleRequest serves configured routes first, then the built-in analyzer
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	bodyBytes, _ := io.ReadAll(r.Body)
	r.Body.Close()

	var status int
	var matchedRule string

	if route := s.findMatchingRoute(r.Method, r.URL.Path); route != nil {
		status = s.serveRoute(w, route)
		matchedRule = route.Name
		if matchedRule == "" {
			matchedRule = fmt.Sprintf("%s %s", route.Method, route.Path)
		}
	} else {
		status = s.serveBuiltin(w, r.Method, r.URL.Path, bodyBytes)
		matchedRule = "builtin"
	}

	duration := time.Since(start)

	if s.config.Logging {
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"rule", matchedRule,
			"duration", duration,
		)
		s.logRequest(RequestLog{
			Timestamp:   start,
			RequestID:   r.Header.Get("X-Request-ID"),
			Method:      r.Method,
			Path:        r.URL.Path,
			Body:        string(bodyBytes),
			MatchedRule: matchedRule,
			Status:      status,
			Duration:    duration,
		})
	}
}

// serveRoute writes a fixed response and returns its status
func (s *Server) serveRoute(w http.ResponseWriter, route *Route) int {
	if route.Delay > 0 {
		time.Sleep(time.Duration(route.Delay) * time.Millisecond)
	}

	status := route.Status
	if status == 0 {
		status = http.StatusOK
	}

	body := route.Body
	if route.BodyFile != "" {
		filePath := route.BodyFile
		if !filepath.IsAbs(filePath) {
			filePath = filepath.Join(s.workdir, filePath)
		}
		data, err := os.ReadFile(filePath)
		if err != nil {
			s.logger.Error("failed to read body file", "file", route.BodyFile, "error", err)
			return writeJSON(w, http.StatusInternalServerError, types.ErrorDetail{
				Detail: fmt.Sprintf("failed to read body file %s", route.BodyFile),
			})
		}
		body = string(data)
	}

	if _, ok := route.Headers["Content-Type"]; !ok {
		w.Header().Set("Content-Type", "application/json")
	}
	for key, value := range route.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(status)
	w.Write([]byte(body))
	return status
}

// serveBuiltin answers the backend's own routes with the analyzer
func (s *Server) serveBuiltin(w http.ResponseWriter, method, path string, body []byte) int {
	switch {
	case method == http.MethodGet && path == types.PathHealth:
		return writeJSON(w, http.StatusOK, types.HealthStatus{
			Status:         "online",
			NLPInitialized: !s.config.Unavailable,
		})
	case method == http.MethodGet && path == types.PathInfo:
		return writeJSON(w, http.StatusOK, types.ServiceInfo{
			Message: "NLP Browser App API (mock)",
			Version: version,
			Endpoints: []string{
				types.PathSimilar + " - Buscar textos similares",
				types.PathClassify + " - Classificar texto",
				types.PathSentiment + " - Analisar sentimento",
				types.PathFullAnalysis + " - Análise completa",
			},
		})
	}

	kind, ok := types.KindForPath(path)
	if !ok {
		return writeJSON(w, http.StatusNotFound, types.ErrorDetail{Detail: "Not Found"})
	}
	if method != http.MethodPost {
		return writeJSON(w, http.StatusMethodNotAllowed, types.ErrorDetail{Detail: "Method Not Allowed"})
	}

	var req types.AnalysisRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return writeJSON(w, http.StatusUnprocessableEntity, types.ErrorDetail{Detail: "invalid JSON body"})
	}
	if req.Prompt == "" {
		return writeJSON(w, http.StatusUnprocessableEntity, types.ErrorDetail{Detail: "prompt: field required"})
	}
	if req.TopK == 0 {
		req.TopK = defaultTopK
	}

	if s.config.Unavailable {
		return writeJSON(w, http.StatusInternalServerError, types.ErrorDetail{Detail: "NLP Processor não inicializado"})
	}
	if s.config.Delay > 0 {
		time.Sleep(time.Duration(s.config.Delay) * time.Millisecond)
	}

	switch kind {
	case types.KindSimilar:
		items := s.analyzer.Similar(req.Prompt, req.TopK)
		return writeJSON(w, http.StatusOK, types.SimilarResponse{
			Success: true, Prompt: req.Prompt, Quantity: len(items), Items: items,
		})
	case types.KindClassification:
		return writeJSON(w, http.StatusOK, types.ClassificationResponse{
			Success: true, Prompt: req.Prompt, Classification: s.analyzer.Classify(req.Prompt),
		})
	case types.KindSentiment:
		return writeJSON(w, http.StatusOK, types.SentimentResponse{
			Success: true, Prompt: req.Prompt, Sentiment: s.analyzer.Sentiment(req.Prompt),
		})
	default:
		return writeJSON(w, http.StatusOK, types.FullAnalysisResponse{
			Success: true, Result: s.analyzer.Full(req.Prompt, req.TopK),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
	return status
}

// findMatchingRoute finds the first route that matches the method and path
func (s *Server) findMatchingRoute(method, path string) *Route {
	for i := range s.config.Routes {
		route := &s.config.Routes[i]
		if !strings.EqualFold(route.Method, method) {
			continue
		}

		matched := false
		switch route.PathType {
		case "", "exact":
			matched = route.Path == path
		case "prefix":
			matched = strings.HasPrefix(path, route.Path)
		case "regex":
			if re, err := regexp.Compile(route.Path); err == nil {
				matched = re.MatchString(path)
			}
		}

		if matched {
			return route
		}
	}

	return nil
}

// logRequest adds a request to the log
func (s *Server) logRequest(log RequestLog) {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, log)
	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}

	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// NotifyChannel signals each logged request
func (s *Server) NotifyChannel() <-chan struct{} {
	return s.notifyCh
}

// DrainLogs returns the logged requests and empties the log
func (s *Server) DrainLogs() []RequestLog {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	logs := s.logs
	s.logs = make([]RequestLog, 0)
	return logs
}

// GetAddress returns the server base URL
func (s *Server) GetAddress() string {
	if s.addr != "" {
		return "http://" + s.addr
	}
	return fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
}
