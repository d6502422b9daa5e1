package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	RequestID   string
	Body        map[string]any
}

// newBackend starts a test server answering every path with the given status and body
func newBackend(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var recorded []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec := recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			RequestID:   r.Header.Get("X-Request-ID"),
		}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
		mu.Lock()
		recorded = append(recorded, rec)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &recorded
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"ftp://example.com", "http://", "://bad"} {
		_, err := New(raw)
		assert.Error(t, err, raw)
	}

	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c, err = New("http://example.com:8000/")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com:8000", c.BaseURL())
}

func TestSearchSimilar_SendsPromptAndTopK(t *testing.T) {
	srv, recorded := newBackend(t, http.StatusOK, `{
		"sucesso": true, "prompt": "bom", "quantidade": 2,
		"textos": [
			{"id": "doc_1", "texto": "muito bom", "categoria": "Elogio", "similitude": 0.91, "idioma": "pt"},
			{"id": "doc_7", "texto": "very good", "categoria": "Elogio", "similitude": 0.85, "idioma": "en"}
		]}`)

	c, err := New(srv.URL)
	require.NoError(t, err)

	items, err := c.SearchSimilar(context.Background(), "bom", 3)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "muito bom", items[0].Text)
	assert.Equal(t, "en", items[1].Language)
	assert.InDelta(t, 0.85, items[1].Similarity, 1e-9)

	require.Len(t, *recorded, 1)
	req := (*recorded)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, types.PathSimilar, req.Path)
	assert.Equal(t, "application/json", req.ContentType)
	assert.NotEmpty(t, req.RequestID)
	assert.Equal(t, "bom", req.Body["prompt"])
	assert.EqualValues(t, 3, req.Body["top_k"])
}

func TestClassify_OmitsTopK(t *testing.T) {
	srv, recorded := newBackend(t, http.StatusOK, `{
		"sucesso": true,
		"classificacao": {
			"categoria": "Reclamação", "confianca": 0.7,
			"todas_categorias": [
				{"categoria": "Reclamação", "score": 0.7},
				{"categoria": "Elogio", "score": 0.2},
				{"categoria": "Dúvida", "score": 0.1}
			]}}`)

	c, err := New(srv.URL)
	require.NoError(t, err)

	res, err := c.Classify(context.Background(), "produto quebrou")
	require.NoError(t, err)
	assert.Equal(t, "Reclamação", res.Category)
	require.Len(t, res.AllCategories, 3)
	assert.Equal(t, "Dúvida", res.AllCategories[2].Category)

	req := (*recorded)[0]
	assert.Equal(t, types.PathClassify, req.Path)
	_, hasTopK := req.Body["top_k"]
	assert.False(t, hasTopK)
}

func TestSentiment_DecodesErrorField(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `{"sucesso": true, "sentimento": {"erro": "modelo indisponível"}}`)
	c, err := New(srv.URL)
	require.NoError(t, err)

	res, err := c.Sentiment(context.Background(), "qualquer")
	require.NoError(t, err)
	assert.Equal(t, "modelo indisponível", res.Error)
}

func TestFullAnalysis_DecodesBundle(t *testing.T) {
	srv, recorded := newBackend(t, http.StatusOK, `{
		"sucesso": true,
		"resultado": {
			"prompt": "ótimo produto",
			"textos_similares": [
				{"texto": "adorei", "categoria": "Elogio", "similitude": 0.8, "idioma": "pt"},
				{"texto": "great", "categoria": "Elogio", "similitude": 0.7, "idioma": "en"}
			],
			"classificacao": {"categoria": "Elogio", "confianca": 0.92, "todas_categorias": []},
			"sentimento": {"sentimento": "Muito Positivo", "label_original": "5 stars", "confianca": 0.88}
		}}`)

	c, err := New(srv.URL)
	require.NoError(t, err)

	res, err := c.FullAnalysis(context.Background(), "ótimo produto", 3)
	require.NoError(t, err)
	assert.Equal(t, "Elogio", res.Classification.Category)
	assert.Equal(t, "Muito Positivo", res.Sentiment.Label)
	assert.Equal(t, "5 stars", res.Sentiment.OriginalLabel)
	assert.Len(t, res.SimilarItems, 2)

	req := (*recorded)[0]
	assert.Equal(t, types.PathFullAnalysis, req.Path)
	assert.EqualValues(t, 3, req.Body["top_k"])
}

func TestNonSuccessStatus_ReturnsRequestError(t *testing.T) {
	srv, _ := newBackend(t, http.StatusInternalServerError, `{"detail": "NLP Processor não inicializado"}`)
	c, err := New(srv.URL)
	require.NoError(t, err)

	res, err := c.Classify(context.Background(), "texto")
	require.Error(t, err)
	assert.Nil(t, res)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, 500, reqErr.Status)
	assert.Equal(t, "NLP Processor não inicializado", reqErr.Detail)
	assert.Equal(t, "Erro 500", err.Error())
	assert.Equal(t, 500, StatusCode(err))
}

func TestMalformedJSON_ReturnsTransportError(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `{"textos": [`)
	c, err := New(srv.URL)
	require.NoError(t, err)

	items, err := c.SearchSimilar(context.Background(), "texto", 5)
	require.Error(t, err)
	assert.Nil(t, items)

	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, "decode", tErr.Op)
	assert.Zero(t, StatusCode(err))
}

func TestNetworkFailure_ReturnsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)

	_, err = c.Sentiment(context.Background(), "texto")
	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, "send", tErr.Op)
	assert.NotEmpty(t, err.Error())
}

func TestObserver_SeesEveryCall(t *testing.T) {
	srv, _ := newBackend(t, http.StatusBadGateway, `oops`)

	var calls []Call
	c, err := New(srv.URL, WithObserver(func(call Call) { calls = append(calls, call) }))
	require.NoError(t, err)

	_, _ = c.Classify(context.Background(), "a")
	_, _ = c.Sentiment(context.Background(), "b")

	require.Len(t, calls, 2)
	assert.Equal(t, types.PathClassify, calls[0].Path)
	assert.Equal(t, http.StatusBadGateway, calls[0].Status)
	assert.Error(t, calls[0].Err)
	assert.NotEqual(t, calls[0].RequestID, calls[1].RequestID)
	assert.Positive(t, calls[0].RequestSize)
}

func TestHealthAndInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "online", "nlp_initialized": true}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"mensagem": "NLP Browser App API", "versao": "1.0.0", "endpoints": ["/classificar"]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "online", health.Status)
	assert.True(t, health.NLPInitialized)

	info, err := c.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, []string{"/classificar"}, info.Endpoints)
}
