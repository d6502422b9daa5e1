/*
Package client is the HTTP client for the text-analysis backend.

# Operations

	SearchSimilar  POST /buscar_similares  {prompt, top_k}
	Classify       POST /classificar       {prompt}
	Sentiment      POST /sentimento        {prompt}
	FullAnalysis   POST /analise_completa  {prompt, top_k}
	Health         GET  /health
	Info           GET  /

Every call sends a JSON body (for POST), a fresh X-Request-ID and decodes
the JSON envelope into the matching types value.

# Errors

A non-2xx status yields *RequestError carrying the status code. Network
failures, unreadable bodies and malformed JSON yield *TransportError with
the underlying message. No partial result is returned alongside an error.
Describe maps both to a short hint for display.

# Policy

There are no retries and no client-side timeout. Cancellation is the
caller's context. Observers registered with WithObserver see every call,
which is how opt-in analytics are collected.

# Example

	c, err := client.New("http://localhost:8000")
	if err != nil {
		return err
	}
	res, err := c.FullAnalysis(ctx, "ótimo produto", 3)
*/
package client
