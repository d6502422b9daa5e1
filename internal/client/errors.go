package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// RequestError is returned when the backend answers with a non-2xx status
type RequestError struct {
	Status int
	Path   string
	Detail string // FastAPI "detail" field, when present
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("Erro %d", e.Status)
}

// TransportError covers everything that prevents a usable response:
// network failures, unreadable bodies and malformed JSON.
type TransportError struct {
	Op   string // encode, build, send, read, decode
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return 0
}

// Describe turns a client error into an actionable hint for the user.
// It returns "" for errors it knows nothing about.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return describeStatus(reqErr)
	}

	var tErr *TransportError
	if errors.As(err, &tErr) {
		if tErr.Op == "decode" {
			return "Resposta inválida - o serviço não retornou o JSON esperado"
		}
		if errors.Is(err, context.Canceled) {
			return "Requisição cancelada"
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "Tempo esgotado aguardando o serviço de análise"
		}
		return categorizeTransportError(tErr.Err.Error())
	}

	return ""
}

func describeStatus(e *RequestError) string {
	hint := ""
	switch {
	case e.Status == 404:
		hint = "Rota não encontrada - verifique a URL base do serviço"
	case e.Status == 422:
		hint = "Requisição rejeitada - o serviço não aceitou os campos enviados"
	case e.Status >= 400 && e.Status < 500:
		hint = "Requisição rejeitada pelo serviço"
	case e.Status >= 500:
		hint = "Falha interna do serviço de análise"
	default:
		hint = "Status inesperado"
	}
	if e.Detail != "" {
		hint += ": " + e.Detail
	}
	return hint
}

// categorizeTransportError inspects low-level error text from net/http
func categorizeTransportError(errStr string) string {
	errLower := strings.ToLower(errStr)

	// Proxy errors often also contain "connection refused"
	if strings.Contains(errLower, "proxy") {
		return "Falha no proxy - verifique as variáveis HTTP_PROXY/HTTPS_PROXY"
	}

	if strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "dial tcp: lookup") {
		return "Falha de DNS - verifique o nome do host na URL base"
	}

	if strings.Contains(errLower, "connection refused") {
		return "Conexão recusada - verifique se o serviço de análise está rodando e a porta está correta"
	}

	if strings.Contains(errLower, "connection reset") {
		return "Conexão encerrada pelo servidor"
	}

	if strings.Contains(errLower, "network is unreachable") ||
		strings.Contains(errLower, "no route to host") {
		return "Rede inacessível - verifique a conexão e o firewall"
	}

	if strings.Contains(errLower, "x509") ||
		strings.Contains(errLower, "certificate") ||
		strings.Contains(errLower, "tls") {
		return "Falha TLS - verifique os certificados configurados"
	}

	if strings.Contains(errLower, "unsupported protocol") ||
		strings.Contains(errLower, "invalid url") {
		return "URL inválida - use http:// ou https://"
	}

	if strings.Contains(errLower, "eof") {
		return "Conexão fechada inesperadamente pelo servidor"
	}

	if strings.Contains(errLower, "timeout") ||
		strings.Contains(errLower, "timed out") {
		return "Tempo esgotado aguardando o serviço de análise"
	}

	return ""
}
