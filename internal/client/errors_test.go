package client

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil",
			err:  nil,
			want: "",
		},
		{
			name: "not found",
			err:  &RequestError{Status: 404, Path: "/classificar"},
			want: "Rota não encontrada - verifique a URL base do serviço",
		},
		{
			name: "server error with detail",
			err:  &RequestError{Status: 500, Detail: "NLP Processor não inicializado"},
			want: "Falha interna do serviço de análise: NLP Processor não inicializado",
		},
		{
			name: "unprocessable",
			err:  &RequestError{Status: 422},
			want: "Requisição rejeitada - o serviço não aceitou os campos enviados",
		},
		{
			name: "connection refused",
			err:  &TransportError{Op: "send", Err: errors.New(`Post "http://localhost:8000/sentimento": dial tcp 127.0.0.1:8000: connect: connection refused`)},
			want: "Conexão recusada - verifique se o serviço de análise está rodando e a porta está correta",
		},
		{
			name: "dns",
			err:  &TransportError{Op: "send", Err: errors.New("dial tcp: lookup nlp.invalid: no such host")},
			want: "Falha de DNS - verifique o nome do host na URL base",
		},
		{
			name: "tls",
			err:  &TransportError{Op: "send", Err: errors.New("x509: certificate signed by unknown authority")},
			want: "Falha TLS - verifique os certificados configurados",
		},
		{
			name: "decode",
			err:  &TransportError{Op: "decode", Err: errors.New("unexpected end of JSON input")},
			want: "Resposta inválida - o serviço não retornou o JSON esperado",
		},
		{
			name: "cancelled",
			err:  &TransportError{Op: "send", Err: fmt.Errorf("Post: %w", context.Canceled)},
			want: "Requisição cancelada",
		},
		{
			name: "unknown transport",
			err:  &TransportError{Op: "send", Err: errors.New("something odd")},
			want: "",
		},
		{
			name: "foreign error",
			err:  errors.New("boom"),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransportError_UsesUnderlyingMessage(t *testing.T) {
	inner := errors.New("unexpected EOF")
	err := &TransportError{Op: "read", Err: inner}

	if err.Error() != "unexpected EOF" {
		t.Errorf("Error() = %q, want underlying message", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("TransportError should unwrap to its cause")
	}
}
