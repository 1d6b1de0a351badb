package suggest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(url string) *Client {
	return &Client{
		WebhookURL: url,
		HTTPClient: &http.Client{Timeout: time.Second},
	}
}

func TestGenerateMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"message":"Olá! Fale com nossa equipe de vendas."}`))
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).GenerateMessage(context.Background(), "loja de roupas")
	assert.Equal(t, "Olá! Fale com nossa equipe de vendas.", got)
}

func TestGenerateMessageFallsBackOnServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).GenerateMessage(context.Background(), "loja")
	assert.Equal(t, FallbackMessage, got)
}

func TestGenerateMessageFallsBackOnEmptyMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"  "}`))
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).GenerateMessage(context.Background(), "loja")
	assert.Equal(t, FallbackMessage, got)
}

func TestGenerateMessageFallsBackWithoutConfig(t *testing.T) {
	t.Parallel()

	got := newTestClient("").GenerateMessage(context.Background(), "loja")
	assert.Equal(t, FallbackMessage, got)
}
