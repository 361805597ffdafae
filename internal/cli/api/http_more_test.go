package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Доп.кейс: без токена и без тела заголовки Authorization и Content-Type не ставятся
func TestDoJSON_NoToken_NoAuthHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a := r.Header.Get("Authorization"); a != "" {
			t.Fatalf("Authorization must be empty when token not provided, got: %q", a)
		}
		if ct := r.Header.Get("Content-Type"); ct != "" {
			t.Fatalf("Content-Type must be empty without payload, got: %q", ct)
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer ts.Close()

	resp, _, err := DoJSON(context.Background(), http.MethodGet, ts.URL, nil, "")
	if err != nil {
		t.Fatalf("DoJSON err: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

// Доп.кейс: сетевая ошибка (недостижимый адрес)
func TestDoJSON_NetworkError(t *testing.T) {
	if _, _, err := DoJSON(context.Background(), http.MethodPost, "http://127.0.0.1:1", map[string]any{"a": 1}, ""); err == nil {
		t.Fatalf("expected network error for unreachable URL")
	}
}

// Доп.кейс: ошибка при создании запроса (невалидный URL)
func TestDoJSON_InvalidURL_NewRequestError(t *testing.T) {
	if _, _, err := DoJSON(context.Background(), http.MethodPost, "http://[::1", map[string]any{"a": 1}, ""); err == nil {
		t.Fatalf("expected new request error for invalid URL")
	}
}

// Доп.кейсы DecodeEnvelope: success=false при 200, битый JSON при 200, пустые data
func TestDecodeEnvelope_EdgeCases(t *testing.T) {
	var se *StatusError
	if err := DecodeEnvelope(http.StatusOK, []byte(`{"success":false,"message":"nope"}`), nil); !errors.As(err, &se) {
		t.Fatalf("expected StatusError for success=false, got %v", err)
	}
	if err := DecodeEnvelope(http.StatusOK, []byte(`not json`), nil); err == nil || errors.As(err, &se) {
		t.Fatalf("expected decode error, got %v", err)
	}
	out := map[string]int{"kept": 1}
	if err := DecodeEnvelope(http.StatusOK, []byte(`{"success":true,"data":null}`), &out); err != nil {
		t.Fatalf("null data: %v", err)
	}
	if out["kept"] != 1 {
		t.Fatalf("null data must not touch out")
	}
	if err := DecodeEnvelope(http.StatusOK, []byte(`{"success":true,"data":"str"}`), &out); err == nil {
		t.Fatalf("expected data decode error")
	}
}

func TestStatusError_Message(t *testing.T) {
	if got := (&StatusError{Code: 500}).Error(); got != "server status 500" {
		t.Fatalf("got %q", got)
	}
	if got := (&StatusError{Code: 404, Message: "x"}).Error(); got != "server status 404: x" {
		t.Fatalf("got %q", got)
	}
}
