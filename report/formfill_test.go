package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientFill(t *testing.T) {
	var got fillRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forms/fill" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	out, err := client.Fill(context.Background(), "INK2-2024P4", map[string]string{"INK_resultat": "553 622"})
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if string(out) != "%PDF-1.7" {
		t.Fatalf("unexpected body %q", out)
	}
	if got.Form != "INK2-2024P4" || got.Fields["INK_resultat"] != "553 622" {
		t.Fatalf("unexpected request payload %+v", got)
	}
}

func TestClientFillErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Fill(context.Background(), "INK2", nil); err == nil {
		t.Fatalf("expected error on 502")
	}
}
