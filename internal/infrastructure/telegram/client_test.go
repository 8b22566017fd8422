package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/doeshing/minebot/internal/domain"
)

type capturedCall struct {
	path        string
	contentType string
	body        map[string]interface{}
}

func newAPIServer(t *testing.T, status int, response string, calls *[]capturedCall) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		call := capturedCall{path: r.URL.Path, contentType: r.Header.Get("content-type")}
		_ = json.Unmarshal(raw, &call.body)
		*calls = append(*calls, call)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClientSendPostsSendMessage(t *testing.T) {
	var calls []capturedCall
	server := newAPIServer(t, http.StatusOK, `{"ok":true,"result":{"message_id":1}}`, &calls)

	client := NewClient(server.URL+"/", "123:abc", server.Client())
	if err := client.Send(context.Background(), 42, "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	call := calls[0]
	if call.path != "/bot123:abc/sendMessage" {
		t.Errorf("path = %q", call.path)
	}
	if call.contentType != "application/json" {
		t.Errorf("content-type = %q", call.contentType)
	}
	if call.body["chat_id"] != float64(42) || call.body["text"] != "hello" {
		t.Errorf("body = %v", call.body)
	}
}

func TestClientSendReportsAPIErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
		wantDesc string
	}{
		{name: "http error with description", status: http.StatusBadRequest, response: `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`, wantDesc: "Bad Request: chat not found"},
		{name: "ok false on 200", status: http.StatusOK, response: `{"ok":false,"description":"Forbidden"}`, wantDesc: "Forbidden"},
		{name: "non json error body", status: http.StatusBadGateway, response: `<html>bad gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []capturedCall
			server := newAPIServer(t, tt.status, tt.response, &calls)
			client := NewClient(server.URL, "tok", server.Client())

			err := client.Send(context.Background(), 1, "x")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.Method != "sendMessage" || apiErr.StatusCode != tt.status {
				t.Errorf("apiErr = %+v", apiErr)
			}
			if apiErr.Description != tt.wantDesc {
				t.Errorf("description = %q, want %q", apiErr.Description, tt.wantDesc)
			}
		})
	}
}

func TestClientRequiresToken(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", nil)
	if err := client.Send(context.Background(), 1, "x"); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("error = %v, want ErrMissingToken", err)
	}
}

func TestClientRedactsTokenFromTransportErrors(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, "secret-token", &http.Client{Timeout: time.Second})
	err := client.Send(context.Background(), 1, "x")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if strings.Contains(err.Error(), "secret-token") {
		t.Fatalf("token leaked in error: %v", err)
	}
}

func TestClientGetUpdatesDecodesResult(t *testing.T) {
	var calls []capturedCall
	server := newAPIServer(t, http.StatusOK,
		`{"ok":true,"result":[{"update_id":7,"message":{"message_id":1,"from":{"id":5,"is_bot":false},"chat":{"id":9,"type":"private"},"text":"/start"}}]}`,
		&calls)
	client := NewClient(server.URL, "tok", server.Client())

	updates, err := client.GetUpdates(context.Background(), 7, 30*time.Second)
	if err != nil {
		t.Fatalf("GetUpdates: %v", err)
	}
	if len(updates) != 1 || updates[0].UpdateID != 7 || updates[0].Message.Text != "/start" {
		t.Fatalf("updates = %+v", updates)
	}
	if calls[0].path != "/bottok/getUpdates" {
		t.Errorf("path = %q", calls[0].path)
	}
	if calls[0].body["offset"] != float64(7) || calls[0].body["timeout"] != float64(30) {
		t.Errorf("body = %v", calls[0].body)
	}
}

func TestClientWebhookManagement(t *testing.T) {
	var calls []capturedCall
	server := newAPIServer(t, http.StatusOK, `{"ok":true,"result":true}`, &calls)
	client := NewClient(server.URL, "tok", server.Client())

	if err := client.SetWebhook(context.Background(), "https://example.com/webhook"); err != nil {
		t.Fatalf("SetWebhook: %v", err)
	}
	if err := client.DeleteWebhook(context.Background()); err != nil {
		t.Fatalf("DeleteWebhook: %v", err)
	}
	if calls[0].path != "/bottok/setWebhook" || calls[0].body["url"] != "https://example.com/webhook" {
		t.Errorf("setWebhook call = %+v", calls[0])
	}
	if calls[1].path != "/bottok/deleteWebhook" {
		t.Errorf("deleteWebhook path = %q", calls[1].path)
	}
}

func TestClientGetMe(t *testing.T) {
	var calls []capturedCall
	server := newAPIServer(t, http.StatusOK, `{"ok":true,"result":{"id":1,"is_bot":true,"username":"mines_bot"}}`, &calls)
	client := NewClient(server.URL, "tok", server.Client())

	name, err := client.GetMe(context.Background())
	if err != nil {
		t.Fatalf("GetMe: %v", err)
	}
	if name != "mines_bot" || calls[0].path != "/bottok/getMe" {
		t.Fatalf("name = %q, calls = %+v", name, calls)
	}
}
