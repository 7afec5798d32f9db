package wppconnect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"revendapro/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// newGatewayServer fakes the token exchange and routes session calls to
// the given handler.
func newGatewayServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/generate-token") {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Contains(t, r.URL.Path, "/"+testSecret+"/")
			json.NewEncoder(w).Encode(map[string]string{"status": "success", "token": "tok-abc"})
			return
		}
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		handler(w, r)
	}))
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(11) 98765-4321", "11987654321"},
		{"+55 11 98765-4321", "5511987654321"},
		{"11987654321", "11987654321"},
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in))
	}
}

func TestStartSession(t *testing.T) {
	srv := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/start-session"))
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, false, payload["waitQrCode"])
		w.Write([]byte(`{"status":"INITIALIZING"}`))
	})
	defer srv.Close()

	client := NewClient(srv.URL, testSecret)
	assert.True(t, client.StartSession(context.Background(), "rvp_11987654321"))
}

func TestStartSession_GatewayDown(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close()

	client := NewClient(srv.URL, testSecret)
	assert.False(t, client.StartSession(context.Background(), "rvp_11987654321"))
}

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		httpCode int
		want     domain.SessionStatus
	}{
		{"connected", `{"status":"CONNECTED"}`, 200, domain.SessionConnected},
		{"lowercase normalized", `{"status":"qrcode"}`, 200, domain.SessionQRCode},
		{"unknown value fails safe", `{"status":"SOMETHING_NEW"}`, 200, domain.SessionError},
		{"malformed body fails safe", `not-json`, 200, domain.SessionError},
		{"server error fails safe", `{}`, 500, domain.SessionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.httpCode)
				w.Write([]byte(tt.body))
			})
			defer srv.Close()

			client := NewClient(srv.URL, testSecret)
			assert.Equal(t, tt.want, client.GetStatus(context.Background(), "s1"))
		})
	}
}

func TestGetStatus_TransportFailureNeverConnected(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close()

	client := NewClient(srv.URL, testSecret)
	status := client.GetStatus(context.Background(), "s1")
	assert.Equal(t, domain.SessionError, status)
	assert.NotEqual(t, domain.SessionConnected, status)
}

func TestGetQRCode(t *testing.T) {
	srv := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"QRCODE","qrcode":"data:image/png;base64,abc123"}`))
	})
	defer srv.Close()

	client := NewClient(srv.URL, testSecret)
	assert.Equal(t, "data:image/png;base64,abc123", client.GetQRCode(context.Background(), "s1"))
}

func TestGetQRCode_EmptyWhenConnected(t *testing.T) {
	srv := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"CONNECTED","qrcode":"stale"}`))
	})
	defer srv.Close()

	client := NewClient(srv.URL, testSecret)
	assert.Empty(t, client.GetQRCode(context.Background(), "s1"))
}

func TestSendMessage(t *testing.T) {
	srv := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/send-message"))
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "11987654321", payload["phone"])
		assert.Equal(t, "Olá!", payload["message"])
		w.Write([]byte(`{"status":"success"}`))
	})
	defer srv.Close()

	client := NewClient(srv.URL, testSecret)
	assert.True(t, client.SendMessage(context.Background(), "s1", "(11) 98765-4321", "Olá!"))
}

func TestSendMessage_FailureReturnsFalse(t *testing.T) {
	srv := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	defer srv.Close()

	client := NewClient(srv.URL, testSecret)
	assert.False(t, client.SendMessage(context.Background(), "s1", "11987654321", "hi"))
}

func TestSendFile_OptionalFields(t *testing.T) {
	srv := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "https://cdn.example/contract.pdf", payload["path"])
		_, hasFilename := payload["filename"]
		_, hasCaption := payload["caption"]
		assert.False(t, hasFilename)
		assert.False(t, hasCaption)
		w.Write([]byte(`{"status":"success"}`))
	})
	defer srv.Close()

	client := NewClient(srv.URL, testSecret)
	assert.True(t, client.SendFile(context.Background(), "s1", "11987654321", "https://cdn.example/contract.pdf", "", ""))
}

func TestGetAllContacts(t *testing.T) {
	srv := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":[
			{"id":{"user":"5511987654321"},"name":"Maria","pushname":"Mari"},
			{"id":{"user":"5511912345678"},"name":"","pushname":"Jo"},
			{"id":{"user":""},"name":"broadcast"}
		]}`))
	})
	defer srv.Close()

	client := NewClient(srv.URL, testSecret)
	contacts := client.GetAllContacts(context.Background(), "s1")
	require.Len(t, contacts, 2)
	assert.Equal(t, "Maria", contacts[0].Name)
	assert.Equal(t, "Jo", contacts[1].Name, "falls back to pushname")
}

func TestGetAllContacts_MalformedDegradesToEmpty(t *testing.T) {
	srv := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	})
	defer srv.Close()

	client := NewClient(srv.URL, testSecret)
	contacts := client.GetAllContacts(context.Background(), "s1")
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

func TestCheckNumberStatus(t *testing.T) {
	srv := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "check-number-status/11987654321")
		w.Write([]byte(`{"response":{"numberExists":true}}`))
	})
	defer srv.Close()

	client := NewClient(srv.URL, testSecret)
	assert.True(t, client.CheckNumberStatus(context.Background(), "s1", "(11) 98765-4321"))
}

func TestCheckNumberStatus_DefaultsToFalse(t *testing.T) {
	srv := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	})
	defer srv.Close()

	client := NewClient(srv.URL, testSecret)
	assert.False(t, client.CheckNumberStatus(context.Background(), "s1", "11987654321"))
}
