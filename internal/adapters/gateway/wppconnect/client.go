package wppconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"revendapro/internal/core/domain"
)

// DefaultBaseURL is where a local WPPConnect server listens.
const DefaultBaseURL = "http://localhost:21465"

const requestTimeout = 30 * time.Second

// Client drives a remote WPPConnect-style WhatsApp automation server.
// It is a stateless proxy: no session state is cached between calls, so
// one instance is safe to share across concurrent callers. Polling
// cadence belongs to the caller.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient creates a messaging gateway client.
func NewClient(baseURL, secretKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// NormalizePhone strips every non-digit character so the gateway always
// receives digits-only numbers: "(11) 98765-4321" -> "11987654321".
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// generateToken exchanges the shared secret for a per-session bearer
// token. Tokens are requested per call to keep the adapter stateless.
func (c *Client) generateToken(ctx context.Context, sessionID string) (string, error) {
	reqURL := fmt.Sprintf("%s/api/%s/%s/generate-token", c.baseURL, sessionID, c.secretKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("token request failed: status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Status string `json:"status"`
		Token  string `json:"token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Token == "" {
		return "", fmt.Errorf("token request returned empty token")
	}
	return result.Token, nil
}

// doSessionRequest performs one authenticated call against a session
// endpoint and returns the raw body.
func (c *Client) doSessionRequest(ctx context.Context, method, sessionID, endpoint string, payload interface{}) ([]byte, int, error) {
	token, err := c.generateToken(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
		body = bytes.NewBuffer(jsonData)
	}

	reqURL := fmt.Sprintf("%s/api/%s/%s", c.baseURL, sessionID, endpoint)
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return respBody, resp.StatusCode, fmt.Errorf("gateway status %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, resp.StatusCode, nil
}

// StartSession asks the gateway to begin pairing. The QR code is not
// returned here; the gateway starts generating it in the background.
func (c *Client) StartSession(ctx context.Context, sessionID string) bool {
	_, _, err := c.doSessionRequest(ctx, http.MethodPost, sessionID, "start-session", map[string]interface{}{
		"waitQrCode": false,
	})
	if err != nil {
		log.Printf("⚠️ WhatsApp start-session failed [%s]: %v", sessionID, err)
		return false
	}
	return true
}

// GetQRCode returns the current pairing code image payload (base64), or
// "" when not yet available or the session is already authenticated.
func (c *Client) GetQRCode(ctx context.Context, sessionID string) string {
	body, _, err := c.doSessionRequest(ctx, http.MethodGet, sessionID, "qrcode-session", nil)
	if err != nil {
		log.Printf("⚠️ WhatsApp qrcode fetch failed [%s]: %v", sessionID, err)
		return ""
	}

	var result struct {
		Status string `json:"status"`
		QRCode string `json:"qrcode"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return ""
	}
	if strings.EqualFold(result.Status, "CONNECTED") {
		return ""
	}
	return result.QRCode
}

// GetStatus returns the remote session status. Any transport failure
// maps to SessionError, never to CONNECTED: the fail-safe default keeps
// the caller from sending into a dead session.
func (c *Client) GetStatus(ctx context.Context, sessionID string) domain.SessionStatus {
	body, _, err := c.doSessionRequest(ctx, http.MethodGet, sessionID, "status-session", nil)
	if err != nil {
		log.Printf("⚠️ WhatsApp status fetch failed [%s]: %v", sessionID, err)
		return domain.SessionError
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.SessionError
	}

	status := domain.SessionStatus(strings.ToUpper(result.Status))
	if !status.IsValid() {
		return domain.SessionError
	}
	return status
}

// CloseSession requests teardown of the remote session.
func (c *Client) CloseSession(ctx context.Context, sessionID string) bool {
	_, _, err := c.doSessionRequest(ctx, http.MethodPost, sessionID, "close-session", nil)
	if err != nil {
		log.Printf("⚠️ WhatsApp close-session failed [%s]: %v", sessionID, err)
		return false
	}
	return true
}

// SendMessage sends a text message. Transport failures are logged and
// reported as false; this adapter never errors across its boundary.
func (c *Client) SendMessage(ctx context.Context, sessionID, phone, text string) bool {
	_, _, err := c.doSessionRequest(ctx, http.MethodPost, sessionID, "send-message", map[string]interface{}{
		"phone":   NormalizePhone(phone),
		"message": text,
	})
	if err != nil {
		log.Printf("⚠️ WhatsApp send-message failed [%s]: %v", sessionID, err)
		return false
	}
	return true
}

// SendFile sends a file by URL with an optional filename and caption.
func (c *Client) SendFile(ctx context.Context, sessionID, phone, fileURL, filename, caption string) bool {
	payload := map[string]interface{}{
		"phone": NormalizePhone(phone),
		"path":  fileURL,
	}
	if filename != "" {
		payload["filename"] = filename
	}
	if caption != "" {
		payload["caption"] = caption
	}

	_, _, err := c.doSessionRequest(ctx, http.MethodPost, sessionID, "send-file", payload)
	if err != nil {
		log.Printf("⚠️ WhatsApp send-file failed [%s]: %v", sessionID, err)
		return false
	}
	return true
}

// Contact is a remote contact record.
type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// GetAllContacts lists the session contacts. Failures and malformed
// responses degrade to an empty list.
func (c *Client) GetAllContacts(ctx context.Context, sessionID string) []Contact {
	body, _, err := c.doSessionRequest(ctx, http.MethodGet, sessionID, "all-contacts", nil)
	if err != nil {
		log.Printf("⚠️ WhatsApp contacts fetch failed [%s]: %v", sessionID, err)
		return []Contact{}
	}

	var result struct {
		Response []struct {
			ID struct {
				User string `json:"user"`
			} `json:"id"`
			Name        string `json:"name"`
			PushName    string `json:"pushname"`
			IsMyContact bool   `json:"isMyContact"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("⚠️ WhatsApp contacts parse error [%s]: %v", sessionID, err)
		return []Contact{}
	}

	contacts := make([]Contact, 0, len(result.Response))
	for _, raw := range result.Response {
		if raw.ID.User == "" {
			continue
		}
		name := raw.Name
		if name == "" {
			name = raw.PushName
		}
		contacts = append(contacts, Contact{
			ID:    raw.ID.User,
			Name:  name,
			Phone: raw.ID.User,
		})
	}
	return contacts
}

// CheckNumberStatus reports whether a phone number exists on the
// network. Ambiguous or failed responses default to false; existence is
// never assumed.
func (c *Client) CheckNumberStatus(ctx context.Context, sessionID, phone string) bool {
	endpoint := "check-number-status/" + NormalizePhone(phone)
	body, _, err := c.doSessionRequest(ctx, http.MethodGet, sessionID, endpoint, nil)
	if err != nil {
		log.Printf("⚠️ WhatsApp number check failed [%s]: %v", sessionID, err)
		return false
	}

	var result struct {
		Response struct {
			NumberExists bool `json:"numberExists"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return false
	}
	return result.Response.NumberExists
}
