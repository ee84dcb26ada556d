package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrWhatsAppNotConfigured indica defeito de deploy: credenciais ausentes.
// Nunca deve ser engolido — o chamador precisa saber que o envio nem foi tentado.
var ErrWhatsAppNotConfigured = errors.New("credenciais da API do WhatsApp não configuradas (phone_number_id/access_token)")

// WhatsAppAPIError representa uma resposta não-2xx da Graph API.
type WhatsAppAPIError struct {
	StatusCode int
	Body       string
}

func (e WhatsAppAPIError) Error() string {
	return fmt.Sprintf("whatsapp api error: status=%d body=%s", e.StatusCode, e.Body)
}

// WhatsAppClient é um cliente fino da Cloud API (Meta) para envio de texto.
// BaseURL existe para apontar em testes; vazio usa graph.facebook.com.
type WhatsAppClient struct {
	AccessToken   string
	ApiVersion    string // ex: v21.0
	PhoneNumberID string
	BaseURL       string
	HTTPClient    *http.Client
}

type sendTextResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// SendText envia uma mensagem de texto e devolve o message id atribuído pelo Meta.
// Uma tentativa só, timeout de 10s; a ausência do id na resposta 2xx não é erro.
func (c WhatsAppClient) SendText(ctx context.Context, to string, text string) (string, error) {
	if strings.TrimSpace(c.AccessToken) == "" || strings.TrimSpace(c.PhoneNumberID) == "" {
		return "", ErrWhatsAppNotConfigured
	}

	apiVersion := strings.TrimSpace(c.ApiVersion)
	if apiVersion == "" {
		apiVersion = "v21.0"
	}
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		base = "https://graph.facebook.com"
	}
	url := fmt.Sprintf("%s/%s/%s/messages", strings.TrimSuffix(base, "/"), apiVersion, strings.TrimSpace(c.PhoneNumberID))

	reqBody := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text": map[string]any{
			"body": text,
		},
	}

	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.AccessToken))
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", WhatsAppAPIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed sendTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// resposta 2xx sem corpo parseável: envio contou, só ficamos sem o id
		return "", nil
	}
	if len(parsed.Messages) == 0 {
		return "", nil
	}
	return parsed.Messages[0].ID, nil
}
