package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// WhatsAppService sends notifications through an Evolution API gateway.
// The gateway holds the WhatsApp session; this service only proxies the
// sendText call with the instance API key.
type WhatsAppService interface {
	SendText(ctx context.Context, number, text string) error
}

type whatsAppService struct {
	apiURL     string
	apiKey     string
	instance   string
	httpClient *http.Client
	log        *logrus.Logger
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

func NewWhatsAppService(apiURL, apiKey, instance string, log *logrus.Logger) WhatsAppService {
	return &whatsAppService{
		apiURL:   strings.TrimRight(apiURL, "/"),
		apiKey:   apiKey,
		instance: instance,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// SendText posts a text message to the Evolution API. Callers treat failures
// as non-fatal: a booking must not fail because the notification did.
func (s *whatsAppService) SendText(ctx context.Context, number, text string) error {
	if s.apiURL == "" || s.apiKey == "" {
		s.log.Debug("WhatsApp gateway not configured, skipping notification")
		return nil
	}

	body, err := json.Marshal(sendTextRequest{Number: number, Text: text})
	if err != nil {
		return fmt.Errorf("marshal sendText request: %w", err)
	}

	url := fmt.Sprintf("%s/message/sendText/%s", s.apiURL, s.instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendText request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Warnf("Failed to reach WhatsApp gateway: %+v", err)
		return fmt.Errorf("send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.log.Warnf("WhatsApp gateway returned %d: %s", resp.StatusCode, string(payload))
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}

	return nil
}
