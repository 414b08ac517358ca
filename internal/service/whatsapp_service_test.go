package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppSendText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody sendTextRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("apikey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	svc := NewWhatsAppService(server.URL, "secret", "main", logrus.New())

	err := svc.SendText(context.Background(), "5511999990000", "Your appointment is confirmed")
	require.NoError(t, err)
	assert.Equal(t, "/message/sendText/main", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "5511999990000", gotBody.Number)
	assert.Equal(t, "Your appointment is confirmed", gotBody.Text)
}

func TestWhatsAppSendText_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid instance", http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewWhatsAppService(server.URL, "secret", "main", logrus.New())

	err := svc.SendText(context.Background(), "5511999990000", "hello")
	assert.ErrorContains(t, err, "401")
}

func TestWhatsAppSendText_UnconfiguredIsNoop(t *testing.T) {
	svc := NewWhatsAppService("", "", "", logrus.New())
	assert.NoError(t, svc.SendText(context.Background(), "5511999990000", "hello"))
}
