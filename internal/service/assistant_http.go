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
)

const maxAssistantResponse = 1 << 20

// HTTPAssistant posts questions to an external legal assistant endpoint.
type HTTPAssistant struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHTTPAssistant(baseURL string) *HTTPAssistant {
	return &HTTPAssistant{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *HTTPAssistant) Ask(ctx context.Context, query string) (string, error) {
	client := a.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	data, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return "", err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/v1/ask", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	response, err := client.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxAssistantResponse))
	if err != nil {
		return "", err
	}
	if response.StatusCode >= 300 {
		return "", fmt.Errorf("assistant responded with status %d", response.StatusCode)
	}
	return string(body), nil
}
