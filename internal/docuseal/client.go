// internal/docuseal/client.go
package docuseal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/config"
)

// Client talks to the document-signing provider's REST API. It covers the
// three workflow endpoints (draft create, preview render, finalize/send) plus
// the read-only template listing.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// DraftRequest is the full form snapshot submitted on draft creation and on
// every preview render. Optional fields are omitted when empty so template
// defaults already merged by the caller are the only values sent.
type DraftRequest struct {
	TemplateID         string  `json:"template_id"`
	DocusealTemplateID string  `json:"docuseal_template_id,omitempty"`
	ClientName         string  `json:"client_name"`
	ClientEmail        string  `json:"client_email"`
	TalentNames        string  `json:"talent_names,omitempty"`
	LicenseFee         float64 `json:"license_fee,omitempty"`
	DurationDays       int     `json:"duration_days,omitempty"`
	StartDate          string  `json:"start_date,omitempty"`
	CustomTerms        string  `json:"custom_terms,omitempty"`
}

// FinalizeRequest carries identity fields only; fee and term fields are never
// re-sent at finalize time.
type FinalizeRequest struct {
	DocusealTemplateID string `json:"docuseal_template_id,omitempty"`
	ClientName         string `json:"client_name"`
	ClientEmail        string `json:"client_email"`
	TalentNames        string `json:"talent_names,omitempty"`
}

type Draft struct {
	ID string `json:"id"`
}

type PreviewResult struct {
	PreviewURL string `json:"preview_url"`
}

type Template struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// APIError is a non-2xx provider response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("docuseal: status %d: %s", e.StatusCode, e.Message)
}

func NewClient(cfg config.DocusealConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// CreateDraft registers a not-yet-sent submission with the provider and
// returns its identifier. The caller decides whether an empty id is an error.
func (c *Client) CreateDraft(ctx context.Context, req DraftRequest) (*Draft, error) {
	var draft Draft
	if err := c.do(ctx, http.MethodPost, "/submissions/drafts", req, &draft); err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"draft_id":    draft.ID,
		"template_id": req.TemplateID,
	}).Info("Draft created")

	return &draft, nil
}

// Preview renders a non-binding prefilled document for an existing draft and
// returns a transient URL. Safe to call repeatedly against the same draft.
func (c *Client) Preview(ctx context.Context, draftID string, req DraftRequest) (string, error) {
	var result PreviewResult
	path := fmt.Sprintf("/submissions/drafts/%s/preview", draftID)
	if err := c.do(ctx, http.MethodPost, path, req, &result); err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}

	return result.PreviewURL, nil
}

// Finalize dispatches the draft for signature; the provider emails the
// recipient. The acknowledgment body is not inspected beyond the status code.
func (c *Client) Finalize(ctx context.Context, draftID string, req FinalizeRequest) error {
	path := fmt.Sprintf("/submissions/drafts/%s/send", draftID)
	if err := c.do(ctx, http.MethodPost, path, req, nil); err != nil {
		return fmt.Errorf("failed to send submission: %w", err)
	}

	logrus.WithField("draft_id", draftID).Info("Submission dispatched for signature")
	return nil
}

func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	var templates []Template
	if err := c.do(ctx, http.MethodGet, "/templates", nil, &templates); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	return templates, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("X-Auth-Token", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "request failed"
	}

	if json.Unmarshal(raw, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	return string(raw)
}
