// internal/docuseal/client_test.go
package docuseal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.DocusealConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5,
	})
}

func TestCreateDraft(t *testing.T) {
	var gotAuth string
	var gotBody DraftRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/submissions/drafts", r.URL.Path)
		gotAuth = r.Header.Get("X-Auth-Token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "sub-42"})
	})

	draft, err := client.CreateDraft(context.Background(), DraftRequest{
		TemplateID:  "t1",
		ClientName:  "Acme Corp",
		ClientEmail: "ceo@acme.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub-42", draft.ID)
	assert.Equal(t, "test-key", gotAuth)
	assert.Equal(t, "t1", gotBody.TemplateID)
}

func TestPreview(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions/drafts/sub-42/preview", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"preview_url": "https://sign.example.com/p/abc"})
	})

	url, err := client.Preview(context.Background(), "sub-42", DraftRequest{
		ClientName:  "Acme Corp",
		ClientEmail: "ceo@acme.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://sign.example.com/p/abc", url)
}

func TestFinalize(t *testing.T) {
	var gotBody map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions/drafts/sub-42/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	err := client.Finalize(context.Background(), "sub-42", FinalizeRequest{
		ClientName:  "Acme Corp",
		ClientEmail: "ceo@acme.com",
		TalentNames: "Jane Doe",
	})
	require.NoError(t, err)

	// identity fields only on the wire
	assert.NotContains(t, gotBody, "license_fee")
	assert.NotContains(t, gotBody, "duration_days")
	assert.Equal(t, "Jane Doe", gotBody["talent_names"])
}

func TestErrorResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "recipient email is invalid"})
	})

	_, err := client.CreateDraft(context.Background(), DraftRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "recipient email is invalid", apiErr.Message)
}

func TestListTemplates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/templates", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "ds-1", "name": "Likeness License"},
		})
	})

	templates, err := client.ListTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "Likeness License", templates[0].Name)
}
