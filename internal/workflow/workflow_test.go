// internal/workflow/workflow_test.go
package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/docuseal"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
)

type fakeAPI struct {
	mu sync.Mutex

	draftID     string
	createErr   error
	previewErr  error
	finalizeErr error

	createCalls   []docuseal.DraftRequest
	previewCalls  []string
	previewReqs   []docuseal.DraftRequest
	finalizeCalls []string
	finalizeReqs  []docuseal.FinalizeRequest

	previewGate chan struct{} // when set, Preview blocks until closed
	previewing  chan struct{} // signaled when Preview is entered
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{draftID: "draft-1"}
}

func (f *fakeAPI) CreateDraft(ctx context.Context, req docuseal.DraftRequest) (*docuseal.Draft, error) {
	f.mu.Lock()
	f.createCalls = append(f.createCalls, req)
	f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	return &docuseal.Draft{ID: f.draftID}, nil
}

func (f *fakeAPI) Preview(ctx context.Context, draftID string, req docuseal.DraftRequest) (string, error) {
	f.mu.Lock()
	f.previewCalls = append(f.previewCalls, draftID)
	f.previewReqs = append(f.previewReqs, req)
	gate := f.previewGate
	entered := f.previewing
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if f.previewErr != nil {
		return "", f.previewErr
	}
	return "https://sign.example.com/preview/" + draftID, nil
}

func (f *fakeAPI) Finalize(ctx context.Context, draftID string, req docuseal.FinalizeRequest) error {
	f.mu.Lock()
	f.finalizeCalls = append(f.finalizeCalls, draftID)
	f.finalizeReqs = append(f.finalizeReqs, req)
	f.mu.Unlock()
	return f.finalizeErr
}

func testTemplate() *models.LicenseTemplate {
	tpl := &models.LicenseTemplate{
		TalentName:         "Jane Doe",
		LicenseFee:         500,
		DurationDays:       90,
		CustomTerms:        "No resale",
		DocusealTemplateID: "ds-tpl-1",
	}
	tpl.ID = uuid.New()
	return tpl
}

func validInput() FormInput {
	return FormInput{
		ClientName:  "Acme Corp",
		ClientEmail: "ceo@acme.com",
	}
}

func openSession(t *testing.T, api SubmissionAPI, opts Options) *Session {
	t.Helper()
	s := NewSession(api)
	require.NoError(t, s.Open(testTemplate(), opts))
	return s
}

func TestPreviewThenFinalizeReusesDraft(t *testing.T) {
	api := newFakeAPI()
	s := openSession(t, api, Options{})

	url, err := s.Preview(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "https://sign.example.com/preview/draft-1", url)
	assert.Equal(t, StatePreviewOpen, s.State())

	// second preview re-renders against the same draft
	s.ClosePreview()
	_, err = s.Preview(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, s.Finalize(context.Background(), validInput()))

	assert.Len(t, api.createCalls, 1)
	assert.Equal(t, []string{"draft-1", "draft-1"}, api.previewCalls)
	assert.Equal(t, []string{"draft-1"}, api.finalizeCalls)
	assert.Equal(t, StateSent, s.State())
}

func TestMissingDraftIDHaltsWorkflow(t *testing.T) {
	api := newFakeAPI()
	api.draftID = ""
	s := openSession(t, api, Options{})

	_, err := s.Preview(context.Background(), validInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDraftMissingID)

	var wErr *Error
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, FailureDraft, wErr.Class)

	err = s.Finalize(context.Background(), validInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDraftMissingID)

	// neither endpoint may be reached without a draft identity
	assert.Empty(t, api.previewCalls)
	assert.Empty(t, api.finalizeCalls)
	assert.Equal(t, StateEditing, s.State())
}

func TestDraftPayloadFieldPrecedence(t *testing.T) {
	tpl := testTemplate()

	// blank input falls back to the template default
	req := BuildDraftRequest(tpl, Options{}, FormInput{
		ClientName:  "Acme Corp",
		ClientEmail: "ceo@acme.com",
		TalentNames: "  ",
	})
	assert.Equal(t, "Jane Doe", req.TalentNames)

	// explicit input always wins
	req = BuildDraftRequest(tpl, Options{}, FormInput{
		ClientName:  "Acme Corp",
		ClientEmail: "ceo@acme.com",
		TalentNames: "John Roe",
	})
	assert.Equal(t, "John Roe", req.TalentNames)

	// fee override replaces the template fee
	override := 750.0
	req = BuildDraftRequest(tpl, Options{FeeOverride: &override}, validInput())
	assert.Equal(t, 750.0, req.LicenseFee)
	assert.Equal(t, "ds-tpl-1", req.DocusealTemplateID)

	req = BuildDraftRequest(tpl, Options{DocusealTemplateID: "ds-tpl-9"}, validInput())
	assert.Equal(t, "ds-tpl-9", req.DocusealTemplateID)
}

func TestFinalizePayloadCarriesIdentityFieldsOnly(t *testing.T) {
	tpl := testTemplate()
	req := BuildFinalizeRequest(tpl, Options{}, validInput())

	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))

	assert.Contains(t, fields, "client_name")
	assert.Contains(t, fields, "client_email")
	assert.NotContains(t, fields, "license_fee")
	assert.NotContains(t, fields, "duration_days")
	assert.NotContains(t, fields, "start_date")
	assert.NotContains(t, fields, "custom_terms")
}

func TestFinalizeRetryKeepsDraft(t *testing.T) {
	api := newFakeAPI()
	api.finalizeErr = errors.New("provider unavailable")
	s := openSession(t, api, Options{})

	err := s.Finalize(context.Background(), validInput())
	require.Error(t, err)

	var wErr *Error
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, FailureSending, wErr.Class)
	assert.Equal(t, StateEditing, s.State())
	assert.Equal(t, "draft-1", s.DraftID())

	// retry succeeds against the same draft, without a second creation
	api.finalizeErr = nil
	require.NoError(t, s.Finalize(context.Background(), validInput()))
	assert.Len(t, api.createCalls, 1)
	assert.Equal(t, []string{"draft-1", "draft-1"}, api.finalizeCalls)
}

func TestValidationGateBlocksNetworkCalls(t *testing.T) {
	api := newFakeAPI()
	s := openSession(t, api, Options{})

	bad := FormInput{ClientName: "Acme Corp", ClientEmail: "not-an-email"}
	_, err := s.Preview(context.Background(), bad)
	require.Error(t, err)
	err = s.Finalize(context.Background(), bad)
	require.Error(t, err)

	missingName := FormInput{ClientEmail: "ceo@acme.com"}
	err = s.Finalize(context.Background(), missingName)
	require.Error(t, err)

	assert.Empty(t, api.createCalls)
	assert.Equal(t, StateEditing, s.State())

	ok := FormInput{ClientName: "Acme Corp", ClientEmail: "a@b.co"}
	require.NoError(t, s.Finalize(context.Background(), ok))
	assert.Len(t, api.createCalls, 1)
}

func TestDraftFailureHaltsChain(t *testing.T) {
	api := newFakeAPI()
	api.createErr = errors.New("boom")
	s := openSession(t, api, Options{})

	_, err := s.Preview(context.Background(), validInput())
	require.Error(t, err)

	var wErr *Error
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, FailureDraft, wErr.Class)
	assert.Empty(t, api.previewCalls)
	assert.Empty(t, s.DraftID())
}

func TestSingleInFlightOperation(t *testing.T) {
	api := newFakeAPI()
	api.previewGate = make(chan struct{})
	api.previewing = make(chan struct{}, 1)
	s := openSession(t, api, Options{})

	done := make(chan error, 1)
	go func() {
		_, err := s.Preview(context.Background(), validInput())
		done <- err
	}()

	<-api.previewing
	err := s.Finalize(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrOperationInFlight)

	close(api.previewGate)
	require.NoError(t, <-done)
}

func TestCloseResetsSession(t *testing.T) {
	api := newFakeAPI()
	s := openSession(t, api, Options{})

	_, err := s.Preview(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, "draft-1", s.DraftID())

	s.Close()
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.DraftID())
	assert.Empty(t, s.PreviewURL())

	_, err = s.EnsureDraft(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestSentIsTerminal(t *testing.T) {
	api := newFakeAPI()
	s := openSession(t, api, Options{})

	require.NoError(t, s.Finalize(context.Background(), validInput()))

	_, err := s.Preview(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrAlreadySent)
	err = s.Finalize(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrAlreadySent)
}

func TestFullScenario(t *testing.T) {
	api := newFakeAPI()

	var sentID string
	s := NewSession(api)
	tpl := testTemplate()
	require.NoError(t, s.Open(tpl, Options{OnSent: func(id string) { sentID = id }}))

	// talent field left blank; template default applies
	input := FormInput{ClientName: "Acme Corp", ClientEmail: "ceo@acme.com"}

	url, err := s.Preview(context.Background(), input)
	require.NoError(t, err)
	assert.NotEmpty(t, url)

	require.Len(t, api.createCalls, 1)
	created := api.createCalls[0]
	assert.Equal(t, tpl.ID.String(), created.TemplateID)
	assert.Equal(t, "Acme Corp", created.ClientName)
	assert.Equal(t, "ceo@acme.com", created.ClientEmail)
	assert.Equal(t, "Jane Doe", created.TalentNames)
	assert.Equal(t, 500.0, created.LicenseFee)

	require.Len(t, api.previewReqs, 1)
	assert.Equal(t, created, api.previewReqs[0])

	require.NoError(t, s.Finalize(context.Background(), input))

	require.Len(t, api.finalizeCalls, 1)
	assert.Equal(t, "draft-1", api.finalizeCalls[0])
	assert.Equal(t, docuseal.FinalizeRequest{
		DocusealTemplateID: "ds-tpl-1",
		ClientName:         "Acme Corp",
		ClientEmail:        "ceo@acme.com",
		TalentNames:        "Jane Doe",
	}, api.finalizeReqs[0])

	assert.Equal(t, "draft-1", sentID)
	assert.Equal(t, StateSent, s.State())
}
