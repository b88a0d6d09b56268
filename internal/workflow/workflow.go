// internal/workflow/workflow.go

// Package workflow drives a license submission from draft through preview to
// dispatch. One Session owns one workflow instance: it caches the provider
// draft id after the first creation, reuses it for every later operation, and
// refuses overlapping in-flight requests.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/docuseal"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

// State is the explicit machine replacing the draftID/previewURL/previewOpen
// flag combination: illegal mixes (open preview without a URL) cannot be
// represented.
type State string

const (
	StateIdle        State = "idle"
	StateEditing     State = "editing"
	StatePreviewing  State = "previewing"
	StatePreviewOpen State = "preview_open"
	StateFinalizing  State = "finalizing"
	StateSent        State = "sent"
)

// FailureClass distinguishes user-facing failure notifications.
type FailureClass string

const (
	FailureDraft   FailureClass = "Draft Failed"
	FailurePreview FailureClass = "Preview Failed"
	FailureSending FailureClass = "Sending Failed"
)

var (
	ErrDraftMissingID    = errors.New("draft creation returned no id")
	ErrOperationInFlight = errors.New("another request is in flight")
	ErrAlreadySent       = errors.New("submission already sent")
	ErrNotOpen           = errors.New("workflow session is not open")
)

// Error wraps a remote failure with its notification class.
type Error struct {
	Class FailureClass
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Class, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// SubmissionAPI is the provider surface the session depends on. The DocuSeal
// client satisfies it in production; tests inject a fake.
type SubmissionAPI interface {
	CreateDraft(ctx context.Context, req docuseal.DraftRequest) (*docuseal.Draft, error)
	Preview(ctx context.Context, draftID string, req docuseal.DraftRequest) (string, error)
	Finalize(ctx context.Context, draftID string, req docuseal.FinalizeRequest) error
}

// FormInput is the user-entered recipient form. Validation runs before any
// network call, so a malformed email never costs a round-trip.
type FormInput struct {
	ClientName  string `json:"client_name" validate:"required"`
	ClientEmail string `json:"client_email" validate:"required,email"`
	TalentNames string `json:"talent_names,omitempty"`
}

// Options are set when the session opens.
type Options struct {
	// FeeOverride replaces the template's license fee for this instance.
	FeeOverride *float64
	// DocusealTemplateID overrides the template's provider document id.
	DocusealTemplateID string
	// OnSent runs after a successful finalize, before the caller regains
	// control.
	OnSent func(draftID string)
}

// Session is private to one workflow instance; it is safe for concurrent use
// but admits at most one in-flight provider call.
type Session struct {
	api SubmissionAPI

	mu         sync.Mutex
	busy       bool
	state      State
	template   *models.LicenseTemplate
	opts       Options
	draftID    string
	previewURL string
}

func NewSession(api SubmissionAPI) *Session {
	return &Session{
		api:   api,
		state: StateIdle,
	}
}

// Open transitions Idle -> Editing with a template reference.
func (s *Session) Open(template *models.LicenseTemplate, opts Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return fmt.Errorf("cannot open workflow from state %q", s.state)
	}
	if template == nil {
		return errors.New("template is required")
	}

	s.template = template
	s.opts = opts
	s.state = StateEditing
	return nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// DraftID returns the cached draft identifier, empty until the first draft
// creation succeeds.
func (s *Session) DraftID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftID
}

func (s *Session) PreviewURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewURL
}

// EnsureDraft returns the cached draft id, creating the remote draft on first
// use. No re-creation ever happens for the lifetime of the session.
func (s *Session) EnsureDraft(ctx context.Context, input FormInput) (string, error) {
	if err := s.begin(StateEditing); err != nil {
		return "", err
	}
	defer s.end(StateEditing)

	if err := validateInput(input); err != nil {
		return "", err
	}

	return s.ensureDraftLocked(ctx, input)
}

// Preview renders the draft with the latest form values and transitions to
// PreviewOpen. Repeat calls reuse the same draft.
func (s *Session) Preview(ctx context.Context, input FormInput) (string, error) {
	if err := s.begin(StatePreviewing); err != nil {
		return "", err
	}

	if err := validateInput(input); err != nil {
		s.end(StateEditing)
		return "", err
	}

	draftID, err := s.ensureDraftLocked(ctx, input)
	if err != nil {
		s.end(StateEditing)
		return "", err
	}

	url, err := s.api.Preview(ctx, draftID, s.draftPayload(input))
	if err != nil {
		s.end(StateEditing)
		return "", &Error{Class: FailurePreview, Err: err}
	}

	s.mu.Lock()
	s.previewURL = url
	s.mu.Unlock()
	s.end(StatePreviewOpen)
	return url, nil
}

// ClosePreview returns from the preview surface to the form.
func (s *Session) ClosePreview() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StatePreviewOpen {
		s.state = StateEditing
	}
}

// Finalize dispatches the submission for signature. On success the session is
// terminally Sent; on failure it returns to Editing with the draft id intact
// so a retry does not recreate the draft.
func (s *Session) Finalize(ctx context.Context, input FormInput) error {
	if err := s.begin(StateFinalizing); err != nil {
		return err
	}

	if err := validateInput(input); err != nil {
		s.end(StateEditing)
		return err
	}

	draftID, err := s.ensureDraftLocked(ctx, input)
	if err != nil {
		s.end(StateEditing)
		return err
	}

	if err := s.api.Finalize(ctx, draftID, s.finalizePayload(input)); err != nil {
		s.end(StateEditing)
		return &Error{Class: FailureSending, Err: err}
	}

	s.end(StateSent)
	if s.opts.OnSent != nil {
		s.opts.OnSent(draftID)
	}
	return nil
}

// Close abandons the workflow from any state. The remote draft, if one was
// created, is left in place; only local state is reset.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateIdle
	s.template = nil
	s.opts = Options{}
	s.draftID = ""
	s.previewURL = ""
}

// begin claims the single in-flight slot and moves to the transient state.
func (s *Session) begin(next State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrOperationInFlight
	}

	switch s.state {
	case StateEditing, StatePreviewOpen:
		// allowed
	case StateSent:
		return ErrAlreadySent
	case StateIdle:
		return ErrNotOpen
	default:
		return ErrOperationInFlight
	}

	s.busy = true
	s.state = next
	return nil
}

func (s *Session) end(next State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.state = next
}

// ensureDraftLocked requires the in-flight slot to be held by the caller.
func (s *Session) ensureDraftLocked(ctx context.Context, input FormInput) (string, error) {
	s.mu.Lock()
	cached := s.draftID
	s.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	draft, err := s.api.CreateDraft(ctx, s.draftPayload(input))
	if err != nil {
		return "", &Error{Class: FailureDraft, Err: err}
	}
	if draft == nil || draft.ID == "" {
		return "", &Error{Class: FailureDraft, Err: ErrDraftMissingID}
	}

	s.mu.Lock()
	s.draftID = draft.ID
	s.mu.Unlock()
	return draft.ID, nil
}

func (s *Session) draftPayload(input FormInput) docuseal.DraftRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildDraftRequest(s.template, s.opts, input)
}

func (s *Session) finalizePayload(input FormInput) docuseal.FinalizeRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildFinalizeRequest(s.template, s.opts, input)
}

func validateInput(input FormInput) error {
	if err := utils.ValidateStruct(&input); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
