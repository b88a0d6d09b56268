// internal/handlers/submission.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/services"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/workflow"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// POST /contracts/drafts
func (h *SubmissionHandler) CreateDraft(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	var req services.SubmissionFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	submission, err := h.submissionService.CreateDraft(c.Request.Context(), agencyID, &req)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"draft": submission})
}

// POST /contracts/preview
func (h *SubmissionHandler) Preview(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	var req services.SubmissionFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	preview, err := h.submissionService.Preview(c.Request.Context(), agencyID, &req)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"preview": preview})
}

// POST /contracts/send
func (h *SubmissionHandler) Finalize(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	var req services.SubmissionFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	submission, err := h.submissionService.Finalize(c.Request.Context(), agencyID, &req)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"submission": submission})
}

// GET /contracts
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	params := services.SubmissionSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if status := c.Query("status"); status != "" {
		s := models.SubmissionStatus(status)
		params.Status = &s
	}

	submissions, total, err := h.submissionService.SearchSubmissions(agencyID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(submissions, total, params.PaginationParams))
}

// GET /contracts/:id
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	submission, err := h.submissionService.GetSubmission(id, agencyID)
	if err != nil {
		utils.NotFoundResponse(c, "Submission")
		return
	}

	utils.SuccessResponse(c, gin.H{"submission": submission})
}

// respondSubmissionError maps provider failures to a stable error code per
// workflow step, so clients can show the matching failure banner.
func respondSubmissionError(c *gin.Context, err error) {
	var wfErr *workflow.Error
	if errors.As(err, &wfErr) {
		code := "DRAFT_FAILED"
		switch wfErr.Class {
		case workflow.FailurePreview:
			code = "PREVIEW_FAILED"
		case workflow.FailureSending:
			code = "SENDING_FAILED"
		}
		utils.ErrorResponse(c, http.StatusBadGateway, code, string(wfErr.Class), wfErr.Err.Error())
		return
	}

	utils.BadRequestResponse(c, err.Error(), nil)
}
