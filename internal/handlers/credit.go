// internal/handlers/credit.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/services"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

type CreditHandler struct {
	creditService *services.CreditService
}

func NewCreditHandler(creditService *services.CreditService) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
	}
}

// GET /credits/balance
func (h *CreditHandler) GetBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	balance, err := h.creditService.GetBalance(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"balance": balance})
}

// GET /credits/ledger
func (h *CreditHandler) GetLedger(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	entries, total, err := h.creditService.GetLedger(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(entries, total, params))
}

// POST /credits/purchase
func (h *CreditHandler) PurchasePack(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.PurchasePackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	purchase, err := h.creditService.PurchasePack(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"purchase": purchase})
}

// POST /generations
func (h *CreditHandler) RequestGeneration(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	job, err := h.creditService.RequestGeneration(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientCredits) {
			utils.ErrorResponse(c, 402, "INSUFFICIENT_CREDITS", err.Error(), nil)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"job": job})
}

// GET /generations
func (h *CreditHandler) ListGenerations(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	jobs, total, err := h.creditService.ListGenerationJobs(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(jobs, total, params))
}

// GET /generations/:id
func (h *CreditHandler) GetGeneration(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.creditService.GetGenerationJob(id, userID)
	if err != nil {
		utils.NotFoundResponse(c, "Generation job")
		return
	}

	utils.SuccessResponse(c, gin.H{"job": job})
}

// CompleteGenerationRequest carries the provider's output for a finished job.
type CompleteGenerationRequest struct {
	ResultURLs []string `json:"result_urls" binding:"required"`
}

// POST /admin/generations/:id/complete
func (h *CreditHandler) CompleteGeneration(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CompleteGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if err := h.creditService.CompleteGeneration(id, req.ResultURLs); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Generation marked as succeeded"})
}

// POST /admin/generations/:id/fail
func (h *CreditHandler) FailGeneration(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if err := h.creditService.FailGeneration(id, req.Reason); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Generation failed and credits refunded"})
}
