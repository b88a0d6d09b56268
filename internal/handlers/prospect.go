// internal/handlers/prospect.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/services"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

type ProspectHandler struct {
	prospectService *services.ProspectService
}

func NewProspectHandler(prospectService *services.ProspectService) *ProspectHandler {
	return &ProspectHandler{
		prospectService: prospectService,
	}
}

// POST /prospects
func (h *ProspectHandler) CreateProspect(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	var req services.CreateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	prospect, err := h.prospectService.CreateProspect(agencyID, &req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateProspect) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"prospect": prospect})
}

// GET /prospects
func (h *ProspectHandler) SearchProspects(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	params := services.ProspectSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if stage := c.Query("stage"); stage != "" {
		s := models.ProspectStage(stage)
		params.Stage = &s
	}

	prospects, total, err := h.prospectService.SearchProspects(agencyID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(prospects, total, params.PaginationParams))
}

// GET /prospects/:id
func (h *ProspectHandler) GetProspect(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	prospect, err := h.prospectService.GetProspect(id, agencyID)
	if err != nil {
		utils.NotFoundResponse(c, "Prospect")
		return
	}

	utils.SuccessResponse(c, gin.H{"prospect": prospect})
}

// PUT /prospects/:id
func (h *ProspectHandler) UpdateProspect(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	prospect, err := h.prospectService.UpdateProspect(id, agencyID, &req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateProspect) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"prospect": prospect})
}

// PUT /prospects/:id/stage
func (h *ProspectHandler) AdvanceStage(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Stage models.ProspectStage `json:"stage" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	prospect, err := h.prospectService.AdvanceStage(id, agencyID, req.Stage)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"prospect": prospect})
}

// POST /prospects/:id/sign
func (h *ProspectHandler) SignProspect(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		DayRate float64 `json:"day_rate" validate:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	prospect, err := h.prospectService.SignProspect(id, agencyID, req.DayRate)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"prospect": prospect})
}

// DELETE /prospects/:id
func (h *ProspectHandler) DeleteProspect(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.prospectService.DeleteProspect(id, agencyID); err != nil {
		utils.NotFoundResponse(c, "Prospect")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Prospect deleted"})
}
