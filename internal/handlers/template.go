// internal/handlers/template.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/services"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

type TemplateHandler struct {
	templateService *services.TemplateService
}

func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

// POST /templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	var req services.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	template, err := h.templateService.CreateTemplate(agencyID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"template": template})
}

// GET /templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	includeInactive := c.Query("include_inactive") == "true"

	templates, total, err := h.templateService.ListTemplates(agencyID, params, includeInactive)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(templates, total, params))
}

// GET /templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplate(id, agencyID)
	if err != nil {
		utils.NotFoundResponse(c, "License template")
		return
	}

	utils.SuccessResponse(c, gin.H{"template": template})
}

// PUT /templates/:id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	template, err := h.templateService.UpdateTemplate(id, agencyID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"template": template})
}

// DELETE /templates/:id
func (h *TemplateHandler) DeactivateTemplate(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.templateService.DeactivateTemplate(id, agencyID); err != nil {
		utils.NotFoundResponse(c, "License template")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Template deactivated"})
}

// GET /provider/templates
func (h *TemplateHandler) ListProviderTemplates(c *gin.Context) {
	templates, err := h.templateService.ListProviderTemplates(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"templates": templates})
}
