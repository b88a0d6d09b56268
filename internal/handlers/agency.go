// internal/handlers/agency.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/services"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

type AgencyHandler struct {
	agencyService *services.AgencyService
}

func NewAgencyHandler(agencyService *services.AgencyService) *AgencyHandler {
	return &AgencyHandler{
		agencyService: agencyService,
	}
}

// GET /agency
func (h *AgencyHandler) GetAgency(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	agency, err := h.agencyService.GetAgency(agencyID)
	if err != nil {
		utils.NotFoundResponse(c, "Agency")
		return
	}

	utils.SuccessResponse(c, gin.H{"agency": agency})
}

// PUT /agency
func (h *AgencyHandler) UpdateAgency(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	var req services.UpdateAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	agency, err := h.agencyService.UpdateAgency(agencyID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"agency": agency})
}

// POST /agency/logo
func (h *AgencyHandler) UploadLogo(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "File is required", err.Error())
		return
	}
	defer file.Close()

	agency, err := h.agencyService.UploadLogo(agencyID, file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"agency": agency})
}
