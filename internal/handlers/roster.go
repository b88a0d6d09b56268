// internal/handlers/roster.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/services"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

type RosterHandler struct {
	rosterService  *services.RosterService
	storageService *services.StorageService
}

func NewRosterHandler(rosterService *services.RosterService, storageService *services.StorageService) *RosterHandler {
	return &RosterHandler{
		rosterService:  rosterService,
		storageService: storageService,
	}
}

// POST /roster
func (h *RosterHandler) AddMember(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	var req services.CreateRosterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	member, err := h.rosterService.AddMember(agencyID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"member": member})
}

// GET /roster
func (h *RosterHandler) SearchMembers(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	includeInactive := c.Query("include_inactive") == "true"

	members, total, err := h.rosterService.SearchMembers(agencyID, params, includeInactive)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(members, total, params))
}

// GET /roster/:id
func (h *RosterHandler) GetMember(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.rosterService.GetMember(id, agencyID)
	if err != nil {
		utils.NotFoundResponse(c, "Roster member")
		return
	}

	utils.SuccessResponse(c, gin.H{"member": member})
}

// PUT /roster/:id
func (h *RosterHandler) UpdateMember(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateRosterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	member, err := h.rosterService.UpdateMember(id, agencyID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"member": member})
}

// DELETE /roster/:id
func (h *RosterHandler) RemoveMember(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.rosterService.RemoveMember(id, agencyID); err != nil {
		utils.NotFoundResponse(c, "Roster member")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Roster member removed"})
}

// POST /roster/:id/portfolio
func (h *RosterHandler) UploadPortfolioAsset(c *gin.Context) {
	agencyID, ok := requireAgencyID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.rosterService.GetMember(id, agencyID)
	if err != nil {
		utils.NotFoundResponse(c, "Roster member")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "File is required", err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, h.storageService.GetDefaultUploadOptions("portfolio"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	urls := append([]string(member.PortfolioURLs), result.URL)
	updated, err := h.rosterService.UpdateMember(id, agencyID, &services.UpdateRosterMemberRequest{
		PortfolioURLs: urls,
	})
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"member": updated,
		"upload": result,
	})
}

// GET /assets/url?key=...
// Returns a short-lived download link for a stored asset.
func (h *RosterHandler) PresignAsset(c *gin.Context) {
	if _, ok := requireAgencyID(c); !ok {
		return
	}

	key := c.Query("key")
	if key == "" {
		utils.BadRequestResponse(c, "key query parameter is required", nil)
		return
	}

	url, err := h.storageService.GeneratePresignedURL(key, 15*time.Minute)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"url": url, "expires_in": 900})
}

// GET /talent
// Public directory of active talent across agencies.
func (h *RosterHandler) BrowseTalent(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	members, total, err := h.rosterService.BrowseTalent(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(members, total, params))
}
