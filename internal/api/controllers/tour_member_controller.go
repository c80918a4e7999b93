package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/schema"
	"tourdesk/internal/services"
	"tourdesk/pkg/utils"
)

type TourMemberController struct {
	memberService services.TourMemberServiceInterface
}

func NewTourMemberController(memberService services.TourMemberServiceInterface) *TourMemberController {
	return &TourMemberController{memberService: memberService}
}

// JoinTour godoc
// @Summary Join a tour
// @Description Add members to a tour. Every member needs a positive age; the join is refused when the tour cannot seat them all.
// @Tags Tour
// @Accept json
// @Produce json
// @Param id path string true "Tour ID"
// @Param request body request_models.JoinTourRequest true "Members"
// @Success 201 {object} response_models.JoinTourResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/v1/tours/{id}/members [post]
func (m *TourMemberController) JoinTour(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Cannot read request body")
		return
	}

	req, err := schema.ParseMemberJoin(raw)
	if err != nil {
		respondInvalid(c, err)
		return
	}

	resp, err := m.memberService.JoinTour(c.Request.Context(), c.Param("id"), *req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, resp, "Joined tour successfully")
}
