package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/models/request_models"
	"tourdesk/internal/schema"
	"tourdesk/internal/services"
	"tourdesk/pkg/utils"
)

type TourController struct {
	tourService services.TourServiceInterface
}

func NewTourController(tourService services.TourServiceInterface) *TourController {
	return &TourController{
		tourService: tourService,
	}
}

// CreateTour godoc
// @Summary Create a tour
// @Description Validate and store a new tour. A repeated Idempotency-Key returns the tour created first.
// @Tags Tour
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Submission key"
// @Param request body request_models.TourPayload true "Tour"
// @Success 201 {object} response_models.TourResponse
// @Success 200 {object} response_models.TourResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/v1/tours [post]
func (t *TourController) CreateTour(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Cannot read request body")
		return
	}

	payload, err := schema.ParseTour(raw)
	if err != nil {
		respondInvalid(c, err)
		return
	}

	resp, created, err := t.tourService.CreateTour(c.Request.Context(), *payload, c.GetHeader(utils.IdempotencyHeader))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if !created {
		utils.RespondSuccess(c, resp, "Tour already created")
		return
	}
	utils.RespondWithStatus(c, http.StatusCreated, resp, "Tour created successfully")
}

// GetTourById godoc
// @Summary Get a tour
// @Tags Tour
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} response_models.TourResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/v1/tours/{id} [get]
func (t *TourController) GetTourById(c *gin.Context) {
	resp, err := t.tourService.GetTourById(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Tour fetched successfully")
}

type updateTourBody struct {
	Tour     json.RawMessage `json:"tour"`
	Baseline json.RawMessage `json:"baseline"`
}

// UpdateTour godoc
// @Summary Update a tour
// @Description Replace a tour with new values. The baseline is the tour as loaded before editing; a stale baseline is rejected.
// @Tags Tour
// @Accept json
// @Produce json
// @Param id path string true "Tour ID"
// @Param Idempotency-Key header string false "Submission key"
// @Param request body request_models.UpdateTourRequest true "New values and baseline"
// @Success 200 {object} response_models.TourUpdateResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/v1/tours/{id} [put]
func (t *TourController) UpdateTour(c *gin.Context) {
	var body updateTourBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Body must hold tour and baseline")
		return
	}

	tour, tourErr := schema.ParseTour(orNull(body.Tour))
	baseline, baseErr := schema.ParseTour(orNull(body.Baseline))
	if tourErr != nil || baseErr != nil {
		var all schema.FieldErrors
		for _, err := range []error{tourErr, prefixed("baseline", baseErr)} {
			if err == nil {
				continue
			}
			fe, ok := schema.AsFieldErrors(err)
			if !ok {
				respondInvalid(c, err)
				return
			}
			all = append(all, fe...)
		}
		respondInvalid(c, all)
		return
	}

	req := request_models.UpdateTourRequest{Tour: *tour, Baseline: *baseline}
	resp, err := t.tourService.UpdateTour(c.Request.Context(), c.Param("id"), req, c.GetHeader(utils.IdempotencyHeader))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Tour updated successfully")
}

// DeleteTour godoc
// @Summary Delete a tour
// @Tags Tour
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/v1/tours/{id} [delete]
func (t *TourController) DeleteTour(c *gin.Context) {
	if err := t.tourService.DeleteTour(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Tour deleted successfully")
}

func orNull(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}
