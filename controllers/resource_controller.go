package controllers

import (
	"net/http"
	"time"

	"club-backend/models"
	"club-backend/services"
	"club-backend/utils"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	Svc   *services.ResourceService
	Holds *services.HoldService
}

func NewResourceController(svc *services.ResourceService, holds *services.HoldService) *ResourceController {
	return &ResourceController{Svc: svc, Holds: holds}
}

type createResourcePayload struct {
	Kind        string  `json:"kind" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	MemberPrice float64 `json:"member_price"`
	GuestPrice  float64 `json:"guest_price"`
	MinGuests   int     `json:"min_guests"`
	MaxGuests   int     `json:"max_guests"`
	Description string  `json:"description"`
}

func (ctrl *ResourceController) CreateResource(c *gin.Context) {
	var payload createResourcePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	resource := models.Resource{
		Kind:        models.ResourceKind(payload.Kind),
		Name:        payload.Name,
		MemberPrice: payload.MemberPrice,
		GuestPrice:  payload.GuestPrice,
		MinGuests:   payload.MinGuests,
		MaxGuests:   payload.MaxGuests,
		Description: payload.Description,
	}
	if err := ctrl.Svc.Create(&resource); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, resource)
}

func (ctrl *ResourceController) GetResources(c *gin.Context) {
	list, err := ctrl.Svc.List(models.ResourceKind(c.Query("kind")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *ResourceController) GetResource(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	resource, err := ctrl.Svc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, resource)
}

func (ctrl *ResourceController) UpdateResource(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	if err := ctrl.Svc.Update(id, updates); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": true})
}

type maintenancePayload struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

func (ctrl *ResourceController) AddMaintenance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload maintenancePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	start, err := parseDate(payload.StartDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start_date: "+err.Error())
		return
	}
	end, err := parseDate(payload.EndDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid end_date: "+err.Error())
		return
	}

	mw := models.MaintenanceWindow{
		ResourceID: id,
		StartDate:  *start,
		EndDate:    *end,
		Reason:     payload.Reason,
	}
	if err := ctrl.Svc.AddMaintenance(&mw); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, mw)
}

func (ctrl *ResourceController) GetMaintenance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	list, err := ctrl.Svc.ListMaintenance(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

type reservationPayload struct {
	ReservedFrom string `json:"reserved_from" binding:"required"`
	ReservedTo   string `json:"reserved_to" binding:"required"`
	TimeSlot     string `json:"time_slot"`
	Remarks      string `json:"remarks"`
}

func (ctrl *ResourceController) AddReservation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload reservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	from, err := parseDate(payload.ReservedFrom)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid reserved_from: "+err.Error())
		return
	}
	to, err := parseDate(payload.ReservedTo)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid reserved_to: "+err.Error())
		return
	}

	sr := models.StandingReservation{
		ResourceID:   id,
		ReservedFrom: *from,
		ReservedTo:   *to,
		Remarks:      payload.Remarks,
	}
	if payload.TimeSlot != "" {
		slot := models.TimeSlot(payload.TimeSlot)
		sr.TimeSlot = &slot
	}
	if err := ctrl.Svc.AddReservation(&sr); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, sr)
}

func (ctrl *ResourceController) GetReservations(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	list, err := ctrl.Svc.ListReservations(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

type holdPayload struct {
	Actor      string `json:"actor" binding:"required"`
	TTLMinutes int    `json:"ttl_minutes"`
}

// PlaceHold handles POST /api/resources/:id/hold (the checkout flow's
// soft lock).
func (ctrl *ResourceController) PlaceHold(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload holdPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	resource, err := ctrl.Holds.Place(id, payload.Actor, time.Duration(payload.TTLMinutes)*time.Minute)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, resource)
}

// ReleaseHold handles DELETE /api/resources/:id/hold.
func (ctrl *ResourceController) ReleaseHold(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := c.Query("actor")
	if actor == "" {
		utils.JSONError(c, http.StatusBadRequest, "actor is required")
		return
	}
	if err := ctrl.Holds.Release(id, actor); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"released": true})
}
