package controllers

import (
	"net/http"
	"strconv"

	"club-backend/models"
	"club-backend/services"
	"club-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Svc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{Svc: svc}
}

// createBookingPayload is the kind-discriminated create request. Window
// fields are validated per resource kind before entering the core.
type createBookingPayload struct {
	MembershipNo string `json:"membership_no" binding:"required"`
	ResourceKind string `json:"resource_kind" binding:"required"`
	ResourceID   uint   `json:"resource_id" binding:"required"`

	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	BookingDate string `json:"booking_date"`
	TimeSlot    string `json:"time_slot"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`

	PricingType   string  `json:"pricing_type"`
	TotalPrice    float64 `json:"total_price"`
	PaymentStatus string  `json:"payment_status" binding:"required"`
	PaidAmount    float64 `json:"paid_amount"`
	PaymentMode   string  `json:"payment_mode"`

	PaidBy       string `json:"paid_by"`
	GuestName    string `json:"guest_name"`
	GuestContact string `json:"guest_contact"`

	GuestCount      int    `json:"guest_count"`
	Adults          int    `json:"adults"`
	Children        int    `json:"children"`
	SpecialRequests string `json:"special_requests"`

	Actor    string `json:"actor"`
	IssuedBy string `json:"issued_by"`
}

func (p *createBookingPayload) toRequest() (*services.BookingRequest, error) {
	req := &services.BookingRequest{
		MembershipNo:    p.MembershipNo,
		Kind:            models.ResourceKind(p.ResourceKind),
		ResourceID:      p.ResourceID,
		PricingType:     models.PricingType(p.PricingType),
		TotalPrice:      p.TotalPrice,
		PaymentStatus:   models.PaymentStatus(p.PaymentStatus),
		PaidAmount:      p.PaidAmount,
		PaymentMode:     models.PaymentMode(p.PaymentMode),
		PaidBy:          p.PaidBy,
		GuestName:       p.GuestName,
		GuestContact:    p.GuestContact,
		GuestCount:      p.GuestCount,
		Adults:          p.Adults,
		Children:        p.Children,
		SpecialRequests: p.SpecialRequests,
		Actor:           p.Actor,
		IssuedBy:        p.IssuedBy,
	}

	var err error
	if req.CheckIn, err = parseDate(p.CheckIn); err != nil {
		return nil, err
	}
	if req.CheckOut, err = parseDate(p.CheckOut); err != nil {
		return nil, err
	}
	if req.BookingDate, err = parseDate(p.BookingDate); err != nil {
		return nil, err
	}
	if req.StartTime, err = parseTimestamp(p.StartTime); err != nil {
		return nil, err
	}
	if req.EndTime, err = parseTimestamp(p.EndTime); err != nil {
		return nil, err
	}
	if p.TimeSlot != "" {
		slot := models.TimeSlot(p.TimeSlot)
		req.TimeSlot = &slot
	}
	return req, nil
}

// CreateBooking handles POST /api/bookings and returns the composite
// receipt: booking, vouchers written, ledger delta applied.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	req, err := payload.toRequest()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date/time field: "+err.Error())
		return
	}

	receipt, err := ctrl.Svc.Create(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, receipt)
}

type updateBookingPayload struct {
	TotalPrice    *float64 `json:"total_price"`
	PaymentStatus *string  `json:"payment_status"`
	PaidAmount    *float64 `json:"paid_amount"`
	PaymentMode   string   `json:"payment_mode"`

	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	BookingDate string `json:"booking_date"`
	TimeSlot    string `json:"time_slot"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`

	GuestCount      *int    `json:"guest_count"`
	SpecialRequests *string `json:"special_requests"`

	Actor    string `json:"actor"`
	IssuedBy string `json:"issued_by"`
}

// UpdateBooking handles PATCH /api/bookings/:id.
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload updateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	req := &services.UpdateRequest{
		TotalPrice:      payload.TotalPrice,
		PaidAmount:      payload.PaidAmount,
		PaymentMode:     models.PaymentMode(payload.PaymentMode),
		GuestCount:      payload.GuestCount,
		SpecialRequests: payload.SpecialRequests,
		Actor:           payload.Actor,
		IssuedBy:        payload.IssuedBy,
	}
	if payload.PaymentStatus != nil {
		status := models.PaymentStatus(*payload.PaymentStatus)
		req.PaymentStatus = &status
	}

	var err error
	if req.CheckIn, err = parseDate(payload.CheckIn); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_in: "+err.Error())
		return
	}
	if req.CheckOut, err = parseDate(payload.CheckOut); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_out: "+err.Error())
		return
	}
	if req.BookingDate, err = parseDate(payload.BookingDate); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking_date: "+err.Error())
		return
	}
	if req.StartTime, err = parseTimestamp(payload.StartTime); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start_time: "+err.Error())
		return
	}
	if req.EndTime, err = parseTimestamp(payload.EndTime); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid end_time: "+err.Error())
		return
	}
	if payload.TimeSlot != "" {
		slot := models.TimeSlot(payload.TimeSlot)
		req.TimeSlot = &slot
	}

	receipt, err := ctrl.Svc.Update(id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, receipt)
}

// GetBookings handles GET /api/bookings with optional kind/member filters.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	kind := models.ResourceKind(c.Query("kind"))
	var memberID uint
	if q := c.Query("member_id"); q != "" {
		id, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid member_id")
			return
		}
		memberID = uint(id)
	}

	list, err := ctrl.Svc.List(kind, memberID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GetBooking handles GET /api/bookings/:id.
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.Svc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.Svc.Cancel(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// GetBookingVouchers handles GET /api/bookings/:id/vouchers.
func (ctrl *BookingController) GetBookingVouchers(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := ctrl.Svc.Get(id); err != nil {
		respondServiceError(c, err)
		return
	}
	list, err := ctrl.Svc.Vouchers.ListByBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}
