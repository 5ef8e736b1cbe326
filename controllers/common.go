package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"club-backend/services"
	"club-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP:
// validation -> 400, not-found -> 404, conflict -> 409, rest -> 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrResourceNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, services.ErrBookingCancelled):
		utils.JSONConflict(c, http.StatusConflict, "BOOKING_CANCELLED", err.Error())
		return
	}

	if ce, ok := services.AsConflict(err); ok {
		utils.JSONConflict(c, http.StatusConflict, string(ce.Reason), ce.Message)
		return
	}
	if ve, ok := services.AsValidation(err); ok {
		utils.JSONError(c, http.StatusBadRequest, ve.Error())
		return
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		utils.JSONConflict(c, http.StatusConflict, "DUPLICATE", "duplicate entry")
		return
	}

	log.Printf("internal error: %v", err)
	utils.JSONError(c, http.StatusInternalServerError, "internal error")
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts "2006-01-02" or RFC3339.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseTimestamp(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
