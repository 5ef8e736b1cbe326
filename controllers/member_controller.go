package controllers

import (
	"net/http"

	"club-backend/models"
	"club-backend/services"
	"club-backend/utils"

	"github.com/gin-gonic/gin"
)

type MemberController struct {
	Svc *services.MemberService
}

func NewMemberController(svc *services.MemberService) *MemberController {
	return &MemberController{Svc: svc}
}

type createMemberPayload struct {
	MembershipNo string `json:"membership_no" binding:"required"`
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

func (ctrl *MemberController) CreateMember(c *gin.Context) {
	var payload createMemberPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	member := models.Member{
		MembershipNo: payload.MembershipNo,
		FullName:     payload.FullName,
		Email:        payload.Email,
		Phone:        payload.Phone,
	}
	if err := ctrl.Svc.Create(&member); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, member)
}

func (ctrl *MemberController) GetMembers(c *gin.Context) {
	list, err := ctrl.Svc.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GetMember looks a member up by membership number so the front desk can
// pull the running ledger alongside the profile.
func (ctrl *MemberController) GetMember(c *gin.Context) {
	member, err := ctrl.Svc.FindByMembershipNo(c.Param("membershipNo"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, member)
}
