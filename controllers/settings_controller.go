package controllers

import (
	"errors"
	"net/http"

	"club-backend/config"
	"club-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type clubSettingsPayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
	Logo    string `json:"logo"`
}

func GetClubSettings(c *gin.Context) {
	var club models.ClubSetting
	if err := config.DB.First(&club).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"club": models.ClubSetting{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"club": club})
}

func UpdateClubSettings(c *gin.Context) {
	var payload clubSettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var club models.ClubSetting
	err := config.DB.First(&club).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			club = models.ClubSetting{
				Name:    payload.Name,
				Address: payload.Address,
				Phone:   payload.Phone,
				Email:   payload.Email,
				Website: payload.Website,
				Logo:    payload.Logo,
			}
			if err := config.DB.Create(&club).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"club": club})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	club.Name = payload.Name
	club.Address = payload.Address
	club.Phone = payload.Phone
	club.Email = payload.Email
	club.Website = payload.Website
	club.Logo = payload.Logo

	if err := config.DB.Save(&club).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"club": club})
}
