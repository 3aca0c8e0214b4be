package controller

import (
	"net/http"

	"github.com/arphatra/arphatra/internal/dto"
	"github.com/arphatra/arphatra/internal/middleware"
	"github.com/arphatra/arphatra/internal/service"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	userSvc service.UserService
}

func NewUserController(userSvc service.UserService) *UserController {
	return &UserController{userSvc: userSvc}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope{data=dto.UserResponse}
// @Router /users/profile [get]
func (ctrl *UserController) GetProfile(c *gin.Context) {
	resp, err := ctrl.userSvc.GetProfile(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.Envelope{data=dto.UserResponse}
// @Router /users/profile [put]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	resp, err := ctrl.userSvc.UpdateProfile(middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// GetSettings godoc
// @Summary Get the caller's settings document
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope{data=dto.UserSettings}
// @Router /users/settings [get]
func (ctrl *UserController) GetSettings(c *gin.Context) {
	resp, err := ctrl.userSvc.GetSettings(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// UpdateSettings godoc
// @Summary Replace the caller's settings document
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UserSettings true "Settings"
// @Success 200 {object} dto.Envelope{data=dto.UserSettings}
// @Router /users/settings [put]
func (ctrl *UserController) UpdateSettings(c *gin.Context) {
	var req dto.UserSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	resp, err := ctrl.userSvc.UpdateSettings(middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// Deactivate godoc
// @Summary Soft-deactivate the caller's account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Router /users/deactivate [post]
func (ctrl *UserController) Deactivate(c *gin.Context) {
	if err := ctrl.userSvc.Deactivate(middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("account deactivated", nil))
}

// DeleteAccount godoc
// @Summary Permanently delete the caller's account, forms and responses
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Router /users/delete [delete]
func (ctrl *UserController) DeleteAccount(c *gin.Context) {
	if err := ctrl.userSvc.DeleteAccount(middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("account deleted", nil))
}
