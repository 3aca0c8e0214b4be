package controller

import (
	"net/http"

	"github.com/arphatra/arphatra/internal/dto"
	"github.com/arphatra/arphatra/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authSvc service.AuthService
}

func NewAuthController(authSvc service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.Envelope{data=dto.AuthResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 409 {object} dto.Envelope "Email already registered"
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	resp, err := ctrl.authSvc.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(resp))
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.Envelope{data=dto.AuthResponse}
// @Failure 401 {object} dto.Envelope
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	resp, err := ctrl.authSvc.Login(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// GoogleLogin godoc
// @Summary Log in or register with a Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.Envelope{data=dto.AuthResponse}
// @Failure 401 {object} dto.Envelope
// @Router /auth/google-login [post]
func (ctrl *AuthController) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	resp, err := ctrl.authSvc.GoogleLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.Envelope{data=dto.AuthResponse}
// @Failure 401 {object} dto.Envelope
// @Router /auth/refresh-token [post]
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	resp, err := ctrl.authSvc.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// Logout godoc
// @Summary Log out
// @Description Tokens are stateless; logout is a client-side discard. The
// endpoint exists so clients have a uniform call to clear their session.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Envelope
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	log.Debug().Msg("logout")
	c.JSON(http.StatusOK, dto.OKMessage("logged out", nil))
}

// ForgotPassword godoc
// @Summary Request a password reset mail
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.Envelope
// @Router /auth/forgot-password [post]
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	if err := ctrl.authSvc.ForgotPassword(req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("if the address is registered, a reset mail is on its way", nil))
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.Envelope
// @Failure 401 {object} dto.Envelope
// @Router /auth/reset-password [post]
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	if err := ctrl.authSvc.ResetPassword(req.Token, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("password updated", nil))
}
