package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"groundedwarriors/internal/models/request_models"
	"groundedwarriors/internal/models/response_models"
	"groundedwarriors/internal/services"
	"groundedwarriors/pkg/middleware"
	"groundedwarriors/pkg/utils"
)

const forgotPasswordMessage = "If an account exists, you will receive a password reset email"

type AccountController struct {
	accountService services.AccountServiceInterface
	cookie         middleware.CookieConfig
	logger         *zap.Logger
}

func NewAccountController(
	accountService services.AccountServiceInterface,
	cookie middleware.CookieConfig,
	logger *zap.Logger,
) *AccountController {
	return &AccountController{
		accountService: accountService,
		cookie:         cookie,
		logger:         logger,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a user account and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RegisterRequest true "Registration payload"
// @Success 201 {object} response_models.UserResponse
// @Failure 400 {object} utils.APIError
// @Router /auth/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	user, session, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	middleware.SetSessionCookie(c, a.cookie, session)
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"user": response_models.NewUserResponse(user)})
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} response_models.UserResponse
// @Failure 401 {object} utils.APIError
// @Router /auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	user, session, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	// Drop the previous session, if any, so a login never reuses a session id.
	if previous := middleware.CurrentSession(c); previous != nil {
		if err := a.accountService.Logout(c.Request.Context(), previous); err != nil {
			a.logger.Warn("failed to drop previous session", zap.Error(err))
		}
	}

	middleware.SetSessionCookie(c, a.cookie, session)
	utils.RespondSuccess(c, http.StatusOK, gin.H{"user": response_models.NewUserResponse(user)})
}

// CurrentUser godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} response_models.UserResponse
// @Failure 401 {object} utils.APIError
// @Router /auth/user [get]
func (a *AccountController) CurrentUser(c *gin.Context) {
	user, err := a.accountService.CurrentUser(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		if middleware.CurrentSession(c) != nil {
			middleware.ClearSessionCookie(c, a.cookie)
		}
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	// The user fields sit at the top level here, unlike register and login:
	// clients cache this body as the user itself.
	u := response_models.NewUserResponse(user)
	utils.RespondSuccess(c, http.StatusOK, gin.H{
		"id":              u.ID,
		"email":           u.Email,
		"firstName":       u.FirstName,
		"lastName":        u.LastName,
		"profileImageUrl": u.ProfileImageURL,
	})
}

// Logout godoc
// @Summary Log out
// @Description Destroy the session. Succeeds without a session too.
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /auth/logout [post]
func (a *AccountController) Logout(c *gin.Context) {
	if err := a.accountService.Logout(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	middleware.ClearSessionCookie(c, a.cookie)
	utils.RespondSuccess(c, http.StatusOK, nil)
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Always answers the same way whether or not the account exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RequestForgotPassword true "Email"
// @Success 200 {object} map[string]interface{}
// @Router /auth/forgot-password [post]
func (a *AccountController) ForgotPassword(c *gin.Context) {
	var req request_models.RequestForgotPassword
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	if err := a.accountService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": forgotPasswordMessage})
}

// ResetPassword godoc
// @Summary Reset a password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.APIError
// @Failure 401 {object} utils.APIError
// @Router /auth/reset-password [post]
func (a *AccountController) ResetPassword(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	if err := a.accountService.ResetPassword(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": "Password has been reset"})
}
