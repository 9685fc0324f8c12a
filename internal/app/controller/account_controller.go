package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paragonmaik/accounts-api/internal/app/service"
	apperrors "github.com/paragonmaik/accounts-api/internal/errors"
	"github.com/paragonmaik/accounts-api/internal/middleware"
)

type AccountController struct {
	accountService       service.AccountService
	passwordResetService service.PasswordResetService
}

func NewAccountController(accountService service.AccountService, passwordResetService service.PasswordResetService) *AccountController {
	return &AccountController{
		accountService:       accountService,
		passwordResetService: passwordResetService,
	}
}

type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Name            string `json:"name" binding:"required"`
	Password        string `json:"password" binding:"required"`
	Password2       string `json:"password2" binding:"required"`
	TermsConditions *bool  `json:"terms_conditions" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	Password  string `json:"password" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
}

type SendResetEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password  string `json:"password" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
}

const resetRequestedMessage = "If the given email belongs to a user, a reset link will be sent."

// Register handles user registration
// POST /api/v1/accounts/register
func (ctrl *AccountController) Register(c *gin.Context) {
	ctrl.register(c, false)
}

// RegisterAdmin registers an account with the admin flag set.
// POST /api/v1/accounts/register-admin
func (ctrl *AccountController) RegisterAdmin(c *gin.Context) {
	ctrl.register(c, true)
}

func (ctrl *AccountController) register(c *gin.Context, isAdmin bool) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Input is not valid")
		return
	}

	account, tokens, err := ctrl.accountService.Register(
		req.Email,
		req.Password,
		req.Password2,
		req.Name,
		*req.TermsConditions,
		isAdmin,
	)
	if err != nil {
		if errors.Is(err, service.ErrPasswordMismatch) {
			apperrors.UnprocessableEntity(c, apperrors.ValidationPasswordMismatch, "Passwords do not match!")
			return
		}
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			log.Warn("Registration failed: email already exists", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.UnprocessableEntity(c, apperrors.AuthEmailAlreadyExists, "Email is already registered")
			return
		}
		log.Error("Registration failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "Registration failed")
		return
	}

	log.Info("Account registered", map[string]interface{}{
		"account_id": account.ID,
		"email":      account.Email,
	})

	c.JSON(http.StatusCreated, gin.H{
		"token":   tokens,
		"message": "Registered!",
	})
}

// Login handles user login
// POST /api/v1/accounts/login
func (ctrl *AccountController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		// Every login failure is 401, malformed input included
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.ValidationInvalidInput, "Input is not valid")
		return
	}

	account, tokens, err := ctrl.accountService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid Email or Password!")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "Login failed")
		return
	}

	log.Info("Login successful", map[string]interface{}{
		"account_id": account.ID,
		"email":      account.Email,
	})

	c.JSON(http.StatusOK, gin.H{
		"token":   tokens,
		"message": "Logged in!",
	})
}

// ChangePassword handles password change for the authenticated account
// POST /api/v1/accounts/password-change
func (ctrl *AccountController) ChangePassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	accountID, exists := middleware.GetAccountID(c)
	if !exists {
		log.Warn("Password change without authenticated account")
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid password change request", map[string]interface{}{
			"account_id": accountID,
			"error":      err.Error(),
		})
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Input is not valid")
		return
	}

	if err := ctrl.accountService.ChangePassword(accountID, req.Password, req.Password2); err != nil {
		if errors.Is(err, service.ErrPasswordMismatch) {
			apperrors.UnprocessableEntity(c, apperrors.ValidationPasswordMismatch, "Passwords do not match!")
			return
		}
		if errors.Is(err, service.ErrAccountNotFound) {
			log.Warn("Password change for unknown account", map[string]interface{}{
				"account_id": accountID,
			})
			apperrors.Unauthorized(c, "Authentication required")
			return
		}
		log.Error("Failed to change password", err, map[string]interface{}{
			"account_id": accountID,
		})
		apperrors.InternalError(c, "Password change failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password was changed successfully.",
	})
}

// SendResetPasswordEmail handles password reset requests
// POST /api/v1/accounts/send-reset-password-email
func (ctrl *AccountController) SendResetPasswordEmail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SendResetEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Same body and status as the success path, so the response never
		// reveals whether an email is registered
		log.Warn("Invalid reset request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusOK, gin.H{"message": resetRequestedMessage})
		return
	}

	if err := ctrl.passwordResetService.RequestReset(req.Email); err != nil {
		log.Error("Failed to process password reset request", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "Password reset request failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": resetRequestedMessage})
}

// ResetPassword handles password reset submissions from the emailed link
// POST /api/v1/accounts/reset-password/:uid/:token
func (ctrl *AccountController) ResetPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	uid := c.Param("uid")
	token := c.Param("token")

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid reset password request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Input is not valid")
		return
	}

	if err := ctrl.passwordResetService.ResetPassword(uid, token, req.Password, req.Password2); err != nil {
		if errors.Is(err, service.ErrPasswordMismatch) {
			apperrors.UnprocessableEntity(c, apperrors.ValidationPasswordMismatch, "Passwords do not match!")
			return
		}
		if errors.Is(err, service.ErrInvalidResetToken) {
			log.Warn("Password reset failed: invalid or expired token")
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthResetTokenInvalid, "Reset link is invalid or has expired")
			return
		}
		log.Error("Failed to reset password", err, nil)
		apperrors.InternalError(c, "Password reset failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password has been successfully reset.",
	})
}
