package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/najilx/file-share-webapp/backend/common"
	apierrors "github.com/najilx/file-share-webapp/backend/common/errors"
	"github.com/najilx/file-share-webapp/backend/model"
	"github.com/najilx/file-share-webapp/backend/service"
)

// currentUserId reads the identity the auth middleware placed in the
// request context.
func currentUserId(c *gin.Context) (int64, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		common.RespErrorStr(c, http.StatusUnauthorized, "user_id not found in context")
		return 0, false
	}
	id, ok := userID.(int64)
	if !ok {
		common.RespErrorStr(c, http.StatusInternalServerError, "invalid user_id type in context")
		return 0, false
	}
	return id, true
}

type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required,max=50"`
	LastName        string `json:"last_name" validate:"required,max=50"`
	Email           string `json:"email" validate:"required,email,max=100"`
	DateOfBirth     string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidParam, "invalid request body: "+err.Error())
		return
	}

	fieldErrors := common.ValidateStruct(&req)
	if req.ConfirmPassword != "" && req.Password != req.ConfirmPassword {
		fieldErrors = append(fieldErrors, common.NewFieldError("confirm_password", "passwords do not match"))
	}
	if len(fieldErrors) > 0 {
		common.RespErrorCodeWithData(c, http.StatusBadRequest, apierrors.ErrValidation, "validation failed", fieldErrors)
		return
	}

	user := model.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Password:    req.Password,
	}
	if err := user.Insert(); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			common.RespErrorCodeWithData(c, http.StatusBadRequest, apierrors.ErrEmailTaken, "validation failed",
				[]common.FieldError{common.NewFieldError("email", "email address already registered")})
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to create account", err)
		return
	}

	common.RespCreated(c, "user registered successfully", nil)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidParam, "invalid request body: "+err.Error())
		return
	}
	if fieldErrors := common.ValidateStruct(&req); len(fieldErrors) > 0 {
		common.RespErrorCodeWithData(c, http.StatusBadRequest, apierrors.ErrValidation, "validation failed", fieldErrors)
		return
	}

	user, err := model.ValidateUserCredentials(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			common.RespErrorCode(c, http.StatusUnauthorized, apierrors.ErrInvalidCredentials, "invalid email or password")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "login failed", err)
		return
	}

	setupLogin(user, c)
}

// setupLogin saves the session and answers with the bearer credential pair
// plus the user profile.
func setupLogin(user *model.User, c *gin.Context) {
	session := sessions.Default(c)
	session.Set("id", user.Id)
	if err := session.Save(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to save session", err)
		return
	}

	accessToken, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to issue access token", err)
		return
	}
	refreshToken, err := service.GenerateRefreshToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to issue refresh token", err)
		return
	}

	common.RespSuccess(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          user,
	})
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to clear session", err)
		return
	}

	// A bearer token stays valid until it expires, so blacklist it when we
	// have somewhere to remember it.
	if common.RedisEnabled && c.GetBool("auth_by_token") {
		tokenString := c.GetString("bearer_token")
		if tokenString != "" {
			validity := time.Duration(common.AccessTokenValidMinutes) * time.Minute
			common.RDB.Set(c, "jwt:blacklist:"+tokenString, "1", validity)
		}
	}
	common.RespSuccessStr(c, "logged out")
}

func GetSelf(c *gin.Context) {
	id, ok := currentUserId(c)
	if !ok {
		return
	}
	user, err := model.GetUserById(id)
	if err != nil {
		common.RespErrorCode(c, http.StatusNotFound, apierrors.ErrUserNotFound, "user not found")
		return
	}
	common.RespSuccess(c, user)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidParam, "invalid request body: "+err.Error())
		return
	}
	claims, err := service.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		common.RespErrorCode(c, http.StatusUnauthorized, apierrors.ErrInvalidToken, "invalid refresh token")
		return
	}
	user, err := model.GetUserById(claims.UserID)
	if err != nil || user.Status != common.UserStatusEnabled {
		common.RespErrorCode(c, http.StatusUnauthorized, apierrors.ErrInvalidToken, "invalid refresh token")
		return
	}

	accessToken, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to issue access token", err)
		return
	}
	refreshToken, err := service.GenerateRefreshToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to issue refresh token", err)
		return
	}
	common.RespSuccess(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidParam, "invalid request body: "+err.Error())
		return
	}

	fieldErrors := common.ValidateStruct(&req)
	if req.ConfirmPassword != "" && req.NewPassword != req.ConfirmPassword {
		fieldErrors = append(fieldErrors, common.NewFieldError("confirm_password", "new passwords do not match"))
	}
	if len(fieldErrors) > 0 {
		common.RespErrorCodeWithData(c, http.StatusBadRequest, apierrors.ErrValidation, "validation failed", fieldErrors)
		return
	}

	id, ok := currentUserId(c)
	if !ok {
		return
	}
	user, err := model.GetUserById(id)
	if err != nil {
		common.RespErrorCode(c, http.StatusNotFound, apierrors.ErrUserNotFound, "user not found")
		return
	}

	if !common.ValidatePasswordAndHash(req.OldPassword, user.Password) {
		common.RespErrorCodeWithData(c, http.StatusBadRequest, apierrors.ErrValidation, "validation failed",
			[]common.FieldError{common.NewFieldError("old_password", "wrong password")})
		return
	}

	if err := user.UpdatePassword(req.NewPassword); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to change password", err)
		return
	}
	common.RespSuccessStr(c, "password changed successfully")
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidParam, "invalid request body: "+err.Error())
		return
	}
	if fieldErrors := common.ValidateStruct(&req); len(fieldErrors) > 0 {
		common.RespErrorCodeWithData(c, http.StatusBadRequest, apierrors.ErrValidation, "validation failed", fieldErrors)
		return
	}

	user, err := model.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			common.RespErrorCode(c, http.StatusNotFound, apierrors.ErrUserNotFound, "no account with this email address")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to look up account", err)
		return
	}

	token, err := service.GeneratePasswordResetToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to issue reset token", err)
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password/%d/%s", common.FrontendBaseURL, user.Id, token)
	body := fmt.Sprintf(
		"Click the link to reset your password: %s\n\nThe link is valid for %d minutes. If you did not request a reset, you can ignore this email.",
		resetURL, common.ResetTokenValidMinutes)
	if err := common.SendEmail("Password Reset Request", body, user.Email); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to send reset email", err)
		return
	}
	common.RespSuccessStr(c, "password reset link sent to email")
}

type ResetPasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func ResetPassword(c *gin.Context) {
	userId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidParam, "invalid user reference")
		return
	}
	tokenString := c.Param("token")

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidParam, "invalid request body: "+err.Error())
		return
	}

	fieldErrors := common.ValidateStruct(&req)
	if req.ConfirmPassword != "" && req.NewPassword != req.ConfirmPassword {
		fieldErrors = append(fieldErrors, common.NewFieldError("confirm_password", "passwords do not match"))
	}
	if len(fieldErrors) > 0 {
		common.RespErrorCodeWithData(c, http.StatusBadRequest, apierrors.ErrValidation, "validation failed", fieldErrors)
		return
	}

	// A bad user reference and a bad token answer identically so the
	// endpoint leaks nothing about which part failed.
	user, err := model.GetUserById(userId)
	if err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidToken, "invalid or expired reset token")
		return
	}
	if err := service.ValidatePasswordResetToken(user, tokenString); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidToken, "invalid or expired reset token")
		return
	}

	if err := user.UpdatePassword(req.NewPassword); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to reset password", err)
		return
	}
	common.RespSuccessStr(c, "password reset successful")
}
