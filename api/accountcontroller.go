package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"widviz/mail"
	"widviz/store"
)

// RegisterAccountRoutes registers signup, login and password reset.
func RegisterAccountRoutes(r *gin.Engine, h *accountController) {
	g := r.Group("/api")
	g.POST("/signup", h.signup)
	g.POST("/login", h.login)
	g.POST("/forgot_password", h.forgotPassword)
	g.POST("/validate_otp", h.validateOTP)
	g.POST("/reset_password", h.resetPassword)
}

type accountController struct {
	accounts AccountStore
	mailer   mail.Mailer
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

func (h *accountController) signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req) {
		return
	}
	if blank(req.Username, req.Email, req.Password) {
		respondFail(c, http.StatusBadRequest, "All fields are required.")
		return
	}
	if err := h.accounts.CreateUser(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		h.storeError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "Account created successfully."})
}

func (h *accountController) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	if blank(req.Email, req.Password) {
		respondFail(c, http.StatusBadRequest, "Both fields are required.")
		return
	}
	user, err := h.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.storeError(c, err)
		return
	}
	respondOK(c, gin.H{
		"message": "Login successful!",
		"user":    gin.H{"email": user.Email, "username": user.Username},
	})
}

func (h *accountController) forgotPassword(c *gin.Context) {
	var req otpRequest
	if !bindJSON(c, &req) {
		return
	}
	if blank(req.Email) {
		respondFail(c, http.StatusBadRequest, "Email is required.")
		return
	}

	ctx := c.Request.Context()
	otp, err := h.accounts.IssueOTP(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			respondFail(c, http.StatusNotFound, "Email not found.")
			return
		}
		h.storeError(c, err)
		return
	}
	if err := h.mailer.Send(ctx, strings.TrimSpace(req.Email), "Password Reset OTP", fmt.Sprintf("Your OTP is %s.", otp)); err != nil {
		slog.Error("failed to send otp email", "request_id", c.GetString(requestIDKey), "error", err)
		respondFail(c, http.StatusBadGateway, "Failed to send OTP email.")
		return
	}
	respondOK(c, gin.H{"message": "OTP sent to your email.", "email": strings.TrimSpace(req.Email)})
}

func (h *accountController) validateOTP(c *gin.Context) {
	var req otpRequest
	if !bindJSON(c, &req) {
		return
	}
	if blank(req.Email, req.OTP) {
		respondFail(c, http.StatusBadRequest, "Email and OTP are required.")
		return
	}
	if err := h.accounts.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		h.storeError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "OTP validated successfully."})
}

func (h *accountController) resetPassword(c *gin.Context) {
	var req otpRequest
	if !bindJSON(c, &req) {
		return
	}
	if blank(req.Password) {
		respondFail(c, http.StatusBadRequest, "Password is required.")
		return
	}
	if blank(req.Email, req.OTP) {
		respondFail(c, http.StatusBadRequest, "Email and OTP are required.")
		return
	}
	if err := h.accounts.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.Password); err != nil {
		h.storeError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "Password reset successful."})
}

func (h *accountController) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrAccountExists):
		respondFail(c, http.StatusConflict, "Account already exists.")
	case errors.Is(err, store.ErrAccountNotFound):
		respondFail(c, http.StatusNotFound, "No account found with this email.")
	case errors.Is(err, store.ErrIncorrectPassword):
		respondFail(c, http.StatusUnauthorized, "Incorrect password.")
	case errors.Is(err, store.ErrInvalidOTP):
		respondFail(c, http.StatusBadRequest, "Invalid OTP.")
	default:
		respondError(c, err)
	}
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
