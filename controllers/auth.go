package controllers

import (
	"errors"
	"net/http"

	"github.com/elyashium/sylvan-web/auth"
	"github.com/elyashium/sylvan-web/middlewares"
	"github.com/elyashium/sylvan-web/models"

	"github.com/gin-gonic/gin"
)

func sessionResponse(s models.Session) gin.H {
	return gin.H{"token": s.Token, "expiresAt": s.ExpiresAt, "user": s.User}
}

// authFail maps identity errors to the messages shown on the auth forms.
func (h *Handler) authFail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	case errors.Is(err, auth.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrResetExpired),
		errors.Is(err, auth.ErrInvalidUserType):
		c.JSON(http.StatusBadRequest, gin.H{"error": rootMessage(err)})
	case errors.Is(err, auth.ErrUnsupportedProvider):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sign-in provider is not available"})
	case errors.Is(err, auth.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		h.Logger.ErrorContext(c.Request.Context(), "identity provider", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
	}
}

// rootMessage returns the sentinel text without the wrapping context.
func rootMessage(err error) string {
	for _, sentinel := range []error{auth.ErrWeakPassword, auth.ErrInvalidEmail, auth.ErrResetExpired, auth.ErrInvalidUserType} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

// Signup registers a new user and signs them in.
func (h *Handler) Signup(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		Password    string `json:"password" binding:"required"`
		DisplayName string `json:"displayName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	s, err := h.Auth.SignUp(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		h.authFail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResponse(s))
}

// Login authenticates a user and returns a session token.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s, err := h.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.authFail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(s))
}

// FederatedLogin exchanges an external provider credential for a session.
func (h *Handler) FederatedLogin(c *gin.Context) {
	var req struct {
		Provider   string `json:"provider" binding:"required"`
		Credential string `json:"credential" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s, err := h.Auth.SignInFederated(c.Request.Context(), req.Provider, req.Credential)
	if err != nil {
		h.authFail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(s))
}

// Logout revokes the token the request was made with.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Auth.SignOut(c.Request.Context(), middlewares.BearerToken(c)); err != nil {
		h.authFail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// RequestPasswordReset always answers the same way for known and unknown emails.
func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := h.Auth.ResetPassword(c.Request.Context(), req.Email); err != nil {
		h.authFail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "If an account exists for this email, a reset link has been sent"})
}

func (h *Handler) ConfirmPasswordReset(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := h.Auth.ConfirmReset(c.Request.Context(), req.Token, req.Password); err != nil {
		h.authFail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// Session reports who the caller is signed in as.
func (h *Handler) Session(c *gin.Context) {
	s, ok := middlewares.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": s.User, "expiresAt": s.ExpiresAt})
}
