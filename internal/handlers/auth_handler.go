package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/middleware"
	ucauth "github.com/BruksfildServices01/lesson-booking/internal/usecase/auth"
)

type AuthHandler struct {
	svc          *ucauth.Service
	secureCookie bool
	now          func() time.Time
}

func NewAuthHandler(svc *ucauth.Service, secureCookie bool) *AuthHandler {
	return &AuthHandler{svc: svc, secureCookie: secureCookie, now: time.Now}
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req ucauth.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Request body is not valid JSON.")
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	maxAge := int(res.ExpiresAt.Sub(h.now()).Seconds())
	h.setSession(c, res.Token, maxAge)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    res.User,
		"token":   res.Token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSession(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) setSession(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.secureCookie, true)
}
