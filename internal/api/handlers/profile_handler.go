package handlers

import (
	"net/http"

	"qa-warehouse-api-server/internal/service"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	Profile *service.ProfileService
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Device   string `json:"device"`
	Location string `json:"location"`
}

type profileRequest struct {
	versioned
	workflow.ProfileUpdate
}

type passwordRequest struct {
	versioned
	workflow.PasswordChange
}

type themeRequest struct {
	versioned
	Theme string `json:"theme"`
}

func (h *ProfileHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}
	device := req.Device
	if device == "" {
		device = c.Request.UserAgent()
	}
	res, err := h.Profile.Login(c.Request.Context(), req.Email, req.Password, service.Client{
		Device:   device,
		Location: req.Location,
		IP:       c.ClientIP(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	u, err := h.Profile.Get(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "initials": u.Initials()})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req profileRequest
	if !bind(c, &req) {
		return
	}
	u, err := h.Profile.UpdateProfile(c.Request.Context(), actorID(c), req.Version, req.ProfileUpdate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req passwordRequest
	if !bind(c, &req) {
		return
	}
	strength, err := h.Profile.ChangePassword(c.Request.Context(), actorID(c), req.Version, req.PasswordChange)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully.", "strength": strength})
}

func (h *ProfileHandler) Sessions(c *gin.Context) {
	sessions, err := h.Profile.Sessions(c.Request.Context(), actorID(c), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": sessions})
}

func (h *ProfileHandler) RevokeSession(c *gin.Context) {
	if err := h.Profile.RevokeSession(c.Request.Context(), actorID(c), sessionID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) RevokeOthers(c *gin.Context) {
	n, err := h.Profile.RevokeOthers(c.Request.Context(), actorID(c), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revoked": n})
}

func (h *ProfileHandler) Logout(c *gin.Context) {
	if err := h.Profile.Logout(c.Request.Context(), actorID(c), sessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) Toggle2FA(c *gin.Context) {
	var req versioned
	if !bind(c, &req) {
		return
	}
	u, err := h.Profile.Toggle2FA(c.Request.Context(), actorID(c), req.Version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *ProfileHandler) SetTheme(c *gin.Context) {
	var req themeRequest
	if !bind(c, &req) {
		return
	}
	u, err := h.Profile.SetTheme(c.Request.Context(), actorID(c), req.Version, req.Theme)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
