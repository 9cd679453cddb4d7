// Package api exposes the JSON surface consumed by the CLI and by any
// scripted clients. Pages are served by internal/webapp; everything here
// answers JSON only.
package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/internal/accounts"
	"moviehub/internal/live"
)

// Broadcaster publishes activity events; *live.Hub implements it.
type Broadcaster interface {
	BroadcastJSON(v any)
}

type AuthHandler struct {
	Store  *accounts.Store
	Tokens accounts.TokenService
	Events Broadcaster
}

func NewAuthHandler(store *accounts.Store, tokens accounts.TokenService, events Broadcaster) *AuthHandler {
	return &AuthHandler{Store: store, Tokens: tokens, Events: events}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.POST("/logout", accounts.APIAuth(h.Tokens, h.Store), h.logout)
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	account, err := h.Store.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondAccountsError(c, err)
		return
	}

	// no auto-login: the caller logs in separately
	c.JSON(http.StatusCreated, gin.H{
		"account": gin.H{
			"id":    account.ID,
			"name":  account.Name,
			"email": account.Email,
		},
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	session, err := h.Store.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondAccountsError(c, err)
		return
	}

	token, exp, err := h.Tokens.Sign(session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token failed"})
		return
	}

	if h.Events != nil {
		h.Events.BroadcastJSON(live.Event{Type: live.TypeLogin, Email: session.Email, At: time.Now().UTC()})
	}

	c.JSON(http.StatusOK, gin.H{
		"session": gin.H{
			"account_id": session.AccountID,
			"name":       session.Name,
			"email":      session.Email,
		},
		"token":      token,
		"expires_at": exp.UTC().Format(time.RFC3339),
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	claims := accounts.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if err := h.Store.Logout(c.Request.Context()); err != nil {
		log.Printf("[api] logout: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}

	if h.Events != nil {
		h.Events.BroadcastJSON(live.Event{Type: live.TypeLogout, Email: claims.Email, At: time.Now().UTC()})
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Me reports the current session. Wire it behind accounts.APIAuth.
func (h *AuthHandler) Me(c *gin.Context) {
	session, err := h.Store.Current(c.Request.Context())
	if err != nil {
		log.Printf("[api] current session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
		return
	}
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account_id": session.AccountID,
		"name":       session.Name,
		"email":      session.Email,
	})
}

func respondAccountsError(c *gin.Context, err error) {
	var verr *accounts.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, accounts.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, accounts.ErrNoAccount), errors.Is(err, accounts.ErrInvalidCredentials):
		// don't reveal which part failed
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		log.Printf("[api] accounts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
