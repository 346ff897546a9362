package handlers

import (
	"mapify-server/middleware"
	"mapify-server/services"
	"net/http"
	"time"
)

type AuthHandler struct {
	tokenService *services.TokenService
}

func NewAuthHandler(tokenService *services.TokenService) *AuthHandler {
	return &AuthHandler{tokenService: tokenService}
}

func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	token, viewerID, err := h.tokenService.Issue(time.Now())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, map[string]string{"token": token, "viewer_id": viewerID})
}
