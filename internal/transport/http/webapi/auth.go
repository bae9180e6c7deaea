package webapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brandkit-server-go/internal/domain/auth"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Token    string `json:"token"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

func (s *Service) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "username and password are required")
		return
	}
	if len(req.Password) < 8 {
		s.respondError(c, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	user, err := s.users.Create(c.Request.Context(), req.Username, hash)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}

	token, err := s.auth.IssueSession(c.Request.Context(), user.ID, user.Username, c.ClientIP())
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	s.respondSuccess(c, http.StatusCreated, sessionResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	}, "account created")
}

func (s *Service) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := s.users.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.auth.IssueSession(c.Request.Context(), user.ID, user.Username, c.ClientIP())
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	s.respondSuccess(c, http.StatusOK, sessionResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	}, "logged in")
}

func (s *Service) handleLogout(c *gin.Context) {
	token, _ := c.Get(auth.ContextToken)
	if tokenStr, ok := token.(string); ok && tokenStr != "" {
		if err := s.auth.RevokeSession(c.Request.Context(), tokenStr); err != nil {
			s.respondDomainError(c, err)
			return
		}
	}
	s.respondSuccess(c, http.StatusOK, nil, "logged out")
}

func (s *Service) handleMe(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		s.respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	user, err := s.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	if user == nil {
		s.respondError(c, http.StatusNotFound, "user not found")
		return
	}
	s.respondSuccess(c, http.StatusOK, gin.H{
		"user_id":    user.ID,
		"username":   user.Username,
		"created_at": user.CreatedAt,
	}, "")
}
