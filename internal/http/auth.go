package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deckoracle/backend/internal/auth"
	"github.com/deckoracle/backend/internal/entities"
)

type AuthController struct {
	service *auth.Service
}

func NewAuthController(service *auth.Service) *AuthController {
	return &AuthController{service: service}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type authResponse struct {
	User   *entities.User  `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

func (a *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, tokens, err := a.service.Register(req.Email, req.Password, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			respondConflict(c, "an account with this email already exists")
		case errors.Is(err, auth.ErrEmailInvalid),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrPasswordTooLong):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "register")
		}
		return
	}

	respondCreated(c, authResponse{User: user, Tokens: tokens})
}

func (a *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, tokens, err := a.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondUnauthorized(c, "invalid email or password")
			return
		}
		respondInternalError(c, err, "login")
		return
	}

	c.JSON(http.StatusOK, authResponse{User: user, Tokens: tokens})
}

func (a *AuthController) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "refresh_token is required")
		return
	}

	tokens, err := a.service.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			respondUnauthorized(c, "invalid or expired refresh token")
			return
		}
		respondInternalError(c, err, "refresh")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

func (a *AuthController) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "refresh_token is required")
		return
	}

	if err := a.service.Logout(req.RefreshToken); err != nil {
		respondInternalError(c, err, "logout")
		return
	}
	respondSuccess(c, "logged out")
}

func (a *AuthController) Me(c *gin.Context) {
	user, err := a.service.CurrentUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "current user")
		return
	}
	c.JSON(http.StatusOK, user)
}
