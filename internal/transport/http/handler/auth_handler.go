package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-todo-api/internal/core/auth"
	"go-todo-api/internal/service"
	resp "go-todo-api/internal/transport/http/response"
)

type AuthHandler struct {
	svc   *service.UserService
	jwter *auth.JWTer
}

func NewAuthHandler(svc *service.UserService, jwter *auth.JWTer) *AuthHandler {
	return &AuthHandler{svc: svc, jwter: jwter}
}

// MountPublic registers the unauthenticated routes.
func (h *AuthHandler) MountPublic(g *gin.RouterGroup) {
	g.POST("/auth/login", h.login)
}

type loginIn struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginOut struct {
	Token string `json:"token"`
}

func (h *AuthHandler) login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Authenticate(c.Request.Context(), in.Name, in.Password)
	if err != nil {
		// same answer for unknown name and wrong password
		resp.ErrMsg(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	tok, err := h.jwter.Issue(u)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, loginOut{Token: tok})
}
