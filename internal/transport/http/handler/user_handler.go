package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-todo-api/internal/domain"
	"go-todo-api/internal/service"
	resp "go-todo-api/internal/transport/http/response"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	u := g.Group("/users")
	u.GET("", h.list)
	u.POST("", h.create)
	u.GET("/self", h.getSelf)
	u.PUT("/self/password", h.changePassword)
	u.GET("/:id", h.get)
	u.PUT("/:id", h.update)
}

func (h *UserHandler) list(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	users, err := h.svc.ListAll(c.Request.Context(), p)
	if err != nil {
		resp.Err(c, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var draft service.UserDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		resp.ErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Create(c.Request.Context(), p, draft)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) getSelf(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	u, err := h.svc.GetSelf(c.Request.Context(), p)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.svc.FindByID(c.Request.Context(), p, id)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch service.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.ErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}
	patch.ID = id
	u, err := h.svc.Update(c.Request.Context(), p, patch)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type changePasswordIn struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *UserHandler) changePassword(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var in changePasswordIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.ErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.ChangeOwnPassword(c.Request.Context(), p, in.CurrentPassword, in.NewPassword); err != nil {
		resp.Err(c, err)
		return
	}
	c.Status(http.StatusOK)
}
