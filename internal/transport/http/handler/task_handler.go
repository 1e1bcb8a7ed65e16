package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-todo-api/internal/domain"
	"go-todo-api/internal/service"
	mdw "go-todo-api/internal/transport/http/middleware"
	resp "go-todo-api/internal/transport/http/response"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler { return &TaskHandler{svc: svc} }

func (h *TaskHandler) MountAPI(g *gin.RouterGroup) {
	t := g.Group("/tasks")
	t.GET("", h.list)
	t.POST("", h.create)
	t.GET("/:id", h.get)
	t.PUT("/:id", h.update)
	t.DELETE("/:id", h.delete)
	t.PUT("/:id/complete", h.setComplete)
}

func (h *TaskHandler) list(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	tasks, err := h.svc.ListForUser(c.Request.Context(), p)
	if err != nil {
		resp.Err(c, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var draft service.TaskDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		resp.ErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.svc.Create(c.Request.Context(), p, draft)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TaskHandler) get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.svc.FindByID(c.Request.Context(), p, id)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch service.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.ErrMsg(c, http.StatusBadRequest, err.Error())
		return
	}
	// the path wins over whatever id the body carries
	patch.ID = id
	t, err := h.svc.Update(c.Request.Context(), p, patch)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), p, id); err != nil {
		resp.Err(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) setComplete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		resp.ErrMsg(c, http.StatusBadRequest, "body must be a boolean")
		return
	}
	complete, ok := parseBoolBody(raw)
	if !ok {
		resp.ErrMsg(c, http.StatusBadRequest, "body must be a boolean")
		return
	}
	done, err := h.svc.SetComplete(c.Request.Context(), p, id, complete)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, done)
}

func principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := mdw.PrincipalFrom(c)
	if !ok {
		resp.ErrMsg(c, http.StatusUnauthorized, "missing principal")
	}
	return p, ok
}

// parseBoolBody takes `true` as well as the quoted `"true"` some clients
// send for the completion toggle.
func parseBoolBody(raw json.RawMessage) (bool, bool) {
	var b bool
	if json.Unmarshal(raw, &b) == nil {
		return b, true
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if v, err := strconv.ParseBool(s); err == nil {
			return v, true
		}
	}
	return false, false
}

func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.ErrMsg(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
