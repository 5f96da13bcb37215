package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/bookline-app/bookline-backend/internal/auth"
	"github.com/bookline-app/bookline-backend/internal/catalog"
	"github.com/bookline-app/bookline-backend/internal/pkg/request"
	"github.com/bookline-app/bookline-backend/internal/pkg/response"
	"github.com/bookline-app/bookline-backend/internal/user"
)

type Handler struct {
	manager catalog.Manager
}

func NewHandler(manager catalog.Manager) *Handler {
	return &Handler{manager: manager}
}

// actor extracts the authenticated user's ID and role from the request context.
func actor(c *gin.Context) (string, user.Role, bool) {
	userID := auth.GetUserID(c)
	role, err := user.ParseRole(auth.GetUserRole(c))
	if userID == "" || err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", "", false
	}
	return userID, role, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	actorID, role, ok := actor(c)
	if !ok {
		return
	}

	s, err := h.manager.Create(c.Request.Context(), catalog.CreateRequest{
		BusinessID:      req.BusinessID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	}, actorID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewServiceResponse(s))
}

func (h *Handler) List(c *gin.Context) {
	var req ListServicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := catalog.Filter{
		BusinessID:    req.BusinessID,
		Keyword:       req.Keyword,
		AvailableOnly: req.AvailableOnly,
		Page:          req.Page,
		PageSize:      req.PageSize,
	}

	services, total, err := h.manager.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ServiceResponse, len(services))
	for i, s := range services {
		items[i] = NewServiceResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.manager.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(s))
}

func (h *Handler) Update(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actorID, role, ok := actor(c)
	if !ok {
		return
	}

	s, err := h.manager.Update(c.Request.Context(), uriReq.ID, catalog.UpdateRequest{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsAvailable:     req.IsAvailable,
	}, actorID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(s))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	actorID, role, ok := actor(c)
	if !ok {
		return
	}

	if err := h.manager.Delete(c.Request.Context(), req.ID, actorID, role); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
