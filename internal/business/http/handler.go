package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/bookline-app/bookline-backend/internal/auth"
	"github.com/bookline-app/bookline-backend/internal/business"
	"github.com/bookline-app/bookline-backend/internal/pkg/request"
	"github.com/bookline-app/bookline-backend/internal/pkg/response"
	"github.com/bookline-app/bookline-backend/internal/user"
)

type Handler struct {
	service business.Service
}

func NewHandler(service business.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), business.CreateRequest{
		OwnerUserID:       userID,
		Name:              req.Name,
		Description:       req.Description,
		Address:           req.Address,
		Phone:             req.Phone,
		OpeningHoursStart: req.OpeningHoursStart,
		OpeningHoursEnd:   req.OpeningHoursEnd,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBusinessResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var req ListBusinessesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := business.Filter{
		Keyword:  req.Keyword,
		IsActive: req.IsActive,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	businesses, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BusinessResponse, len(businesses))
	for i, b := range businesses {
		items[i] = NewBusinessResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBusinessResponse(b))
}

// Mine returns the business profile owned by the authenticated user.
func (h *Handler) Mine(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.GetByOwner(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, business.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no business profile for this account"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBusinessResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := auth.GetUserID(c)
	role, err := user.ParseRole(auth.GetUserRole(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Update(c.Request.Context(), uriReq.ID, business.UpdateRequest{
		Name:              req.Name,
		Description:       req.Description,
		Address:           req.Address,
		Phone:             req.Phone,
		OpeningHoursStart: req.OpeningHoursStart,
		OpeningHoursEnd:   req.OpeningHoursEnd,
		IsActive:          req.IsActive,
	}, userID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBusinessResponse(b))
}
