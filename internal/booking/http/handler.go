package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/bookline-app/bookline-backend/internal/auth"
	"github.com/bookline-app/bookline-backend/internal/booking"
	"github.com/bookline-app/bookline-backend/internal/business"
	"github.com/bookline-app/bookline-backend/internal/pkg/request"
	"github.com/bookline-app/bookline-backend/internal/pkg/response"
	"github.com/bookline-app/bookline-backend/internal/user"
)

type Handler struct {
	service    booking.Service
	bizService business.Service
}

func NewHandler(service booking.Service, bizService business.Service) *Handler {
	return &Handler{
		service:    service,
		bizService: bizService,
	}
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
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID, role, ok := actor(c)
	if !ok {
		return
	}
	// Bookings are made by customers; business owners manage them instead.
	if role != user.RoleCustomer && role != user.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "only customers can create bookings"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		BusinessID: body.BusinessID,
		ServiceID:  body.ServiceID,
		CustomerID: userID,
		StartTime:  body.StartTime,
		Notes:      body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// ValidateSlot checks a candidate slot without creating a booking. The
// booking form calls this as the user picks a time; the answer is advisory
// since creation re-checks atomically.
func (h *Handler) ValidateSlot(c *gin.Context) {
	var body ValidateSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	err := h.service.ValidateSlot(c.Request.Context(), body.BusinessID, body.ServiceID, body.StartTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	userID, role, ok := actor(c)
	if !ok {
		return
	}

	filter := booking.Filter{
		ServiceID: req.ServiceID,
		Status:    req.Status,
		StartTime: req.StartTimeFrom,
		EndTime:   req.StartTimeTo,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: strings.ToUpper(req.SortOrder),
	}

	// Scope the listing by role: customers see their own bookings, business
	// owners see their business's calendar, admins see what they ask for.
	switch role {
	case user.RoleCustomer:
		filter.CustomerID = userID
	case user.RoleBusiness:
		biz, err := h.bizService.GetByOwner(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, business.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "no business profile for this account"})
				return
			}
			response.Error(c, err)
			return
		}
		filter.BusinessID = biz.ID
	case user.RoleAdmin:
		filter.CustomerID = req.CustomerID
		filter.BusinessID = req.BusinessID
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	userID, role, ok := actor(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID, userID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// UpdateStatus applies one transition of the booking state machine.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	newStatus, err := booking.ParseStatus(body.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, role, ok := actor(c)
	if !ok {
		return
	}

	b, err := h.service.TransitionStatus(c.Request.Context(), uriReq.ID, newStatus, userID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Availability returns the free slots of a business on a given date.
func (h *Handler) Availability(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), uriReq.ID, date.UTC())
	if err != nil {
		response.Error(c, err)
		return
	}
	if slots == nil {
		slots = []booking.TimeSlot{}
	}

	c.JSON(http.StatusOK, AvailabilityResponse{Date: req.Date, Slots: slots})
}
