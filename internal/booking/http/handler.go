package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lenditapp/lendit-backend/internal/booking"
	"github.com/lenditapp/lendit-backend/internal/identity"
	"github.com/lenditapp/lendit-backend/internal/pkg/request"
	"github.com/lenditapp/lendit-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), identity.CallerID(c), booking.CreateRequest{
		ItemID: body.ItemID,
		Start:  body.Start,
		End:    body.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Decide(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
		return
	}

	b, err := h.service.Decide(c.Request.Context(), identity.CallerID(c), params.ID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), identity.CallerID(c), params.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListOwn returns the caller's bookings as booker, filtered by state.
func (h *Handler) ListOwn(c *gin.Context) {
	h.list(c, func(callerID string, state booking.State, paging request.OffsetParams) ([]*booking.Booking, error) {
		return h.service.ListByBooker(c.Request.Context(), callerID, state, paging.From, paging.Size)
	})
}

// ListForOwner returns bookings on the caller's items, filtered by state.
func (h *Handler) ListForOwner(c *gin.Context) {
	h.list(c, func(callerID string, state booking.State, paging request.OffsetParams) ([]*booking.Booking, error) {
		return h.service.ListByOwner(c.Request.Context(), callerID, state, paging.From, paging.Size)
	})
}

func (h *Handler) list(c *gin.Context, query func(string, booking.State, request.OffsetParams) ([]*booking.Booking, error)) {
	state, err := booking.ParseState(c.DefaultQuery("state", string(booking.StateAll)))
	if err != nil {
		response.Error(c, err)
		return
	}

	var paging request.OffsetParams
	if err := c.ShouldBindQuery(&paging); err != nil || !paging.Valid() {
		response.Error(c, booking.ErrInvalidPaging)
		return
	}

	bookings, err := query(identity.CallerID(c), state, paging)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, NewBookingResponse(b))
	}
	c.JSON(http.StatusOK, items)
}
