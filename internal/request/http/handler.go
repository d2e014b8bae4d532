package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lenditapp/lendit-backend/internal/identity"
	pkgrequest "github.com/lenditapp/lendit-backend/internal/pkg/request"
	"github.com/lenditapp/lendit-backend/internal/pkg/response"
	"github.com/lenditapp/lendit-backend/internal/request"
)

type Handler struct {
	service request.Service
}

func NewHandler(service request.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ir, err := h.service.Create(c.Request.Context(), identity.CallerID(c), request.CreateRequest{
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemRequestResponse(&request.Details{Request: ir}))
}

// ListOwn returns the caller's requests, newest first.
func (h *Handler) ListOwn(c *gin.Context) {
	details, err := h.service.ListByRequester(c.Request.Context(), identity.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemRequestResponse, 0, len(details))
	for _, d := range details {
		items = append(items, NewItemRequestResponse(d))
	}
	c.JSON(http.StatusOK, items)
}

// ListAll returns every request in the system, paginated.
func (h *Handler) ListAll(c *gin.Context) {
	var params ListItemRequestsRequest
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	details, total, err := h.service.List(c.Request.Context(), request.Filter{
		Keyword:  params.Keyword,
		Page:     params.Page,
		PageSize: params.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemRequestResponse, 0, len(details))
	for _, d := range details {
		items = append(items, NewItemRequestResponse(d))
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, params.Page, params.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var params pkgrequest.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), params.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemRequestResponse(d))
}

func (h *Handler) Update(c *gin.Context) {
	var params pkgrequest.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var body UpdateItemRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	d, err := h.service.Update(c.Request.Context(), identity.CallerID(c), params.ID, request.UpdateRequest{
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemRequestResponse(d))
}

func (h *Handler) Delete(c *gin.Context) {
	var params pkgrequest.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), identity.CallerID(c), params.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
