package handler

import (
	"errors"
	"net/http"

	"github.com/noahjmorrison/onnaflips/internal/service"
	"github.com/noahjmorrison/onnaflips/pkg/pagination"
	"github.com/noahjmorrison/onnaflips/pkg/response"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	itemService service.ItemService
}

func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/api/items")
	{
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}
}

// ListItems returns the ledger, newest purchases first
// @Summary      List items
// @Description  Retrieves ledger items with derived fields, optionally filtered by status
// @Tags         items
// @Produce      json
// @Param        status  query     string  false  "Filter by status (Listed or Sold)"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 50)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	params := pagination.Parse(c)
	status := c.Query("status")

	items, total, err := h.itemService.ListItems(c.Request.Context(), status, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve items: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// CreateItem records a new ledger item
// @Summary      Create item
// @Description  Creates a new inventory item in the ledger
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ItemRequest  true  "Create Item Payload"
// @Success      201      {object}  response.Response{data=service.ItemResponse}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req service.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// GetItem returns one item with its derived fields
// @Summary      Get item
// @Description  Retrieves a single ledger item by ID
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  response.Response{data=service.ItemResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	item, err := h.itemService.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// UpdateItem mutates any stored field, including status transitions
// @Summary      Update item
// @Description  Updates an existing ledger item by ID
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Item ID"
// @Param        payload  body      service.ItemRequest  true  "Update Item Payload"
// @Success      200      {object}  response.Response{data=service.ItemResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req service.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// DeleteItem removes an item from the ledger
// @Summary      Delete item
// @Description  Deletes a ledger item by ID
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	if err := h.itemService.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]string{"message": "Item deleted"}))
}

func (h *ItemHandler) renderError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Item not found"))
		return
	}
	c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
}
