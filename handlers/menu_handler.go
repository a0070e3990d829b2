package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mubarek26/MenuVerse/models"
)

// MenuLister reads the full catalog from the menu collaborator.
type MenuLister interface {
	FetchMenu(ctx context.Context) ([]models.MenuItem, error)
}

type MenuHandler struct {
	menu MenuLister
}

func NewMenuHandler(menu MenuLister) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// GetMenu handles GET /menu — a read-through of the catalog so the
// portal has a single origin to talk to.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	items, err := h.menu.FetchMenu(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "MENU_UNAVAILABLE",
			Message: "Failed to fetch menu",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, models.MenuResponse{Items: items})
}
