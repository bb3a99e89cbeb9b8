package notification

import (
	"net/http"

	"payroll-pro/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	feed *Feed
}

func NewHandler(feed *Feed) *Handler {
	return &Handler{feed: feed}
}

func (h *Handler) GetAll(c *gin.Context) {
	items, meta := response.Paginate(c, h.feed.Recent())
	response.Success(c, http.StatusOK, items, &meta)
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/notifications", handler.GetAll)
}
