package lot

import (
	"net/http"

	"github.com/ipqbbqgyy/parking-system/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	availability snapshotter
	feed         *Feed
}

func NewHandler(availability snapshotter, feed *Feed) *Handler {
	return &Handler{availability: availability, feed: feed}
}

// Spots godoc
// @Summary      Spot availability
// @Description  Removes expired reservations, then reports every spot as available, occupied or reserved together with the current promotion.
// @Tags         lot
// @Produce      json
// @Success      200  {object}  Snapshot
// @Failure      500  {object}  api.ErrorResponse
// @Router       /lot/spots [get]
func (h *Handler) Spots(c *gin.Context) {
	snap, err := h.availability.Snapshot(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// Live godoc
// @Summary      Live availability
// @Description  Websocket that receives a Snapshot on connect and after every change.
// @Tags         lot
// @Router       /lot/ws [get]
func (h *Handler) Live(c *gin.Context) {
	h.feed.Serve(c)
}
