package promotion

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	now     func() time.Time
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// CreatePromotion godoc
// @Summary      Create promotion
// @Description  Adds a time-boxed discount rule. Admin only.
// @Tags         promotions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreatePromotionRequest  true  "Promotion"
// @Success      201      {object}  Promotion
// @Failure      400      {object}  api.ErrorResponse
// @Router       /admin/promotions [post]
func (h *Handler) CreatePromotion(c *gin.Context) {
	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ListPromotions godoc
// @Summary      List promotions
// @Tags         promotions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Promotion
// @Router       /admin/promotions [get]
func (h *Handler) ListPromotions(c *gin.Context) {
	promotions, err := h.service.List(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, promotions)
}

// DeactivatePromotion godoc
// @Summary      Deactivate promotion
// @Tags         promotions
// @Security     BearerAuth
// @Produce      json
// @Param        promotionID  path      int  true  "Promotion ID"
// @Success      200          {object}  api.MessageResponse
// @Failure      404          {object}  api.ErrorResponse
// @Router       /admin/promotions/{promotionID}/deactivate [post]
func (h *Handler) DeactivatePromotion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("promotionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid promotion ID"})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Promotion deactivated"})
}

// CurrentPromotion godoc
// @Summary      Current promotion
// @Description  Returns the promotion in effect right now, if any.
// @Tags         promotions
// @Produce      json
// @Success      200  {object}  CurrentPromotionResponse
// @Router       /promotions/current [get]
func (h *Handler) CurrentPromotion(c *gin.Context) {
	p, err := h.service.Current(c.Request.Context(), h.now())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	resp := CurrentPromotionResponse{Promotion: p}
	if p != nil {
		resp.Label = p.Label()
	}
	c.JSON(http.StatusOK, resp)
}
