package membership

import (
	"net/http"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/api"
	"github.com/ipqbbqgyy/parking-system/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	now     func() time.Time
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// ListPlans godoc
// @Summary      Membership plans
// @Tags         memberships
// @Produce      json
// @Success      200  {array}  PlanInfo
// @Router       /memberships/plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, Plans())
}

// Purchase godoc
// @Summary      Buy or renew membership
// @Description  Starts a new membership window now. Parking is free while it is active.
// @Tags         memberships
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      PurchaseRequest  true  "Plan"
// @Success      201      {object}  MembershipResponse
// @Failure      400      {object}  api.ErrorResponse
// @Router       /memberships [post]
func (h *Handler) Purchase(c *gin.Context) {
	userID, ok := auth.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	now := h.now()
	m, err := h.service.Purchase(c.Request.Context(), userID, Plan(req.Plan), now)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MembershipResponse{Membership: m, Active: m.IsActive(now)})
}

// Mine godoc
// @Summary      My membership
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  MembershipResponse
// @Router       /memberships/me [get]
func (h *Handler) Mine(c *gin.Context) {
	userID, ok := auth.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	m, err := h.service.GetByAccount(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MembershipResponse{Membership: m, Active: m.IsActive(h.now())})
}
