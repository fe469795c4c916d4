package stay

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/api"
	"github.com/ipqbbqgyy/parking-system/internal/auth"
	"github.com/ipqbbqgyy/parking-system/internal/plate"

	"github.com/gin-gonic/gin"
)

// SpotCatalog tells the handlers which spot ids exist.
type SpotCatalog interface {
	Has(spot string) bool
}

type Handler struct {
	service Service
	spots   SpotCatalog
	now     func() time.Time
}

func NewHandler(service Service, spots SpotCatalog) *Handler {
	return &Handler{service: service, spots: spots, now: time.Now}
}

type PlateCheckRequest struct {
	Plate string `json:"plate" binding:"required" example:"京A12345"`
}

type PlateCheckResponse struct {
	Plate string     `json:"plate"`
	Valid bool       `json:"valid"`
	Kind  plate.Kind `json:"kind,omitempty"`
}

// ValidatePlate godoc
// @Summary      Check plate format
// @Tags         plates
// @Accept       json
// @Produce      json
// @Param        request  body      PlateCheckRequest  true  "Plate"
// @Success      200      {object}  PlateCheckResponse
// @Router       /plates/validate [post]
func (h *Handler) ValidatePlate(c *gin.Context) {
	var req PlateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	p := plate.Normalize(req.Plate)
	kind := plate.Classify(p)
	c.JSON(http.StatusOK, PlateCheckResponse{Plate: p, Valid: kind != plate.KindUnknown, Kind: kind})
}

// Enter godoc
// @Summary      Register vehicle entry
// @Tags         stays
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      EntryRequestBody  true  "Vehicle"
// @Success      201      {object}  Stay
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /stays/entry [post]
func (h *Handler) Enter(c *gin.Context) {
	userID, ok := auth.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req EntryRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}
	if req.Spot != "" && !h.spots.Has(req.Spot) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Unknown parking spot"})
		return
	}

	s, err := h.service.Enter(c.Request.Context(), EnterRequest{
		Plate:     req.Plate,
		Spot:      req.Spot,
		Class:     VehicleClass(req.VehicleClass),
		AccountID: userID,
		Email:     auth.AccountEmail(c),
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

// Reserve godoc
// @Summary      Reserve a spot
// @Description  Holds a spot from use_time until the reservation window ends.
// @Tags         stays
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ReservationRequestBody  true  "Reservation"
// @Success      201      {object}  Stay
// @Failure      400      {object}  api.ErrorResponse
// @Router       /stays/reservations [post]
func (h *Handler) Reserve(c *gin.Context) {
	userID, ok := auth.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req ReservationRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}
	if !h.spots.Has(req.Spot) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Unknown parking spot"})
		return
	}

	useTime, err := time.Parse(time.RFC3339, req.UseTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "use_time must be RFC3339"})
		return
	}

	s, err := h.service.Reserve(c.Request.Context(), ReserveRequest{
		Plate:     req.Plate,
		Spot:      req.Spot,
		Class:     VehicleClass(req.VehicleClass),
		AccountID: userID,
		Email:     auth.AccountEmail(c),
		UseTime:   useTime,
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

// Activate godoc
// @Summary      Check in with a reservation
// @Tags         stays
// @Security     BearerAuth
// @Produce      json
// @Param        stayID  path      int  true  "Stay ID"
// @Success      200     {object}  Stay
// @Failure      404     {object}  api.ErrorResponse
// @Failure      409     {object}  api.ErrorResponse
// @Failure      425     {object}  api.ErrorResponse
// @Router       /stays/reservations/{stayID}/activate [post]
func (h *Handler) Activate(c *gin.Context) {
	id, ok := h.ownedStay(c)
	if !ok {
		return
	}

	s, err := h.service.Activate(c.Request.Context(), id, h.now())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

// Cancel godoc
// @Summary      Cancel reservation
// @Tags         stays
// @Security     BearerAuth
// @Produce      json
// @Param        stayID  path      int  true  "Stay ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      404     {object}  api.ErrorResponse
// @Failure      422     {object}  api.ErrorResponse
// @Router       /stays/reservations/{stayID} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	id, ok := h.ownedStay(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Reservation cancelled"})
}

// Quote godoc
// @Summary      Exit quote
// @Description  Computes the fee owed if the vehicle left now. Nothing is stored.
// @Tags         stays
// @Security     BearerAuth
// @Produce      json
// @Param        stayID  path      int  true  "Stay ID"
// @Success      200     {object}  ExitQuote
// @Failure      404     {object}  api.ErrorResponse
// @Failure      422     {object}  api.ErrorResponse
// @Router       /stays/{stayID}/quote [get]
func (h *Handler) Quote(c *gin.Context) {
	id, ok := h.ownedStay(c)
	if !ok {
		return
	}

	q, err := h.service.QuoteExit(c.Request.Context(), id, h.now())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}

// Pay godoc
// @Summary      Confirm payment
// @Description  Records the exit, the fee and the payment once the driver has paid.
// @Tags         stays
// @Security     BearerAuth
// @Produce      json
// @Param        stayID  path      int  true  "Stay ID"
// @Success      200     {object}  Receipt
// @Failure      404     {object}  api.ErrorResponse
// @Failure      422     {object}  api.ErrorResponse
// @Router       /stays/{stayID}/pay [post]
func (h *Handler) Pay(c *gin.Context) {
	id, ok := h.ownedStay(c)
	if !ok {
		return
	}

	receipt, err := h.service.ConfirmPayment(c.Request.Context(), id, h.now())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// ListMine godoc
// @Summary      Vehicle history
// @Tags         stays
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Stay
// @Router       /stays [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	stays, err := h.service.ListByAccount(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stays)
}

// ListOpen godoc
// @Summary      Open stays
// @Description  Vehicles inside and reservations not yet used.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Stay
// @Router       /admin/stays/open [get]
func (h *Handler) ListOpen(c *gin.Context) {
	stays, err := h.service.ListOpen(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stays)
}

// Sweep godoc
// @Summary      Remove expired reservations
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  SweepResponse
// @Router       /admin/reservations/sweep [post]
func (h *Handler) Sweep(c *gin.Context) {
	n, err := h.service.SweepExpired(c.Request.Context(), h.now())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SweepResponse{Deleted: n})
}

// ownedStay parses the stay id and checks that the caller owns the stay.
// Admins may act on any stay. Stays of other accounts look absent.
func (h *Handler) ownedStay(c *gin.Context) (int, bool) {
	userID, ok := auth.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return 0, false
	}

	id, err := strconv.Atoi(c.Param("stayID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid stay ID"})
		return 0, false
	}

	if auth.IsOperator(c) {
		return id, true
	}

	s, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return 0, false
	}
	if s.AccountID != userID {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "stay not found"})
		return 0, false
	}

	return id, true
}
