package internal

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/DrGermanius/Storefront/internal/model"
)

type Handlers struct {
	Service IService
	secret  []byte
	logger  *zap.SugaredLogger
}

func NewHandlers(Service IService, secret string, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{Service: Service, secret: []byte(secret), logger: logger}
}

func (h *Handlers) Register(app *fiber.App) {
	api := app.Group("/api")

	ord := api.Group("/orders")
	ord.Get("/", h.GetOrders)
	ord.Get("/counts", h.CountOrders)
	ord.Get("/:id", h.GetOrder)
	ord.Patch("/:id/status", h.UpdateOrderStatus)
	ord.Get("/:id/history", h.GetStatusHistory)
	ord.Get("/:id/review", h.GetReviewEligibility)

	api.Get("/vendor/revenue", h.GetRevenue)
}

func (h *Handlers) GetOrders(c *fiber.Ctx) error {
	actor, err := h.actorFromToken(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	opts := FilterOptions{
		Status:     model.Status(c.Query("status")),
		SearchTerm: c.Query("q"),
	}

	orders, err := h.Service.GetOrders(c.Context(), actor, opts)
	if err != nil {
		if errors.Is(err, ErrNoRecords) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		if errors.Is(err, ErrUnknownStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Error on get orders request", "data": err.Error()})
		}
		return h.internalError(c, "get orders", err)
	}

	return c.Status(fiber.StatusOK).JSON(orders)
}

func (h *Handlers) GetOrder(c *fiber.Ctx) error {
	actor, err := h.actorFromToken(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	o, err := h.Service.GetOrder(c.Context(), actor, id)
	if err != nil {
		return h.orderError(c, "get order", err)
	}

	return c.Status(fiber.StatusOK).JSON(o)
}

func (h *Handlers) CountOrders(c *fiber.Ctx) error {
	actor, err := h.actorFromToken(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	counts, err := h.Service.CountOrders(c.Context(), actor)
	if err != nil {
		return h.internalError(c, "count orders", err)
	}

	return c.Status(fiber.StatusOK).JSON(counts)
}

func (h *Handlers) UpdateOrderStatus(c *fiber.Ctx) error {
	actor, err := h.actorFromToken(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	var i model.StatusInput
	if err = c.BodyParser(&i); err != nil || i.Status == "" {
		h.logger.Errorf("Error on update order status request: %v", err)
		return c.SendStatus(fiber.StatusBadRequest)
	}

	o, err := h.Service.UpdateOrderStatus(c.Context(), actor, id, model.Status(i.Status))
	if err != nil {
		return h.orderError(c, "update order status", err)
	}

	return c.Status(fiber.StatusOK).JSON(o)
}

func (h *Handlers) GetStatusHistory(c *fiber.Ctx) error {
	actor, err := h.actorFromToken(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	history, err := h.Service.GetStatusHistory(c.Context(), actor, id)
	if err != nil {
		if errors.Is(err, ErrNoRecords) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return h.orderError(c, "get status history", err)
	}

	return c.Status(fiber.StatusOK).JSON(history)
}

func (h *Handlers) GetReviewEligibility(c *fiber.Ctx) error {
	actor, err := h.actorFromToken(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	ok, err := h.Service.IsReviewEligible(c.Context(), actor, id)
	if err != nil {
		return h.orderError(c, "get review eligibility", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"eligible": ok})
}

func (h *Handlers) GetRevenue(c *fiber.Ctx) error {
	actor, err := h.actorFromToken(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	r, err := h.Service.GetRevenue(c.Context(), actor)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			return c.SendStatus(fiber.StatusForbidden)
		}
		return h.internalError(c, "get revenue", err)
	}

	return c.Status(fiber.StatusOK).JSON(r)
}

func (h *Handlers) orderError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return c.SendStatus(fiber.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		return c.SendStatus(fiber.StatusForbidden)
	case errors.Is(err, ErrTransitionNotAllowed), errors.Is(err, ErrStatusConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Error on " + op + " request", "data": err.Error()})
	case errors.Is(err, ErrUnknownStatus):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"status": "error", "message": "Error on " + op + " request", "data": err.Error()})
	case errors.Is(err, ErrPersistenceFailure):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "error", "message": "Error on " + op + " request", "data": err.Error()})
	}
	return h.internalError(c, op, err)
}

func (h *Handlers) internalError(c *fiber.Ctx, op string, err error) error {
	h.logger.Errorf("Error on %s request: %s", op, err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error on " + op + " request"})
}

// actorFromToken reads the actor from the token cookie issued by the auth service.
func (h *Handlers) actorFromToken(c *fiber.Ctx) (model.Actor, error) {
	tokenString := c.Cookies("token")
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return h.secret, nil
	})
	if err != nil {
		return model.Actor{}, err
	}

	id, ok := claims["id"].(string)
	if !ok {
		return model.Actor{}, ErrUnauthorized
	}
	role, ok := claims["role"].(string)
	if !ok || !model.Role(role).IsValid() {
		return model.Actor{}, ErrUnauthorized
	}

	uid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return model.Actor{}, err
	}

	return model.Actor{ID: uid, Role: model.Role(role)}, nil
}
