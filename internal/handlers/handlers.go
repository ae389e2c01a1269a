// Package handlers provides HTTP request handlers for the optimizer API.
package handlers

import (
	"github.com/coldchain/dispatch-optimizer/internal/model"
	"github.com/coldchain/dispatch-optimizer/internal/optimizer"
	"github.com/coldchain/dispatch-optimizer/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// optimizeRequest is the wire shape of POST /optimize's body.
type optimizeRequest struct {
	DispatchRequests      []model.DispatchRequest      `json:"dispatchRequests"`
	ReplenishmentRequests []model.ReplenishmentRequest `json:"replenishmentRequests"`
	Facilities            []model.Facility              `json:"allFacilities"`
	Products              []model.Product              `json:"productCatalog"`
	Vehicles              []model.Vehicle               `json:"availableVehicles"`
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	optimizer *optimizer.Optimizer
	log       *logger.Logger
}

// New creates a new handler instance.
func New(opt *optimizer.Optimizer, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNoop()
	}
	return &Handler{optimizer: opt, log: log}
}

// Health reports the service as available. The optimizer has no external
// storage to probe: synthesis and solving are pure functions of the request.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "dispatch-optimizer",
	})
}

// Metrics exposes Prometheus metrics in the standard exposition format.
func (h *Handler) Metrics(c *fiber.Ctx) error {
	fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())(c.Context())
	return nil
}

// Optimize handles POST /optimize: synthesizes tasks from the dispatch and
// replenishment requests, solves each vehicle class's routing problem, and
// returns the resulting bids. Malformed JSON yields 400. A vehicle class the
// solver cannot solve contributes no bids rather than failing the request;
// an error returned by the optimizer yields 500.
func (h *Handler) Optimize(c *fiber.Ctx) error {
	requestLog := h.log.WithFields("request_id", c.Locals("requestid"))

	var req optimizeRequest
	if err := c.BodyParser(&req); err != nil {
		requestLog.Warn("malformed optimize request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed request body",
		})
	}

	bids, err := h.optimizer.Run(c.Context(), optimizer.Request{
		DispatchRequests:      req.DispatchRequests,
		ReplenishmentRequests: req.ReplenishmentRequests,
		Facilities:            req.Facilities,
		Products:              req.Products,
		Vehicles:              req.Vehicles,
	})
	if err != nil {
		requestLog.Error("optimize request failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to compute bids",
		})
	}

	return c.Status(fiber.StatusOK).JSON(bids)
}
