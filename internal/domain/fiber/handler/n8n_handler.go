package handler

import (
	"errors"
	"time"

	"github.com/fadilmartias/jobtracker-ai/internal/dto"
	"github.com/fadilmartias/jobtracker-ai/internal/middleware"
	"github.com/fadilmartias/jobtracker-ai/internal/usecase"
	"github.com/fadilmartias/jobtracker-ai/internal/util"
	"github.com/gofiber/fiber/v2"
)

type N8nHandler struct {
	uc             *usecase.N8nUsecase
	callbackSecret string
}

func NewN8nHandler(uc *usecase.N8nUsecase, callbackSecret string) *N8nHandler {
	return &N8nHandler{uc: uc, callbackSecret: callbackSecret}
}

// RegisterCallback mounts the unauthenticated workflow callback. It must be
// registered before any auth middleware on the same router.
func (h *N8nHandler) RegisterCallback(r fiber.Router) {
	r.Post("/n8n/response", middleware.CallbackSecret(h.callbackSecret), h.Callback)
}

func (h *N8nHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/n8n")
	g.Post("/trigger", middleware.RateLimiter(10, time.Minute), h.Trigger)
	g.Get("/generations", h.List)
	g.Get("/requests/:requestId", h.Status)
	g.Get("/requests/:requestId/wait", h.Wait)
}

func (h *N8nHandler) Trigger(c *fiber.Ctx) error {
	var req dto.N8nTriggerRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	res, err := h.uc.Trigger(c.UserContext(), currentUser(c), req)
	if err != nil {
		return util.ErrorFromErr(c, "failed to trigger n8n workflow", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: "Success trigger n8n workflow",
		Data:    res,
	})
}

func (h *N8nHandler) Callback(c *fiber.Ctx) error {
	var cb dto.N8nCallback
	if err := c.BodyParser(&cb); err != nil {
		return badBody(c, err)
	}
	res, err := h.uc.HandleCallback(c.UserContext(), cb)
	if err != nil {
		return util.ErrorFromErr(c, "n8n request", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Response received",
		Data:    res,
	})
}

func (h *N8nHandler) List(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if jobID := c.Query("job_id"); jobID != "" {
		gen, err := h.uc.GetByJobID(c.UserContext(), userID, jobID, c.Query("type"))
		if err != nil {
			return util.ErrorFromErr(c, "n8n generation", err)
		}
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "Success get n8n generation",
			Data:    gen,
		})
	}
	gens, err := h.uc.List(c.UserContext(), userID, c.Query("type"))
	if err != nil {
		return util.ErrorFromErr(c, "failed to list n8n generations", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get n8n generations",
		Data:    gens,
	})
}

func (h *N8nHandler) Status(c *fiber.Ctx) error {
	st, err := h.uc.Status(c.UserContext(), middleware.UserID(c), c.Params("requestId"))
	if err != nil {
		return util.ErrorFromErr(c, "n8n request", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get n8n request status",
		Data:    st,
	})
}

func (h *N8nHandler) Wait(c *fiber.Ctx) error {
	res, err := h.uc.Wait(c.UserContext(), middleware.UserID(c), c.Params("requestId"))
	if errors.Is(err, usecase.ErrRequestTimedOut) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusRequestTimeout,
			Message: err.Error(),
		})
	}
	if err != nil {
		return util.ErrorFromErr(c, "n8n request", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get n8n result",
		Data:    res,
	})
}
