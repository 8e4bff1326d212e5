package handler

import (
	"time"

	"github.com/fadilmartias/jobtracker-ai/internal/dto"
	"github.com/fadilmartias/jobtracker-ai/internal/middleware"
	"github.com/fadilmartias/jobtracker-ai/internal/response"
	"github.com/fadilmartias/jobtracker-ai/internal/usecase"
	"github.com/fadilmartias/jobtracker-ai/internal/util"
	"github.com/gofiber/fiber/v2"
)

type GenerationHandler struct {
	uc *usecase.GenerationUsecase
}

func NewGenerationHandler(uc *usecase.GenerationUsecase) *GenerationHandler {
	return &GenerationHandler{uc: uc}
}

func (h *GenerationHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ai/generations", h.List)
	r.Patch("/ai/generations/:id/used", h.MarkUsed)
	r.Delete("/ai/generations/:id", h.Delete)
	r.Post("/ai/:provider/:type", middleware.RateLimiter(10, time.Minute), h.Generate)

	r.Get("/settings/ai", h.GetSettings)
	r.Put("/settings/ai", h.UpdateSettings)
}

func currentUser(c *fiber.Ctx) usecase.UserRef {
	return usecase.UserRef{ID: middleware.UserID(c), Email: middleware.UserEmail(c)}
}

func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	var form dto.GenerationForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c, err)
	}
	res, err := h.uc.Generate(c.UserContext(), currentUser(c), c.Params("provider"), c.Params("type"), form)
	if err != nil {
		return util.ErrorFromErr(c, "failed to generate content", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success generate content",
		Data:    res,
	})
}

func (h *GenerationHandler) List(c *fiber.Ctx) error {
	q := listQuery(c)
	gens, total, err := h.uc.List(c.UserContext(), middleware.UserID(c), q)
	if err != nil {
		return util.ErrorFromErr(c, "failed to list generations", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get generations",
		Data:       gens,
		Pagination: response.NewPagination(q.Page, q.PageSize, total),
	})
}

func (h *GenerationHandler) MarkUsed(c *fiber.Ctx) error {
	body := struct {
		IsUsed *bool `json:"is_used"`
	}{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return badBody(c, err)
		}
	}
	used := body.IsUsed == nil || *body.IsUsed
	if err := h.uc.MarkUsed(c.UserContext(), middleware.UserID(c), c.Params("id"), used); err != nil {
		return util.ErrorFromErr(c, "generation", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update generation",
		Data:    fiber.Map{"is_used": used},
	})
}

func (h *GenerationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return util.ErrorFromErr(c, "generation", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete generation",
	})
}

func (h *GenerationHandler) GetSettings(c *fiber.Ctx) error {
	s, err := h.uc.GetSettings(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return util.ErrorFromErr(c, "failed to get AI settings", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get AI settings",
		Data:    s,
	})
}

func (h *GenerationHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.AISettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	s, err := h.uc.UpdateSettings(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return util.ErrorFromErr(c, "failed to update AI settings", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update AI settings",
		Data:    s,
	})
}
