package handler

import (
	"github.com/fadilmartias/jobtracker-ai/internal/middleware"
	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"github.com/fadilmartias/jobtracker-ai/internal/usecase"
	"github.com/fadilmartias/jobtracker-ai/internal/util"
	"github.com/gofiber/fiber/v2"
)

type LinkedInJobHandler struct {
	uc *usecase.LinkedInJobUsecase
}

func NewLinkedInJobHandler(uc *usecase.LinkedInJobUsecase) *LinkedInJobHandler {
	return &LinkedInJobHandler{uc: uc}
}

func (h *LinkedInJobHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/linkedin-jobs")
	g.Get("/", h.List)
	g.Post("/import", h.Import)
	g.Get("/match/:documentId", h.Match)
	g.Get("/:id", h.Get)
}

func (h *LinkedInJobHandler) List(c *fiber.Ctx) error {
	jobs, err := h.uc.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return util.ErrorFromErr(c, "failed to list LinkedIn jobs", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get LinkedIn jobs",
		Data:    jobs,
		Meta:    fiber.Map{"count": len(jobs)},
	})
}

func (h *LinkedInJobHandler) Get(c *fiber.Ctx) error {
	job, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return util.ErrorFromErr(c, "LinkedIn job", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get LinkedIn job",
		Data:    job,
	})
}

func (h *LinkedInJobHandler) Import(c *fiber.Ctx) error {
	var jobs []model.LinkedInJob
	if err := c.BodyParser(&jobs); err != nil {
		return badBody(c, err)
	}
	n, err := h.uc.Import(c.UserContext(), jobs)
	if err != nil {
		return util.ErrorFromErr(c, "failed to import LinkedIn jobs", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success import LinkedIn jobs",
		Data:    fiber.Map{"imported": n, "skipped": len(jobs) - n},
	})
}

func (h *LinkedInJobHandler) Match(c *fiber.Ctx) error {
	jobs, err := h.uc.MatchResume(c.UserContext(), middleware.UserID(c), c.Params("documentId"), c.QueryInt("limit"))
	if err != nil {
		return util.ErrorFromErr(c, "failed to match resume", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success match resume",
		Data:    jobs,
	})
}
