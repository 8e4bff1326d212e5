package handler

import (
	"github.com/fadilmartias/jobtracker-ai/internal/dto"
	"github.com/fadilmartias/jobtracker-ai/internal/middleware"
	"github.com/fadilmartias/jobtracker-ai/internal/response"
	"github.com/fadilmartias/jobtracker-ai/internal/usecase"
	"github.com/fadilmartias/jobtracker-ai/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	uc *usecase.ApplicationUsecase
}

func NewApplicationHandler(uc *usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/applications")
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

func listQuery(c *fiber.Ctx) dto.ListQuery {
	return dto.ListQuery{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
		Status:   c.Query("status"),
		Type:     c.Query("type"),
	}.Normalize()
}

func badBody(c *fiber.Ctx, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: "invalid request body",
	}, err)
}

func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var req dto.JobApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	app, err := h.uc.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return util.ErrorFromErr(c, "failed to create job application", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create job application",
		Data:    app,
	})
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	q := listQuery(c)
	apps, total, err := h.uc.List(c.UserContext(), middleware.UserID(c), q)
	if err != nil {
		return util.ErrorFromErr(c, "failed to list job applications", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get job applications",
		Data:       apps,
		Pagination: response.NewPagination(q.Page, q.PageSize, total),
	})
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	app, err := h.uc.Get(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return util.ErrorFromErr(c, "job application", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get job application",
		Data:    app,
	})
}

func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	var req dto.JobApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	app, err := h.uc.Update(c.UserContext(), middleware.UserID(c), c.Params("id"), req)
	if err != nil {
		return util.ErrorFromErr(c, "job application", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update job application",
		Data:    app,
	})
}

func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return util.ErrorFromErr(c, "job application", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete job application",
	})
}
