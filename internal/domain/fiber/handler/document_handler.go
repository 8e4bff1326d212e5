package handler

import (
	"github.com/fadilmartias/jobtracker-ai/internal/middleware"
	"github.com/fadilmartias/jobtracker-ai/internal/usecase"
	"github.com/fadilmartias/jobtracker-ai/internal/util"
	"github.com/gofiber/fiber/v2"
)

type DocumentHandler struct {
	uc *usecase.DocumentUsecase
}

func NewDocumentHandler(uc *usecase.DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

func (h *DocumentHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/documents")
	g.Post("/", h.Upload)
	g.Get("/", h.List)
	g.Get("/:id", h.Get)
	g.Get("/:id/file", h.Download)
	g.Delete("/:id", h.Delete)
}

func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "file is required",
		}, err)
	}
	if file.Size > usecase.MaxUploadSize {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusRequestEntityTooLarge,
			Message: "file size is too large (max 5MB)",
		})
	}
	f, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read uploaded file",
		}, err)
	}
	defer f.Close()

	doc, err := h.uc.Upload(c.UserContext(), middleware.UserID(c), usecase.UploadInput{
		FileName:    file.Filename,
		FileType:    c.FormValue("file_type"),
		Size:        file.Size,
		LinkedJobID: c.FormValue("linked_job_id"),
		Content:     f,
	})
	if err != nil {
		return util.ErrorFromErr(c, "failed to upload document", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success upload document",
		Data:    doc,
	})
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	docs, err := h.uc.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return util.ErrorFromErr(c, "failed to list documents", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get documents",
		Data:    docs,
	})
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	doc, err := h.uc.Get(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return util.ErrorFromErr(c, "document", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get document",
		Data:    doc,
	})
}

func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	doc, err := h.uc.Get(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return util.ErrorFromErr(c, "document", err)
	}
	return c.Download(doc.StoragePath, doc.FileName)
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return util.ErrorFromErr(c, "document", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete document",
	})
}
