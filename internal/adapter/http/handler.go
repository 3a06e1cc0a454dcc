// Package http exposes the form controller surface: one endpoint per store
// operation, the live HTML preview, and the export job API. Controllers
// validate and clean records before committing them; nothing invalid
// reaches the store.
package http

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/internal/store"
	"resume-builder/internal/usecase"
)

type Handler struct {
	store    *store.Store
	exporter *usecase.Exporter
}

func NewHandler(st *store.Store, ex *usecase.Exporter) *Handler {
	return &Handler{store: st, exporter: ex}
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/resume", h.GetResume)
	app.Post("/resume/reset", h.ResetResume)
	app.Put("/resume/contact", h.UpdateContact)
	app.Put("/resume/summary", h.UpdateSummary)
	app.Put("/resume/skills", h.SetSkills)

	app.Post("/resume/experience", h.AddExperience)
	app.Put("/resume/experience/:id", h.UpdateExperience)
	app.Delete("/resume/experience/:id", h.RemoveExperience)

	app.Post("/resume/projects", h.AddProject)
	app.Put("/resume/projects/:id", h.UpdateProject)
	app.Delete("/resume/projects/:id", h.RemoveProject)

	app.Post("/resume/education", h.AddEducation)
	app.Put("/resume/education/:id", h.UpdateEducation)
	app.Delete("/resume/education/:id", h.RemoveEducation)

	app.Post("/resume/awards", h.AddAward)
	app.Put("/resume/awards/:id", h.UpdateAward)
	app.Delete("/resume/awards/:id", h.RemoveAward)

	app.Get("/preview", h.Preview)

	app.Post("/exports", h.StartExport)
	app.Get("/exports/:id", h.GetExport)
	app.Get("/exports/:id/download", h.DownloadExport)
}

func (h *Handler) GetResume(c *fiber.Ctx) error {
	return c.JSON(h.store.Resume())
}

func (h *Handler) ResetResume(c *fiber.Ctx) error {
	h.store.Reset(c.Context())
	return c.JSON(h.store.Resume())
}

func (h *Handler) UpdateContact(c *fiber.Ctx) error {
	var patch model.ContactInfoPatch
	if err := c.BodyParser(&patch); err != nil {
		return badPayload(c)
	}
	h.store.UpdateContactInfo(c.Context(), patch)
	return c.JSON(h.store.Resume().ContactInfo)
}

func (h *Handler) UpdateSummary(c *fiber.Ctx) error {
	var req struct {
		Summary string `json:"summary"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badPayload(c)
	}
	h.store.UpdateSummary(c.Context(), req.Summary)
	return c.JSON(fiber.Map{"summary": req.Summary})
}

func (h *Handler) SetSkills(c *fiber.Ctx) error {
	var req struct {
		Skills []model.Skill `json:"skills"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badPayload(c)
	}
	for i := range req.Skills {
		req.Skills[i].Items = model.StripBlankLines(req.Skills[i].Items)
	}
	h.store.SetSkills(c.Context(), req.Skills)
	return c.JSON(fiber.Map{"skills": h.store.Resume().Skills})
}

func (h *Handler) AddExperience(c *fiber.Ctx) error {
	var exp model.Experience
	if err := c.BodyParser(&exp); err != nil {
		return badPayload(c)
	}
	exp.ID = uuid.NewString()
	exp.Accomplishments = model.StripBlankLines(exp.Accomplishments)
	if err := exp.Validate(); err != nil {
		return validationFailed(c, err)
	}
	h.store.AddExperience(c.Context(), exp)
	return c.Status(fiber.StatusCreated).JSON(exp)
}

func (h *Handler) UpdateExperience(c *fiber.Ctx) error {
	var patch model.ExperiencePatch
	if err := c.BodyParser(&patch); err != nil {
		return badPayload(c)
	}
	if patch.Accomplishments != nil {
		cleaned := model.StripBlankLines(*patch.Accomplishments)
		patch.Accomplishments = &cleaned
	}
	id := c.Params("id")
	for _, exp := range h.store.Resume().Experience {
		if exp.ID == id {
			merged := exp
			patch.Apply(&merged)
			if err := merged.Validate(); err != nil {
				return validationFailed(c, err)
			}
			break
		}
	}
	// Unknown ids fall through to the store's silent no-op.
	h.store.UpdateExperience(c.Context(), id, patch)
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) RemoveExperience(c *fiber.Ctx) error {
	h.store.RemoveExperience(c.Context(), c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) AddProject(c *fiber.Ctx) error {
	var p model.Project
	if err := c.BodyParser(&p); err != nil {
		return badPayload(c)
	}
	p.ID = uuid.NewString()
	p.Technologies = model.StripBlankLines(p.Technologies)
	p.Highlights = model.StripBlankLines(p.Highlights)
	if err := p.Validate(); err != nil {
		return validationFailed(c, err)
	}
	h.store.AddProject(c.Context(), p)
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *Handler) UpdateProject(c *fiber.Ctx) error {
	var patch model.ProjectPatch
	if err := c.BodyParser(&patch); err != nil {
		return badPayload(c)
	}
	if patch.Technologies != nil {
		cleaned := model.StripBlankLines(*patch.Technologies)
		patch.Technologies = &cleaned
	}
	if patch.Highlights != nil {
		cleaned := model.StripBlankLines(*patch.Highlights)
		patch.Highlights = &cleaned
	}
	id := c.Params("id")
	for _, p := range h.store.Resume().Projects {
		if p.ID == id {
			merged := p
			patch.Apply(&merged)
			if err := merged.Validate(); err != nil {
				return validationFailed(c, err)
			}
			break
		}
	}
	h.store.UpdateProject(c.Context(), id, patch)
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) RemoveProject(c *fiber.Ctx) error {
	h.store.RemoveProject(c.Context(), c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) AddEducation(c *fiber.Ctx) error {
	var e model.Education
	if err := c.BodyParser(&e); err != nil {
		return badPayload(c)
	}
	e.ID = uuid.NewString()
	e.Honors = model.StripBlankLines(e.Honors)
	if err := e.Validate(); err != nil {
		return validationFailed(c, err)
	}
	h.store.AddEducation(c.Context(), e)
	return c.Status(fiber.StatusCreated).JSON(e)
}

func (h *Handler) UpdateEducation(c *fiber.Ctx) error {
	var patch model.EducationPatch
	if err := c.BodyParser(&patch); err != nil {
		return badPayload(c)
	}
	if patch.Honors != nil {
		cleaned := model.StripBlankLines(*patch.Honors)
		patch.Honors = &cleaned
	}
	id := c.Params("id")
	for _, e := range h.store.Resume().Education {
		if e.ID == id {
			merged := e
			patch.Apply(&merged)
			if err := merged.Validate(); err != nil {
				return validationFailed(c, err)
			}
			break
		}
	}
	h.store.UpdateEducation(c.Context(), id, patch)
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) RemoveEducation(c *fiber.Ctx) error {
	h.store.RemoveEducation(c.Context(), c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) AddAward(c *fiber.Ctx) error {
	var a model.Award
	if err := c.BodyParser(&a); err != nil {
		return badPayload(c)
	}
	a.ID = uuid.NewString()
	if err := a.Validate(); err != nil {
		return validationFailed(c, err)
	}
	h.store.AddAward(c.Context(), a)
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *Handler) UpdateAward(c *fiber.Ctx) error {
	var patch model.AwardPatch
	if err := c.BodyParser(&patch); err != nil {
		return badPayload(c)
	}
	id := c.Params("id")
	for _, a := range h.store.Resume().Awards {
		if a.ID == id {
			merged := a
			patch.Apply(&merged)
			if err := merged.Validate(); err != nil {
				return validationFailed(c, err)
			}
			break
		}
	}
	h.store.UpdateAward(c.Context(), id, patch)
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) RemoveAward(c *fiber.Ctx) error {
	h.store.RemoveAward(c.Context(), c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	layout := render.BuildLayout(h.store.Resume())
	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, layout); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "preview rendering failed"})
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *Handler) StartExport(c *fiber.Ctx) error {
	var req struct {
		Strategy string `json:"strategy"`
		Filename string `json:"filename"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badPayload(c)
		}
	}
	job, err := h.exporter.Start(c.Context(), req.Strategy, req.Filename)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"jobId": job.ID.String(), "status": job.Status})
}

func (h *Handler) GetExport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid job id"})
	}
	job, err := h.exporter.Job(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if job == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	return c.JSON(job)
}

func (h *Handler) DownloadExport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid job id"})
	}
	job, err := h.exporter.Job(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if job == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	if job.Status != domain.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "export not completed", "status": job.Status})
	}
	return c.Download(job.OutputPath, job.Filename)
}

func badPayload(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
}

func validationFailed(c *fiber.Ctx, err error) error {
	var mf *model.MissingFieldsError
	if errors.As(err, &mf) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   mf.Error(),
			"missing": mf.Missing,
		})
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
}
