package handlers

import (
	"errors"
	"pillar2/internal/app"
	sessionController "pillar2/internal/controllers/session"
	"pillar2/internal/export"
	"pillar2/internal/handlers/middleware"
	"pillar2/internal/logger"
	. "pillar2/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	Handler
	controller *sessionController.SessionController
}

func NewSessionHandler(app app.App, router fiber.Router) *SessionHandler {
	log := logger.New("handlers").File("session_handler")
	return &SessionHandler{
		controller: app.SessionController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SessionHandler) Register() {
	sessions := h.router.Group("/session", h.middleware.Session)
	sessions.Post("/", h.startSession)
	sessions.Post("/run", h.runSession)
	sessions.Post("/reset", h.resetSession)

	sessions.Get("/summary", h.getSummary)
	sessions.Get("/records", h.getRecords)
	sessions.Get("/preview", h.getPreview)
	sessions.Get("/download", h.downloadCSV)
	sessions.Get("/download.parquet", h.downloadParquet)
}

func (h *SessionHandler) failure(c *fiber.Ctx, message string, err error) error {
	if errors.Is(err, sessionController.ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "session not found", "error": err.Error()})
	}

	return c.Status(fiber.StatusInternalServerError).
		JSON(fiber.Map{"message": message, "error": err.Error()})
}

func (h *SessionHandler) startSession(c *fiber.Ctx) error {
	log := h.log.Function("startSession")

	session, err := h.controller.Get(c.Context(), middleware.SessionID(c))
	if err != nil {
		log.Er("failed to get session", err)
		return h.failure(c, "failed to get session", err)
	}

	return c.JSON(fiber.Map{"message": "success", "session": session})
}

func (h *SessionHandler) runSession(c *fiber.Ctx) error {
	log := h.log.Function("runSession")

	result, err := h.controller.Run(c.Context(), middleware.SessionID(c))
	if err != nil {
		log.Er("failed to run session", err)
		return h.failure(c, "failed to generate records", err)
	}

	return c.JSON(result)
}

func (h *SessionHandler) resetSession(c *fiber.Ctx) error {
	log := h.log.Function("resetSession")

	session, err := h.controller.Reset(c.Context(), middleware.SessionID(c))
	if err != nil {
		log.Er("failed to reset session", err)
		return h.failure(c, "failed to reset session", err)
	}

	return c.JSON(fiber.Map{"message": sessionController.MESSAGE_RESET, "session": session})
}

func (h *SessionHandler) getSummary(c *fiber.Ctx) error {
	log := h.log.Function("getSummary")

	summary, err := h.controller.Summary(c.Context(), middleware.SessionID(c))
	if err != nil {
		log.Er("failed to get summary", err)
		return h.failure(c, "failed to get summary", err)
	}

	return c.JSON(fiber.Map{"message": "success", "summary": summary})
}

func (h *SessionHandler) getRecords(c *fiber.Ctx) error {
	log := h.log.Function("getRecords")

	var query RecordsQuery
	if err := c.QueryParser(&query); err != nil {
		log.Er("failed to parse records query", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse records query"})
	}

	page, err := h.controller.Records(c.Context(), middleware.SessionID(c), query)
	if err != nil {
		log.Er("failed to get records", err)
		return h.failure(c, "failed to get records", err)
	}

	return c.JSON(fiber.Map{"message": "success", "page": page})
}

func (h *SessionHandler) getPreview(c *fiber.Ctx) error {
	log := h.log.Function("getPreview")

	preview, err := h.controller.Preview(c.Context(), middleware.SessionID(c))
	if err != nil {
		log.Er("failed to get preview", err)
		return h.failure(c, "failed to get preview", err)
	}

	return c.JSON(fiber.Map{"message": "success", "preview": preview})
}

func (h *SessionHandler) downloadCSV(c *fiber.Ctx) error {
	log := h.log.Function("downloadCSV")

	data, err := h.controller.CSV(c.Context(), middleware.SessionID(c))
	if err != nil {
		log.Er("failed to build csv", err)
		return h.failure(c, "failed to build csv", err)
	}

	c.Attachment(export.CSVFileName)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(data)
}

func (h *SessionHandler) downloadParquet(c *fiber.Ctx) error {
	log := h.log.Function("downloadParquet")

	data, err := h.controller.Parquet(c.Context(), middleware.SessionID(c))
	if err != nil {
		log.Er("failed to build parquet", err)
		return h.failure(c, "failed to build parquet", err)
	}

	c.Attachment(export.ParquetFileName)
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(data)
}
