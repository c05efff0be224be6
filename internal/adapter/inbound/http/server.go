package http_handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/anthanhphan/go-object-store/internal/config"
	"github.com/anthanhphan/go-object-store/internal/domain"
	"github.com/anthanhphan/go-object-store/internal/port"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	service port.ObjectService
}

func NewServer(cfg *config.Config, service port.ObjectService) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:         int(cfg.App.MaxObjectSize),
		StreamRequestBody: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		cfg:     cfg,
		service: service,
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Post("/upload/:fileName", s.handleUpload)
	s.app.Get("/download/:fileName", s.handleDownload)
	s.app.Get("/files", s.handleListFiles)
	s.app.Get("/files/metadata", s.handleMetadata)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown()
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// statusForError maps the service error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, port.ErrFileNotFound), errors.Is(err, port.ErrChunkNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, port.ErrMemoryPressure):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrChunkTooLarge), errors.Is(err, domain.ErrEmptyFileName), errors.Is(err, port.ErrObjectTooLarge):
		return fiber.StatusBadRequest
	default:
		// Integrity and backend failures.
		return fiber.StatusInternalServerError
	}
}

// fileNameParam decodes the :fileName path segment.
func fileNameParam(c *fiber.Ctx) (string, error) {
	return url.PathUnescape(c.Params("fileName"))
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	fileName, err := fileNameParam(c)
	if err != nil || fileName == "" {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid file name")
	}

	// A request without a body is rejected before any work starts.
	if c.Request().Header.ContentLength() == 0 {
		return s.sendJSONError(c, fiber.StatusUnprocessableEntity, "Missing request body")
	}

	chunkSize := c.QueryInt("chunk_size", 0)
	parallelism := c.QueryInt("parallelism", s.cfg.App.ParallelChunks)

	// Use raw request body stream
	var src io.Reader
	if stream := c.Context().RequestBodyStream(); stream != nil {
		src = stream
	} else {
		src = bytes.NewReader(c.Body())
	}

	meta, err := s.service.Upload(c.Context(), fileName, src, chunkSize, parallelism)
	if err != nil {
		sdklogger.Errorw("Upload failed", "file_name", fileName, "error", err.Error())
		return s.sendJSONError(c, statusForError(err), fmt.Sprintf("Upload failed: %v", err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "File uploaded successfully",
		"file_name": meta.FileName,
		"size":      meta.TotalSize,
		"chunks":    meta.TotalChunks,
		"checksum":  meta.Checksum,
	})
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	fileName, err := fileNameParam(c)
	if err != nil || fileName == "" {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid file name")
	}

	parallelism := c.QueryInt("parallelism", s.cfg.App.ParallelChunks)

	buf, err := s.service.Download(c.Context(), fileName, parallelism)
	if err != nil {
		sdklogger.Errorw("Download failed", "file_name", fileName, "error", err.Error())
		return s.sendJSONError(c, statusForError(err), fmt.Sprintf("Download failed: %v", err))
	}

	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", strconv.Quote(fileName)))
	c.Set("Content-Type", "application/octet-stream")
	return c.Status(fiber.StatusOK).Send(buf)
}

func (s *Server) handleListFiles(c *fiber.Ctx) error {
	files, err := s.service.ListFiles(c.Context())
	if err != nil {
		sdklogger.Errorw("Listing failed", "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, fmt.Sprintf("Listing failed: %v", err))
	}
	if files == nil {
		files = []string{}
	}
	return c.JSON(fiber.Map{"files": files})
}

func (s *Server) handleMetadata(c *fiber.Ctx) error {
	fileName := c.Query("name")
	if fileName == "" {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing 'name' query parameter")
	}

	meta, err := s.service.GetMetadata(c.Context(), fileName)
	if err != nil {
		sdklogger.Warnw("Metadata lookup failed", "file_name", fileName, "error", err.Error())
		return s.sendJSONError(c, statusForError(err), fmt.Sprintf("Metadata lookup failed: %v", err))
	}

	return c.JSON(meta)
}
