// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package server exposes the recommendation pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/wneessen/stargazer/internal/geocode"
	"github.com/wneessen/stargazer/internal/logger"
	"github.com/wneessen/stargazer/internal/service"
)

// Error messages are part of the API surface, clients display them verbatim.
const (
	MsgLocationRequired = "location is required"
	MsgLocationNotFound = "location not found: please check your address or postal code"
	MsgWindowsFailed    = "failed to compute observation windows"
)

var validate = validator.New()

type windowsRequest struct {
	Location string `json:"location" validate:"required"`
}

type Server struct {
	app     *fiber.App
	logger  *logger.Logger
	service *service.Service
}

// New returns a new Server with all routes registered.
func New(log *logger.Logger, svc *service.Service) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "stargazer",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          120 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(recover.New())

	s := &Server{app: app, logger: log, service: svc}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Post("/api/v1/windows", s.handleWindows)
}

func (s *Server) handleWindows(c *fiber.Ctx) error {
	var req windowsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, MsgLocationRequired)
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, MsgLocationRequired)
	}

	result, err := s.service.BestWindows(c.Context(), req.Location)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyLocation):
			return fiber.NewError(fiber.StatusBadRequest, MsgLocationRequired)
		case errors.Is(err, geocode.ErrNotFound):
			s.logger.Info("location not found", logger.Err(err))
			return fiber.NewError(fiber.StatusInternalServerError, MsgLocationNotFound)
		default:
			s.logger.Error("failed to compute observation windows", logger.Err(err))
			return fiber.NewError(fiber.StatusInternalServerError, MsgWindowsFailed)
		}
	}

	// A windowless night is still a valid answer, keep the array non-null.
	if result.Windows == nil {
		result.Windows = []service.Window{}
	}
	return c.JSON(result)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains connections and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
