package api

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/trailforge/loopcourse/config"
)

// Serve builds and runs the HTTP API, blocking until the process receives
// SIGINT/SIGTERM or the listener fails. Grounded on passbi_core's
// cmd/api/main.go: fiber.New with a custom error handler, recover +
// request logger + permissive CORS middleware, and a signal-driven
// graceful shutdown goroutine.
func Serve(addr string, cfg config.Config) error {
	st, err := newState(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	app := fiber.New(fiber.Config{
		AppName:      "loopcourse",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/health", st.healthHandler)
	app.Get("/v1/regions/:region/route", st.routeHandler)
	app.Post("/v1/jobs", st.createIngestJobHandler)
	app.Get("/v1/jobs/:id", st.getIngestJobHandler)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "endpoint not found"})
	})

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("api: shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("api: shutdown")
		}
	}()

	log.Info().Str("addr", addr).Msg("api: listening")
	return app.Listen(addr)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("api: request error")
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
