package http

import (
	"git.solsynth.dev/hypernet/circle/pkg/internal/http/admin"
	"git.solsynth.dev/hypernet/circle/pkg/internal/http/api"
	"git.solsynth.dev/hypernet/circle/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/circle/pkg/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type App struct {
	app *fiber.App
}

func NewServer() *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Hypernet.Circle",
		AppName:               "Hypernet.Circle",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             8 * 1024 * 1024,
		ErrorHandler:          exts.ErrorHandler,
		EnablePrintRoutes:     viper.GetBool("debug.print_routes"),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: viper.GetBool("debug.stack_trace")}))
	app.Use(logger.New(logger.Config{
		Format: "${status} | ${latency} | ${method} ${path}\n",
		Output: log.Logger,
	}))

	if local, ok := storage.S.(*storage.LocalStorage); ok {
		app.Static("/storage", local.Root)
	}

	app.Use(exts.ContextMiddleware)

	api.MapAPIs(app, "")
	admin.MapControllers(app, "/admin")

	return &App{app}
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

func (v *App) Shutdown() error {
	return v.app.Shutdown()
}
