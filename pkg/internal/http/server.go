package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/mosaicnet/interlink/pkg/internal/http/api"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type App struct {
	app *fiber.App
}

func NewServer() *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "Interlink",
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             viper.GetInt("hard_body_limit"),
	})

	// Identity is established by the upstream gateway; this service only
	// trusts the forwarded account id.
	app.Use(func(c *fiber.Ctx) error {
		if raw := c.Get("X-Account-Id"); len(raw) > 0 {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
				c.Locals("accountId", uint(id))
			}
		}
		return c.Next()
	})

	api.MapAPIs(app)

	return &App{app}
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting the http server.")
	}
}
