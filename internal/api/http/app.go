package http

import "github.com/gofiber/fiber/v2"

// NewApp creates the fiber application.
// Immutable is required: route params and query values end up in stored records,
// and fiber otherwise reuses the request buffer behind them.
func NewApp(name string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:   name,
		Immutable: true,
	})
}
