package utils

import (
	"io"

	"github.com/MrSnakeDoc/sitehub/internal/logger"
)

// CloseLogged closes c and logs any error with the resource name.
func CloseLogged(c io.Closer, name string, log logger.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", name), logger.Error(err))
	}
}
