package utils

import (
	"io"

	"github.com/smash-proyect/bff/internal/logger"
)

// CloseLogged closes c and reports the outcome under the given name.
func CloseLogged(c io.Closer, name string, log logger.Logger) {
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", name), logger.Error(err))
		return
	}
	log.Info("closed cleanly", logger.String("resource", name))
}
