package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/handler"

	"github.com/orderlycore/orderlycore/orderly/config"
	"github.com/orderlycore/orderlycore/orderly/logger"
)

const slowCommandThreshold = 2 * time.Second

// WrapWithLogging wraps a command handler with timing and failure logs.
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()

		done := make(chan error, 1)
		go func() {
			done <- h(e)
		}()

		select {
		case err := <-done:
			duration := time.Since(start)
			if err == nil && duration > slowCommandThreshold {
				slog.Warn("Command executed slowly",
					slog.String("type", "cmd"),
					slog.String("name", name),
					slog.String("user_name", e.User().Username),
					slog.String("status", "slow"),
					slog.Duration("took", duration),
				)
				return nil
			}
			logger.LogCommand(name, e.User().Username, duration, err)
			return err

		case <-time.After(config.CommandExecutionTimeout):
			err := fmt.Errorf("command timed out after %s", config.CommandExecutionTimeout)
			logger.LogCommand(name, e.User().Username, config.CommandExecutionTimeout, err)
			return err
		}
	}
}
