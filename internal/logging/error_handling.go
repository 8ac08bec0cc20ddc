package logging

import (
	"io"
	"log/slog"
)

// SafeCloseWithLogging closes closer and logs, rather than returns, a
// failure.
func SafeCloseWithLogging(closer io.Closer, logger *slog.Logger, operation string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		LogError(logger, "close failed", err, slog.String("operation", operation))
	}
}

// DrainAndClose empties a response body before closing it so the
// connection returns to the pool.
func DrainAndClose(body io.ReadCloser, logger *slog.Logger, operation string) {
	if body == nil {
		return
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		LogError(logger, "drain failed", err, slog.String("operation", operation))
	}
	SafeCloseWithLogging(body, logger, operation)
}
