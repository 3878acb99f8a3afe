package strand

import (
	"context"
	"log/slog"
)

// Trace wraps decoder and logs every invocation at debug level: the offset it
// started at and either the number of bytes consumed or the error.
// A nil logger uses slog.Default().
func Trace[T any](name string, logger *slog.Logger, decoder Decoder[T]) Decoder[T] {
	return func(c Cursor, f Format) Result[T] {
		log := logger
		if log == nil {
			log = slog.Default()
		}

		if !log.Enabled(context.Background(), slog.LevelDebug) {
			return decoder(c, f)
		}

		res := decoder(c, f)
		if !res.Ok() {
			log.Debug("decode failed",
				"decoder", name,
				"offset", c.Offset(),
				"error", res.err,
			)

			return res
		}

		log.Debug("decoded value",
			"decoder", name,
			"offset", c.Offset(),
			"consumed", res.rest.Offset()-c.Offset(),
		)

		return res
	}
}
