package loader

import (
	"errors"

	"stickview/internal/fetch"
	"stickview/internal/logger"
)

// LogFailure records a failed load. When the server answered with something other than a
// spreadsheet, the start of that body is logged as well; it is usually an HTML error page.
func LogFailure(log *logger.Logger, source string, err error) {
	var ce *fetch.ContentTypeError
	if errors.As(err, &ce) {
		log.Error().
			Str("source", source).
			Str("content_type", ce.ContentType).
			Str("body", ce.Preview).
			Msg("received a non-spreadsheet response")
	}
	log.Error().Err(err).Str("source", source).Msg("load failed")
}
