package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/apperr"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/logger"
)

// ErrorHandler translates the error taxonomy into transport status codes and
// sanitized bodies. Internal causes are logged with full detail but never
// leave the server; validation field detail is redacted before logging.
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		log := logger.FromEcho(c)

		var status int
		var body echo.Map

		switch e := err.(type) {
		default:
			if ae, ok := apperr.As(err); ok {
				status = ae.Kind.HTTPStatus()
				body = echo.Map{"error": ae.Message}
				if len(ae.Fields) > 0 {
					body["fields"] = ae.Fields
				}
				if ae.Kind == apperr.KindInternal {
					log.Error("request failed", zap.Error(err))
				} else {
					log.Warn("request rejected",
						zap.String("kind", ae.Kind.String()),
						zap.Int("status", status),
						zap.Any("fields", logger.RedactFields(ae.Fields)),
					)
				}
				break
			}
			status = http.StatusInternalServerError
			body = echo.Map{"error": "internal error"}
			log.Error("request failed", zap.Error(err))
		case *echo.HTTPError:
			status = e.Code
			body = echo.Map{"error": strings.ToLower(http.StatusText(status))}
			if status >= http.StatusInternalServerError {
				log.Error("request failed", zap.Error(err))
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}
