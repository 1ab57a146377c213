package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPErrorsTotal tracks boundary errors by taxonomy kind.
var HTTPErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total HTTP errors by taxonomy kind",
	},
	[]string{"kind"},
)

// Middleware returns an echo middleware that converts any error returned by
// a handler into the msgpack boundary payload with the status code of its
// taxonomy kind. Unclassified errors become KindUnknown. The debug flag
// controls whether infra kinds expose their full detail.
func Middleware(debug bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// echo's own HTTPErrors (404 routing, method not allowed)
			// keep their status but still travel as the msgpack envelope.
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				e := wrapHTTPError(httpErr)
				HTTPErrorsTotal.WithLabelValues(string(e.Kind)).Inc()
				return respond(c, httpErr.Code, e, debug)
			}

			e := As(err)
			HTTPErrorsTotal.WithLabelValues(string(e.Kind)).Inc()
			logError(c, e)
			return respond(c, e.HTTPStatus(), e, debug)
		}
	}
}

func respond(c echo.Context, status int, e *Error, debug bool) error {
	body, err := EncodePayload(e, debug)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to encode error payload")
	}
	return c.Blob(status, ContentTypeMsgpack, body)
}

func logError(c echo.Context, e *Error) {
	attrs := []any{
		"kind", e.Kind,
		"message", e.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", e.HTTPStatus(),
	}

	switch e.Kind {
	case KindInvalidEmail, KindFormValidation, KindNotFound:
		slog.Info("request failed", attrs...)
	case KindUnauthorized, KindUnauthenticated, KindConflict:
		slog.Warn("request failed", attrs...)
	default:
		if e.Cause != nil {
			attrs = append(attrs, "cause", e.Cause)
		}
		slog.Error("request failed", attrs...)
	}
}

func wrapHTTPError(httpErr *echo.HTTPError) *Error {
	message := "internal server error"
	if msg, ok := httpErr.Message.(string); ok {
		message = msg
	}

	var kind Kind
	switch httpErr.Code {
	case http.StatusBadRequest:
		kind = KindFormValidation
	case http.StatusUnauthorized:
		kind = KindUnauthenticated
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusConflict:
		kind = KindConflict
	default:
		kind = KindUnknown
	}

	return &Error{Kind: kind, Message: message, Cause: httpErr.Internal}
}
