package middleware

import (
	"net/http"

	"myntraMarket/pkg/logger"

	jsonres "myntraMarket/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler turns unhandled echo errors into the shared error
// envelope so clients never see a bare framework message.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", err)
	}

	if err := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
