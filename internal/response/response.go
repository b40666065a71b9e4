// Package response shapes every outbound payload into the uniform envelope.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"authapi/internal/pagination"
)

// Data renders a success envelope carrying a payload.
func Data(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{
		"statusCode": status,
		"data":       data,
	})
}

// Page renders a success envelope carrying a page of entities and its metadata.
func Page(c echo.Context, status int, data interface{}, meta *pagination.Meta) error {
	return c.JSON(status, echo.Map{
		"statusCode": status,
		"data":       data,
		"meta":       meta,
	})
}

// Message renders a success envelope carrying only a message.
func Message(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"statusCode": status,
		"message":    message,
	})
}

// ErrorHandler is installed as echo's HTTPErrorHandler. It spreads the
// original error body and stamps it with the status code, a timestamp and
// the request path.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		he = echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}

	body := errorBody(he.Message)
	body["statusCode"] = he.Code
	body["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	body["path"] = c.Request().RequestURI

	var renderErr error
	if c.Request().Method == http.MethodHead {
		renderErr = c.NoContent(he.Code)
	} else {
		renderErr = c.JSON(he.Code, body)
	}
	if renderErr != nil {
		c.Logger().Error(renderErr)
	}
}

// errorBody flattens whatever the error carried into a map so the envelope
// fields can be merged in.
func errorBody(message interface{}) map[string]interface{} {
	switch m := message.(type) {
	case string:
		return map[string]interface{}{"message": m}
	case echo.Map:
		return map[string]interface{}(m)
	case map[string]interface{}:
		return m
	case error:
		return map[string]interface{}{"message": m.Error()}
	default:
		raw, err := json.Marshal(m)
		if err == nil {
			var body map[string]interface{}
			if json.Unmarshal(raw, &body) == nil {
				return body
			}
		}
		return map[string]interface{}{"message": fmt.Sprint(m)}
	}
}
