package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// success writes {success:true, message?, ...fields}.
func success(c echo.Context, code int, message string, fields echo.Map) error {
	body := echo.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(code, body)
}

func failure(c echo.Context, code int, message string, fields echo.Map) error {
	body := echo.Map{"success": false, "message": message}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(code, body)
}

// validationError carries field details to the error handler.
type validationError struct{ details []FieldError }

func (e *validationError) Error() string { return "validation failed" }

var errInvalidBody = echo.NewHTTPError(http.StatusBadRequest, "invalid request body")

// bindStrict decodes the JSON body rejecting unknown fields, then validates.
func bindStrict(c echo.Context, v any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errInvalidBody
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := c.Validate(v); err != nil {
		return &validationError{details: ToFieldErrors(err)}
	}
	return nil
}

// pathID reads a hex id path parameter.
func pathID(c echo.Context, name string) (string, error) {
	id := c.Param(name)
	if !reHex32.MatchString(id) {
		return "", &validationError{details: []FieldError{{Field: name, Message: "must be 32-char lowercase hex"}}}
	}
	return id, nil
}
