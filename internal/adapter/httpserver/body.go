package httpserver

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	apperrors "github.com/pscheid92/pokedex/internal/platform/errors"
)

type bodyFormat string

const (
	bodyFormatForm bodyFormat = "form"
	bodyFormatJSON bodyFormat = "json"
)

// requestBody is a decoded submission: flat string fields tagged with
// the wire format they came from.
type requestBody struct {
	Format bodyFormat
	Fields map[string]string
}

func (b requestBody) Get(key string) string {
	return b.Fields[key]
}

// parseBody decodes a form-urlencoded body, or a JSON object for any
// other content type. No size limit is applied.
func parseBody(c echo.Context) (requestBody, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	if strings.Contains(contentType, echo.MIMEApplicationForm) {
		// PostForm holds body values only; Form would merge in the query string.
		if err := c.Request().ParseForm(); err != nil {
			return requestBody{}, malformedBody(contentType, err)
		}
		params := c.Request().PostForm
		fields := make(map[string]string, len(params))
		for key := range params {
			fields[key] = params.Get(key)
		}
		return requestBody{Format: bodyFormatForm, Fields: fields}, nil
	}

	var raw map[string]any
	if err := c.Echo().JSONSerializer.Deserialize(c, &raw); err != nil {
		return requestBody{}, malformedBody(contentType, err)
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			fields[key] = v
		case nil:
			fields[key] = ""
		default:
			fields[key] = fmt.Sprint(v)
		}
	}
	return requestBody{Format: bodyFormatJSON, Fields: fields}, nil
}

func malformedBody(contentType string, cause error) error {
	return apperrors.ValidationError("malformed request body").
		WithCause(cause).
		WithField("content_type", contentType)
}
