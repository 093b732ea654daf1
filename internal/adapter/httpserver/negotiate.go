package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type responseFormat string

const (
	formatHTML responseFormat = "html"
	formatJSON responseFormat = "json"
)

// commandLineAgents are User-Agent fragments of clients that get JSON
// when they do not state a preference.
var commandLineAgents = []string{"curl", "wget", "httpie", "xh/"}

// negotiateFormat picks the error body format. The first JSON or HTML
// media type in Accept wins; with no usable Accept a command-line
// User-Agent selects JSON and everything else gets HTML.
func negotiateFormat(r *http.Request) responseFormat {
	for _, part := range strings.Split(r.Header.Get(echo.HeaderAccept), ",") {
		mediaType, _, _ := strings.Cut(part, ";")
		switch strings.ToLower(strings.TrimSpace(mediaType)) {
		case echo.MIMEApplicationJSON:
			return formatJSON
		case echo.MIMETextHTML:
			return formatHTML
		}
	}

	if isCommandLineClient(r.UserAgent()) {
		return formatJSON
	}
	return formatHTML
}

func isCommandLineClient(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, agent := range commandLineAgents {
		if strings.Contains(ua, agent) {
			return true
		}
	}
	return false
}
