package checkout

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nikolayk812/storefront/internal/domain"
)

const maxMessageBytes = 512

// newStatusError prefers the response body as the message and falls back to
// the reason phrase of the status line.
func newStatusError(resp *http.Response, body []byte) *domain.StatusError {
	message := strings.TrimSpace(string(body))
	if message == "" {
		message = reasonPhrase(resp)
	}

	return &domain.StatusError{
		StatusCode: resp.StatusCode,
		Message:    truncate(message, maxMessageBytes),
	}
}

func reasonPhrase(resp *http.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if phrase != "" {
		return phrase
	}
	if phrase = http.StatusText(resp.StatusCode); phrase != "" {
		return phrase
	}
	return "unknown status"
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
