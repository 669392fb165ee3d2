package commit

import (
	"errors"
	"strings"
)

// ErrEmptyMessage is returned when the model reply contains no usable text.
var ErrEmptyMessage = errors.New("model returned an empty commit message")

// FormatMessage normalizes a raw model reply into commit paragraphs.
// The reply is trimmed, one layer of matching wrapping quotes is stripped,
// and the text splits into paragraphs on blank lines. Consecutive non-blank
// lines join into one paragraph; trailing whitespace per line is dropped.
func FormatMessage(raw string) ([]string, error) {
	text := stripWrappingQuotes(strings.TrimSpace(raw))
	if text == "" {
		return nil, ErrEmptyMessage
	}

	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	if len(paragraphs) == 0 {
		return nil, ErrEmptyMessage
	}
	return paragraphs, nil
}

// stripWrappingQuotes removes a single layer of identical wrapping quote
// characters. Models like to quote the whole message.
func stripWrappingQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first != last {
		return s
	}
	switch first {
	case '"', '\'', '`':
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
