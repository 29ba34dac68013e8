package cli

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxAnswerSize bounds a single prompt answer.
const MaxAnswerSize = 4096

var (
	ErrAnswerTooLarge = errors.New("answer exceeds maximum allowed size")
	ErrInvalidUTF8    = errors.New("answer contains invalid UTF-8 sequences")
)

// SanitizeAnswer rejects oversized or invalid UTF-8 answers and strips control
// characters other than tab, so escape sequences never reach the service or the log.
func SanitizeAnswer(answer string) (string, error) {
	if len(answer) > MaxAnswerSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrAnswerTooLarge, len(answer), MaxAnswerSize)
	}
	if !utf8.ValidString(answer) {
		return "", ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	if strings.IndexFunc(answer, unsafeControl) < 0 {
		return answer, nil
	}

	var b strings.Builder
	b.Grow(len(answer))
	for _, r := range answer {
		if !unsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\t'
}
