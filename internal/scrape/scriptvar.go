package scrape

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrVarNotFound reports that no inline script block declared the
// requested variable.
var ErrVarNotFound = errors.New("script variable not found")

// ParseError reports that a script variable was located but its literal
// could not be read as JSON (the upstream sometimes emits plain JS, e.g.
// unquoted keys).
type ParseError struct {
	Var string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("script variable %q: %v", e.Var, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractVar scans inline script blocks in document order for the first
// one containing `var <name> =`, pulls out the balanced array or object
// literal that follows, and validates it as JSON. The upstream embeds its
// episode and video data this way instead of exposing an API, so this is
// the one deliberately brittle spot in the pipeline.
func ExtractVar(doc *goquery.Document, name string) (json.RawMessage, error) {
	marker := "var " + name + " ="
	var raw string
	var found bool

	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		body := s.Text()
		idx := strings.Index(body, marker)
		if idx < 0 {
			return true
		}
		found = true
		raw = body[idx+len(marker):]
		return false
	})

	if !found {
		return nil, ErrVarNotFound
	}

	literal, err := balancedLiteral(raw)
	if err != nil {
		return nil, &ParseError{Var: name, Err: err}
	}
	if !json.Valid([]byte(literal)) {
		return nil, &ParseError{Var: name, Err: errors.New("literal is not valid JSON")}
	}
	return json.RawMessage(literal), nil
}

// balancedLiteral reads the first `[...]` or `{...}` literal from src,
// tracking bracket depth and skipping over string literals so brackets
// inside titles don't end the scan early.
func balancedLiteral(src string) (string, error) {
	start := -1
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case '[', '{':
			start = i
		default:
			return "", fmt.Errorf("expected array or object literal, found %q", src[i])
		}
		break
	}
	if start < 0 {
		return "", errors.New("no literal after assignment")
	}

	depth := 0
	inString := false
	var quote byte
	for i := start; i < len(src); i++ {
		c := src[i]
		if inString {
			switch c {
			case '\\':
				i++ // skip escaped char
			case quote:
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return src[start : i+1], nil
			}
		}
	}
	return "", errors.New("unterminated literal")
}
