package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// SchemaFor infers the JSON schema Ollama should constrain output to from
// the struct T decodes into. Fields without omitempty are required and
// unknown properties are rejected. It panics if T has no JSON schema form,
// so call it when initializing package variables.
func SchemaFor[T any]() *jsonschema.Schema {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("llm: output schema: %v", err))
	}
	return s
}

// ExtractJSON extracts a JSON value of type T from raw LLM text output.
// It tolerates markdown fences, chatter around the payload, comments and
// leading-dot decimals. If validator is non-nil, the extracted value is
// validated before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := extractJSONBlock(stripCodeFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON value found in response", ErrInvalidOutput)
	}
	block = normalizeJSON(block)

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// stripCodeFences drops ``` fence lines, keeping what they enclose.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// scanner walks s byte by byte and knows whether it is inside a JSON string.
type scanner struct {
	s        string
	i        int
	inString bool
	escaped  bool
}

// next advances one byte and reports whether that byte is structural, i.e.
// outside any string literal and not part of a quote or escape.
func (sc *scanner) next() (byte, bool) {
	c := sc.s[sc.i]
	sc.i++
	switch {
	case sc.escaped:
		sc.escaped = false
		return c, false
	case c == '\\' && sc.inString:
		sc.escaped = true
		return c, false
	case c == '"':
		sc.inString = !sc.inString
		return c, false
	case sc.inString:
		return c, false
	}
	return c, true
}

func (sc *scanner) done() bool { return sc.i >= len(sc.s) }

// extractJSONBlock finds the first balanced object or array in the text.
func extractJSONBlock(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}

	depth := 0
	sc := &scanner{s: s, i: start}
	for !sc.done() {
		c, structural := sc.next()
		if !structural {
			continue
		}
		switch c {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[start:sc.i]
			}
		}
	}
	return ""
}

// normalizeJSON removes // and /* */ comments and rewrites ".5" or "-.5"
// into "0.5" and "-0.5". Models emit both despite being told not to.
func normalizeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	sc := &scanner{s: s}
	for !sc.done() {
		pos := sc.i
		c, structural := sc.next()
		if !structural {
			b.WriteByte(c)
			continue
		}

		if c == '/' && pos+1 < len(s) && s[pos+1] == '/' {
			for sc.i < len(s) && s[sc.i] != '\n' {
				sc.i++
			}
			continue
		}
		if c == '/' && pos+1 < len(s) && s[pos+1] == '*' {
			end := strings.Index(s[pos+2:], "*/")
			if end == -1 {
				sc.i = len(s)
			} else {
				sc.i = pos + 2 + end + 2
			}
			continue
		}
		if c == '.' && pos+1 < len(s) && isDigit(s[pos+1]) && isNumericBoundary(prevNonSpace(s, pos-1)) {
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func prevNonSpace(s string, i int) byte {
	for ; i >= 0; i-- {
		switch s[i] {
		case ' ', '\n', '\r', '\t':
			continue
		}
		return s[i]
	}
	return 0
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
