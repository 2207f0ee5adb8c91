package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// SchemaValidator validates a parsed value after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON extracts a JSON object of type T from raw LLM text output.
// Markdown fences and surrounding prose are ignored. The first balanced
// {...} block is tried first; if it does not decode, the widest span from
// the first '{' to the last '}' is tried. If validator is non-nil, the
// decoded value must pass it.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	candidates := JSONCandidates(raw)
	if len(candidates) == 0 {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var decodeErr error
	for _, c := range candidates {
		var result T
		if err := json.Unmarshal([]byte(c), &result); err != nil {
			decodeErr = err
			continue
		}
		if validator != nil {
			if err := validator(result); err != nil {
				return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
			}
		}
		return result, nil
	}
	return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, decodeErr)
}

// JSONCandidates returns the cleaned object spans worth decoding, most
// specific first, without duplicates.
func JSONCandidates(raw string) []string {
	cleaned := stripCodeFences(raw)

	var out []string
	seen := map[string]bool{}
	for _, block := range []string{balancedBlock(cleaned), widestBlock(cleaned)} {
		if block == "" {
			continue
		}
		block = normalizeLeadingDecimalNumbers(stripJSONComments(block))
		if !seen[block] {
			seen[block] = true
			out = append(out, block)
		}
	}
	return out
}

// codeFence matches a markdown fence with its optional language tag.
var codeFence = regexp.MustCompile("```[A-Za-z0-9_+-]*")

// stripCodeFences removes markdown fences (```json, ```) and keeps
// everything else, including JSON on the same line as a fence.
func stripCodeFences(s string) string {
	return codeFence.ReplaceAllString(s, "")
}

// jsonScanner walks text and tracks whether the cursor is inside a JSON
// string literal, so structural characters inside strings are ignored.
type jsonScanner struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it is structural (outside a string
// and not a quote).
func (sc *jsonScanner) step(c byte) bool {
	switch {
	case sc.escaped:
		sc.escaped = false
		return false
	case sc.inString && c == '\\':
		sc.escaped = true
		return false
	case c == '"':
		sc.inString = !sc.inString
		return false
	default:
		return !sc.inString
	}
}

// balancedBlock finds the first balanced { ... } block in the text.
func balancedBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	var sc jsonScanner
	depth := 0
	for i := start; i < len(s); i++ {
		if !sc.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// widestBlock returns the greedy span from the first '{' to the last '}'.
func widestBlock(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// stripJSONComments removes // and /* */ comments outside string values.
// Models sometimes annotate JSON despite instructions not to.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var sc jsonScanner
	for i := 0; i < len(s); i++ {
		c := s[i]
		if sc.step(c) && c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				for i+1 < len(s) && s[i+1] != '\n' {
					i++
				}
				continue
			case '*':
				i += 2
				for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
					i++
				}
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// normalizeLeadingDecimalNumbers rewrites ".8" and "-.3" into "0.8" and
// "-0.3" outside string values.
func normalizeLeadingDecimalNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var sc jsonScanner
	for i := 0; i < len(s); i++ {
		c := s[i]
		if sc.step(c) && c == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(prevNonSpace(s, i-1)) {
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
		default:
			return s[i]
		}
	}
	return 0
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
