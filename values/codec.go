package values

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for use with [errors.Is].
var (
	// ErrParse indicates textual input could not be interpreted as a value
	// tree.
	ErrParse = errors.New("parse input")
	// ErrInvalidOption indicates an invalid configuration value, such as a
	// malformed --set pair.
	ErrInvalidOption = errors.New("invalid option")
	// ErrReadInput indicates an I/O error reading input. Reserved for CLI
	// callers; the engine itself performs no I/O.
	ErrReadInput = errors.New("read input")
	// ErrWriteOutput indicates an I/O error writing output. Reserved for
	// CLI callers.
	ErrWriteOutput = errors.New("write output")
)

const textIndent = "  "

// numberPattern matches the scalar forms the flat parser coerces to
// numbers.
var numberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// EncodeText renders a value tree in the engine's text encoding: null as
// "null", booleans and numbers in literal form, strings double-quoted with
// escapes, empty sequences and mappings as "[]" and "{}", non-empty
// sequences as bulleted lists, and non-empty mappings as "key: value" lines
// with nested blocks indented one level deeper. Mapping keys are rendered
// in sorted order. Output ends with a newline.
func EncodeText(tree map[string]any) string {
	if len(tree) == 0 {
		return "{}\n"
	}

	var sb strings.Builder

	writeMapping(&sb, tree, 0)

	return sb.String()
}

// writeMapping renders the entries of a mapping at the given depth.
func writeMapping(sb *strings.Builder, node map[string]any, depth int) {
	pad := strings.Repeat(textIndent, depth)

	for _, key := range sortedKeys(node) {
		value := node[key]

		if inline, ok := encodeInline(value); ok {
			fmt.Fprintf(sb, "%s%s: %s\n", pad, key, inline)

			continue
		}

		fmt.Fprintf(sb, "%s%s:\n", pad, key)

		switch child := value.(type) {
		case map[string]any:
			writeMapping(sb, child, depth+1)
		case []any:
			writeSequence(sb, child, depth+1)
		}
	}
}

// writeSequence renders the elements of a sequence as a bulleted list at
// the given depth.
func writeSequence(sb *strings.Builder, seq []any, depth int) {
	pad := strings.Repeat(textIndent, depth)

	for _, elem := range seq {
		if inline, ok := encodeInline(elem); ok {
			fmt.Fprintf(sb, "%s- %s\n", pad, inline)

			continue
		}

		fmt.Fprintf(sb, "%s-\n", pad)

		switch child := elem.(type) {
		case map[string]any:
			writeMapping(sb, child, depth+1)
		case []any:
			writeSequence(sb, child, depth+1)
		}
	}
}

// encodeInline returns the inline textual form of a value. Scalars and
// empty containers are inline; non-empty containers are not.
func encodeInline(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "null", true

	case bool:
		return strconv.FormatBool(v), true

	case string:
		return strconv.Quote(v), true

	case []any:
		if len(v) == 0 {
			return "[]", true
		}

		return "", false

	case map[string]any:
		if len(v) == 0 {
			return "{}", true
		}

		return "", false
	}

	if s, ok := formatNumber(value); ok {
		return s, true
	}

	return fmt.Sprintf("%v", value), true
}

// formatNumber renders a numeric value without exponent notation so the
// flat parser can read it back.
func formatNumber(value any) (string, bool) {
	switch n := value.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}

	return "", false
}

// DecodeText parses textual input into a value tree. It first attempts
// strict structured parsing of the whole input; when that fails or yields a
// non-mapping it falls back to a flat line parser reading "key: value"
// pairs. Failures wrap [ErrParse].
func DecodeText(text string) (map[string]any, error) {
	if strings.TrimSpace(text) == "" {
		return make(map[string]any), nil
	}

	if tree, err := decodeStructured(text); err == nil {
		return tree, nil
	}

	return decodeFlat(text)
}

// decodeStructured parses the whole input as one structured literal.
func decodeStructured(text string) (map[string]any, error) {
	var value any

	err := yaml.Unmarshal([]byte(text), &value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	tree, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is not a mapping", ErrParse)
	}

	return tree, nil
}

// decodeFlat reads flat "key: value" pairs, ignoring blank lines and lines
// beginning with "#". Scalars are coerced textually. Nested block structure
// cannot be represented by a flat tree, so indented lines are rejected with
// [ErrParse] rather than silently truncated.
func decodeFlat(text string) (map[string]any, error) {
	tree := make(map[string]any)

	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if line != strings.TrimLeft(line, " \t") {
			return nil, fmt.Errorf("%w: line %d: nested structure is not representable as flat key/value pairs", ErrParse, i+1)
		}

		key, rest, ok := strings.Cut(trimmed, ":")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: expected key: value", ErrParse, i+1)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%w: line %d: empty key", ErrParse, i+1)
		}

		tree[key] = coerceScalar(strings.TrimSpace(rest))
	}

	return tree, nil
}

// coerceScalar converts the textual form of a flat scalar to its typed
// value: null/~/empty to nil, true/false to booleans, plain decimal forms
// to numbers, quoted strings to their unescaped content, and anything else
// to the raw string.
func coerceScalar(s string) any {
	switch s {
	case "", "null", "~":
		return nil
	case "true":
		return true
	case "false":
		return false
	}

	if numberPattern.MatchString(s) {
		if !strings.Contains(s, ".") {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return n
			}
		}

		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted
		}

		return s[1 : len(s)-1]
	}

	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}

	return s
}

// EncodeJSON renders a value tree as indented JSON.
func EncodeJSON(tree map[string]any) ([]byte, error) {
	out, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return append(out, '\n'), nil
}

// DecodeJSON parses JSON input into a value tree. Failures wrap [ErrParse].
func DecodeJSON(data []byte) (map[string]any, error) {
	var tree map[string]any

	err := json.Unmarshal(data, &tree)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if tree == nil {
		tree = make(map[string]any)
	}

	return tree, nil
}
