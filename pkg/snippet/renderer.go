package snippet

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-phoenixgen/pkg/config"
)

var bareIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Renderer converts config trees into Kotlin initializer lines. A Renderer is
// immutable after New and safe for concurrent use.
type Renderer struct {
	markers    []string
	stringMode StringMode
	rootName   string
}

// New constructs a Renderer with the default identifier markers, enum string
// mode and TalonFXConfiguration root.
func New(options ...Option) *Renderer {
	r := &Renderer{
		markers:    append([]string(nil), DefaultIdentifierMarkers...),
		stringMode: StringModeEnum,
		rootName:   DefaultRootName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

var defaultRenderer = New()

// Lines renders tree with the default renderer.
func Lines(tree *config.Tree, rootName string) []string {
	return defaultRenderer.Lines(tree, rootName)
}

// Render renders tree with the default renderer and joins the lines with "\n".
func Render(tree *config.Tree, rootName string) string {
	return defaultRenderer.Render(tree, rootName)
}

// FormatValue formats a leaf with the default renderer.
func FormatValue(value config.Value, key string) string {
	return defaultRenderer.FormatValue(value, key)
}

// RootName reports the root type used for empty root names.
func (r *Renderer) RootName() string {
	return r.rootName
}

// Lines renders the initializer as individual lines without trailing newlines.
func (r *Renderer) Lines(tree *config.Tree, rootName string) []string {
	if strings.TrimSpace(rootName) == "" {
		rootName = r.rootName
	}
	lines := []string{rootName + "().apply {"}
	lines = r.appendBody(lines, tree, 1)
	return append(lines, "}")
}

// Render returns Lines joined with "\n".
func (r *Renderer) Render(tree *config.Tree, rootName string) string {
	return strings.Join(r.Lines(tree, rootName), "\n")
}

func (r *Renderer) appendBody(lines []string, tree *config.Tree, depth int) []string {
	pad := strings.Repeat(Indent, depth)
	for _, entry := range tree.Entries() {
		if nested, ok := entry.Value.(*config.Tree); ok {
			field := FormatIdentifier(entry.Key)
			lines = append(lines, pad+field+" = "+typeName(field)+"().apply {")
			lines = r.appendBody(lines, nested, depth+1)
			lines = append(lines, pad+"}")
			continue
		}
		lines = append(lines, pad+entry.Key+" = "+r.FormatValue(entry.Value, entry.Key))
	}
	return lines
}

// FormatValue maps a leaf to its Kotlin text. Trees passed here render as a
// bare constructor call of their derived type.
func (r *Renderer) FormatValue(value config.Value, key string) string {
	switch v := value.(type) {
	case config.Bool:
		if v {
			return "true"
		}
		return "false"
	case config.Number:
		if r.isIdentifierKey(key) {
			return numberString(float64(v))
		}
		return FormatNumber(float64(v))
	case config.String:
		return r.formatString(string(v), key)
	case *config.Tree:
		return typeName(FormatIdentifier(key)) + "()"
	default:
		return ""
	}
}

func (r *Renderer) isIdentifierKey(key string) bool {
	for _, marker := range r.markers {
		if strings.Contains(key, marker) {
			return true
		}
	}
	return false
}

func (r *Renderer) formatString(value, key string) string {
	if bareIdentifier.MatchString(value) {
		return key + "Value." + value
	}
	if r.stringMode == StringModeQuoted {
		return quoteKotlin(value)
	}
	return key + "Value." + collapseWhitespace(value)
}

// FormatIdentifier turns a spaced section title into a PascalCase identifier
// ("Current Limits Configs" -> "CurrentLimitsConfigs"). Keys without spaces
// are returned unchanged.
func FormatIdentifier(key string) string {
	if !strings.Contains(key, " ") {
		return key
	}
	parts := strings.Split(key, " ")
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(upperFirst(part))
	}
	return b.String()
}

// FormatNumber renders integral values with exactly one decimal place and
// every other value in its shortest round-trip decimal form.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e21 {
		if f == 0 {
			f = 0 // drop the sign of negative zero
		}
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return numberString(f)
}

// numberString follows the ECMAScript Number-to-String conventions: plain
// decimals within [1e-6, 1e21), exponent form outside, no forced fraction.
func numberString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	formatted := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exponent, _ := strings.Cut(formatted, "e")
	sign, digits := exponent[:1], strings.TrimLeft(exponent[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

func typeName(field string) string {
	return strings.TrimSuffix(field, "Configs")
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// isKotlinEnumSpace reports whether r is white space or a line terminator
// in the ECMAScript sense: unicode.IsSpace plus U+FEFF, minus U+0085.
func isKotlinEnumSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if isKotlinEnumSpace(r) {
			if !inSpace {
				b.WriteByte('_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

func quoteKotlin(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '$':
			b.WriteString(`\$`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		default:
			if r < 0x20 {
				b.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				b.WriteString(strings.Repeat("0", 4-len(hex)))
				b.WriteString(hex)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
