package render

import (
	"html"
	"regexp"
	"sort"
	"strings"
)

var (
	tokenSeparator       = regexp.MustCompile(`=+`)
	attributeNamePattern = regexp.MustCompile(`^[A-Za-z_:][A-Za-z0-9_:.\-]*$`)
)

// attributes that run script, load content or move the submission elsewhere
var blockedAttributes = map[string]struct{}{
	"style":      {},
	"action":     {},
	"formaction": {},
	"formmethod": {},
	"formtarget": {},
	"href":       {},
	"src":        {},
	"srcdoc":     {},
	"xmlns":      {},
}

// AllowedAttribute reports whether a caller supplied attribute may be merged into generated markup.
// Event handlers (on*) and the names in blockedAttributes are refused.
func AllowedAttribute(key string) bool {
	if !attributeNamePattern.MatchString(key) {
		return false
	}
	k := strings.ToLower(key)
	if strings.HasPrefix(k, "on") {
		return false
	}
	_, blocked := blockedAttributes[k]
	return !blocked
}

// Attrs is an ordered set of HTML attributes; setting an existing key keeps its position
type Attrs struct {
	keys   []string
	values map[string]string
}

// NewAttrs builds Attrs from key/value pairs
func NewAttrs(pairs ...string) *Attrs {
	a := &Attrs{values: map[string]string{}}
	for i := 0; i+1 < len(pairs); i += 2 {
		a.Set(pairs[i], pairs[i+1])
	}
	return a
}

func (a *Attrs) Set(key, value string) {
	if a.values == nil {
		a.values = map[string]string{}
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

func (a *Attrs) Get(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Extend copies the attributes of other in their order
func (a *Attrs) Extend(other *Attrs) {
	for _, k := range other.keys {
		a.Set(k, other.values[k])
	}
}

// Merge applies a mapping in key order, so the result does not depend on map iteration.
// Keys that are not allowed are skipped.
func (a *Attrs) Merge(m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !AllowedAttribute(k) {
			continue
		}
		a.Set(k, m[k])
	}
}

// MergeTokens applies key=value tokens in order.
// A token that does not split into exactly two parts, or whose key is not allowed, is dropped.
// Quotes around values are removed.
func (a *Attrs) MergeTokens(tokens []string) {
	for _, tok := range tokens {
		parts := tokenSeparator.Split(strings.TrimSpace(tok), -1)
		if len(parts) != 2 || !AllowedAttribute(parts[0]) {
			continue
		}
		a.Set(parts[0], strings.NewReplacer(`"`, "", "'", "").Replace(parts[1]))
	}
}

// ParseAttributeString splits a space separated attribute string into tokens
func ParseAttributeString(s string) []string {
	return strings.Fields(s)
}

// String renders the attributes with a leading space; an empty class is omitted
func (a *Attrs) String() string {
	var b strings.Builder
	for _, k := range a.keys {
		v := a.values[k]
		if k == "class" && v == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(html.EscapeString(k))
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(v))
		b.WriteByte('"')
	}
	return b.String()
}

func hiddenInput(name, value string, extra ...string) string {
	attrs := NewAttrs("type", "hidden", "name", name, "value", value)
	for i := 0; i+1 < len(extra); i += 2 {
		attrs.Set(extra[i], extra[i+1])
	}
	return "<input" + attrs.String() + ">"
}
