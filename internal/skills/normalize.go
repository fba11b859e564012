// Package skills compares skill names the way recruiters read them: "golang", "GOLANG" and
// "Go" are the same skill.
package skills

import (
	"strings"
)

// aliases maps common skill name variants to canonical names
var aliases = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"c sharp":    "C#",
	"csharp":     "C#",
}

// Canonical normalizes a skill name to its canonical form.
// Known aliases map to their canonical name; single all-caps or all-lowercase words get an
// initial capital; everything else is returned trimmed.
func Canonical(name string) string {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := aliases[lower]; ok {
		return canonical
	}
	if strings.Contains(normalized, " ") {
		return normalized
	}

	upper := strings.ToUpper(normalized)
	switch {
	case normalized == upper && len(normalized) > 1:
		return upper[:1] + lower[1:]
	case normalized == lower:
		return upper[:1] + normalized[1:]
	}
	// mixed case is kept as written
	return normalized
}

// key is the comparison form of a skill name
func key(name string) string {
	return strings.ToLower(Canonical(name))
}

// Same reports whether a and b name the same skill
func Same(a, b string) bool {
	return key(a) == key(b)
}

// Set answers membership questions about a list of skills
type Set map[string]struct{}

// NewSet indexes names by their canonical form
func NewSet(names []string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add records name
func (s Set) Add(name string) {
	if k := key(name); k != "" {
		s[k] = struct{}{}
	}
}

// Has reports whether a skill equivalent to name is in the set
func (s Set) Has(name string) bool {
	_, ok := s[key(name)]
	return ok
}
