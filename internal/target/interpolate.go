package target

import (
	"regexp"
	"strings"
)

// varPattern matches variable references in the format ${varname}.
// Captures the variable name in group 1.
// Examples: ${basedir}, ${project.name}, ${flob}
var varPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// escapePlaceholder temporarily replaces escaped variable syntax ($${var})
// during interpolation so that it survives as a literal ${var}.
// NUL cannot appear in descriptor JSON strings, so it never collides with
// user-provided text.
const escapePlaceholder = "\x00ESCAPED\x00"

// Interpolate replaces ${name} references in s with values from vars.
// Unknown references are kept as-is; $${name} yields a literal ${name}.
func Interpolate(s string, vars map[string]string) string {
	result := strings.ReplaceAll(s, "$${", escapePlaceholder)

	result = varPattern.ReplaceAllStringFunc(result, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := vars[name]; ok {
			return val
		}
		return match
	})

	return strings.ReplaceAll(result, escapePlaceholder, "${")
}
