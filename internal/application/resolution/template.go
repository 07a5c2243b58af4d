package resolution

import "regexp"

// placeholderPattern matches {{ name }} placeholders. Whitespace inside the
// braces and an optional leading $ are tolerated.
var placeholderPattern = regexp.MustCompile(`\{\{\s*\$?([A-Za-z0-9_]+)\s*\}\}`)

// RenderTemplate substitutes named placeholders in a tenant-supplied message
// template. Every recognized placeholder is replaced in a single pass, so
// replacement values are inserted literally and never re-substituted.
// Unrecognized placeholders are left verbatim.
func RenderTemplate(template string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}
