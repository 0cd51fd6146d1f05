// Package placeholder fills {key} placeholders in URL and header templates.
package placeholder

import "strings"

// Resolve returns template with every {key} replaced by its value. Values in extra
// take precedence over base. Placeholders with no matching key are left as-is.
// Substitution is a single pass: placeholders inside substituted values are not
// expanded. Neither map is modified.
func Resolve(base map[string]string, template string, extra map[string]string) string {
	vars := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		vars[k] = v
	}
	for k, v := range extra {
		vars[k] = v
	}

	pairs := make([]string, 0, 2*len(vars))
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// URL resolves path after prefixing it with the {api_base} placeholder.
func URL(base map[string]string, path string, extra map[string]string) string {
	return Resolve(base, "{api_base}"+path, extra)
}
