package models

import "strings"

// RenderTemplate substitutes {name} placeholders in a stored message template.
// Placeholders without a matching entry in vars are left untouched.
func RenderTemplate(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
