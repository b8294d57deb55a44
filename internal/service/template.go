package service

import "regexp"

// Flag that asks a build step for its argument template.
const IntrospectionFlag = "-a"

// Matches a template placeholder. The grammar has no escaping and no nesting.
var placeholderPattern = regexp.MustCompile(`\$[A-Za-z_][A-Za-z0-9_]*`)

// Substitutes args into the placeholders of an argument template.
//
// A placeholder without a matching key is left in place literally.
func Expand(template string, args map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(placeholder string) string {
		if v, ok := args[placeholder[1:]]; ok {
			return v
		}
		return placeholder
	})
}
