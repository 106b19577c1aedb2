package narrative

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches {key} tokens inside a template.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// Render substitutes {key} placeholders in template with payload
// values. It fails open: if any referenced key is missing from the
// payload, the original template is returned unchanged. A literal
// template string in the narrative beats a crashed consumer.
func Render(template string, payload map[string]any) string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return template
	}

	pairs := make([]string, 0, len(matches)*2)
	for _, match := range matches {
		value, ok := payload[match[1]]
		if !ok {
			return template
		}
		pairs = append(pairs, match[0], fmt.Sprint(value))
	}

	return strings.NewReplacer(pairs...).Replace(template)
}
