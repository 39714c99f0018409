// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForPattern returns the shell-quoting hint shown for invalid regexes.
func ForPattern() string {
	return format("quote patterns to protect them from the shell; escape periods with a backslash")
}

// ForTemplate returns hints for template errors, listing the placeholders.
func ForTemplate(fields []string) string {
	if len(fields) == 0 {
		return format("write {{ and }} for literal braces")
	}
	placeholders := make([]string, len(fields))
	for i, f := range fields {
		placeholders[i] = "{" + f + "}"
	}
	return formatHints([]string{
		"placeholders: " + strings.Join(placeholders, ", "),
		"pad or align with a spec after ':', e.g. {n:>4} or {pipeline:<20}",
		"write {{ and }} for literal braces",
	})
}

// ForNoSectionClose returns hints for input that never closes its section list.
func ForNoSectionClose(closeMarker string) string {
	return formatHints([]string{
		"pipe a complete GoCD config.xml (it must contain " + closeMarker + ")",
		"set markers.close in the config file for other layouts",
	})
}

// ForSectionName returns hints for a section line without a readable name.
func ForSectionName(attribute string) string {
	return format("section lines must carry " + attribute + "...; set markers.attribute to match the input")
}

// ForChoices returns a hint listing the accepted values of a setting.
func ForChoices(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-pipelinegrep") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
