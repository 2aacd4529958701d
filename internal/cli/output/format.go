package output

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatHeader returns a markdown header of the given level.
func FormatHeader(level int, text string) string {
	level = max(1, min(level, 6))
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown list item of a bold key and its value.
func FormatKeyValue(key, value string) string {
	return "- **" + key + "**: " + value
}

// Title capitalizes a display name ("function" -> "Function").
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// EscapeMarkdown escapes characters that would break inline markdown or
// table cells.
func EscapeMarkdown(s string) string {
	r := strings.NewReplacer(`|`, `\|`, "`", "\\`", "*", `\*`, "_", `\_`)
	return r.Replace(s)
}
