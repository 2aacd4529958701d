package outline

import (
	"regexp"
	"strings"
)

// attrPattern matches name="value" or name='value' with optional spaces around '='.
// Values are taken verbatim; entity references are not decoded.
var attrPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_.:\-]*)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ParseAttributes extracts name/value pairs from the raw text between a tag
// name and its closing '>'. Whitespace runs, newlines included, are collapsed
// first so attributes split across lines parse the same as single-line ones.
//
// A name that appears twice keeps its last value. Unparseable fragments are
// ignored; the result is never nil.
func ParseAttributes(raw string) map[string]string {
	attrs := make(map[string]string)
	raw = strings.TrimSpace(whitespaceRun.ReplaceAllString(raw, " "))
	if raw == "" {
		return attrs
	}

	for _, m := range attrPattern.FindAllStringSubmatchIndex(raw, -1) {
		name := raw[m[2]:m[3]]
		switch {
		case m[4] >= 0:
			attrs[name] = raw[m[4]:m[5]]
		case m[6] >= 0:
			attrs[name] = raw[m[6]:m[7]]
		}
	}
	return attrs
}
