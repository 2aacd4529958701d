package outline

import "strings"

// definitionTags are non-visual elements: layout dimension declarations,
// resource and style containers, templates, setters and triggers. They are
// matched exactly, so a user control named "MyStyle" still shows up.
var definitionTags = map[string]struct{}{
	"RowDefinition":            {},
	"ColumnDefinition":         {},
	"RowDefinitions":           {},
	"ColumnDefinitions":        {},
	"ResourceDictionary":       {},
	"Style":                    {},
	"Styles":                   {},
	"StyleInclude":             {},
	"ControlTheme":             {},
	"ControlTemplate":          {},
	"DataTemplate":             {},
	"ItemsPanelTemplate":       {},
	"HierarchicalDataTemplate": {},
	"TreeDataTemplate":         {},
	"Setter":                   {},
	"Trigger":                  {},
	"DataTrigger":              {},
	"MultiTrigger":             {},
	"MultiDataTrigger":         {},
	"EventTrigger":             {},
}

// IsExcluded reports whether tag is a definition tag left out of the outline.
func IsExcluded(tag string) bool {
	_, ok := definitionTags[tag]
	return ok
}

// IsPropertyElement reports whether tag uses the Owner.Property syntax,
// e.g. Grid.RowDefinitions or Button.Content.
func IsPropertyElement(tag string) bool {
	return strings.Contains(tag, ".")
}

// skipped reports whether a tag produces no node of its own.
func skipped(tag string) bool {
	return IsPropertyElement(tag) || IsExcluded(tag)
}

// DefinitionTags returns the exclusion list in no particular order.
func DefinitionTags() []string {
	tags := make([]string, 0, len(definitionTags))
	for t := range definitionTags {
		tags = append(tags, t)
	}
	return tags
}
