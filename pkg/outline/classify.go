package outline

import (
	"fmt"
	"strings"
)

// Kind is the display category of an element.
type Kind int

// Kinds, in the order the classifier tries them.
const (
	KindObject Kind = iota
	KindClass
	KindPackage
	KindFunction
	KindString
	KindArray
	KindFile
)

var kindNames = map[Kind]string{
	KindObject:   "object",
	KindClass:    "class",
	KindPackage:  "package",
	KindFunction: "function",
	KindString:   "string",
	KindArray:    "array",
	KindFile:     "file",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText lets kinds appear by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type kindRule struct {
	kind    Kind
	needles []string
}

// kindRules is evaluated top to bottom; the first needle contained in the
// lowercased tag name wins. DataGrid therefore lands in KindPackage via "grid".
var kindRules = []kindRule{
	{KindClass, []string{"window", "usercontrol"}},
	{KindPackage, []string{"grid", "stackpanel", "canvas", "dockpanel", "wrappanel", "border"}},
	{KindFunction, []string{"button", "checkbox", "radiobutton", "slider"}},
	{KindString, []string{"textblock", "textbox", "label"}},
	{KindArray, []string{"listbox", "combobox", "datagrid", "treeview"}},
	{KindFile, []string{"image", "mediaelement"}},
}

// ClassifyKind maps a tag name to its display category.
func ClassifyKind(tag string) Kind {
	lower := strings.ToLower(tag)
	for _, rule := range kindRules {
		for _, needle := range rule.needles {
			if strings.Contains(lower, needle) {
				return rule.kind
			}
		}
	}
	return KindObject
}

// Label derives the display label of an element:
//
//  1. x:Name
//  2. Name
//  3. Button/TextBlock with Content or Text: [Tag "value"]
//  4. [Tag]
func Label(tag string, attrs map[string]string) string {
	if v, ok := attrs["x:Name"]; ok {
		return v
	}
	if v, ok := attrs["Name"]; ok {
		return v
	}
	if tag == "Button" || tag == "TextBlock" {
		if v, ok := attrs["Content"]; ok {
			return fmt.Sprintf("[%s \"%s\"]", tag, v)
		}
		if v, ok := attrs["Text"]; ok {
			return fmt.Sprintf("[%s \"%s\"]", tag, v)
		}
	}
	return "[" + tag + "]"
}

// Classify returns both the label and category for an element.
func Classify(tag string, attrs map[string]string) (string, Kind) {
	return Label(tag, attrs), ClassifyKind(tag)
}
