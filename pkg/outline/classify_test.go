package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		attrs map[string]string
		want  string
	}{
		{"x:Name wins", "Button", map[string]string{"Content": "Click Me!", "x:Name": "TestButton"}, "TestButton"},
		{"x:Name over Name", "Grid", map[string]string{"Name": "Outer", "x:Name": "Inner"}, "Inner"},
		{"Name", "Grid", map[string]string{"Name": "Root"}, "Root"},
		{"button content", "Button", map[string]string{"Content": "Another Button"}, `[Button "Another Button"]`},
		{"button content before text", "Button", map[string]string{"Text": "t", "Content": "c"}, `[Button "c"]`},
		{"textblock text", "TextBlock", map[string]string{"Text": "Status: Ready"}, `[TextBlock "Status: Ready"]`},
		{"content ignored elsewhere", "Label", map[string]string{"Content": "Hello"}, "[Label]"},
		{"bare tag", "StackPanel", map[string]string{}, "[StackPanel]"},
		{"nil attrs", "Border", nil, "[Border]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.tag, tt.attrs))
		})
	}
}

func TestClassifyKind(t *testing.T) {
	tests := []struct {
		tag  string
		want Kind
	}{
		{"Window", KindClass},
		{"UserControl", KindClass},
		{"Grid", KindPackage},
		{"StackPanel", KindPackage},
		{"Canvas", KindPackage},
		{"DockPanel", KindPackage},
		{"WrapPanel", KindPackage},
		{"Border", KindPackage},
		{"Button", KindFunction},
		{"ToggleButton", KindFunction},
		{"CheckBox", KindFunction},
		{"RadioButton", KindFunction},
		{"Slider", KindFunction},
		{"TextBlock", KindString},
		{"TextBox", KindString},
		{"Label", KindString},
		{"ListBox", KindArray},
		{"ComboBox", KindArray},
		{"TreeView", KindArray},
		{"DataGrid", KindPackage}, // "grid" is tried first
		{"Image", KindFile},
		{"MediaElement", KindFile},
		{"ScrollViewer", KindObject},
		{"local:CustomThing", KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyKind(tt.tag))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "package", KindPackage.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())

	text, err := KindArray.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "array", string(text))
}

func TestIsExcluded(t *testing.T) {
	assert.True(t, IsExcluded("RowDefinition"))
	assert.True(t, IsExcluded("DataTemplate"))
	assert.True(t, IsExcluded("Setter"))
	assert.False(t, IsExcluded("MyStyle"))
	assert.False(t, IsExcluded("rowdefinition"), "matching is exact")

	assert.True(t, IsPropertyElement("Grid.RowDefinitions"))
	assert.False(t, IsPropertyElement("Grid"))
	assert.Contains(t, DefinitionTags(), "ControlTemplate")
}
