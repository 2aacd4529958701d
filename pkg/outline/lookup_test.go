package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/xamlnav/pkg/token"
)

func TestElementAt(t *testing.T) {
	forest := Parse(`<Grid>
  <StackPanel>
    <Button x:Name="Ok"/> <Button x:Name="Cancel"/>
  </StackPanel>
  <TextBlock Text="x"/>
</Grid>
trailing`)

	tests := []struct {
		name  string
		pos   token.Position
		want  string
		found bool
	}{
		{"on grid start", pos(0, 0), "[Grid]", true},
		{"grid whitespace", pos(1, 0), "[Grid]", true},
		{"panel", pos(1, 4), "[StackPanel]", true},
		{"first button", pos(2, 6), "Ok", true},
		{"between buttons", pos(2, 25), "[StackPanel]", true},
		{"second button", pos(2, 30), "Cancel", true},
		{"textblock", pos(4, 3), `[TextBlock "x"]`, true},
		{"grid end is exclusive", pos(5, 7), "", false},
		{"after document", pos(6, 2), "", false},
		{"far away", pos(100, 0), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := ElementAt(forest, tt.pos)
			require.Equal(t, tt.found, ok)
			if !ok {
				assert.Nil(t, e)
				return
			}
			assert.Equal(t, tt.want, e.Label)
		})
	}
}

func TestElementAt_Empty(t *testing.T) {
	e, ok := ElementAt(nil, pos(0, 0))
	assert.False(t, ok)
	assert.Nil(t, e)
}

func TestPathAt(t *testing.T) {
	forest := Parse(`<Window><Grid><Button/></Grid></Window>`)

	path := PathAt(forest, pos(0, 16))
	require.Len(t, path, 3)
	assert.Equal(t, "Window", path[0].TagName)
	assert.Equal(t, "Grid", path[1].TagName)
	assert.Equal(t, "Button", path[2].TagName)

	assert.Empty(t, PathAt(forest, pos(1, 0)))
}
