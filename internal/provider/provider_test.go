package provider

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/xamlnav/internal/testutil"
	"github.com/leapstack-labs/xamlnav/pkg/outline"
	"github.com/leapstack-labs/xamlnav/pkg/token"
)

const gridDoc = "<Grid>\n  <Button x:Name=\"Ok\"/>\n</Grid>"

func TestParse(t *testing.T) {
	doc := Parse(context.Background(), gridDoc, "file:///a.xaml", 3, outline.ConvertOptions{ShowLineNumbers: true})

	require.NotNil(t, doc)
	assert.Equal(t, "file:///a.xaml", doc.URI)
	assert.Equal(t, 3, doc.Version)
	assert.Equal(t, gridDoc, doc.Content)
	assert.False(t, doc.HasParseError())
	require.Len(t, doc.Forest, 1)
	require.Len(t, doc.Symbols, 1)
	assert.Equal(t, "Grid (line 1)", doc.Symbols[0].Detail)
	assert.False(t, doc.ParsedAt.IsZero())

	e, ok := doc.ElementAt(token.Position{Line: 1, Column: 4})
	require.True(t, ok)
	assert.Equal(t, "Ok", e.Label)
	assert.Len(t, doc.Entries(), 2)
}

func TestParse_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := Parse(ctx, gridDoc, "file:///a.xaml", 1, outline.ConvertOptions{})
	assert.True(t, doc.HasParseError())
	assert.Empty(t, doc.Forest)
	assert.NotNil(t, doc.Symbols)
	assert.Empty(t, doc.Symbols)
}

func TestProvider_GetOrParse_Cache(t *testing.T) {
	p := New(false, testutil.NewTestLogger(t))
	ctx := context.Background()

	first := p.GetOrParse(ctx, "file:///a.xaml", gridDoc, 1)
	second := p.GetOrParse(ctx, "file:///a.xaml", gridDoc, 1)
	assert.Same(t, first, second, "same uri and version is a hit")
	assert.Equal(t, Stats{Hits: 1, Misses: 1}, p.Stats())

	third := p.GetOrParse(ctx, "file:///a.xaml", gridDoc+"\n<Border/>", 2)
	assert.NotSame(t, first, third, "new version re-parses")
	assert.Len(t, third.Forest, 2)

	other := p.GetOrParse(ctx, "file:///b.xaml", gridDoc, 2)
	assert.NotSame(t, third, other, "new uri re-parses")
	assert.Nil(t, p.Get("file:///a.xaml"), "single slot holds only the last document")
	assert.Same(t, other, p.Get("file:///b.xaml"))
	assert.Equal(t, Stats{Hits: 1, Misses: 3}, p.Stats())
}

func TestProvider_ToggleLineNumbers(t *testing.T) {
	p := New(false, testutil.NewTestLogger(t))
	ctx := context.Background()

	plain := p.GetOrParse(ctx, "file:///a.xaml", gridDoc, 1)
	assert.Equal(t, "Grid", plain.Symbols[0].Detail)

	p.SetShowLineNumbers(true)
	assert.True(t, p.ShowLineNumbers())
	assert.Nil(t, p.Get("file:///a.xaml"), "toggle drops the slot")

	numbered := p.GetOrParse(ctx, "file:///a.xaml", gridDoc, 1)
	assert.NotSame(t, plain, numbered)
	assert.Equal(t, "Grid (line 1)", numbered.Symbols[0].Detail)

	p.SetShowLineNumbers(true)
	assert.Same(t, numbered, p.Get("file:///a.xaml"), "setting the same value keeps the slot")
}

func TestProvider_Invalidate(t *testing.T) {
	p := New(false, nil)
	ctx := context.Background()

	p.GetOrParse(ctx, "file:///a.xaml", gridDoc, 1)
	p.Invalidate("file:///other.xaml")
	assert.NotNil(t, p.Get("file:///a.xaml"))

	p.Invalidate("file:///a.xaml")
	assert.Nil(t, p.Get("file:///a.xaml"))

	p.GetOrParse(ctx, "file:///a.xaml", gridDoc, 1)
	p.InvalidateAll()
	assert.Nil(t, p.Get("file:///a.xaml"))
}

func TestProvider_FailedParseNotCached(t *testing.T) {
	p := New(false, testutil.NewTestLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := p.GetOrParse(ctx, "file:///a.xaml", gridDoc, 1)
	assert.True(t, doc.HasParseError())
	assert.Nil(t, p.Get("file:///a.xaml"))

	doc = p.GetOrParse(context.Background(), "file:///a.xaml", gridDoc, 1)
	assert.False(t, doc.HasParseError())
	assert.Len(t, doc.Forest, 1)
}

func TestProvider_ConcurrentAccess(t *testing.T) {
	p := New(false, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(version int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				doc := p.GetOrParse(ctx, "file:///a.xaml", gridDoc, version%2)
				assert.Len(t, doc.Forest, 1)
				if j%10 == 0 {
					p.SetShowLineNumbers(j%20 == 0)
				}
			}
		}(i)
	}
	wg.Wait()
}
