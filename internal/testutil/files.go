package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleWindow is a small WPF window used across command and server tests.
const SampleWindow = `<Window x:Class="Demo.MainWindow"
        xmlns="http://schemas.microsoft.com/winfx/2006/xaml/presentation"
        xmlns:x="http://schemas.microsoft.com/winfx/2006/xaml"
        Title="Demo">
    <Grid x:Name="LayoutRoot">
        <Grid.RowDefinitions>
            <RowDefinition Height="Auto"/>
            <RowDefinition Height="*"/>
        </Grid.RowDefinitions>
        <StackPanel Orientation="Horizontal">
            <Button Content="Click Me!" x:Name="TestButton"/>
            <Button Content="Another Button"/>
        </StackPanel>
        <TextBlock Grid.Row="1" Text="Status: Ready"/>
    </Grid>
</Window>
`

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSample writes SampleWindow as MainWindow.xaml in a fresh temp dir.
func WriteSample(t testing.TB) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "MainWindow.xaml", SampleWindow)
}
