package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.lsp.dev/uri"

	"github.com/leapstack-labs/xamlnav/internal/cli/config"
	"github.com/leapstack-labs/xamlnav/internal/cli/output"
	"github.com/leapstack-labs/xamlnav/internal/detect"
	"github.com/leapstack-labs/xamlnav/internal/provider"
)

// ErrNotXAML is returned when a file fails document detection.
var ErrNotXAML = errors.New("not a XAML document")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Provider *provider.Provider
	Detector *detect.Detector
}

// NewCommandContext creates a CommandContext from the loaded configuration
// and the logger stored in the command context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
		Provider: provider.New(cfg.ShowLineNumbers, logger),
		Detector: detect.New(cfg.Detect.Options()),
	}
}

// getConfig returns the current configuration, or the defaults when the
// command runs without the root command (as in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// Load reads a file, checks that it is XAML (unless --force) and returns its
// parsed outline. version identifies the file content for the provider cache.
//
// A parse failure is not an error: it is reported as a warning and the
// returned document carries an empty outline.
func (c *CommandContext) Load(ctx context.Context, path string, version int) (*provider.ParsedDocument, error) {
	doc, err := c.Open(ctx, path, version)
	if err != nil {
		return nil, err
	}
	c.warnParseError(path, doc)
	return doc, nil
}

// Open is Load without the parse-failure warning. It writes nothing, so it is
// safe to call from several goroutines; the caller reports failures itself.
func (c *CommandContext) Open(ctx context.Context, path string, version int) (*provider.ParsedDocument, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !c.Cfg.Force && !c.Detector.Match(detect.Document{Path: abs, Content: string(content)}) {
		return nil, fmt.Errorf("%s: %w\nHint: use --force to outline it anyway", path, ErrNotXAML)
	}

	return c.Provider.GetOrParse(ctx, string(uri.File(abs)), string(content), version), nil
}

func (c *CommandContext) warnParseError(path string, doc *provider.ParsedDocument) {
	if doc.HasParseError() {
		c.Renderer.Warning(fmt.Sprintf("failed to build outline for %s: %v", path, doc.ParseError))
	}
}

// fileVersion derives a cache version from a file's modification time.
func fileVersion(path string) int {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return int(info.ModTime().UnixNano())
}
