package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/xamlnav/internal/cli/output"
	intconfig "github.com/leapstack-labs/xamlnav/internal/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a xamlnav.yaml configuration",
		Long: `Write a default xamlnav.yaml with every setting documented.

The CLI finds it by searching upward from the working directory, and the
language server reads it from the workspace root.

Use --example to also add sample views to try the outline commands on.`,
		Example: `  # Initialize in current directory
  xamlnav init

  # Initialize with sample views
  xamlnav init --example

  # Initialize in another directory
  xamlnav init ui/ --example

  # Force overwrite existing config
  xamlnav init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

			template := "minimal"
			if example {
				template = "example"
			}
			return runInit(r, dir, template, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Also create sample views")

	return cmd
}

func runInit(r *output.Renderer, dir, template string, force bool) error {
	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Check if config already exists
	if existing := intconfig.FindConfigFile(dir); existing != "" && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", filepath.Base(existing))
	}

	if err := copyTemplate(template, dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	files, _ := listTemplateFiles(template)
	groups := groupTemplateFiles(files)

	r.Header(2, "Configuration")
	for _, f := range groups["config"] {
		r.StatusLine(f, "success", "")
	}
	if len(groups["views"]) > 0 {
		r.Println("")
		r.Header(2, "Views")
		for _, f := range groups["views"] {
			r.StatusLine(f, "success", "")
		}
	}

	r.Println("")
	r.Success("xamlnav initialized!")
	r.Println("")
	r.Println("Next steps:")
	if len(groups["views"]) > 0 {
		r.Println("  xamlnav outline Views/MainWindow.xaml   Show the element tree")
		r.Println("  xamlnav symbols Views/MainWindow.xaml   List elements as a table")
		r.Println("  xamlnav pick Views/MainWindow.xaml      Jump to an element")
	} else {
		r.Println("  xamlnav outline <file>.xaml   Show the element tree")
		r.Println("  xamlnav lsp                   Configure your editor to start the language server")
	}

	return nil
}
