package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veld-dev/veld/internal/errors"
	"github.com/veld-dev/veld/internal/templates"
)

func createCmd() *cobra.Command {
	var (
		template    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new Veld project",
		Long: `Create a new Veld project with the specified name.

Templates:
  minimal   Just the essentials for a Veld app
  counter   Starter with stateful components and hooks (default)
  router    Multi-page starter with client-side routing

Examples:
  veld create my-app
  veld create my-app --template=minimal
  veld create my-site --template=router`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], template, description)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "counter", "Project template (minimal, counter, router)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")

	return cmd
}

func runCreate(name, templateName, description string) error {
	printBanner()
	fmt.Println("  Creating a new Veld project...")
	fmt.Println()

	if !isValidProjectName(name) {
		return errors.Newf(errors.CategoryCLI, "invalid project name %q", name)
	}

	projectDir, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(projectDir); !os.IsNotExist(err) {
		return errors.New("E080").
			WithDetail("Directory '" + name + "' already exists")
	}

	if description == "" {
		description = "A Veld application"
	}

	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	info("Creating project from '%s' template...", templateName)
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return err
	}
	cfg := templates.Config{
		ProjectName: name,
		ModulePath:  name,
		Description: description,
	}
	if err := tmpl.Create(projectDir, cfg); err != nil {
		os.RemoveAll(projectDir)
		return err
	}

	info("Installing dependencies...")
	if err := goModTidy(projectDir); err != nil {
		warn("Could not run 'go mod tidy': %v", err)
	}

	fmt.Println()
	success("Created %s/", name)
	fmt.Println()
	fmt.Println("  To get started:")
	fmt.Println()
	fmt.Printf("    cd %s\n", name)
	fmt.Println("    veld dev")
	fmt.Println()

	return nil
}

func isValidProjectName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == ' ' || r == '/' || r == '\\' || strings.ContainsRune("<>:\"|?*", r) {
			return false
		}
		if i == 0 && r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

func goModTidy(dir string) error {
	cmd := exec.Command("go", "mod", "tidy")
	cmd.Dir = dir
	return cmd.Run()
}
