package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/veld-dev/veld/internal/build"
	"github.com/veld-dev/veld/internal/config"
)

func buildCmd() *cobra.Command {
	var (
		output string
		minify bool
		clean  bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build for production",
		Long: `Build the application for production deployment.

This command:
  • Compiles the app binary with optimizations
  • Copies static assets with cache busting
  • Generates an asset manifest

Examples:
  veld build
  veld build --output=dist`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(output, minify, clean)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from veld.json)")
	cmd.Flags().BoolVar(&minify, "minify", true, "Cache-bust assets")
	cmd.Flags().BoolVar(&clean, "clean", false, "Clean output directory before build")

	return cmd
}

func runBuild(output string, minify, clean bool) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if output != "" {
		cfg.Build.Output = output
	}

	fmt.Println("  Building for production...")
	fmt.Println()

	builder := build.New(cfg, build.Options{
		Minify:     minify,
		OnProgress: func(step string) { info("%s", step) },
	})

	if clean {
		info("Cleaning output directory...")
		builder.Clean()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	result, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	success("Build complete in %s", result.Duration.Round(1000000))
	fmt.Println()
	fmt.Println("  Output:")
	fmt.Printf("    %s/\n", cfg.Build.Output)
	if result.Binary != "" {
		fmt.Printf("    ├── app           # compiled binary\n")
	}
	fmt.Printf("    ├── %d static files (%s)\n", result.Assets, formatBytes(result.AssetBytes))
	fmt.Printf("    └── manifest.json\n")
	fmt.Println()

	return nil
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
