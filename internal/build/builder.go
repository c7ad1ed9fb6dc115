package build

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/veld-dev/veld/internal/config"
	"github.com/veld-dev/veld/internal/errors"
)

// Result contains the build output.
type Result struct {
	// Duration is how long the build took.
	Duration time.Duration

	// Binary is the path to the compiled app binary, empty when
	// compilation was skipped.
	Binary string

	// Assets is the number of static files copied.
	Assets int

	// AssetBytes is the total size of copied assets.
	AssetBytes int64

	// Manifest maps original asset names to their published names.
	Manifest map[string]string
}

// Options configures the builder.
type Options struct {
	// Minify enables cache-busted asset names.
	Minify bool

	// Tags are build tags passed to go build.
	Tags []string

	// SkipCompile copies assets without compiling the app binary.
	SkipCompile bool

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Builder produces the dist/ directory for a project.
type Builder struct {
	config  *config.Config
	options Options
	root    string
}

// New creates a builder. The project root is taken from where the
// config was loaded, falling back to the working directory.
func New(cfg *config.Config, options Options) *Builder {
	if !options.Minify && cfg.Build.Minify {
		options.Minify = true
	}
	if len(options.Tags) == 0 && len(cfg.Build.Tags) > 0 {
		options.Tags = cfg.Build.Tags
	}

	root := cfg.Dir()
	if root == "" {
		root = "."
	}
	return &Builder{config: cfg, options: options, root: root}
}

// OutputDir returns the absolute build output directory.
func (b *Builder) OutputDir() string {
	return filepath.Join(b.root, b.config.Build.Output)
}

// Clean removes the output directory.
func (b *Builder) Clean() error {
	return os.RemoveAll(b.OutputDir())
}

// Build performs a production build: static assets from the public
// directory are copied into the output (cache-busted when minifying),
// the app package is compiled, and an asset manifest is written.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{Manifest: make(map[string]string)}

	outputDir := b.OutputDir()
	b.progress("Cleaning output directory...")
	if err := os.RemoveAll(outputDir); err != nil {
		return nil, errors.New("E090").Wrap(err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.New("E090").Wrap(err)
	}

	b.progress("Copying static assets...")
	if err := b.copyAssets(outputDir, result); err != nil {
		return nil, err
	}

	if !b.options.SkipCompile {
		b.progress("Compiling app...")
		binary := filepath.Join(outputDir, "app")
		if err := b.compile(ctx, binary); err != nil {
			return nil, err
		}
		result.Binary = binary
	}

	b.progress("Writing manifest...")
	if err := b.writeManifest(outputDir, result.Manifest); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

// copyAssets copies everything under the public directory into the
// output. Non-HTML assets get a content-hash suffix when minifying so
// they can be cached forever.
func (b *Builder) copyAssets(outputDir string, result *Result) error {
	publicDir := filepath.Join(b.root, b.config.Paths.Public)
	info, err := os.Stat(publicDir)
	if err != nil || !info.IsDir() {
		// Nothing to copy.
		return nil
	}

	return filepath.Walk(publicDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.New("E090").Wrap(err)
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(publicDir, p)
		if err != nil {
			return err
		}

		published := rel
		if b.options.Minify && !strings.HasSuffix(rel, ".html") {
			published, err = bustedName(p, rel)
			if err != nil {
				return errors.New("E090").Wrap(err)
			}
		}

		dst := filepath.Join(outputDir, published)
		if err := copyFile(p, dst); err != nil {
			return errors.New("E090").Wrap(err)
		}

		result.Manifest[filepath.ToSlash(rel)] = filepath.ToSlash(published)
		result.Assets++
		result.AssetBytes += info.Size()
		return nil
	})
}

// compile builds the app package into the output directory.
func (b *Builder) compile(ctx context.Context, output string) error {
	appDir := filepath.Join(b.root, b.config.Paths.App)
	if _, err := os.Stat(appDir); err != nil {
		return errors.New("E090").
			WithDetail("App directory " + appDir + " does not exist")
	}

	args := []string{"build", "-o", output, "-ldflags", "-s -w"}
	if len(b.options.Tags) > 0 {
		args = append(args, "-tags", strings.Join(b.options.Tags, ","))
	}
	args = append(args, "./"+b.config.Paths.App)

	cmd := exec.CommandContext(ctx, "go", args...)
	cmd.Dir = b.root
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.New("E090").
			WithDetail(strings.TrimSpace(string(out))).
			Wrap(err)
	}
	return nil
}

func (b *Builder) writeManifest(outputDir string, manifest map[string]string) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errors.New("E090").Wrap(err)
	}
	data = append(data, '\n')
	return os.WriteFile(filepath.Join(outputDir, "manifest.json"), data, 0644)
}

func (b *Builder) progress(step string) {
	if b.options.OnProgress != nil {
		b.options.OnProgress(step)
	}
}

// bustedName inserts the first 8 hex chars of the file's sha256 before
// the extension: styles.css becomes styles.d41d8cd9.css.
func bustedName(path, rel string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	sum := hex.EncodeToString(h.Sum(nil))[:8]

	ext := filepath.Ext(rel)
	return strings.TrimSuffix(rel, ext) + "." + sum + ext, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
