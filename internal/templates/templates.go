package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/veld-dev/veld/internal/errors"
)

// Config contains the values substituted into template files.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// ModulePath is the Go module path.
	ModulePath string

	// Description is a short project description.
	Description string
}

// Template is a named set of scaffold files.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files maps relative paths to file contents.
	Files map[string]string
}

var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"counter": counterTemplate(),
	"router":  routerTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E081").
			WithDetail("Template '" + name + "' not found")
	}
	return tmpl, nil
}

// List returns the available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create generates a project from the template into dir.
func (t *Template) Create(dir string, cfg Config) error {
	for relPath, content := range t.Files {
		tmpl, err := template.New(relPath).Parse(content)
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}

func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "Just the essentials for a Veld app",
		Files: map[string]string{
			"app/main.go": `package main

import (
	"github.com/veld-dev/veld/pkg/dom"
	"github.com/veld-dev/veld/pkg/loop"
	"github.com/veld-dev/veld/pkg/runtime"
	. "github.com/veld-dev/veld/pkg/vdom"
)

func main() {
	doc := dom.NewDocument()
	app := runtime.NewApp(loop.New(loop.RealClock{}))

	if _, err := app.Mount(HomePage, doc.Body()); err != nil {
		panic(err)
	}
	select {}
}

// HomePage is the root component.
func HomePage(Props) *VNode {
	return Div(
		H1("Welcome to {{.ProjectName}}"),
		P("{{.Description}}"),
	)
}
`,
			"go.mod": `module {{.ModulePath}}

go 1.23

require github.com/veld-dev/veld v0.1.0
`,
			"veld.json": `{
  "name": "{{.ProjectName}}",
  "dev": {
    "port": 3000,
    "liveReload": true
  },
  "build": {
    "output": "dist",
    "minify": true
  }
}
`,
			"public/index.html": `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.ProjectName}}</title>
</head>
<body>
  <div id="app"></div>
</body>
</html>
`,
		},
	}
}

func counterTemplate() *Template {
	return &Template{
		Name:        "counter",
		Description: "Starter with stateful components and hooks",
		Files: map[string]string{
			"app/main.go": `package main

import (
	"github.com/veld-dev/veld/pkg/dom"
	"github.com/veld-dev/veld/pkg/loop"
	"github.com/veld-dev/veld/pkg/runtime"
	. "github.com/veld-dev/veld/pkg/vdom"
)

func main() {
	doc := dom.NewDocument()
	app := runtime.NewApp(loop.New(loop.RealClock{}))

	root := doc.GetElementByID("app")
	if _, err := app.Mount(HomePage, root); err != nil {
		panic(err)
	}
	select {}
}

// HomePage is the root component.
func HomePage(Props) *VNode {
	return Div(Class("page"),
		H1("Welcome to {{.ProjectName}}"),
		P("{{.Description}}"),
		MustCreateElement(Counter, nil),
	)
}

// Counter demonstrates state hooks and event handlers.
func Counter(Props) *VNode {
	count, setCount := runtime.UseState(0)

	return Div(Class("counter"),
		Button(OnClick(func() { setCount(count - 1) }), "-"),
		Span(Textf("%d", count)),
		Button(OnClick(func() { setCount(count + 1) }), "+"),
	)
}
`,
			"go.mod": `module {{.ModulePath}}

go 1.23

require github.com/veld-dev/veld v0.1.0
`,
			"veld.json": `{
  "name": "{{.ProjectName}}",
  "dev": {
    "port": 3000,
    "host": "localhost",
    "liveReload": true
  },
  "build": {
    "output": "dist",
    "minify": true
  }
}
`,
			"public/index.html": `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.ProjectName}}</title>
  <link rel="stylesheet" href="/styles.css">
</head>
<body>
  <div id="app"></div>
</body>
</html>
`,
			"public/styles.css": `body {
  font-family: system-ui, sans-serif;
  max-width: 800px;
  margin: 0 auto;
  padding: 2rem;
}

.counter {
  display: flex;
  gap: 0.5rem;
  align-items: center;
}
`,
			"README.md": `# {{.ProjectName}}

{{.Description}}

## Getting Started

` + "```" + `bash
# Start the development server
veld dev

# Build for production
veld build

# Upload the build output
veld deploy
` + "```" + `

## Project Structure

` + "```" + `
{{.ProjectName}}/
├── app/
│   └── main.go       # Entry point and components
├── public/           # Static assets
├── veld.json         # Project configuration
└── README.md
` + "```" + `
`,
		},
	}
}

func routerTemplate() *Template {
	return &Template{
		Name:        "router",
		Description: "Multi-page starter with client-side routing",
		Files: map[string]string{
			"app/main.go": `package main

import (
	"github.com/veld-dev/veld/pkg/dom"
	"github.com/veld-dev/veld/pkg/loop"
	"github.com/veld-dev/veld/pkg/router"
	"github.com/veld-dev/veld/pkg/runtime"
	. "github.com/veld-dev/veld/pkg/vdom"
)

func main() {
	doc := dom.NewDocument()
	app := runtime.NewApp(loop.New(loop.RealClock{}))

	r := router.New(app, doc, nil)
	r.AddRoute("/", HomePage)
	r.AddRoute("/about", AboutPage)
	r.AddRoute("/user/:id", UserPage)
	r.AddRoute("*", NotFoundPage)

	if err := r.Start("app"); err != nil {
		panic(err)
	}
	select {}
}

// HomePage is the landing page.
func HomePage(Props) *VNode {
	return Div(
		H1("Welcome to {{.ProjectName}}"),
		P("{{.Description}}"),
	)
}

// AboutPage describes the project.
func AboutPage(Props) *VNode {
	return Div(
		H1("About"),
		P("Built with Veld."),
	)
}

// UserPage shows the captured route parameter.
func UserPage(props Props) *VNode {
	params := props["params"].(router.Params)
	return Div(
		H1("User"),
		P("id: " + params["id"]),
	)
}

// NotFoundPage catches unknown paths.
func NotFoundPage(Props) *VNode {
	return Div(H1("Not found"))
}
`,
			"go.mod": `module {{.ModulePath}}

go 1.23

require github.com/veld-dev/veld v0.1.0
`,
			"veld.json": `{
  "name": "{{.ProjectName}}",
  "dev": {
    "port": 3000,
    "liveReload": true
  },
  "build": {
    "output": "dist",
    "minify": true
  }
}
`,
			"public/index.html": `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.ProjectName}}</title>
</head>
<body>
  <div id="app"></div>
</body>
</html>
`,
		},
	}
}
