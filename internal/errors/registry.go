package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	DocURL     string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E019)
	// ============================================

	"E001": {
		Category:   CategoryRuntime,
		Message:    "Hook called outside component context",
		Detail:     "Hooks like UseState and UseEffect only work inside a component's render function, where the runtime tracks the current scope.",
		Suggestion: "Move the hook call into the component body, or capture what you need during render.",
		DocURL:     "https://veld.dev/docs/errors/E001",
	},
	"E002": {
		Category:   CategoryRuntime,
		Message:    "Hook order changed between renders",
		Detail:     "State slots are matched to hooks by call order. A hook call inside a conditional or loop makes the Nth call address the wrong slot.",
		Suggestion: "Call every hook unconditionally at the top of the component; branch on the values instead.",
		DocURL:     "https://veld.dev/docs/errors/E002",
	},
	"E003": {
		Category:   CategoryRuntime,
		Message:    "State updated after unmount",
		Detail:     "A setter, timer or async resolution fired for a component that has been disposed. The update was dropped.",
		DocURL:     "https://veld.dev/docs/errors/E003",
	},
	"E004": {
		Category:   CategoryRuntime,
		Message:    "Invalid mount container",
		Detail:     "Mount requires a live element to render into.",
		Suggestion: "Pass the element obtained from the document, not nil.",
		DocURL:     "https://veld.dev/docs/errors/E004",
	},
	"E005": {
		Category:   CategoryRuntime,
		Message:    "Invalid component",
		Detail:     "Mount accepts a component function, a Component value, or a virtual node tree.",
		DocURL:     "https://veld.dev/docs/errors/E005",
	},

	// ============================================
	// Render Errors (E020-E039)
	// ============================================

	"E020": {
		Category:   CategoryRender,
		Message:    "Component panicked during render",
		Detail:     "The failure was contained to the component's subtree and a fallback node was rendered in its place.",
		DocURL:     "https://veld.dev/docs/errors/E020",
	},
	"E021": {
		Category:   CategoryRender,
		Message:    "Invalid virtual node type",
		Detail:     "CreateElement received a value it cannot turn into an element: not a tag name, component function, or Component.",
		DocURL:     "https://veld.dev/docs/errors/E021",
	},

	// ============================================
	// Routing Errors (E040-E059)
	// ============================================

	"E040": {
		Category:   CategoryRouting,
		Message:    "No route found",
		Detail:     "The navigated path matched no registered pattern and no wildcard route is registered.",
		Suggestion: "Register a \"*\" wildcard route to catch unknown paths.",
		DocURL:     "https://veld.dev/docs/errors/E040",
	},
	"E041": {
		Category:   CategoryRouting,
		Message:    "Lazy route failed to load",
		Detail:     "The route's loader returned an error or panicked. The previous page was left in place.",
		DocURL:     "https://veld.dev/docs/errors/E041",
	},
	"E042": {
		Category:   CategoryRouting,
		Message:    "Router root element not found",
		Detail:     "Start was called with an element id that does not exist in the document.",
		Suggestion: "Make sure the host page contains the root element before starting the router.",
		DocURL:     "https://veld.dev/docs/errors/E042",
	},

	// ============================================
	// Config Errors (E060-E079)
	// ============================================

	"E060": {
		Category:   CategoryConfig,
		Message:    "veld.json not found",
		Detail:     "Commands that operate on a project need a veld.json at the project root.",
		Suggestion: "Run `veld create <name>` to scaffold a project, or run the command from the project directory.",
		DocURL:     "https://veld.dev/docs/errors/E060",
	},
	"E061": {
		Category:   CategoryConfig,
		Message:    "Invalid veld.json",
		Detail:     "The project file exists but could not be parsed or failed validation.",
		DocURL:     "https://veld.dev/docs/errors/E061",
	},

	// ============================================
	// CLI Errors (E080-E099)
	// ============================================

	"E080": {
		Category:   CategoryCLI,
		Message:    "Project directory already exists",
		Suggestion: "Choose a different project name or remove the existing directory.",
		DocURL:     "https://veld.dev/docs/errors/E080",
	},
	"E081": {
		Category:   CategoryCLI,
		Message:    "Unknown project template",
		Suggestion: "Run `veld create --help` to see the available templates.",
		DocURL:     "https://veld.dev/docs/errors/E081",
	},
	"E090": {
		Category:   CategoryCLI,
		Message:    "Build failed",
		Detail:     "The production build could not be completed.",
		DocURL:     "https://veld.dev/docs/errors/E090",
	},

	// ============================================
	// Deploy Errors (E100-E119)
	// ============================================

	"E100": {
		Category:   CategoryDeploy,
		Message:    "Build output missing",
		Detail:     "Deploy uploads the dist/ directory, which does not exist yet.",
		Suggestion: "Run `veld build` before deploying.",
		DocURL:     "https://veld.dev/docs/errors/E100",
	},
	"E101": {
		Category:   CategoryDeploy,
		Message:    "Upload failed",
		Detail:     "One or more files could not be uploaded to the target bucket.",
		DocURL:     "https://veld.dev/docs/errors/E101",
	},
}

// Register adds a custom error template. Existing codes are overwritten.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

// Lookup returns the template registered for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
