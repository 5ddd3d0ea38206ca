package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E101-E199)
	// ============================================

	"E101": {
		Category:   CategoryConfig,
		Message:    "Config file not found",
		Detail:     "The config file given with --config does not exist.",
		Suggestion: "Check the path, or omit --config to search for einblatt.yaml in the working directory.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Config file could not be parsed",
		Detail:   "The config file is not valid YAML or JSON.",
	},
	"E103": {
		Category:   CategoryConfig,
		Message:    "Invalid router mode",
		Suggestion: `Set router.mode to "browser", "hash" or "memory".`,
	},
	"E104": {
		Category:   CategoryConfig,
		Message:    "Invalid dev server port",
		Suggestion: "Use a port between 1 and 65535.",
	},
	"E105": {
		Category:   CategoryConfig,
		Message:    "Invalid route definition",
		Detail:     "Every entry in router.routes needs a name and a path.",
		Suggestion: "Add the missing field, for example { name: user, path: /user/:id }.",
	},
	"E106": {
		Category: CategoryConfig,
		Message:  "Duplicate route name",
		Detail:   "Route names identify routes for named navigation and must be unique.",
	},
	"E107": {
		Category:   CategoryConfig,
		Message:    "Invalid log level",
		Suggestion: `Set log.level to "debug", "info", "warn" or "error".`,
	},
	"E108": {
		Category:   CategoryConfig,
		Message:    "Invalid log format",
		Suggestion: `Set log.format to "text" or "json".`,
	},
	"E109": {
		Category:   CategoryConfig,
		Message:    "Invalid basename",
		Detail:     "router.basename must be empty or start with /.",
		Suggestion: "Use a value like /app.",
	},

	// ============================================
	// Render Errors (E201-E299)
	// ============================================

	"E201": {
		Category: CategoryRender,
		Message:  "Unsupported child value",
		Detail:   "A child of an element descriptor has a type the binder cannot mount. It was skipped.",
	},
	"E202": {
		Category: CategoryRender,
		Message:  "Invalid prop value",
		Detail:   "A prop value could not be applied to the element. It was skipped.",
	},
	"E203": {
		Category: CategoryRender,
		Message:  "HTML output failed",
		Detail:   "The rendered document could not be written.",
	},

	// ============================================
	// Routing Errors (E301-E399)
	// ============================================

	"E301": {
		Category:   CategoryRouting,
		Message:    "Unknown route",
		Suggestion: "Run einblatt routes to list the route names.",
	},
	"E302": {
		Category: CategoryRouting,
		Message:  "Redirect loop",
		Detail:   "Navigation guards kept redirecting without committing a route.",
	},
	"E303": {
		Category: CategoryRouting,
		Message:  "Router could not be created",
	},
	"E304": {
		Category: CategoryRouting,
		Message:  "No route matches",
		Detail:   "The path matches no route. Add a catch-all route (*) to handle unknown paths.",
	},
	"E305": {
		Category:   CategoryRouting,
		Message:    "Invalid navigation path",
		Detail:     "The path is not a valid URL reference, so the navigation was dropped.",
		Suggestion: "Percent-encode reserved characters, for example % as %25.",
	},

	// ============================================
	// CLI and Dev Errors (E401-E499)
	// ============================================

	"E401": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
	},
	"E402": {
		Category:   CategoryDev,
		Message:    "Dev server failed",
		Detail:     "The dev server could not listen or stopped with an error.",
		Suggestion: "Check whether another process already uses the port, or pass --port.",
	},
	"E403": {
		Category:   CategoryDev,
		Message:    "Static directory not found",
		Suggestion: "Create the directory or set dev.static in einblatt.yaml.",
	},
	"E404": {
		Category: CategoryDev,
		Message:  "File watcher failed",
	},
	"E405": {
		Category: CategoryDev,
		Message:  "Live reload connection failed",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
