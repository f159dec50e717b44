package errors

import "sort"

// ErrorTemplate defines a registered error.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

var registry = map[string]ErrorTemplate{
	// Routing (H001-H009)
	"H001": {
		Category: CategoryRoute,
		Message:  "Route token decode failed",
		Detail:   "The token is not base64 of a JSON array [name, args] with a string name and an array of arguments.",
	},
	"H002": {
		Category: CategoryRoute,
		Message:  "Handler not found",
		Detail:   "The decoded route names a handler that is not registered with the dispatcher.",
	},
	"H003": {
		Category: CategoryRoute,
		Message:  "Route encode failed",
		Detail:   "One of the route arguments cannot be represented as JSON.",
	},

	// Templates (H010-H019)
	"H010": {
		Category: CategoryTemplate,
		Message:  "Template not found",
		Detail:   "No element with the requested id exists in the document.",
	},

	// Build (H100-H119)
	"H100": {
		Category: CategoryBuild,
		Message:  "Cannot read page file",
		Detail:   "The page file or a file it includes could not be opened.",
	},
	"H101": {
		Category: CategoryBuild,
		Message:  "Module not found",
		Detail:   "None of the files <module>.html, .htm, .css, .js or .hdr exist.",
	},
	"H102": {
		Category: CategoryBuild,
		Message:  "Unknown directive",
		Detail:   "Page files accept !include, !html, !css, !js, !dir, !charset and !entry_point.",
	},
	"H103": {
		Category: CategoryBuild,
		Message:  "Cannot write output",
		Detail:   "An output file could not be created or written.",
	},
	"H104": {
		Category: CategoryBuild,
		Message:  "Cannot read lang file",
		Detail:   "The lang file or a file it includes could not be opened.",
	},
	"H105": {
		Category: CategoryBuild,
		Message:  "Required file missing",
		Detail:   "A !require comment references a file that does not exist.",
	},

	// Configuration (H120-H149)
	"H120": {
		Category: CategoryConfig,
		Message:  "Cannot parse hashview.json",
		Detail:   "The configuration file is not valid JSON.",
	},
	"H121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range or missing.",
	},
	"H141": {
		Category: CategoryConfig,
		Message:  "Not a hashview project",
		Detail:   "No hashview.json was found in this directory or any parent.",
	},

	// Publishing (H160-H179)
	"H160": {
		Category: CategoryPublish,
		Message:  "Publish failed",
		Detail:   "Uploading a build output to the bucket failed.",
	},
	"H161": {
		Category: CategoryPublish,
		Message:  "No bucket configured",
		Detail:   "Set publish.bucket in hashview.json or pass --bucket.",
	},

	// CLI (H180-H199)
	"H180": {
		Category: CategoryCLI,
		Message:  "Unknown project template",
	},
	"H181": {
		Category: CategoryCLI,
		Message:  "Project already exists",
		Detail:   "The target directory already holds a hashview.json.",
	},
	"H182": {
		Category: CategoryCLI,
		Message:  "Cannot write project file",
	},
}

// GetAllCodes returns every registered code in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds or replaces a template.
func Register(code string, tmpl ErrorTemplate) {
	registry[code] = tmpl
}
