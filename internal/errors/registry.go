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
	// Access Errors (E101-E102)
	// ============================================

	"E101": {
		Category:   CategoryAccess,
		Message:    "State is already borrowed",
		Detail:     "An exclusive borrow was requested while another borrow of the same state was open. Mutators must not synchronously trigger other mutators on the same state.",
		Suggestion: "Move the nested update into an async task (BindAsync) or return Render and let the render pass observe the change.",
	},
	"E102": {
		Category:   CategoryAccess,
		Message:    "State is exclusively borrowed",
		Detail:     "A shared borrow was requested while a mutator held exclusive access to the same state.",
		Suggestion: "Do not read a Hook from inside a mutator; use the *S passed to the mutator instead.",
	},

	// ============================================
	// Protocol Errors (E103-E119)
	// ============================================

	"E103": {
		Category:   CategoryProtocol,
		Message:    "Not an element",
		Detail:     "An element operation was invoked on a product that only represents a listener binding. This indicates a defect in generated template code.",
		Suggestion: "Attach listener products with Host.Listen instead of mounting them.",
	},
	"E104": {
		Category:   CategoryProtocol,
		Message:    "Product type mismatch",
		Detail:     "A view was asked to update a product it did not build. Each mount position must keep a fixed view type across render passes.",
		Suggestion: "Wrap views whose type changes between passes in view.Maybe or split them into separate positions.",
	},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration",
		Detail:     "tether.json could not be read or contains an invalid value.",
		Suggestion: "Check that tether.json is valid JSON and that levels and limits use supported values.",
	},
	"E121": {
		Category:   CategoryConfig,
		Message:    "Configuration already exists",
		Detail:     "tether.json is already present in the target directory.",
		Suggestion: "Pass --force to overwrite it.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
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
