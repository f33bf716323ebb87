package tenv

import "github.com/elixir-tools/texpand/internal/diag"

// Validate checks that env carries the collaborators every expansion
// needs before the Expander is ever invoked on it — a nil provider
// would otherwise surface as a panic deep inside a resolver instead of
// a clear message at the call boundary.
func (e *Environment) Validate() error {
	var errs diag.List
	site := diag.Site{Name: "environment"}
	if e.Introspection == nil {
		errs.Addf(site, "introspection provider is required")
	}
	if e.Typespec == nil {
		errs.Addf(site, "typespec provider is required")
	}
	if e.Parser == nil {
		errs.Addf(site, "spec text parser is required")
	}
	if e.Structs == nil {
		errs.Addf(site, "struct provider is required")
	}
	for k := range e.Specs {
		if k.Module == "" || k.Fun == "" {
			errs.Addf(diag.Site{Module: k.Module, Name: k.Fun}, "spec key has empty module or function name")
		}
	}
	errs.Sort()
	return errs.Err()
}
