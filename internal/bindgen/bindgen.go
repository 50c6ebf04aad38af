// Package bindgen defines the interface to the external header-to-binding
// generator and the production implementation that drives it as a subprocess.
//
// brlbind never parses C headers itself. The generator is treated as a single
// capability: feed it one library's headers plus the symbols its dependencies
// already define, get back a wrapper source file and the export list that file
// declares.
package bindgen

import "context"

// Options drives one generation pass for a single library.
type Options struct {
	// Library is the short library name, e.g. "bu".
	Library string

	// Headers are the absolute header paths to feed the generator.
	Headers []string

	// Output is the wrapper source file the generator must produce.
	Output string

	// IncludeDirs are extra include search paths for the generator's parser.
	IncludeDirs []string

	// DependencyModules are the names of previously generated wrapper modules
	// the emitted source should import instead of redefining their contents.
	DependencyModules []string

	// KnownSymbols are names already defined by the dependency modules. The
	// generator suppresses duplicate declarations for these.
	KnownSymbols []string
}

// Result is the outcome of one generation pass.
type Result struct {
	// Output is the path of the generated wrapper source file.
	Output string

	// Symbols is the export list the generated wrapper declares. Later passes
	// feed these back in as KnownSymbols for dependent libraries.
	Symbols []string
}

// Generator produces one wrapper source file per invocation.
type Generator interface {
	Generate(ctx context.Context, opts Options) (Result, error)
}
