package install

import (
	"fmt"

	"git.home.luguber.info/inful/brlbind/internal/util/sets"
)

// progress is the accumulator threaded through the generation loop: which
// libraries have completed their pass, in order, and the symbols each one
// defines. Each record call returns an advanced copy instead of mutating
// shared state.
type progress struct {
	symbols   map[string][]string
	generated []string
}

func newProgress() progress {
	return progress{symbols: map[string][]string{}}
}

// record returns the progress extended with a completed library.
func (p progress) record(library string, symbols []string) progress {
	next := progress{
		symbols:   make(map[string][]string, len(p.symbols)+1),
		generated: append(append([]string{}, p.generated...), library),
	}
	for k, v := range p.symbols {
		next.symbols[k] = v
	}
	next.symbols[library] = append([]string{}, symbols...)
	return next
}

// knownSymbols unions the symbol sets of the named dependencies into a sorted
// list. Every dependency must have completed its pass; configuration
// validation guarantees that, so a miss here means the loop itself is broken.
func (p progress) knownSymbols(deps []string) ([]string, error) {
	union := sets.New[string]()
	for _, dep := range deps {
		symbols, ok := p.symbols[dep]
		if !ok {
			return nil, fmt.Errorf("library %s has not been generated yet", dep)
		}
		union.AddAll(symbols...)
	}
	return sets.SortedStrings(union), nil
}
