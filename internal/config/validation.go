package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors exposed as sentinels so callers can branch on the failure class.
var (
	ErrNoLibraries       = errors.New("no libraries configured")
	ErrDuplicateLibrary  = errors.New("duplicate library name")
	ErrMissingHeaders    = errors.New("library has no headers")
	ErrUnknownDependency = errors.New("dependency not defined")
	ErrDependencyOrder   = errors.New("dependency declared after dependent")
	ErrDependencyCycle   = errors.New("dependency cycle")
)

// Validate checks the library list for structural problems before any
// generation pass runs. The generation loop consumes libraries in declaration
// order and threads symbol sets from dependencies to dependents, so a cycle or
// an out-of-order dependency would otherwise surface as a mid-run lookup
// failure with half the output already written.
func (c *Config) Validate() error {
	if len(c.Libraries) == 0 {
		return ErrNoLibraries
	}

	index := make(map[string]int, len(c.Libraries))
	for i, lib := range c.Libraries {
		if lib.Name == "" {
			return fmt.Errorf("library %d: name is required", i)
		}
		if _, dup := index[lib.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateLibrary, lib.Name)
		}
		index[lib.Name] = i
		if len(lib.Headers) == 0 {
			return fmt.Errorf("%w: %s", ErrMissingHeaders, lib.Name)
		}
	}

	for i, lib := range c.Libraries {
		for _, dep := range lib.Deps {
			j, ok := index[dep]
			if !ok {
				return fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, lib.Name, dep)
			}
			if j == i {
				return fmt.Errorf("%w: %s depends on itself", ErrDependencyCycle, lib.Name)
			}
			if j > i {
				// Either a plain ordering mistake or a cycle; report the cycle
				// explicitly when one exists so the fix is obvious.
				if cycle := c.findCycle(); cycle != nil {
					return fmt.Errorf("%w: %s", ErrDependencyCycle, strings.Join(cycle, " -> "))
				}
				return fmt.Errorf("%w: %s depends on %s", ErrDependencyOrder, lib.Name, dep)
			}
		}
	}

	return nil
}

// findCycle returns one dependency cycle as a name path (closed, first == last),
// or nil when the graph is acyclic.
func (c *Config) findCycle() []string {
	deps := make(map[string][]string, len(c.Libraries))
	for _, lib := range c.Libraries {
		deps[lib.Name] = lib.Deps
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(deps))
	var stack []string

	var visit func(name string) []string
	visit = func(name string) []string {
		state[name] = visiting
		stack = append(stack, name)
		for _, dep := range deps[name] {
			switch state[dep] {
			case visiting:
				// Close the loop from the first occurrence of dep on the stack.
				for i, n := range stack {
					if n == dep {
						return append(append([]string{}, stack[i:]...), dep)
					}
				}
			case unvisited:
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return nil
	}

	for _, lib := range c.Libraries {
		if state[lib.Name] == unvisited {
			if cycle := visit(lib.Name); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// LibraryNames returns the configured names in declaration order.
func (c *Config) LibraryNames() []string {
	names := make([]string, len(c.Libraries))
	for i, lib := range c.Libraries {
		names[i] = lib.Name
	}
	return names
}
