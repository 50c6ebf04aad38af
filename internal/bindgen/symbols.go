package bindgen

import (
	"fmt"
	"os"
	"regexp"

	"git.home.luguber.info/inful/brlbind/internal/util/sets"
)

var (
	allListRe   = regexp.MustCompile(`(?s)__all__\s*=\s*\[(.*?)\]`)
	quotedRe    = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
	assignRe    = regexp.MustCompile(`(?m)^([A-Za-z_][A-Za-z0-9_]*)\s*=`)
	defClassRe  = regexp.MustCompile(`(?m)^(?:def|class)\s+([A-Za-z_][A-Za-z0-9_]*)`)
	privateName = regexp.MustCompile(`^_`)
)

// HarvestSymbols extracts the export list a generated wrapper declares.
//
// The generator records its exports in a literal __all__ list; that is the
// authoritative source. Wrappers emitted without one are scanned for top level
// assignments and def/class statements instead, skipping private names, which
// matches what the wrapper would expose to importers.
func HarvestSymbols(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read generated wrapper: %w", err)
	}

	if m := allListRe.FindSubmatch(data); m != nil {
		return parseExportList(m[1]), nil
	}
	return scanDeclarations(data), nil
}

func parseExportList(body []byte) []string {
	matches := quotedRe.FindAllSubmatch(body, -1)
	out := make([]string, 0, len(matches))
	seen := sets.New[string]()
	for _, m := range matches {
		name := string(m[1])
		if name == "" {
			name = string(m[2])
		}
		if name == "" || seen.Has(name) {
			continue
		}
		seen.Add(name)
		out = append(out, name)
	}
	return out
}

func scanDeclarations(data []byte) []string {
	seen := sets.New[string]()
	out := make([]string, 0, 64)
	collect := func(matches [][][]byte) {
		for _, m := range matches {
			name := string(m[1])
			if privateName.MatchString(name) || seen.Has(name) {
				continue
			}
			seen.Add(name)
			out = append(out, name)
		}
	}
	collect(assignRe.FindAllSubmatch(data, -1))
	collect(defClassRe.FindAllSubmatch(data, -1))
	return out
}
