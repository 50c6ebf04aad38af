package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyLibrary    = "library"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyHeaders    = "headers"
	KeySymbols    = "symbols"
	KeyDurationMS = "duration_ms"
	KeyVersion    = "brlcad_version"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Library(name string) slog.Attr    { return slog.String(KeyLibrary, name) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Headers(n int) slog.Attr          { return slog.Int(KeyHeaders, n) }
func Symbols(n int) slog.Attr          { return slog.Int(KeySymbols, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func BrlcadVersion(v string) slog.Attr { return slog.String(KeyVersion, v) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
