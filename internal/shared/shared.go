// package shared defines shared helpers
package shared

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// NopLogger returns a [log.Logger] that discards everything. Library packages fall back to it when no logger is supplied.
func NopLogger() *log.Logger {
	l := log.New(io.Discard)
	l.SetLevel(log.FatalLevel)
	return l
}

// WithLogger creates a child [log.Logger] with the specified key-value pairs added to all log entries.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel sets the [log.Level] for the given [log.Logger].
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// ParseLogLevel parses a level name ("debug", "info", ...), defaulting to info for an empty string.
func ParseLogLevel(s string) (log.Level, error) {
	if strings.TrimSpace(s) == "" {
		return log.InfoLevel, nil
	}
	ll, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("%w: log level %q", ErrInvalidConfig, s)
	}
	return ll, nil
}

// GenerateID generates a new v4 [uuid.UUID] as a string
func GenerateID() string {
	return uuid.New().String()
}

// TimeID builds a time-based identifier such as "list-1717171717171-3f2a9c1e".
//
// The millisecond timestamp keeps ids roughly creation ordered; the uuid suffix keeps ids minted within the same millisecond unique.
func TimeID(prefix string, at time.Time, parts ...any) string {
	var b strings.Builder
	b.WriteString(prefix)
	fmt.Fprintf(&b, "-%d", at.UnixMilli())
	for _, p := range parts {
		fmt.Fprintf(&b, "-%v", p)
	}
	b.WriteString("-")
	b.WriteString(strings.SplitN(GenerateID(), "-", 2)[0])
	return b.String()
}

// Now returns the current time truncated to microseconds in UTC, the precision sqlite round-trips.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Username derives a display name from the local part of an email address.
func Username(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// MarshalJSON encodes v, indented with two spaces when pretty is set.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
