// Package logschema holds the process-wide key-naming convention for log
// events: which field carries the message, the timestamp, the originating
// host, and so on. opctl's compile command sets it once, from the loaded
// configuration's `[schema]` section, after the fragments are loaded and
// before the topology is compiled — see SPEC_FULL.md's "Global state" note.
package logschema

import (
	"sync"

	"github.com/opmodel/topology/internal/builder"
)

// LogSchema names the well-known fields a runtime event carries. Mirrors
// builder.SchemaOptions, the `[schema]` fragment section this is seeded
// from.
type LogSchema struct {
	MessageKey   string
	TimestampKey string
	HostKey      string
}

// Default is the schema used when a configuration never overrides it.
func Default() LogSchema {
	return LogSchema{
		MessageKey:   "message",
		TimestampKey: "timestamp",
		HostKey:      "host",
	}
}

// FromOptions builds a LogSchema from a parsed `[schema]` section, filling
// any blank field from Default().
func FromOptions(opts *builder.SchemaOptions) LogSchema {
	s := Default()
	if opts == nil {
		return s
	}
	if opts.HostKey != "" {
		s.HostKey = opts.HostKey
	}
	if opts.MessageKey != "" {
		s.MessageKey = opts.MessageKey
	}
	if opts.TimestampKey != "" {
		s.TimestampKey = opts.TimestampKey
	}
	return s
}

// AlreadySetError reports a second call to Init with denyIfSet true.
type AlreadySetError struct{}

func (AlreadySetError) Error() string {
	return "log schema has already been initialized"
}

var (
	mu   sync.Mutex
	set  bool
	schema LogSchema
)

// Init sets the process-wide log schema. A second call is a no-op unless
// denyIfSet is true, in which case it returns AlreadySetError. opctl's
// compile command passes false.
func Init(s LogSchema, denyIfSet bool) error {
	mu.Lock()
	defer mu.Unlock()

	if set {
		if denyIfSet {
			return AlreadySetError{}
		}
		return nil
	}
	schema = s
	set = true
	return nil
}

// Get returns the current process-wide schema, or Default() if Init was
// never called.
func Get() LogSchema {
	mu.Lock()
	defer mu.Unlock()

	if !set {
		return Default()
	}
	return schema
}

// reset clears the global schema, for use between test cases in this
// package only.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	set = false
	schema = LogSchema{}
}
