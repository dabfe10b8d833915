package identity

import (
	"fmt"
	"sync"

	"github.com/go-drift/ident/pkg/logging"
)

// Mode selects the identifier generation strategy.
type Mode int

const (
	// ModeAutomatic derives identifiers from the node's position in the tree.
	ModeAutomatic Mode = iota
	// ModeManual uses only developer-supplied identifiers, never synthesizing
	// path-based strings.
	ModeManual
	// ModeDisabled suppresses identifier generation entirely.
	ModeDisabled
)

func (m Mode) String() string {
	switch m {
	case ModeAutomatic:
		return "automatic"
	case ModeManual:
		return "manual"
	case ModeDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "automatic":
		return ModeAutomatic, nil
	case "manual":
		return ModeManual, nil
	case "disabled":
		return ModeDisabled, nil
	default:
		return ModeAutomatic, fmt.Errorf("unknown identifier mode %q", s)
	}
}

// Snapshot is an immutable view of the configuration at one point in time.
// Mutations made after a snapshot is taken are not reflected in it.
type Snapshot struct {
	// Enabled globally toggles identifier generation.
	Enabled bool
	// Namespace prefixes every generated identifier. An empty namespace is a
	// valid degraded state: generation proceeds and the prefix is omitted.
	Namespace string
	// Mode selects the generation strategy.
	Mode Mode
	// DebugLogging emits a trace of every generation call.
	DebugLogging bool
}

// DefaultSnapshot returns the documented configuration defaults:
// enabled, empty namespace, automatic mode, debug logging off.
func DefaultSnapshot() Snapshot {
	return Snapshot{Enabled: true, Namespace: "", Mode: ModeAutomatic, DebugLogging: false}
}

// Config is the shared, mutable identifier configuration. Reads and writes
// are serialized internally so a reader never observes a torn update.
//
// Mutations only affect identifiers generated afterwards; strings already
// bound to nodes are not rewritten.
type Config struct {
	mu     sync.RWMutex
	snap   Snapshot
	logger logging.Logger
}

// NewConfig creates a configuration holding the documented defaults.
func NewConfig() *Config {
	return &Config{
		snap:   DefaultSnapshot(),
		logger: logging.NewLogger(nil),
	}
}

// Get returns a snapshot of the current configuration.
func (c *Config) Get() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// SetEnabled toggles identifier generation.
func (c *Config) SetEnabled(enabled bool) {
	c.mu.Lock()
	c.snap.Enabled = enabled
	c.mu.Unlock()
}

// SetNamespace replaces the identifier namespace. Any value is accepted;
// an empty namespace simply drops the prefix from generated identifiers.
func (c *Config) SetNamespace(namespace string) {
	c.mu.Lock()
	c.snap.Namespace = namespace
	c.mu.Unlock()
}

// SetMode selects the generation strategy.
func (c *Config) SetMode(mode Mode) {
	c.mu.Lock()
	c.snap.Mode = mode
	c.mu.Unlock()
}

// SetDebugLogging toggles the generation trace.
func (c *Config) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	c.snap.DebugLogging = enabled
	c.mu.Unlock()
}

// ResetToDefaults atomically restores the documented default snapshot.
// Test harnesses call this between independent test cases.
func (c *Config) ResetToDefaults() {
	c.mu.Lock()
	c.snap = DefaultSnapshot()
	c.mu.Unlock()
}

// SetLogger replaces the logger used for the generation trace.
// Pass nil to restore the default stderr logger.
func (c *Config) SetLogger(logger logging.Logger) {
	c.mu.Lock()
	if logger == nil {
		logger = logging.NewLogger(nil)
	}
	c.logger = logger
	c.mu.Unlock()
}

// Logger returns the logger used for the generation trace.
func (c *Config) Logger() logging.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logger
}
