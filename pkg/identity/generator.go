package identity

import "strings"

// Request carries the per-node inputs to identifier generation.
type Request struct {
	// Role describes the node's function, e.g. "element" or "button".
	Role string
	// Label is an optional developer-supplied label override.
	Label string
	// DeclaredName is the node's structural name, used when no label is set.
	DeclaredName string
	// ManualID is a developer-supplied identifier. In manual mode it is the
	// only source of identifiers; in automatic mode a non-empty value wins
	// over the derived string.
	ManualID string
}

// Generator produces identifier strings from a request and the traversal
// state. It holds no per-traversal state of its own; a single generator may
// serve any number of concurrent traversals as long as each traversal owns
// its tracker.
type Generator struct {
	config *Config
}

// NewGenerator creates a generator reading from the given configuration.
func NewGenerator(config *Config) *Generator {
	return &Generator{config: config}
}

// Config returns the configuration the generator reads from.
func (g *Generator) Config() *Config {
	return g.config
}

// Generate returns the identifier for the node whose segment sits on top of
// the tracker's breadcrumb. The second return value reports whether an
// identifier applies at all; when it is false the node must be left without
// an identifier rather than given an empty one.
//
// The config is snapshotted once per call, so a concurrent mutation cannot
// produce an identifier mixing old and new settings.
func (g *Generator) Generate(req Request, tracker *Tracker) (string, bool) {
	snap := g.config.Get()

	id, ok := g.generate(req, tracker, snap)
	if snap.DebugLogging {
		g.config.Logger().Debug("identifier generated",
			"trace", tracker.TraceID(),
			"role", req.Role,
			"mode", snap.Mode.String(),
			"id", id,
			"applied", ok,
		)
	}
	return id, ok
}

func (g *Generator) generate(req Request, tracker *Tracker, snap Snapshot) (string, bool) {
	if !snap.Enabled || snap.Mode == ModeDisabled {
		return "", false
	}

	if snap.Mode == ModeManual {
		if req.ManualID == "" {
			return "", false
		}
		return req.ManualID, true
	}

	// Automatic mode. A manual identifier still wins when present.
	if req.ManualID != "" {
		return req.ManualID, true
	}

	path := tracker.CurrentPath()
	var node PathSegment
	if len(path) > 0 {
		node = path[len(path)-1]
		path = path[:len(path)-1]
	} else {
		// Root-level node generated outside an entered scope. Derived without
		// the sibling ledger so repeated calls stay idempotent.
		node = newSegment(req.Role, req.Label, req.DeclaredName)
	}

	parts := make([]string, 0, len(path)+3)
	if snap.Namespace != "" {
		parts = append(parts, snap.Namespace)
	}
	for _, seg := range path {
		if r := seg.render(); r != "" {
			parts = append(parts, r)
		}
	}
	if node.Role != "" {
		parts = append(parts, node.Role)
	}
	if r := node.render(); r != "" {
		parts = append(parts, r)
	}
	return strings.Join(parts, "."), true
}
