package testing

import (
	"testing"

	"github.com/go-drift/ident/pkg/core"
	"github.com/go-drift/ident/pkg/identity"
	"github.com/go-drift/ident/pkg/widgets"
)

// TreeTester provides isolated widget tree testing. Each tester owns its own
// build owner and identifier configuration, so tests can run in parallel
// without sharing any mutable state: the pumped tree is wrapped in an
// IdentifierScope carrying the tester's config.
type TreeTester struct {
	buildOwner *core.BuildOwner
	root       core.Element
	config     *identity.Config
}

// NewTreeTester creates a tester with a fresh default configuration.
// Call Cleanup() when done, or use NewTreeTesterWithT() instead.
func NewTreeTester() *TreeTester {
	return &TreeTester{
		buildOwner: core.NewBuildOwner(),
		config:     identity.NewConfig(),
	}
}

// NewTreeTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTreeTesterWithT(t *testing.T) *TreeTester {
	tester := NewTreeTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree and restores the tester's configuration to
// defaults. Must be called if not using NewTreeTesterWithT.
func (t *TreeTester) Cleanup() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
	t.config.ResetToDefaults()
}

// Config returns the tester's identifier configuration. Mutate it before
// PumpWidget to control how identifiers are generated.
func (t *TreeTester) Config() *identity.Config {
	return t.config
}

// PumpWidget mounts the widget as the root of a new tree, replacing any
// previously pumped tree. The widget is wrapped in an IdentifierScope so
// attachers see the tester's configuration.
func (t *TreeTester) PumpWidget(widget core.Widget) {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
	scoped := widgets.IdentifierScope{Config: t.config, Child: widget}
	t.root = core.MountRoot(scoped, t.buildOwner)
}

// Pump flushes pending rebuilds scheduled by MarkNeedsBuild or SetState.
func (t *TreeTester) Pump() {
	t.buildOwner.FlushBuild()
}

// RootElement returns the root of the mounted tree, or nil before PumpWidget.
func (t *TreeTester) RootElement() core.Element {
	return t.root
}

// Find evaluates a finder against the mounted tree.
func (t *TreeTester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{elements: finder.Evaluate(t.root), finder: finder}
}

// IdentifierOf resolves the identifier visible at the first element matched
// by the finder.
func (t *TreeTester) IdentifierOf(finder Finder) (string, bool) {
	return t.Find(finder).Identifier()
}

// AllIdentifiers returns every bound identifier in the mounted tree in
// traversal order.
func (t *TreeTester) AllIdentifiers() []string {
	if t.root == nil {
		return nil
	}
	return AllIdentifiers(t.root)
}
