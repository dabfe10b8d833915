package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/ident/pkg/logging"
)

func newTestGenerator(t *testing.T, mutate func(*Config)) *Generator {
	t.Helper()
	c := NewConfig()
	c.SetNamespace("SixLayer")
	if mutate != nil {
		mutate(c)
	}
	return NewGenerator(c)
}

func TestGenerateAutomatic(t *testing.T) {
	g := newTestGenerator(t, nil)
	tr := NewTracker()

	scope := tr.Enter(tr.Describe("element", "", "CollectionEmptyStateView"))
	defer scope.Exit()

	id, ok := g.Generate(Request{Role: "element", DeclaredName: "CollectionEmptyStateView"}, tr)
	require.True(t, ok)
	assert.Equal(t, "SixLayer.element.collectionemptystateview", id)
}

func TestGenerateSiblingDisambiguation(t *testing.T) {
	g := newTestGenerator(t, nil)
	tr := NewTracker()

	first := tr.Enter(tr.Describe("element", "", "CollectionEmptyStateView"))
	id1, ok := g.Generate(Request{Role: "element", DeclaredName: "CollectionEmptyStateView"}, tr)
	require.True(t, ok)
	first.Exit()

	second := tr.Enter(tr.Describe("element", "", "CollectionEmptyStateView"))
	id2, ok := g.Generate(Request{Role: "element", DeclaredName: "CollectionEmptyStateView"}, tr)
	require.True(t, ok)
	second.Exit()

	assert.Equal(t, "SixLayer.element.collectionemptystateview", id1)
	assert.Equal(t, "SixLayer.element.collectionemptystateview1", id2)
}

func TestGenerateNestedPath(t *testing.T) {
	g := newTestGenerator(t, nil)
	tr := NewTracker()

	outer := tr.Enter(tr.Describe("container", "Settings", ""))
	defer outer.Exit()
	inner := tr.Enter(tr.Describe("button", "Save", ""))
	defer inner.Exit()

	id, ok := g.Generate(Request{Role: "button", Label: "Save"}, tr)
	require.True(t, ok)
	assert.Equal(t, "SixLayer.settings.button.save", id)
}

func TestGenerateEmptyNamespace(t *testing.T) {
	g := newTestGenerator(t, func(c *Config) { c.SetNamespace("") })
	tr := NewTracker()
	scope := tr.Enter(tr.Describe("element", "", "Header"))
	defer scope.Exit()

	id, ok := g.Generate(Request{Role: "element", DeclaredName: "Header"}, tr)
	require.True(t, ok)
	assert.Equal(t, "element.header", id)
}

func TestGenerateDisabled(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"enabled false": func(c *Config) { c.SetEnabled(false) },
		"mode disabled": func(c *Config) { c.SetMode(ModeDisabled) },
	} {
		t.Run(name, func(t *testing.T) {
			g := newTestGenerator(t, mutate)
			tr := NewTracker()
			scope := tr.Enter(tr.Describe("element", "", "Header"))
			defer scope.Exit()

			id, ok := g.Generate(Request{Role: "element", DeclaredName: "Header", ManualID: "explicit"}, tr)
			assert.False(t, ok)
			assert.Equal(t, "", id)
		})
	}
}

func TestGenerateManualMode(t *testing.T) {
	g := newTestGenerator(t, func(c *Config) { c.SetMode(ModeManual) })
	tr := NewTracker()
	scope := tr.Enter(tr.Describe("element", "", "Header"))
	defer scope.Exit()

	id, ok := g.Generate(Request{Role: "element", DeclaredName: "Header", ManualID: "my-header"}, tr)
	require.True(t, ok)
	assert.Equal(t, "my-header", id, "manual identifiers pass through verbatim")

	_, ok = g.Generate(Request{Role: "element", DeclaredName: "Header"}, tr)
	assert.False(t, ok, "manual mode without a manual id yields nothing")
}

func TestGenerateAutomaticManualOverride(t *testing.T) {
	g := newTestGenerator(t, nil)
	tr := NewTracker()
	scope := tr.Enter(tr.Describe("element", "", "Header"))
	defer scope.Exit()

	id, ok := g.Generate(Request{Role: "element", DeclaredName: "Header", ManualID: "Custom.ID"}, tr)
	require.True(t, ok)
	assert.Equal(t, "Custom.ID", id)
}

func TestGenerateWithoutScope(t *testing.T) {
	g := newTestGenerator(t, nil)
	tr := NewTracker()

	id, ok := g.Generate(Request{Role: "element", DeclaredName: "Root"}, tr)
	require.True(t, ok)
	assert.Equal(t, "SixLayer.element.root", id)

	again, ok := g.Generate(Request{Role: "element", DeclaredName: "Root"}, tr)
	require.True(t, ok)
	assert.Equal(t, id, again, "repeated generation for the same root node must be idempotent")
}

func TestGenerateDeterministic(t *testing.T) {
	run := func() []string {
		g := newTestGenerator(t, nil)
		tr := NewTracker()
		var ids []string

		root := tr.Enter(tr.Describe("container", "Root", ""))
		for i := 0; i < 3; i++ {
			scope := tr.Enter(tr.Describe("button", "Save", ""))
			id, ok := g.Generate(Request{Role: "button", Label: "Save"}, tr)
			require.True(t, ok)
			ids = append(ids, id)
			scope.Exit()
		}
		root.Exit()
		return ids
	}

	assert.Equal(t, run(), run())
}

func TestGenerateDebugLoggingDoesNotChangeOutput(t *testing.T) {
	tr1 := NewTracker()
	g1 := newTestGenerator(t, nil)
	s1 := tr1.Enter(tr1.Describe("button", "Save", ""))
	defer s1.Exit()
	plain, ok := g1.Generate(Request{Role: "button", Label: "Save"}, tr1)
	require.True(t, ok)

	tr2 := NewTracker()
	g2 := newTestGenerator(t, func(c *Config) {
		c.SetDebugLogging(true)
		c.SetLogger(logging.NoOpLogger{})
	})
	s2 := tr2.Enter(tr2.Describe("button", "Save", ""))
	defer s2.Exit()
	traced, ok := g2.Generate(Request{Role: "button", Label: "Save"}, tr2)
	require.True(t, ok)

	assert.Equal(t, plain, traced)
}
