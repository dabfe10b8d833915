package testing_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/ident/pkg/core"
	identtest "github.com/go-drift/ident/pkg/testing"
	"github.com/go-drift/ident/pkg/widgets"
)

func sampleScreen() core.Widget {
	return widgets.AutoID{
		Role: widgets.RoleContainer,
		Name: "Screen",
		Child: widgets.Column{Children: []core.Widget{
			widgets.AutoID{Name: "Header", Child: widgets.Text{Content: "Welcome"}},
			widgets.Keyed{KeyValue: "cta", Child: widgets.Button{Label: "Continue"}},
			widgets.AutoID{Name: "Footer", Child: widgets.Text{Content: "v1"}},
		}},
	}
}

func TestFindByTypeAndKey(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.PumpWidget(sampleScreen())

	assert.Equal(t, 2, tester.Find(identtest.ByType[widgets.Text]()).Count())
	assert.True(t, tester.Find(identtest.ByKey("cta")).Exists())
	assert.False(t, tester.Find(identtest.ByKey("missing")).Exists())
	assert.Nil(t, tester.Find(identtest.ByText("absent")).FirstOrNil())
}

func TestFindByIdentifier(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetNamespace("App")
	tester.PumpWidget(sampleScreen())

	result := tester.Find(identtest.ByIdentifier("App.screen.element.header"))
	require.True(t, result.Exists())

	id, ok := result.Identifier()
	require.True(t, ok)
	assert.Equal(t, "App.screen.element.header", id)
}

func TestFindByIdentifierPattern(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetNamespace("App")
	tester.PumpWidget(sampleScreen())

	matches := tester.Find(identtest.ByIdentifierPattern("App.screen.element.*"))
	assert.Equal(t, 2, matches.Count(), "header and footer attachers")

	assert.True(t, tester.Find(identtest.ByIdentifierPattern("App.*.button.*")).Exists())
}

func TestDescendantFinder(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.PumpWidget(sampleScreen())

	found := tester.Find(identtest.Descendant(
		identtest.ByType[widgets.Column](),
		identtest.ByText("Welcome"),
	))
	assert.True(t, found.Exists())
}

func TestAllIdentifiers(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetNamespace("App")
	tester.PumpWidget(sampleScreen())

	assert.Equal(t, []string{
		"App.container.screen",
		"App.screen.element.header",
		"App.screen.button.continue",
		"App.screen.element.footer",
	}, tester.AllIdentifiers())
}

func TestDeterministicAcrossPumps(t *testing.T) {
	first := func() []string {
		tester := identtest.NewTreeTester()
		defer tester.Cleanup()
		tester.Config().SetNamespace("App")
		tester.PumpWidget(sampleScreen())
		return tester.AllIdentifiers()
	}

	assert.Equal(t, first(), first())
}

func TestPumpWidgetReplacesTree(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.PumpWidget(widgets.Text{Content: "one"})
	old := tester.RootElement()

	tester.PumpWidget(widgets.Text{Content: "two"})

	assert.NotSame(t, old, tester.RootElement())
	assert.NotNil(t, tester.RootElement())
	assert.True(t, tester.Find(identtest.ByText("two")).Exists())
	assert.False(t, tester.Find(identtest.ByText("one")).Exists())
}

func TestConcurrentTestersAreIsolated(t *testing.T) {
	var wg sync.WaitGroup
	for _, ns := range []string{"Alpha", "Beta", "Gamma", "Delta"} {
		ns := ns
		wg.Add(1)
		go func() {
			defer wg.Done()
			tester := identtest.NewTreeTester()
			defer tester.Cleanup()
			tester.Config().SetNamespace(ns)
			tester.PumpWidget(sampleScreen())

			want := ns + ".container.screen"
			ids := tester.AllIdentifiers()
			if len(ids) == 0 || ids[0] != want {
				t.Errorf("namespace %s leaked: got %v", ns, ids)
			}
		}()
	}
	wg.Wait()
}

func TestCleanupResetsConfig(t *testing.T) {
	tester := identtest.NewTreeTester()
	tester.Config().SetNamespace("Dirty")
	tester.Config().SetEnabled(false)

	tester.Cleanup()

	snap := tester.Config().Get()
	assert.True(t, snap.Enabled)
	assert.Equal(t, "", snap.Namespace)
}
