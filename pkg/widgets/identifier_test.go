package widgets_test

import (
	"reflect"
	"testing"

	"github.com/go-drift/ident/pkg/core"
	"github.com/go-drift/ident/pkg/identity"
	identtest "github.com/go-drift/ident/pkg/testing"
	"github.com/go-drift/ident/pkg/widgets"
)

func mustIdentifier(t *testing.T, tester *identtest.TreeTester, finder identtest.Finder) string {
	t.Helper()
	id, ok := tester.IdentifierOf(finder)
	if !ok {
		t.Fatalf("expected a bound identifier for %s", finder.Description())
	}
	return id
}

// --- Attachment ---

func TestAutoID_AttachesAtMount(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetNamespace("SixLayer")

	tester.PumpWidget(widgets.AutoID{
		Name:  "CollectionEmptyStateView",
		Child: widgets.Text{Content: "No items"},
	})

	id := mustIdentifier(t, tester, identtest.ByText("No items"))
	if id != "SixLayer.element.collectionemptystateview" {
		t.Errorf("unexpected identifier %q", id)
	}
}

func TestAutoID_MissingNameFallsBack(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetNamespace("App")

	tester.PumpWidget(widgets.AutoID{Child: widgets.Text{Content: "hi"}})

	id := mustIdentifier(t, tester, identtest.ByText("hi"))
	if id != "App.element.unknown" {
		t.Errorf("unexpected identifier %q", id)
	}
}

func TestAutoID_NestedPath(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetNamespace("App")

	tester.PumpWidget(widgets.AutoID{
		Role: widgets.RoleContainer,
		Name: "Settings",
		Child: widgets.Column{Children: []core.Widget{
			widgets.AutoID{
				Role:  widgets.RoleButton,
				Label: "Save Changes",
				Child: widgets.Text{Content: "Save Changes"},
			},
		}},
	})

	id := mustIdentifier(t, tester, identtest.ByText("Save Changes"))
	if id != "App.settings.button.savechanges" {
		t.Errorf("unexpected identifier %q", id)
	}
}

func TestAutoID_SiblingsAreDisambiguated(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetNamespace("App")

	row := func(content string) core.Widget {
		return widgets.AutoID{Name: "ItemRow", Child: widgets.Text{Content: content}}
	}
	tester.PumpWidget(widgets.AutoID{
		Role:  widgets.RoleContainer,
		Name:  "List",
		Child: widgets.Column{Children: []core.Widget{row("a"), row("b"), row("c")}},
	})

	want := []string{
		"App.container.list",
		"App.list.element.itemrow",
		"App.list.element.itemrow1",
		"App.list.element.itemrow2",
	}
	got := tester.AllIdentifiers()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("identifiers = %v, want %v", got, want)
	}
}

func TestAutoID_RootSiblingsAreDisambiguated(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetNamespace("App")

	tester.PumpWidget(widgets.Column{Children: []core.Widget{
		widgets.AutoID{Name: "Item", Child: widgets.Text{Content: "a"}},
		widgets.AutoID{Name: "Item", Child: widgets.Text{Content: "b"}},
	}})

	want := []string{"App.element.item", "App.element.item1"}
	if got := tester.AllIdentifiers(); !reflect.DeepEqual(got, want) {
		t.Errorf("identifiers = %v, want %v", got, want)
	}
}

// --- Modes ---

func TestAutoID_DisabledLeavesNoBinding(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetEnabled(false)

	tester.PumpWidget(widgets.AutoID{Child: widgets.Text{Content: "hi"}})

	if _, ok := tester.IdentifierOf(identtest.ByText("hi")); ok {
		t.Error("expected no binding with generation disabled")
	}
}

func TestAutoID_ManualMode(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetMode(identity.ModeManual)

	tester.PumpWidget(widgets.Column{Children: []core.Widget{
		widgets.AutoID{ID: "explicit-id", Child: widgets.Text{Content: "tagged"}},
		widgets.AutoID{Child: widgets.Text{Content: "untagged"}},
	}})

	if id := mustIdentifier(t, tester, identtest.ByText("tagged")); id != "explicit-id" {
		t.Errorf("manual identifier should pass through verbatim, got %q", id)
	}
	if _, ok := tester.IdentifierOf(identtest.ByText("untagged")); ok {
		t.Error("manual mode without an explicit id should leave no binding")
	}
}

func TestAutoID_ManualOverrideInAutomaticMode(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetNamespace("App")

	tester.PumpWidget(widgets.AutoID{ID: "Custom.ID", Child: widgets.Text{Content: "hi"}})

	if id := mustIdentifier(t, tester, identtest.ByText("hi")); id != "Custom.ID" {
		t.Errorf("explicit id should win over the derived string, got %q", id)
	}
}

// --- Resolution and shadowing ---

func TestIdentifierOf_InnermostWins(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetNamespace("App")

	tester.PumpWidget(widgets.AutoID{
		Role: widgets.RoleContainer,
		Name: "Outer",
		Child: widgets.Container{Child: widgets.AutoID{
			Name:  "Inner",
			Child: widgets.Text{Content: "deep"},
		}},
	})

	if id := mustIdentifier(t, tester, identtest.ByText("deep")); id != "App.outer.element.inner" {
		t.Errorf("inner attacher should shadow the outer one, got %q", id)
	}

	// An element between the two attachers resolves to the outer binding.
	container := tester.Find(identtest.ByType[widgets.Container]()).First()
	id, ok := widgets.IdentifierOf(container)
	if !ok || id != "App.container.outer" {
		t.Errorf("intermediate element should see the outer binding, got %q (%v)", id, ok)
	}
}

func TestIdentifierOf_NoAttacher(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.PumpWidget(widgets.Text{Content: "plain"})

	if _, ok := tester.IdentifierOf(identtest.ByText("plain")); ok {
		t.Error("expected no binding without an attacher")
	}
}

// --- Stability ---

type togglingWidget struct {
	core.StatefulBase
}

func (togglingWidget) CreateState() core.State { return &togglingState{} }

type togglingState struct {
	core.StateBase
	flipped bool
}

func (s *togglingState) Build(ctx core.BuildContext) core.Widget {
	content := "first"
	if s.flipped {
		content = "second"
	}
	return widgets.AutoID{Name: "Body", Child: widgets.Text{Content: content}}
}

func (s *togglingState) flip() {
	s.SetState(func() { s.flipped = !s.flipped })
}

func TestAutoID_IdentifierStableAcrossRebuilds(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetNamespace("App")

	tester.PumpWidget(widgets.AutoID{
		Role:  widgets.RoleContainer,
		Name:  "Screen",
		Child: togglingWidget{},
	})

	before := mustIdentifier(t, tester, identtest.ByText("first"))

	stateful := tester.Find(identtest.ByType[togglingWidget]()).First().(*core.StatefulElement)
	stateful.State().(*togglingState).flip()
	tester.Pump()

	after := mustIdentifier(t, tester, identtest.ByText("second"))
	if before != after {
		t.Errorf("identifier changed across rebuild: %q then %q", before, after)
	}
}

func TestAutoID_ConfigChangeDoesNotRewriteExistingBinding(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetNamespace("Before")

	tester.PumpWidget(widgets.AutoID{Child: widgets.Text{Content: "hi"}})
	bound := mustIdentifier(t, tester, identtest.ByText("hi"))

	tester.Config().SetNamespace("After")
	tester.Pump()

	if id := mustIdentifier(t, tester, identtest.ByText("hi")); id != bound {
		t.Errorf("binding rewrote after config change: %q then %q", bound, id)
	}
}

func TestIdentifierScope_IsolatesTesters(t *testing.T) {
	a := identtest.NewTreeTesterWithT(t)
	b := identtest.NewTreeTesterWithT(t)
	a.Config().SetNamespace("AppA")
	b.Config().SetNamespace("AppB")

	widget := widgets.AutoID{Name: "Body", Child: widgets.Text{Content: "hi"}}
	a.PumpWidget(widget)
	b.PumpWidget(widget)

	if id := mustIdentifier(t, a, identtest.ByText("hi")); id != "AppA.element.body" {
		t.Errorf("tester A identifier %q", id)
	}
	if id := mustIdentifier(t, b, identtest.ByText("hi")); id != "AppB.element.body" {
		t.Errorf("tester B identifier %q", id)
	}
}

// --- Built-ins ---

func TestButton_AttachesIdentifier(t *testing.T) {
	tester := identtest.NewTreeTesterWithT(t)
	tester.Config().SetNamespace("App")

	tester.PumpWidget(widgets.Button{Label: "Save"})

	if id := mustIdentifier(t, tester, identtest.ByText("Save")); id != "App.button.save" {
		t.Errorf("unexpected identifier %q", id)
	}
}

func TestConfigOf_FallsBackToDefault(t *testing.T) {
	owner := core.NewBuildOwner()
	root := core.MountRoot(widgets.AutoID{Name: "Loose", Child: widgets.Text{Content: "hi"}}, owner)
	defer root.Unmount()

	carrier := root.(widgets.IdentifierCarrier)
	id, ok := carrier.Identifier()
	if !ok {
		t.Fatal("expected a binding from the process default config")
	}
	if id != "element.loose" {
		t.Errorf("unexpected identifier %q", id)
	}
}
