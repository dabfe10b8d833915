// Package testing provides a tree testing harness for identifier assertions.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestMyScreen(t *testing.T) {
//	    tester := identtest.NewTreeTesterWithT(t)
//	    tester.Config().SetNamespace("MyApp")
//	    tester.PumpWidget(MyScreen{})
//
//	    id, ok := tester.IdentifierOf(identtest.ByText("Save"))
//	    if !ok || id != "MyApp.button.save" {
//	        t.Errorf("unexpected identifier %q", id)
//	    }
//	}
//
// Each tester owns an isolated identifier configuration; parallel tests never
// share state.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import identtest "github.com/go-drift/ident/pkg/testing"
package testing
