// Package widgets provides the identifier attachment layer and a small set of
// concrete widgets built on pkg/core.
//
// AutoID is the attachment point: wrap any subtree in an AutoID and the
// element hosting it derives an accessibility identifier at mount time from
// its position in the tree, honoring the configuration carried by the nearest
// enclosing IdentifierScope. IdentifierOf retrieves the binding for any
// element, resolving to the innermost enclosing attacher.
package widgets
