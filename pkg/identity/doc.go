// Package identity derives stable, unique accessibility identifiers for nodes
// of a widget tree.
//
// The pieces compose along the traversal of a tree:
//
//   - Config holds the process-level settings (enabled flag, namespace,
//     generation mode, debug logging). It is explicitly constructed and passed
//     down; a single owning scope is responsible for resetting it between uses.
//   - Tracker owns the breadcrumb for one traversal: entering a subtree pushes
//     a PathSegment, leaving pops it. Trackers are never shared between
//     concurrent traversals.
//   - PathBuilder (owned by the tracker) derives a node's segment from its
//     role, its declared structural name, and an optional label override, and
//     assigns sibling disambiguation indices.
//   - Generator reads the current breadcrumb plus the config and emits the
//     final identifier string, or reports that no identifier applies.
//
// Identifier format in automatic mode:
//
//	<namespace>.<ancestor labels...>.<role>.<label><index?>
//
// joined with ".", empty components omitted. The first sibling with a given
// (role, label) pair under a parent renders without an index; later ones
// append 1, 2, ... directly to the label.
//
// Generation is deterministic: a fixed tree, config, and traversal order
// produce byte-identical strings on every run.
package identity
