// Package bsp implements the per-desktop binary space partition: the
// layout tree, its invariants, and the algorithms that insert, remove,
// project, rotate, flip, balance and swap nodes. It is grounded on
// original_source/src/tree.c.
//
// Invariants maintained across every exported operation:
//
//  1. Tree shape: a leaf has no children; an internal node has both.
//     No identifier appears twice in any tree.
//  2. Parent consistency: for every non-root node n,
//     n.Parent.FirstChild == n or n.Parent.SecondChild == n.
//  3. Vacancy: an internal node is Vacant iff both children are vacant;
//     a leaf is vacant iff it is a receptacle or holds a non-tiled client.
//  4. Hiddenness: an internal node is Hidden iff both children are hidden.
//  5. Constraints: for a vertical split, MinWidth is the sum of the
//     children's MinWidth and MinHeight is their max; horizontal is
//     symmetric.
//  6. Focus: Desktop.Focus is nil or a leaf inside Desktop.Root.
//  7. Stack: a client appears in the global stacking list at most once;
//     presence iff it is mapped and not hidden.
//  8. Sticky accounting: Monitor.StickyCount equals the number of sticky
//     leaves across all desktops on that monitor.
//  9. Depth bound: no tree operation recurses beyond MaxDepth; deeper
//     structures are treated as corrupt and rejected.
package bsp

// MaxDepth bounds every recursive walk, mirroring bspwm's manual
// depth-limited recursion (tree.c, stack.c use 256/1000 respectively).
const MaxDepth = 256
