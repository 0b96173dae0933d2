package bsp

import "github.com/rotkonetworks/bspwm1/geom"

// SplitType is the orientation of an internal node's partition.
type SplitType int

const (
	SplitVertical SplitType = iota
	SplitHorizontal
)

// Direction is a preselection / directional-focus compass direction.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// State is the four-element client state set from the spec.
type State int

const (
	StateTiled State = iota
	StatePseudoTiled
	StateFloating
	StateFullscreen
)

// Layer is the three-element stacking layer axis.
type Layer int

const (
	LayerBelow Layer = iota
	LayerNormal
	LayerAbove
)

// SizeHints is the subset of ICCCM WM_NORMAL_HINTS the projection step
// needs. The xserver package is responsible for translating
// icccm.NormalHints into this struct; bsp stays free of any X11 import so
// it can be unit tested without a display connection.
type SizeHints struct {
	HasMin      bool
	MinWidth    int32
	MinHeight   int32
	HasInc      bool
	WidthInc    int32
	HeightInc   int32
	BaseWidth   int32
	BaseHeight  int32
	HasAspect   bool
	MinAspect   float64
	MaxAspect   float64
}

// Presel is a latched hint on a node (in practice the insertion anchor,
// usually a leaf) directing where the next insertion beside it lands.
type Presel struct {
	Dir      Direction
	Ratio    float64
	Feedback uint32 // opaque feedback-window id, 0 if none
}

// Client is leaf-only payload: a managed window.
type Client struct {
	Window    uint32 // opaque window id, reused as the owning node's ID
	State     State
	LastState State
	Layer     Layer
	LastLayer Layer

	TiledRect    geom.Rect
	FloatingRect geom.Rect

	BorderWidth uint16
	Urgent      bool
	Shown       bool

	Hints SizeHints

	InputHint     bool
	TakesFocus    bool
	AcceptsDelete bool

	EWMHState uint32

	Class    string
	Instance string
}

// Node is the sum-typed tree element: either an internal split (both
// children non-nil) or a leaf (both nil). A leaf's Client is nil iff the
// leaf is a bare receptacle.
type Node struct {
	ID uint32

	Parent      *Node
	FirstChild  *Node
	SecondChild *Node

	SplitType SplitType
	Ratio     float64

	Rect geom.Rect

	MinWidth  int32
	MinHeight int32

	Vacant  bool
	Hidden  bool
	Sticky  bool
	Private bool
	Locked  bool
	Marked  bool

	Presel *Presel

	Client *Client
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n != nil && n.FirstChild == nil && n.SecondChild == nil
}

// IsInternal reports whether n has both children.
func (n *Node) IsInternal() bool {
	return n != nil && n.FirstChild != nil && n.SecondChild != nil
}

// IsReceptacle reports whether n is a leaf with no client.
func (n *Node) IsReceptacle() bool {
	return n.IsLeaf() && n.Client == nil
}

// IsFirstChild reports whether n is its parent's FirstChild.
func IsFirstChild(n *Node) bool {
	return n != nil && n.Parent != nil && n.Parent.FirstChild == n
}

// IsSecondChild reports whether n is its parent's SecondChild.
func IsSecondChild(n *Node) bool {
	return n != nil && n.Parent != nil && n.Parent.SecondChild == n
}

// Sibling returns n's sibling under its parent, or nil at the root.
func Sibling(n *Node) *Node {
	if n == nil || n.Parent == nil {
		return nil
	}
	if n.Parent.FirstChild == n {
		return n.Parent.SecondChild
	}
	return n.Parent.FirstChild
}

// IsFocusable reports whether a leaf can receive focus: it must hold a
// client that isn't hidden.
func IsFocusable(n *Node) bool {
	return n.IsLeaf() && n.Client != nil && !n.Hidden
}

// IsTiled reports whether the leaf's client participates in tiled layout.
func IsTiled(n *Node) bool {
	return n.IsLeaf() && n.Client != nil && (n.Client.State == StateTiled || n.Client.State == StatePseudoTiled)
}

// MakeClientLeaf creates a new leaf node wrapping c.
func MakeClientLeaf(id uint32, c *Client) *Node {
	return &Node{ID: id, Client: c, Vacant: c == nil || c.State != StateTiled}
}

// MakeReceptacle creates an empty placeholder leaf.
func MakeReceptacle(id uint32) *Node {
	return &Node{ID: id, Vacant: true}
}
