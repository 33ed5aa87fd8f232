package spineflow

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// NodeType tells frontends how to draw a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeMesh                      // triangles from Vertices/UVs/Indices
	NodeTypeMarker                    // a point-like node, drawn only in debug views
	NodeTypeLine                      // an open polyline through Vertices
	NodeTypeSprite                    // a textured quad of Width x Height, centered
)

// String returns the lowercase type name.
func (t NodeType) String() string {
	switch t {
	case NodeTypeContainer:
		return "container"
	case NodeTypeMesh:
		return "mesh"
	case NodeTypeMarker:
		return "marker"
	case NodeTypeLine:
		return "line"
	case NodeTypeSprite:
		return "sprite"
	default:
		return "unknown"
	}
}

// nodeIDCounter is a plain counter: the animation runs on one goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an element of the scene tree. Components own their nodes and the
// coordinator assembles them into one tree; nodes carry spatial state only,
// never behavior. A single flat struct serves every node type.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	Position Vec3
	Rotation Quat
	Scale    Vec3

	// Computed by UpdateWorldTransforms
	worldPosition  Vec3
	worldRotation  Quat
	worldScale     Vec3
	worldAlpha     float64
	transformDirty bool

	// Appearance
	Alpha   float64
	Visible bool
	Color   Color

	// Geometry (mesh and line nodes), in local space
	Vertices []Vec3
	UVs      []Vec2
	Indices  []uint16

	// Sprite size (sprite and marker nodes)
	Width, Height float64

	// Metadata
	UserData any

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Rotation = QuatIdentity
	n.Scale = Vec3{1, 1, 1}
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.worldRotation = QuatIdentity
	n.worldScale = Vec3{1, 1, 1}
	n.worldAlpha = 1
}

// NewContainer creates a node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewMesh creates a mesh node. The slices are owned by the node afterwards.
func NewMesh(name string, vertices []Vec3, uvs []Vec2, indices []uint16) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Vertices: vertices, UVs: uvs, Indices: indices}
	nodeDefaults(n)
	return n
}

// NewMarker creates a marker node covering a width x height box.
func NewMarker(name string, width, height float64) *Node {
	n := &Node{Name: name, Type: NodeTypeMarker, Width: width, Height: height}
	nodeDefaults(n)
	return n
}

// NewLine creates a polyline node through points.
func NewLine(name string, points []Vec3) *Node {
	n := &Node{Name: name, Type: NodeTypeLine, Vertices: points}
	nodeDefaults(n)
	return n
}

// NewSprite creates a centered quad of the given size.
func NewSprite(name string, width, height float64) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Width: width, Height: height}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children, detaching it from any
// previous parent. Panics if child is nil or an ancestor of n.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("spineflow: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("spineflow: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("spineflow: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// FindChild returns the first descendant named name, searching depth-first,
// or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.FindChild(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for n and every descendant in depth-first order. Returning
// false from fn skips that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, and
// recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Vertices = nil
	n.UVs = nil
	n.Indices = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
