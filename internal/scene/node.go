package scene

// Node is a scene graph node. Its world transform is the product of its
// ancestors' local transforms and its own.
type Node struct {
	Name  string
	Local Transform

	parent   *Node
	children []*Node
}

// NewNode creates a detached node with an identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Local: Identity()}
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// World returns the node's transform in root space.
func (n *Node) World() Transform {
	if n.parent == nil {
		return n.Local
	}
	return n.parent.World().Mul(n.Local)
}

// Add makes child a child of n, keeping the child's local transform.
// A child that already has a parent is removed from it first.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It does nothing if child is not a child
// of n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Attach re-parents child under n so that its world transform is
// unchanged.
func (n *Node) Attach(child *Node) {
	world := child.World()
	n.Add(child)
	child.Local = n.World().Inverse().Mul(world)
}
