package scene

// NodeType identifies a shading node kind.
type NodeType string

const (
	NodeBSDFPrincipled NodeType = "BSDF_PRINCIPLED"
	NodeTexImage       NodeType = "TEX_IMAGE"
	NodeOutputMaterial NodeType = "OUTPUT_MATERIAL"
)

// Material is a named shading setup. Materials without a node tree are
// legal and skipped by graph rewrites.
type Material struct {
	Name     string
	NodeTree *NodeTree
}

// MaterialSlot binds one material to an object. The material may be nil.
type MaterialSlot struct {
	Material *Material
}

// NodeTree is a shading graph: nodes with typed sockets plus the links
// between them.
type NodeTree struct {
	nodes []*Node
	links []*Link
}

// Node is one shading node with named input and output sockets.
type Node struct {
	Name    string
	Type    NodeType
	inputs  []*Socket
	outputs []*Socket
}

// Socket is a typed connection point on a node. Input sockets carry at most
// one incoming link; output sockets fan out freely.
type Socket struct {
	Name    string
	Node    *Node
	Default float32

	output bool
	link   *Link // incoming link, inputs only
}

// Link connects an output socket to an input socket.
type Link struct {
	From *Socket
	To   *Socket
}

// NewNodeTree returns an empty shading graph.
func NewNodeTree() *NodeTree { return &NodeTree{} }

// NewNode adds a node of the given type with the given socket names.
func (t *NodeTree) NewNode(typ NodeType, name string, inputs, outputs []string) *Node {
	n := &Node{Name: name, Type: typ}
	for _, in := range inputs {
		n.inputs = append(n.inputs, &Socket{Name: in, Node: n})
	}
	for _, out := range outputs {
		n.outputs = append(n.outputs, &Socket{Name: out, Node: n, output: true})
	}
	t.nodes = append(t.nodes, n)
	return n
}

// Nodes returns all nodes in the graph.
func (t *NodeTree) Nodes() []*Node {
	out := make([]*Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Links returns all links in the graph.
func (t *NodeTree) Links() []*Link {
	out := make([]*Link, len(t.links))
	copy(out, t.links)
	return out
}

// NewLink connects an output socket to an input socket. An existing link
// into the input is replaced, so relinking the same pair is idempotent.
func (t *NodeTree) NewLink(from, to *Socket) *Link {
	if from == nil || to == nil || !from.output || to.output {
		return nil
	}
	if to.link != nil {
		t.removeLink(to.link)
	}
	l := &Link{From: from, To: to}
	to.link = l
	t.links = append(t.links, l)
	return l
}

func (t *NodeTree) removeLink(l *Link) {
	for i, existing := range t.links {
		if existing == l {
			t.links = append(t.links[:i], t.links[i+1:]...)
			break
		}
	}
	if l.To.link == l {
		l.To.link = nil
	}
}

// Input returns the input socket with the given name, or nil.
func (n *Node) Input(name string) *Socket {
	for _, s := range n.inputs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Output returns the output socket with the given name, or nil.
func (n *Node) Output(name string) *Socket {
	for _, s := range n.outputs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// IsLinked reports whether an input socket has an incoming link.
func (s *Socket) IsLinked() bool { return s.link != nil }

// FromSocket returns the output socket feeding this input, or nil.
func (s *Socket) FromSocket() *Socket {
	if s.link == nil {
		return nil
	}
	return s.link.From
}
