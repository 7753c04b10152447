// Package shadow implements the Shadow DOM Mirror: a parallel tree that
// tracks the live DOM's shape through discrete mutation batches, so the rest
// of the telemetry agent can reason about structure without re-walking the
// real DOM on every change.
package shadow

import (
	"fmt"
	"sync"

	"github.com/ozanturksever/claritygo/bridge"
	"github.com/ozanturksever/claritygo/telemetry/ids"
)

// Kind classifies a shadow node.
type Kind int

const (
	KindDocument Kind = iota
	KindElement
	KindText
	KindComment
	// KindIgnored marks a node that participates in tree shape (it has an
	// index and a place among its siblings) but whose content is withheld
	// from snapshots by policy (script/style/sensitive elements).
	KindIgnored
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// LayoutGeometry is the last known box for a node, refreshed on discovery,
// mutation, or scroll.
type LayoutGeometry struct {
	X, Y, Width, Height float64
	ScrollX, ScrollY    float64
	Scrollable          bool
}

// Snapshot is the content captured for a shadow node at the time it was
// last classified.
type Snapshot struct {
	Tag        string
	Attributes map[string]string
	Text       string
	Layout     *LayoutGeometry
}

// Node is one entry in the mirror's arena, linked to its neighbors by index
// rather than by pointer so the arena survives independent of live DOM
// liveness.
type Node struct {
	ID            ids.Index
	ParentID      ids.Index
	FirstChildID  ids.Index
	NextSiblingID ids.Index
	Kind          Kind
	Snapshot      Snapshot
	Live          bridge.DOMElement
}

// Action classifies how a mutation batch changed a node relative to the
// mirror's previous state.
type Action int

const (
	ActionInsert Action = iota
	ActionUpdate
	ActionMove
	ActionRemove
)

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionUpdate:
		return "update"
	case ActionMove:
		return "move"
	case ActionRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Change is one classified effect of applying a MutationRecord batch.
type Change struct {
	Index  ids.Index
	Action Action
	Node   Node
}

// MutationRecord is the cross-platform translation of a native
// MutationObserver record: the set of elements that were added or removed
// as children of target, plus attribute/characterData changes.
type MutationRecord struct {
	Target         bridge.DOMElement
	AddedElements  []bridge.DOMElement
	RemovedElements []bridge.DOMElement
	AttributeName  string // empty unless this record is an attribute mutation
	CharacterData  bool   // true if this record is a text content mutation
}

// Divergence describes a detected inconsistency between the mirror and the
// live DOM, the payload shape for a ShadowDomInconsistent instrumentation
// event.
type Divergence struct {
	Live           map[ids.Index][]ids.Index
	Shadow         map[ids.Index][]ids.Index
	LastConsistent int64
	FirstEvent     int64
}

// Mirror owns the shadow node arena for one session and classifies
// mutation batches against it. It is generic over bridge.DOMElement so the
// identical classification logic runs against a real browser DOM and
// against shadowtest's fake DOM.
type Mirror struct {
	mu       sync.Mutex
	registry *ids.Registry
	nodes    map[ids.Index]*Node

	degraded             bool
	consecutiveDivergent int

	lastConsistentAt int64
	firstEventAt     int64
}

// NewMirror returns an empty Mirror backed by registry for node identity.
func NewMirror(registry *ids.Registry) *Mirror {
	return &Mirror{
		registry: registry,
		nodes:    make(map[ids.Index]*Node),
	}
}

// Discover classifies an element observed for the first time (or
// re-observed during a backfill pass) as an Insert (unseen index), a Move
// (already-tracked index now under a different parent, appended as that
// parent's last child) or an Update (already-tracked index, same parent).
func (m *Mirror) Discover(el bridge.DOMElement, parent ids.Index, kind Kind, snap Snapshot) Change {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.registry.Assign(el)
	existing, known := m.nodes[idx]
	if !known {
		node := &Node{ID: idx, ParentID: parent, Kind: kind, Snapshot: snap, Live: el}
		m.nodes[idx] = node
		m.linkChild(parent, idx)
		return Change{Index: idx, Action: ActionInsert, Node: *node}
	}

	existing.Snapshot = snap
	existing.Kind = kind
	if existing.ParentID != parent {
		m.unlinkChild(existing.ParentID, idx)
		existing.NextSiblingID = 0
		existing.ParentID = parent
		m.linkChild(parent, idx)
		return Change{Index: idx, Action: ActionMove, Node: *existing}
	}
	return Change{Index: idx, Action: ActionUpdate, Node: *existing}
}

// Remove classifies the subtree rooted at el as removed, unlinking it from
// its parent and releasing its identity so a later re-insertion of an
// unequal live node gets a fresh index.
func (m *Mirror) Remove(el bridge.DOMElement) []Change {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.registry.Lookup(el)
	if idx == 0 {
		return nil
	}
	node, ok := m.nodes[idx]
	if !ok {
		return nil
	}

	var changes []Change
	m.unlinkChild(node.ParentID, idx)
	m.removeSubtree(node, &changes)
	return changes
}

func (m *Mirror) removeSubtree(node *Node, out *[]Change) {
	child := node.FirstChildID
	for child != 0 {
		c, ok := m.nodes[child]
		if !ok {
			break
		}
		next := c.NextSiblingID
		m.removeSubtree(c, out)
		child = next
	}
	*out = append(*out, Change{Index: node.ID, Action: ActionRemove, Node: *node})
	delete(m.nodes, node.ID)
	if node.Live != nil {
		m.registry.Release(node.Live)
	}
}

func (m *Mirror) linkChild(parent, child ids.Index) {
	p, ok := m.nodes[parent]
	if !ok {
		return
	}
	if p.FirstChildID == 0 {
		p.FirstChildID = child
		return
	}
	sib := p.FirstChildID
	for {
		s, ok := m.nodes[sib]
		if !ok || s.NextSiblingID == 0 {
			if ok {
				s.NextSiblingID = child
			}
			return
		}
		sib = s.NextSiblingID
	}
}

func (m *Mirror) unlinkChild(parent, child ids.Index) {
	p, ok := m.nodes[parent]
	if !ok {
		return
	}
	if p.FirstChildID == child {
		if c, ok := m.nodes[child]; ok {
			p.FirstChildID = c.NextSiblingID
		} else {
			p.FirstChildID = 0
		}
		return
	}
	sib := p.FirstChildID
	for sib != 0 {
		s, ok := m.nodes[sib]
		if !ok {
			return
		}
		if s.NextSiblingID == child {
			if c, ok := m.nodes[child]; ok {
				s.NextSiblingID = c.NextSiblingID
			} else {
				s.NextSiblingID = 0
			}
			return
		}
		sib = s.NextSiblingID
	}
}

// Root ensures a root document node exists at index idx and returns it,
// creating one on first call.
func (m *Mirror) Root(idx ids.Index) *Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.nodes[idx]; ok {
		return n
	}
	n := &Node{ID: idx, Kind: KindDocument}
	m.nodes[idx] = n
	return n
}

// Node returns the shadow node at idx, or nil if unknown.
func (m *Mirror) Node(idx ids.Index) *Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nodes[idx]
}

// Len returns the number of nodes currently tracked in the mirror.
func (m *Mirror) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.nodes)
}

// children returns idx's children in sibling order. Caller must hold m.mu.
func (m *Mirror) children(idx ids.Index) []ids.Index {
	n, ok := m.nodes[idx]
	if !ok {
		return nil
	}
	var out []ids.Index
	child := n.FirstChildID
	for child != 0 {
		out = append(out, child)
		c, ok := m.nodes[child]
		if !ok {
			break
		}
		child = c.NextSiblingID
	}
	return out
}

// CreateIndexJSON produces a map from index to its children's indices,
// suitable for embedding as the Live/Shadow fields of a Divergence payload.
func (m *Mirror) CreateIndexJSON() map[ids.Index][]ids.Index {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[ids.Index][]ids.Index, len(m.nodes))
	for idx := range m.nodes {
		out[idx] = m.children(idx)
	}
	return out
}

// liveIndexJSON walks the real DOM rooted at root and produces the same
// shape as CreateIndexJSON, used by Consistent to detect divergence. A live
// child with no assigned index is listed as 0, so an untracked node makes
// the two trees differ.
func (m *Mirror) liveIndexJSON(root bridge.DOMElement) map[ids.Index][]ids.Index {
	out := make(map[ids.Index][]ids.Index)
	var walk func(el bridge.DOMElement)
	walk = func(el bridge.DOMElement) {
		idx := m.registry.Lookup(el)
		if idx == 0 {
			return
		}
		var kids []ids.Index
		for _, child := range el.Children() {
			kids = append(kids, m.registry.Lookup(child))
			walk(child)
		}
		out[idx] = kids
	}
	walk(root)
	return out
}

// Consistent compares the mirror's tree shape against the live DOM rooted
// at root. It returns (true, nil) when they match, or (false, divergence)
// describing the mismatch otherwise. now is the timestamp recorded as the
// last consistent time or the first divergent time.
func (m *Mirror) Consistent(root bridge.DOMElement, now int64) (bool, *Divergence) {
	shadowTree := m.CreateIndexJSON()
	liveTree := m.liveIndexJSON(root)

	if treesEqual(shadowTree, liveTree) {
		m.mu.Lock()
		m.degraded = false
		m.consecutiveDivergent = 0
		m.lastConsistentAt = now
		m.mu.Unlock()
		return true, nil
	}

	m.mu.Lock()
	m.consecutiveDivergent++
	if m.firstEventAt == 0 {
		m.firstEventAt = now
	}
	degradedNow := m.consecutiveDivergent >= degradedModeThreshold
	m.degraded = degradedNow
	div := &Divergence{
		Live:           liveTree,
		Shadow:         shadowTree,
		LastConsistent: m.lastConsistentAt,
		FirstEvent:     m.firstEventAt,
	}
	m.mu.Unlock()
	return false, div
}

// degradedModeThreshold is the number of consecutive inconsistent checks
// before the mirror enters degraded mode, in which the tracker drops
// further mutation records.
const degradedModeThreshold = 2

// Degraded reports whether the mirror has observed enough consecutive
// inconsistencies to consider itself unreliable.
func (m *Mirror) Degraded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.degraded
}

// ConsecutiveInconsistencies returns the current run length of failed
// consistency checks.
func (m *Mirror) ConsecutiveInconsistencies() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.consecutiveDivergent
}

func treesEqual(a, b map[ids.Index][]ids.Index) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
	}
	return true
}

// ErrUnknownIndex names the error for an index the mirror has never
// assigned. No Mirror method returns it; Node reports an unknown index as
// nil.
var ErrUnknownIndex = fmt.Errorf("shadow: unknown index")
