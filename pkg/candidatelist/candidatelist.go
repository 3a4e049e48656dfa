// Package candidatelist implements the navigable view of one segment's
// candidates plus an attached sub-list of transliterations (component C2).
//
// The source candidate list is a recursive, pointer-linked tree with each
// sub-list owned by its parent. We instead use arena-plus-index ownership: a
// single List owns a flat arena of nodes, and a sub-list is just another
// node in the same arena referenced by index — so focus descent is an index
// chain and a deep copy is a plain slice clone, with no lifetime tangles.
package candidatelist

import (
	"github.com/naoya-sato/henkan/pkg/logging"
	"github.com/naoya-sato/henkan/pkg/transliteration"
)

// DefaultPageSize is the fixed page size used by every List, chosen to match
// the conventional 1-9 shortcut-key layout.
const DefaultPageSize = 9

type nodeKind int

const (
	kindLeaf nodeKind = iota
	kindSubList
)

// node is one arena entry: either a leaf candidate or a nested sub-list.
type node struct {
	kind  nodeKind
	id    int
	value string
	attrs transliteration.Attributes

	// sub-list fields, valid when kind == kindSubList
	rotate       bool
	name         string
	focused      bool
	focusedIndex int
	children     []int // indices into List.arena, in display order
}

// List is a navigable view over one segment's candidates. The root List and
// every sub-list share one arena; List itself is node index 0 conceptually,
// but since the root has no id/value it is represented by the fields below
// directly rather than as an arena entry.
type List struct {
	arena []node

	rotate       bool
	name         string
	focused      bool
	focusedIndex int
	children     []int // top-level entries, in display order
}

// New returns an empty root candidate list. rotate controls whether
// MoveNext/MovePrev wrap within the current page.
func New(rotate bool) *List {
	return &List{rotate: rotate}
}

// Clear removes all entries and resets focus, but preserves the rotate flag.
func (l *List) Clear() {
	l.arena = nil
	l.children = nil
	l.focusedIndex = 0
	l.focused = false
	l.name = ""
}

// Size returns the number of top-level entries (leaves and sub-lists).
func (l *List) Size() int { return len(l.children) }

// LastIndex returns the index of the last top-level entry, or -1 if empty.
func (l *List) LastIndex() int { return len(l.children) - 1 }

// SetFocused sets whether this list currently holds UI focus.
func (l *List) SetFocused(f bool) { l.focused = f }

// Focused reports whether this list currently holds UI focus.
func (l *List) Focused() bool { return l.focused }

// SetName sets the list's localized label (used for the transliteration
// cascading sub-list).
func (l *List) SetName(name string) { l.name = name }

// Name returns the list's localized label.
func (l *List) Name() string { return l.name }

// FocusedIndex returns the top-level index currently focused.
func (l *List) FocusedIndex() int { return l.focusedIndex }

// AddCandidate appends a leaf entry with no attribute bits.
func (l *List) AddCandidate(id int, value string) {
	l.AddCandidateWithAttributes(id, value, 0)
}

// AddCandidateWithAttributes appends a leaf entry carrying an attribute mask.
func (l *List) AddCandidateWithAttributes(id int, value string, attrs transliteration.Attributes) {
	idx := len(l.arena)
	l.arena = append(l.arena, node{kind: kindLeaf, id: id, value: value, attrs: attrs})
	l.children = append(l.children, idx)
}

// AllocateSubCandidateList creates and appends a nested list sharing this
// List's arena. The returned handle remains valid for the lifetime of the
// parent list (it is never relocated — the arena grows by append only and
// handles reference it by stable index, not by children-slice position).
func (l *List) AllocateSubCandidateList(rotate bool) *SubList {
	idx := len(l.arena)
	l.arena = append(l.arena, node{kind: kindSubList, rotate: rotate})
	l.children = append(l.children, idx)
	return &SubList{list: l, arenaIndex: idx}
}

// SubList is a handle to a nested candidate list allocated within a parent
// List's arena.
type SubList struct {
	list       *List
	arenaIndex int
}

func (s *SubList) node() *node { return &s.list.arena[s.arenaIndex] }

// SetName sets the sub-list's localized label.
func (s *SubList) SetName(name string) { s.node().name = name }

// SetFocused sets whether the sub-list is the deepest focused branch.
func (s *SubList) SetFocused(f bool) { s.node().focused = f }

// AddCandidateWithAttributes appends a leaf to the sub-list.
func (s *SubList) AddCandidateWithAttributes(id int, value string, attrs transliteration.Attributes) {
	idx := len(s.list.arena)
	s.list.arena = append(s.list.arena, node{kind: kindLeaf, id: id, value: value, attrs: attrs})
	// Must re-fetch the node pointer after the append above, which may have
	// grown and relocated the arena slice.
	n := s.node()
	n.children = append(n.children, idx)
}

// childrenOf returns the ordered child indices of parentIdx (-1 for the root
// List itself).
func (l *List) childrenOf(parentIdx int) []int {
	if parentIdx < 0 {
		return l.children
	}
	logging.DebugAssert(parentIdx < len(l.arena), "childrenOf: parentIdx %d out of range (arena size %d)", parentIdx, len(l.arena))
	return l.arena[parentIdx].children
}

func (l *List) focusedOf(parentIdx int) int {
	if parentIdx < 0 {
		return l.focusedIndex
	}
	return l.arena[parentIdx].focusedIndex
}

func (l *List) setFocusedOf(parentIdx, idx int) {
	if parentIdx < 0 {
		l.focusedIndex = idx
		return
	}
	l.arena[parentIdx].focusedIndex = idx
}

func (l *List) rotateOf(parentIdx int) bool {
	if parentIdx < 0 {
		return l.rotate
	}
	return l.arena[parentIdx].rotate
}

// page returns the page index and within-page offset of a child position.
func page(pos int) (page, offset int) {
	return pos / DefaultPageSize, pos % DefaultPageSize
}

// pageBounds returns [start, end) child positions of the page containing pos.
func pageBounds(pos, size int) (start, end int) {
	p, _ := page(pos)
	start = p * DefaultPageSize
	end = start + DefaultPageSize
	if end > size {
		end = size
	}
	return start, end
}

// MoveNext advances focus one position within the current page, wrapping to
// the page start iff the list's rotate flag is set; otherwise a no-op at the
// page's last position.
func (l *List) MoveNext() { l.moveNextAt(-1) }

func (l *List) moveNextAt(parentIdx int) {
	children := l.childrenOf(parentIdx)
	if len(children) == 0 {
		return
	}
	cur := l.focusedOf(parentIdx)
	start, end := pageBounds(cur, len(children))
	next := cur + 1
	if next >= end {
		if !l.rotateOf(parentIdx) {
			return
		}
		next = start
	}
	l.setFocusedOf(parentIdx, next)
}

// MovePrev rewinds focus one position within the current page, with the same
// wrap policy as MoveNext.
func (l *List) MovePrev() { l.movePrevAt(-1) }

func (l *List) movePrevAt(parentIdx int) {
	children := l.childrenOf(parentIdx)
	if len(children) == 0 {
		return
	}
	cur := l.focusedOf(parentIdx)
	start, end := pageBounds(cur, len(children))
	prev := cur - 1
	if prev < start {
		if !l.rotateOf(parentIdx) {
			return
		}
		prev = end - 1
	}
	l.setFocusedOf(parentIdx, prev)
}

// MoveNextPage advances to the next page, preserving the within-page offset
// when the target page is at least that large; clamps to the last valid
// position on the final (possibly short) page.
func (l *List) MoveNextPage() {
	children := l.children
	if len(children) == 0 {
		return
	}
	cur := l.focusedIndex
	_, offset := page(cur)
	_, end := pageBounds(cur, len(children))
	if end >= len(children) {
		return // already on the last page
	}
	target := end + offset
	if target >= len(children) {
		target = len(children) - 1
	}
	l.focusedIndex = target
}

// MovePrevPage rewinds to the previous page, preserving within-page offset.
func (l *List) MovePrevPage() {
	children := l.children
	if len(children) == 0 {
		return
	}
	cur := l.focusedIndex
	p, offset := page(cur)
	if p == 0 {
		return
	}
	target := (p-1)*DefaultPageSize + offset
	if target >= len(children) {
		target = len(children) - 1
	}
	l.focusedIndex = target
}

// MoveToPageIndex focuses the i-th visible entry on the current page,
// returning true iff i is in range for that page.
func (l *List) MoveToPageIndex(i int) bool {
	if i < 0 {
		return false
	}
	start, end := pageBounds(l.focusedIndex, len(l.children))
	target := start + i
	if target >= end {
		return false
	}
	l.focusedIndex = target
	return true
}

// findID searches the whole tree (depth-first) for a leaf with the given id,
// returning the chain of (parentIdx, childPos) steps from the root to it, or
// nil if absent. parentIdx is -1 for a root-level step.
func (l *List) findID(id int) []step {
	return l.searchID(-1, id)
}

type step struct {
	parentIdx int
	childPos  int
}

func (l *List) searchID(parentIdx int, id int) []step {
	children := l.childrenOf(parentIdx)
	for pos, arenaIdx := range children {
		n := &l.arena[arenaIdx]
		if n.kind == kindLeaf {
			if n.id == id {
				return []step{{parentIdx, pos}}
			}
			continue
		}
		if path := l.searchID(arenaIdx, id); path != nil {
			return append([]step{{parentIdx, pos}}, path...)
		}
	}
	return nil
}

// MoveToId focuses the leaf with the given id anywhere in the tree, setting
// focus at every level along the path to it. Fails silently (no-op) if the
// id is absent.
func (l *List) MoveToId(id int) {
	path := l.findID(id)
	if path == nil {
		return
	}
	for _, st := range path {
		l.setFocusedOf(st.parentIdx, st.childPos)
	}
}

// matchFirst depth-first searches for the first leaf whose attribute mask
// contains query, returning the path to it or nil.
func (l *List) matchFirst(parentIdx int, query transliteration.Attributes) []step {
	children := l.childrenOf(parentIdx)
	for pos, arenaIdx := range children {
		n := &l.arena[arenaIdx]
		if n.kind == kindLeaf {
			if n.attrs.Contains(query) {
				return []step{{parentIdx, pos}}
			}
			continue
		}
		if path := l.matchFirst(arenaIdx, query); path != nil {
			return append([]step{{parentIdx, pos}}, path...)
		}
	}
	return nil
}

// MoveToAttributes finds and focuses the first leaf whose attributes
// exactly contain (are a superset of) query.
func (l *List) MoveToAttributes(query transliteration.Attributes) bool {
	path := l.matchFirst(-1, query)
	if path == nil {
		return false
	}
	for _, st := range path {
		l.setFocusedOf(st.parentIdx, st.childPos)
	}
	return true
}

// MoveNextAttributes rotates to the next leaf (in top-level order, wrapping)
// whose attributes contain query. If the current top-level focus is not
// itself a matching leaf, this is equivalent to MoveToAttributes.
func (l *List) MoveNextAttributes(query transliteration.Attributes) bool {
	n := len(l.children)
	if n == 0 {
		return false
	}
	cur := l.focusedIndex
	curNode := &l.arena[l.children[cur]]
	if curNode.kind != kindLeaf || !curNode.attrs.Contains(query) {
		return l.MoveToAttributes(query)
	}
	for i := 1; i <= n; i++ {
		idx := (cur + i) % n
		nd := &l.arena[l.children[idx]]
		if nd.kind == kindLeaf && nd.attrs.Contains(query) {
			l.focusedIndex = idx
			return true
		}
	}
	return false
}

// GetDeepestFocusedCandidate descends through focused sub-lists, returning
// the id, value and attributes of the bottom-most leaf. ok is false for an
// empty list.
func (l *List) GetDeepestFocusedCandidate() (id int, value string, attrs transliteration.Attributes, ok bool) {
	parentIdx := -1
	for {
		children := l.childrenOf(parentIdx)
		if len(children) == 0 {
			return 0, "", 0, false
		}
		focus := l.focusedOf(parentIdx)
		if focus < 0 || focus >= len(children) {
			return 0, "", 0, false
		}
		n := &l.arena[children[focus]]
		if n.kind == kindLeaf {
			return n.id, n.value, n.attrs, true
		}
		parentIdx = children[focus]
	}
}

// FocusedId is GetDeepestFocusedCandidate's id component; it returns 0 if
// the list is empty (callers that need to distinguish "empty" should use
// GetDeepestFocusedCandidate directly).
func (l *List) FocusedId() int {
	id, _, _, _ := l.GetDeepestFocusedCandidate()
	return id
}

// Entry is a read-only projection of one top-level visible entry, used by
// package output to render the current page.
type Entry struct {
	ID        int
	Value     string
	Attrs     transliteration.Attributes
	IsSubList bool
	Name      string // valid only when IsSubList
	SubIndex  int    // arena index; pass to SubPage to render this sub-list
}

// CurrentPage returns the entries on the page containing the current focus,
// the page index, and the within-page focused offset.
func (l *List) CurrentPage() (entries []Entry, pageIndex int, focusOffset int) {
	return l.pageAt(-1)
}

// SubPage returns the current page of the nested list at subIndex (an
// Entry.SubIndex from a prior IsSubList entry), plus its label.
func (l *List) SubPage(subIndex int) (entries []Entry, pageIndex int, focusOffset int, name string) {
	entries, pageIndex, focusOffset = l.pageAt(subIndex)
	return entries, pageIndex, focusOffset, l.arena[subIndex].name
}

func (l *List) pageAt(parentIdx int) (entries []Entry, pageIndex int, focusOffset int) {
	children := l.childrenOf(parentIdx)
	if len(children) == 0 {
		return nil, 0, 0
	}
	focus := l.focusedOf(parentIdx)
	start, end := pageBounds(focus, len(children))
	p, off := page(focus)
	for i := start; i < end; i++ {
		arenaIdx := children[i]
		n := &l.arena[arenaIdx]
		if n.kind == kindLeaf {
			entries = append(entries, Entry{ID: n.id, Value: n.value, Attrs: n.attrs})
		} else {
			entries = append(entries, Entry{IsSubList: true, Name: n.name, SubIndex: arenaIdx})
		}
	}
	return entries, p, off
}

// Clone returns a deep copy of the list, including its full arena, suitable
// for the previous_suggestions cache (which must survive independent of
// future rebuilds of the source list).
func (l *List) Clone() *List {
	out := &List{
		rotate:       l.rotate,
		name:         l.name,
		focused:      l.focused,
		focusedIndex: l.focusedIndex,
	}
	out.arena = append([]node(nil), l.arena...)
	out.children = append([]int(nil), l.children...)
	for i := range out.arena {
		if out.arena[i].children != nil {
			out.arena[i].children = append([]int(nil), out.arena[i].children...)
		}
	}
	return out
}
