package surface

import "fmt"

// LiveHistoryLimit is how many live-region writes a Document remembers
const LiveHistoryLimit = 64

// Document is an in-memory element tree that stands in for the terminal
// screen. It owns the single live region and the modal mount point; one
// Document is created per program (or per test) and injected into the
// controllers.
type Document struct {
	elements     map[ElementID]*Element
	active       ElementID
	live         map[Politeness]string
	history      []LiveWrite
	scrollLocked bool

	// OnLiveRegion, if set, observes every live-region write
	OnLiveRegion func(LiveWrite)
}

// NewDocument creates a document with a page root and a modal mount point
func NewDocument() *Document {
	d := &Document{
		elements: make(map[ElementID]*Element),
		live:     make(map[Politeness]string),
	}
	d.elements[RootID] = &Element{ID: RootID, Role: RoleGroup}
	d.mustAppend(RootID, Element{ID: PageID, Role: RoleGroup})
	d.mustAppend(RootID, Element{ID: ModalRootID, Role: RoleGroup})
	return d
}

func (d *Document) mustAppend(parent ElementID, el Element) {
	if err := d.Append(parent, el); err != nil {
		panic(err)
	}
}

// Append adds el as the last child of parent
func (d *Document) Append(parent ElementID, el Element) error {
	p, ok := d.elements[parent]
	if !ok {
		return fmt.Errorf("append %q: parent %q: %w", el.ID, parent, ErrNoSuchElement)
	}
	if _, exists := d.elements[el.ID]; exists {
		return fmt.Errorf("append %q: %w", el.ID, ErrElementExists)
	}
	el.parent = parent
	el.children = nil
	d.elements[el.ID] = &el
	p.children = append(p.children, el.ID)
	return nil
}

// Remove deletes id and its subtree. Focus inside the subtree is dropped.
func (d *Document) Remove(id ElementID) {
	el, ok := d.elements[id]
	if !ok || id == RootID {
		return
	}
	if p, ok := d.elements[el.parent]; ok {
		for i, c := range p.children {
			if c == id {
				p.children = append(p.children[:i:i], p.children[i+1:]...)
				break
			}
		}
	}
	d.removeSubtree(id)
}

func (d *Document) removeSubtree(id ElementID) {
	el := d.elements[id]
	if el == nil {
		return
	}
	for _, c := range el.children {
		d.removeSubtree(c)
	}
	if d.active == id {
		d.active = ""
	}
	delete(d.elements, id)
}

// Clear removes every child of id, keeping id itself
func (d *Document) Clear(id ElementID) {
	el, ok := d.elements[id]
	if !ok {
		return
	}
	for _, c := range el.Children() {
		d.Remove(c)
	}
}

// Element returns the element with the given ID
func (d *Document) Element(id ElementID) (*Element, bool) {
	el, ok := d.elements[id]
	return el, ok
}

// Exists reports whether id is in the document
func (d *Document) Exists(id ElementID) bool {
	_, ok := d.elements[id]
	return ok
}

// SetTabStop toggles whether id takes part in sequential tab order
func (d *Document) SetTabStop(id ElementID, tabStop bool) {
	if el, ok := d.elements[id]; ok {
		el.TabStop = tabStop
	}
}

// SetDisabled toggles the disabled flag of id
func (d *Document) SetDisabled(id ElementID, disabled bool) {
	if el, ok := d.elements[id]; ok {
		el.Disabled = disabled
		if disabled && d.active == id {
			d.active = ""
		}
	}
}

// Blur drops focus
func (d *Document) Blur() {
	d.active = ""
}

// ActiveElement returns the focused element
func (d *Document) ActiveElement() ElementID {
	return d.active
}

// Focus moves focus to id if it can take focus
func (d *Document) Focus(id ElementID) bool {
	if !d.IsFocusable(id) {
		return false
	}
	d.active = id
	return true
}

// IsFocusable reports whether id exists and can take focus
func (d *Document) IsFocusable(id ElementID) bool {
	el, ok := d.elements[id]
	return ok && el.Focusable && !el.Disabled
}

// Contains reports whether id is root or lies inside root
func (d *Document) Contains(root, id ElementID) bool {
	for cur := id; cur != ""; {
		if cur == root {
			return true
		}
		el, ok := d.elements[cur]
		if !ok {
			return false
		}
		cur = el.parent
	}
	return false
}

// Interactive lists the enabled focusable descendants of root in tree order
func (d *Document) Interactive(root ElementID) []ElementID {
	var out []ElementID
	d.walk(root, func(el *Element) {
		if el.ID != root && el.Focusable && !el.Disabled {
			out = append(out, el.ID)
		}
	})
	return out
}

// TabOrder lists every tab stop in the document in tree order
func (d *Document) TabOrder() []ElementID {
	var out []ElementID
	d.walk(RootID, func(el *Element) {
		if el.Focusable && el.TabStop && !el.Disabled {
			out = append(out, el.ID)
		}
	})
	return out
}

// NextTabStop returns the element default tab order moves to from from.
// The order wraps at both ends. When from is not a tab stop the first (or
// last, going backward) tab stop following it in tree order is used.
func (d *Document) NextTabStop(from ElementID, backward bool) ElementID {
	order := d.TabOrder()
	if len(order) == 0 {
		return ""
	}
	pos := -1
	if from != "" {
		for i, id := range order {
			if id == from {
				pos = i
				break
			}
		}
		if pos < 0 {
			// Locate from by tree position relative to the tab stops
			all := d.treeOrder()
			idx := make(map[ElementID]int, len(all))
			for i, id := range all {
				idx[id] = i
			}
			fromIdx, ok := idx[from]
			if ok {
				if backward {
					for i := len(order) - 1; i >= 0; i-- {
						if idx[order[i]] < fromIdx {
							return order[i]
						}
					}
					return order[len(order)-1]
				}
				for _, id := range order {
					if idx[id] > fromIdx {
						return id
					}
				}
				return order[0]
			}
		}
	}
	switch {
	case pos < 0 && backward:
		return order[len(order)-1]
	case pos < 0:
		return order[0]
	case backward:
		return order[(pos-1+len(order))%len(order)]
	default:
		return order[(pos+1)%len(order)]
	}
}

func (d *Document) treeOrder() []ElementID {
	var out []ElementID
	d.walk(RootID, func(el *Element) { out = append(out, el.ID) })
	return out
}

func (d *Document) walk(id ElementID, fn func(*Element)) {
	el, ok := d.elements[id]
	if !ok {
		return
	}
	fn(el)
	for _, c := range el.children {
		d.walk(c, fn)
	}
}

// SetLiveRegion writes message to the live region of the given politeness
func (d *Document) SetLiveRegion(p Politeness, message string) {
	d.live[p] = message
	w := LiveWrite{Politeness: p, Message: message}
	if len(d.history) == LiveHistoryLimit {
		d.history = append(d.history[:0], d.history[1:]...)
	}
	d.history = append(d.history, w)
	if d.OnLiveRegion != nil {
		d.OnLiveRegion(w)
	}
}

// LiveRegion returns the current content of a live region
func (d *Document) LiveRegion(p Politeness) string {
	return d.live[p]
}

// LiveHistory returns the most recent live-region writes, oldest first
func (d *Document) LiveHistory() []LiveWrite {
	out := make([]LiveWrite, len(d.history))
	copy(out, d.history)
	return out
}

// SetScrollLocked locks or releases page scrolling
func (d *Document) SetScrollLocked(locked bool) {
	d.scrollLocked = locked
}

// ScrollLocked reports whether page scrolling is locked
func (d *Document) ScrollLocked() bool {
	return d.scrollLocked
}

var _ Surface = (*Document)(nil)
