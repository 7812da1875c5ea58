package surface

import "errors"

// ElementID identifies an element in the document
type ElementID string

// Well-known element IDs
const (
	RootID      ElementID = "document"
	PageID      ElementID = "page"
	ModalRootID ElementID = "modal-root"
)

// Politeness is the priority hint of a live region
type Politeness int

const (
	Polite Politeness = iota
	Assertive
)

func (p Politeness) String() string {
	switch p {
	case Assertive:
		return "assertive"
	default:
		return "polite"
	}
}

// Role describes what an element is for rendering and hit-testing
type Role string

const (
	RoleGroup  Role = "group"
	RoleButton Role = "button"
	RoleLink   Role = "link"
	RoleText   Role = "text"
	RoleImage  Role = "img"
	RoleDialog Role = "dialog"
)

// Element is a node of the document
type Element struct {
	ID        ElementID
	Role      Role
	Label     string
	Focusable bool
	Disabled  bool
	// TabStop marks the element as part of the sequential tab order
	// (tabindex 0). Focusable elements without it are reachable only
	// programmatically (tabindex -1).
	TabStop bool

	parent   ElementID
	children []ElementID
}

// Parent returns the parent element ID
func (e *Element) Parent() ElementID { return e.parent }

// Children returns a copy of the child IDs in document order
func (e *Element) Children() []ElementID {
	out := make([]ElementID, len(e.children))
	copy(out, e.children)
	return out
}

// LiveWrite records one write to a live region
type LiveWrite struct {
	Politeness Politeness
	Message    string
}

// Surface is the rendering capability the interaction controllers consume
type Surface interface {
	// ActiveElement returns the focused element, or "" when nothing has focus
	ActiveElement() ElementID
	// Focus moves focus to id. Returns false when id is missing or not focusable.
	Focus(id ElementID) bool
	IsFocusable(id ElementID) bool
	// Contains reports whether id is root or a descendant of root
	Contains(root, id ElementID) bool
	// Interactive lists the enabled focusable descendants of root in tree order
	Interactive(root ElementID) []ElementID
	// NextTabStop returns the default tab order neighbour of from
	NextTabStop(from ElementID, backward bool) ElementID
	SetLiveRegion(p Politeness, message string)
	SetScrollLocked(locked bool)
}

var (
	ErrElementExists = errors.New("element already exists")
	ErrNoSuchElement = errors.New("no such element")
)
