package editor

// SelectionKind tells what a [Selection] refers to.
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionEntity
	SelectionRelationship
)

// Selection is the current selection: nothing, one entity, or one
// relationship. The zero value selects nothing.
type Selection struct {
	Kind SelectionKind
	ID   string
}

// EntitySelection selects the entity id. An empty id selects nothing.
func EntitySelection(id string) Selection {
	if id == "" {
		return Selection{}
	}
	return Selection{Kind: SelectionEntity, ID: id}
}

// RelationshipSelection selects the relationship id. An empty id selects
// nothing.
func RelationshipSelection(id string) Selection {
	if id == "" {
		return Selection{}
	}
	return Selection{Kind: SelectionRelationship, ID: id}
}

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool { return s.Kind == SelectionNone }

// Entity returns the selected entity id, if an entity is selected.
func (s Selection) Entity() (string, bool) {
	return s.ID, s.Kind == SelectionEntity
}

// Relationship returns the selected relationship id, if a relationship is
// selected.
func (s Selection) Relationship() (string, bool) {
	return s.ID, s.Kind == SelectionRelationship
}

// ToolMode is the canvas tool. ToolSelect is the resting mode; the other
// modes arm a single creation and fall back to ToolSelect after it.
type ToolMode int

const (
	ToolSelect ToolMode = iota
	ToolEntity
	ToolRelationship
)

func (m ToolMode) String() string {
	switch m {
	case ToolEntity:
		return "entity"
	case ToolRelationship:
		return "relationship"
	default:
		return "select"
	}
}
