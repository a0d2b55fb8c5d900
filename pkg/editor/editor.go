package editor

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/erdiagram/pkg/geometry"
	"github.com/matzehuels/erdiagram/pkg/model"
	"github.com/matzehuels/erdiagram/pkg/observability"
)

// Default element names used by Tap and by hosts that create elements
// without asking for a name.
const (
	DefaultEntityName       = "New Entity"
	DefaultRelationshipName = "New Relationship"
)

// Editor owns one diagram together with its selection, tool mode, view
// transform and undo history.
//
// An Editor is not safe for concurrent use. Hosts that dispatch from
// several goroutines must confine it to one of them.
type Editor struct {
	diagram   model.Diagram
	selection Selection
	tool      ToolMode
	modified  bool
	path      string
	zoom      float64
	pan       geometry.Vec
	history   *History

	// screen distance travelled by the current drag gesture
	dragTravel float64

	entityIndex map[string]int
	relIndex    map[string]int

	observers  []observer
	observerID int

	logger           *log.Logger
	newID            func() string
	entityName       string
	relationshipName string
	diagramName      string
	historySize      int
}

// Option configures an [Editor].
type Option func(*Editor)

// WithLogger sets the logger mutations are reported to at debug level.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHistorySize sets the number of undo steps kept.
func WithHistorySize(n int) Option { return func(e *Editor) { e.historySize = n } }

// WithIDGenerator replaces the random UUID generator used for new
// elements.
func WithIDGenerator(fn func() string) Option {
	return func(e *Editor) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithDefaultNames sets the names given to elements created by Tap and to
// diagrams created by NewDiagram. Empty values keep the defaults.
func WithDefaultNames(entity, relationship, diagram string) Option {
	return func(e *Editor) {
		if entity != "" {
			e.entityName = entity
		}
		if relationship != "" {
			e.relationshipName = relationship
		}
		if diagram != "" {
			e.diagramName = diagram
		}
	}
}

// New returns an Editor holding an empty, unmodified diagram.
func New(opts ...Option) *Editor {
	e := &Editor{
		zoom:             1,
		logger:           log.New(io.Discard),
		newID:            uuid.NewString,
		entityName:       DefaultEntityName,
		relationshipName: DefaultRelationshipName,
		diagramName:      model.DefaultDiagramName,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.history = NewHistory(e.historySize)
	e.install(model.New(e.diagramName))
	return e
}

// Diagram returns a copy of the current diagram.
func (e *Editor) Diagram() model.Diagram { return e.diagram.Clone() }

// Selection returns the current selection.
func (e *Editor) Selection() Selection { return e.selection }

// Tool returns the current tool mode.
func (e *Editor) Tool() ToolMode { return e.tool }

// IsModified reports whether the diagram changed since it was loaded,
// created or marked as saved.
func (e *Editor) IsModified() bool { return e.modified }

// Path returns the file the diagram was loaded from or saved to, or "".
func (e *Editor) Path() string { return e.path }

// CanUndo reports whether Undo would change the diagram.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would change the diagram.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// SetTool arms the tool for the next Tap.
func (e *Editor) SetTool(m ToolMode) {
	if e.tool == m {
		return
	}
	e.tool = m
	e.notify(ChangeTool)
}

// install makes d the current diagram and rebuilds the id index.
func (e *Editor) install(d model.Diagram) {
	e.diagram = d
	e.reindex()
}

func (e *Editor) reindex() {
	e.entityIndex = make(map[string]int, len(e.diagram.Entities))
	for i, en := range e.diagram.Entities {
		e.entityIndex[en.ID] = i
	}
	e.relIndex = make(map[string]int, len(e.diagram.Relationships))
	for i, r := range e.diagram.Relationships {
		e.relIndex[r.ID] = i
	}
}

func (e *Editor) entityAt(id string) (int, bool) {
	i, ok := e.entityIndex[id]
	return i, ok
}

func (e *Editor) relationshipAt(id string) (int, bool) {
	i, ok := e.relIndex[id]
	return i, ok
}

// snapshot records the current diagram as an undo step. It is the first
// half of every structural mutation.
func (e *Editor) snapshot() {
	e.history.Push(e.diagram)
}

// changed finishes a mutation: the diagram is marked modified, the index
// is refreshed and observers are told.
func (e *Editor) changed(op string, structural bool) {
	e.modified = true
	if structural {
		e.reindex()
	}
	undo, _ := e.history.Depth()
	e.logger.Debug("diagram mutated", "op", op, "undo", undo)
	observability.Editor().OnMutation(op, undo)
	e.notify(ChangeDiagram)
}

// revalidateSelection drops a selection whose target no longer exists.
func (e *Editor) revalidateSelection() {
	switch e.selection.Kind {
	case SelectionEntity:
		if _, ok := e.entityAt(e.selection.ID); !ok {
			e.selection = Selection{}
		}
	case SelectionRelationship:
		if _, ok := e.relationshipAt(e.selection.ID); !ok {
			e.selection = Selection{}
		}
	}
}

// Undo restores the previous diagram. It does nothing when there is no
// undo step.
func (e *Editor) Undo() {
	prev, ok := e.history.Undo(e.diagram)
	if !ok {
		return
	}
	e.install(prev)
	e.modified = true
	e.revalidateSelection()
	undo, redo := e.history.Depth()
	e.logger.Debug("undo", "undo", undo, "redo", redo)
	observability.Editor().OnUndo(undo, redo)
	e.notify(ChangeDiagram)
}

// Redo reapplies the most recently undone diagram. It does nothing when
// there is no redo step.
func (e *Editor) Redo() {
	next, ok := e.history.Redo(e.diagram)
	if !ok {
		return
	}
	e.install(next)
	e.modified = true
	e.revalidateSelection()
	undo, redo := e.history.Depth()
	e.logger.Debug("redo", "undo", undo, "redo", redo)
	observability.Editor().OnRedo(undo, redo)
	e.notify(ChangeDiagram)
}

// SelectEntity selects the entity id and clears any relationship
// selection. An empty id clears the selection.
func (e *Editor) SelectEntity(id string) { e.setSelection(EntitySelection(id)) }

// SelectRelationship selects the relationship id and clears any entity
// selection. An empty id clears the selection.
func (e *Editor) SelectRelationship(id string) { e.setSelection(RelationshipSelection(id)) }

// ClearSelection selects nothing.
func (e *Editor) ClearSelection() { e.setSelection(Selection{}) }

func (e *Editor) setSelection(s Selection) {
	if e.selection == s {
		return
	}
	e.selection = s
	e.notify(ChangeSelection)
}

// LoadDiagram replaces the diagram with a copy of d read from path. The
// diagram is unmodified afterwards, nothing is selected and the undo
// history is empty.
func (e *Editor) LoadDiagram(d model.Diagram, path string) {
	e.replace(d.Clone(), path)
	e.logger.Debug("diagram loaded", "name", d.Name, "path", path,
		"entities", len(d.Entities), "relationships", len(d.Relationships))
}

// NewDiagram replaces the diagram with an empty one, with the same effects
// as LoadDiagram and no path.
func (e *Editor) NewDiagram() {
	e.replace(model.New(e.diagramName), "")
	e.logger.Debug("new diagram", "name", e.diagramName)
}

func (e *Editor) replace(d model.Diagram, path string) {
	e.install(d)
	e.path = path
	e.modified = false
	e.selection = Selection{}
	e.history.Clear()
	e.notify(ChangeDiagram)
}

// MarkAsSaved records that the diagram was written to path.
func (e *Editor) MarkAsSaved(path string) {
	e.path = path
	e.modified = false
	e.logger.Debug("diagram saved", "path", path)
	e.notify(ChangeDiagram)
}
