package editor

import "github.com/matzehuels/erdiagram/pkg/model"

// ChangeKind tells observers what changed.
type ChangeKind int

const (
	ChangeDiagram ChangeKind = iota
	ChangeSelection
	ChangeTool
	ChangeView
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSelection:
		return "selection"
	case ChangeTool:
		return "tool"
	case ChangeView:
		return "view"
	default:
		return "diagram"
	}
}

// Change is delivered to observers after every applied change. Diagram is
// a copy of the diagram after the change, shared by all observers of the
// same notification; observers must not modify it.
type Change struct {
	Kind    ChangeKind
	Diagram model.Diagram
}

type observer struct {
	id int
	fn func(Change)
}

// Subscribe registers fn to be called synchronously after every change and
// returns a function that unregisters it. Observers run in subscription
// order and must not mutate the Editor.
func (e *Editor) Subscribe(fn func(Change)) (cancel func()) {
	e.observerID++
	id := e.observerID
	e.observers = append(e.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range e.observers {
			if o.id == id {
				e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

func (e *Editor) notify(kind ChangeKind) {
	if len(e.observers) == 0 {
		return
	}
	c := Change{Kind: kind, Diagram: e.diagram.Clone()}
	for _, o := range e.observers {
		o.fn(c)
	}
}
