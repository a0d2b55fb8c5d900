package cli

import (
	"cmp"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/erdiagram/pkg/editor"
	"github.com/matzehuels/erdiagram/pkg/errors"
	"github.com/matzehuels/erdiagram/pkg/geometry"
	pkgio "github.com/matzehuels/erdiagram/pkg/io"
	"github.com/matzehuels/erdiagram/pkg/model"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// moveStep is the canvas distance the h/j/k/l keys move a shape.
const moveStep = 20.0

// =============================================================================
// editModel - Interactive diagram editor
// =============================================================================

type listItem struct {
	kind  editor.SelectionKind
	id    string
	label string
}

// prompt is a single-line text input shown at the bottom of the editor.
type prompt struct {
	label  string
	value  string
	submit func(m *editModel, value string)
}

// editModel is the bubbletea model driving an [editor.Editor] from the
// keyboard. Elements are listed rather than drawn; the canvas is rendered
// by the export and serve commands.
type editModel struct {
	ed   *editor.Editor
	path string

	entityName       string
	relationshipName string

	items  []listItem
	cursor int
	height int

	prompt      *prompt
	status      string
	confirmQuit bool
	saved       bool

	unsubscribe func()
}

// newEditModel wraps ed. Saving writes to path.
func newEditModel(ed *editor.Editor, path string) *editModel {
	m := &editModel{ed: ed, path: path, height: 15}
	m.unsubscribe = ed.Subscribe(func(c editor.Change) {
		m.sync(c.Diagram)
		if c.Kind == editor.ChangeView {
			m.status = fmt.Sprintf("zoom %.0f%%", ed.Zoom()*100)
		}
	})
	m.sync(ed.Diagram())
	return m
}

func (m *editModel) Init() tea.Cmd {
	return nil
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-12, 5)
	case tea.KeyMsg:
		if m.prompt != nil {
			m.updatePrompt(msg)
			return m, nil
		}
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *editModel) updatePrompt(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		p := m.prompt
		m.prompt = nil
		p.submit(m, strings.TrimSpace(p.value))
	case tea.KeyEsc, tea.KeyCtrlC:
		m.prompt = nil
		m.status = "canceled"
	case tea.KeyBackspace:
		if r := []rune(m.prompt.value); len(r) > 0 {
			m.prompt.value = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.prompt.value += " "
	case tea.KeyRunes:
		m.prompt.value += string(msg.Runes)
	}
}

func (m *editModel) handleKey(key string) tea.Cmd {
	if key != "q" && key != "ctrl+c" {
		m.confirmQuit = false
	}
	switch key {
	case "q", "ctrl+c":
		if m.ed.IsModified() && !m.confirmQuit {
			m.confirmQuit = true
			m.status = "unsaved changes, press q again to quit"
			return nil
		}
		m.unsubscribe()
		return tea.Quit
	case "up":
		m.moveCursor(-1)
	case "down", "tab":
		m.moveCursor(1)
	case "esc":
		m.ed.ClearSelection()
	case "e":
		m.ask("Entity name", func(m *editModel, v string) {
			m.ed.SelectEntity(m.ed.AddEntity(m.nextPosition(), m.orDefault(v, editor.SelectionEntity)))
		})
	case "r":
		m.ask("Relationship name", func(m *editModel, v string) {
			m.ed.SelectRelationship(m.ed.AddRelationship(m.nextPosition(), m.orDefault(v, editor.SelectionRelationship)))
		})
	case "N":
		m.ask("Note text", func(m *editModel, v string) {
			if v != "" {
				m.ed.AddNote(m.nextPosition(), v)
			}
		})
	case "n":
		m.rename()
	case "a":
		m.addAttribute()
	case "c":
		m.connect()
	case "w":
		m.toggleWeak()
	case "x":
		m.convert()
	case "d", "delete":
		if !m.ed.Selection().IsNone() {
			m.ed.DeleteSelection()
			m.status = "deleted"
		}
	case "u":
		if m.ed.CanUndo() {
			m.ed.Undo()
			m.status = "undone"
		}
	case "U", "ctrl+r":
		if m.ed.CanRedo() {
			m.ed.Redo()
			m.status = "redone"
		}
	case "h":
		m.move(-moveStep, 0)
	case "l":
		m.move(moveStep, 0)
	case "k":
		m.move(0, -moveStep)
	case "j":
		m.move(0, moveStep)
	case "+", "=":
		m.ed.ZoomIn()
	case "-":
		m.ed.ZoomOut()
	case "0":
		m.ed.ResetView()
	case "s":
		m.save()
	}
	return nil
}

// =============================================================================
// Actions
// =============================================================================

func (m *editModel) ask(label string, submit func(m *editModel, value string)) {
	m.prompt = &prompt{label: label, submit: submit}
}

func (m *editModel) orDefault(name string, kind editor.SelectionKind) string {
	if name != "" {
		return name
	}
	if kind == editor.SelectionRelationship {
		return cmp.Or(m.relationshipName, editor.DefaultRelationshipName)
	}
	return cmp.Or(m.entityName, editor.DefaultEntityName)
}

// nextPosition places new shapes on a grid in view.
func (m *editModel) nextPosition() geometry.Point {
	d := m.ed.Diagram()
	n := len(d.Entities) + len(d.Relationships) + len(d.Notes)
	screen := geometry.Point{X: 40 + float64(n%4)*220, Y: 40 + float64(n/4)*200}
	return m.ed.ScreenToCanvas(screen)
}

func (m *editModel) rename() {
	sel := m.ed.Selection()
	switch sel.Kind {
	case editor.SelectionEntity:
		m.ask("Rename entity", func(m *editModel, v string) {
			if v == "" {
				return
			}
			m.ed.UpdateEntity(sel.ID, func(e model.Entity) model.Entity {
				e.Name = v
				return e
			})
		})
	case editor.SelectionRelationship:
		m.ask("Rename relationship", func(m *editModel, v string) {
			if v == "" {
				return
			}
			m.ed.UpdateRelationship(sel.ID, func(r model.Relationship) model.Relationship {
				r.Name = v
				return r
			})
		})
	}
}

func (m *editModel) addAttribute() {
	sel := m.ed.Selection()
	if sel.IsNone() {
		m.status = "select an entity or relationship first"
		return
	}
	m.ask("Attribute name[:type]", func(m *editModel, v string) {
		a, err := parseAttribute(v)
		if err != nil {
			m.status = errors.UserMessage(err)
			return
		}
		if sel.Kind == editor.SelectionEntity {
			m.ed.AddAttributeToEntity(sel.ID, a)
		} else {
			m.ed.AddAttributeToRelationship(sel.ID, a)
		}
		m.status = "added " + a.Name
	})
}

func (m *editModel) connect() {
	relID, ok := m.ed.Selection().Relationship()
	if !ok {
		m.status = "select a relationship first"
		return
	}
	m.ask("Connect entity [cardinality]", func(m *editModel, v string) {
		d := m.ed.Diagram()
		ref, card, err := parseConnection(v)
		if err != nil {
			m.status = errors.UserMessage(err)
			return
		}
		e, err := findEntity(d, ref)
		if err != nil {
			m.status = errors.UserMessage(err)
			return
		}
		r, _ := d.Relationship(relID)
		if _, exists := r.Connection(e.ID); exists {
			m.ed.UpdateConnection(relID, e.ID, e.ID, card)
		} else {
			m.ed.AddConnection(relID, e.ID, card)
		}
		m.status = fmt.Sprintf("connected %s %s", e.Name, card.Label())
	})
}

func (m *editModel) toggleWeak() {
	id, ok := m.ed.Selection().Entity()
	if !ok {
		return
	}
	m.ed.UpdateEntity(id, func(e model.Entity) model.Entity {
		e.IsWeak = !e.IsWeak
		return e
	})
}

func (m *editModel) convert() {
	id, ok := m.ed.Selection().Relationship()
	if !ok {
		m.status = "select a relationship first"
		return
	}
	if m.ed.ConvertToAssociativeEntity(id) {
		m.status = "converted to associative entity"
	} else {
		m.status = "relationship must connect exactly two entities with many cardinalities"
	}
}

// move shifts the selected shape. Each key press is its own undo step.
func (m *editModel) move(dx, dy float64) {
	sel := m.ed.Selection()
	if sel.IsNone() {
		m.ed.PanBy(geometry.Vec{X: -dx, Y: -dy})
		return
	}
	m.ed.BeginDrag()
	switch sel.Kind {
	case editor.SelectionEntity:
		m.ed.UpdateEntityQuiet(sel.ID, func(e model.Entity) model.Entity {
			e.X, e.Y = e.X+dx, e.Y+dy
			return e
		})
	case editor.SelectionRelationship:
		m.ed.UpdateRelationshipQuiet(sel.ID, func(r model.Relationship) model.Relationship {
			r.X, r.Y = r.X+dx, r.Y+dy
			return r
		})
	}
}

func (m *editModel) save() {
	if err := pkgio.ExportJSON(m.ed.Diagram(), m.path); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.ed.MarkAsSaved(m.path)
	m.saved = true
	m.status = "saved " + m.path
}

// =============================================================================
// List state
// =============================================================================

// sync rebuilds the element list and moves the cursor to the selection.
func (m *editModel) sync(d model.Diagram) {
	m.items = m.items[:0]
	for _, e := range d.Entities {
		m.items = append(m.items, listItem{kind: editor.SelectionEntity, id: e.ID, label: e.Name})
	}
	for _, r := range d.Relationships {
		m.items = append(m.items, listItem{kind: editor.SelectionRelationship, id: r.ID, label: r.Name})
	}
	sel := m.ed.Selection()
	for i, it := range m.items {
		if it.kind == sel.Kind && it.id == sel.ID {
			m.cursor = i
			return
		}
	}
	m.cursor = min(m.cursor, max(len(m.items)-1, 0))
}

func (m *editModel) moveCursor(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.items)) % len(m.items)
	it := m.items[m.cursor]
	if it.kind == editor.SelectionEntity {
		m.ed.SelectEntity(it.id)
	} else {
		m.ed.SelectRelationship(it.id)
	}
}

// =============================================================================
// View
// =============================================================================

func (m *editModel) View() string {
	var b strings.Builder
	d := m.ed.Diagram()

	title := d.Name
	if m.ed.IsModified() {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("  " + listDimStyle.Render(m.path))
	b.WriteString("\n")
	b.WriteString(diagramStats(d))
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(listDimStyle.Render("  empty diagram, press e to add an entity"))
		b.WriteString("\n")
	}
	offset := max(m.cursor-m.height+1, 0)
	end := min(offset+m.height, len(m.items))
	sel := m.ed.Selection()
	for i := offset; i < end; i++ {
		it := m.items[i]
		kind := "entity"
		if it.kind == editor.SelectionRelationship {
			kind = "rel"
		}
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-6s %s", cursor, kind, it.label)
		if it.kind == sel.Kind && it.id == sel.ID {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if detail := m.detail(d); detail != "" {
		b.WriteString("\n")
		b.WriteString(detail)
	}

	b.WriteString("\n")
	if m.prompt != nil {
		b.WriteString(StyleHighlight.Render(m.prompt.label+": ") + m.prompt.value + "█\n")
	} else if m.status != "" {
		b.WriteString(listDimStyle.Render(m.status) + "\n")
	}
	b.WriteString(listDimStyle.Render("e entity  r rel  N note  a attr  c connect  n rename  w weak  x convert  d delete"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  hjkl move  u/U undo/redo  +/-/0 zoom  s save  q quit"))
	return b.String()
}

func (m *editModel) detail(d model.Diagram) string {
	sel := m.ed.Selection()
	switch sel.Kind {
	case editor.SelectionEntity:
		e, ok := d.Entity(sel.ID)
		if !ok {
			return ""
		}
		return keyValue("Attributes", attributeSummary(e.Attributes)) +
			keyValue("Weak", yesNo(e.IsWeak)) +
			keyValue("Position", fmt.Sprintf("%.0f, %.0f", e.X, e.Y))
	case editor.SelectionRelationship:
		r, ok := d.Relationship(sel.ID)
		if !ok {
			return ""
		}
		return keyValue("Connections", connectionSummary(d, r)) +
			keyValue("Attributes", attributeSummary(r.Attributes)) +
			keyValue("Position", fmt.Sprintf("%.0f, %.0f", r.X, r.Y))
	}
	return ""
}
