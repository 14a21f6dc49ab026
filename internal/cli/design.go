package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/labelkit/pkg/editor"
	"github.com/matzehuels/labelkit/pkg/export"
	"github.com/matzehuels/labelkit/pkg/geom"
	"github.com/matzehuels/labelkit/pkg/interact"
	"github.com/matzehuels/labelkit/pkg/label"
)

// Terminal cells are mapped onto the label canvas at a fixed scale.
const (
	cellW       = 10.0 // label px per column
	cellH       = 20.0 // label px per row
	headerRows  = 2    // title and help lines above the canvas
	resizeStep  = 10.0
	fontStep    = 1.0
	minFontSize = 1.0
)

// Designer styles
var (
	designBorderStyle   = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	designSectionStyle  = lipgloss.NewStyle().Background(lipgloss.Color("254")).Foreground(lipgloss.Color("235"))
	designSelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("153")).Foreground(lipgloss.Color("235")).Bold(true)
	designHoverStyle    = lipgloss.NewStyle().Background(lipgloss.Color("75")).Foreground(lipgloss.Color("255"))
	designDragStyle     = lipgloss.NewStyle().Background(lipgloss.Color("189")).Foreground(lipgloss.Color("17")).Bold(true)
	designPanelStyle    = lipgloss.NewStyle().PaddingLeft(3)
)

// designCommand creates the design command, an interactive terminal
// designer driven by keyboard and mouse.
func (c *CLI) designCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "design [data.json]",
		Short: "Edit a label interactively in the terminal",
		Long: `Design opens a terminal view of the label. Hover and drag sections with
the mouse to reorder them, or use the keyboard:

  j/k      select section        J/K   move section down/up
  +/-      resize section        tab   next field
  space    toggle field          [/]   font size
  e        export JSON           q     quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = defaultOutput(args[0], "label.json")
			}
			return c.runDesign(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "export file (default <data>.label.json)")

	return cmd
}

func (c *CLI) runDesign(ctx context.Context, input, output string) error {
	logger := loggerFromContext(ctx)

	_, data, state, err := c.loadInputs(input)
	if err != nil {
		return err
	}
	ed, err := editor.New(state, data, editor.WithLogger(logger))
	if err != nil {
		return err
	}

	m := newDesignModel(ed, output)
	final, err := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	).Run()
	if err != nil {
		return err
	}
	if dm, ok := final.(designModel); ok && dm.exported != "" {
		printSuccess("Exported label")
		printFile(dm.exported)
	}
	return nil
}

// =============================================================================
// designModel - Interactive label designer
// =============================================================================

type designModel struct {
	ed       *editor.Editor
	output   string
	selected int // index into the section order
	field    int // index into the selected section's fields
	status   string
	exported string
}

func newDesignModel(ed *editor.Editor, output string) designModel {
	return designModel{ed: ed, output: output}
}

func (m designModel) Init() tea.Cmd {
	return nil
}

func (m designModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m designModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	order := m.ed.State().SectionOrder
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.field = 0
		}
	case "down", "j":
		if m.selected < len(order)-1 {
			m.selected++
			m.field = 0
		}
	case "K":
		m.move(-1)
	case "J":
		m.move(1)
	case "+", "=":
		m.resize(resizeStep)
	case "-":
		m.resize(-resizeStep)
	case "tab":
		if n := len(m.fields()); n > 0 {
			m.field = (m.field + 1) % n
		}
	case " ":
		if f, ok := m.currentField(); ok {
			m.apply(label.ToggleField{Field: f.Key, Visible: !m.ed.State().Field(f.Key).Visible})
		}
	case "]":
		m.scaleFont(fontStep)
	case "[":
		m.scaleFont(-fontStep)
	case "e":
		d, err := export.Deliver(context.Background(), m.ed.Export(), nil, m.output)
		if err != nil {
			m.status = err.Error()
		} else {
			m.exported = d.Location
			m.status = "exported " + d.Location
		}
	}
	return m, nil
}

// handleMouse maps terminal cells onto label coordinates and forwards the
// event to the interaction controller.
func (m *designModel) handleMouse(msg tea.MouseMsg) {
	x := (float64(msg.X) + 0.5) * cellW
	y := (float64(msg.Y-headerRows) + 0.5) * cellH
	// A release ends a drag wherever it lands.
	if msg.Action == tea.MouseActionRelease {
		active := m.ed.Controller().Active()
		m.ed.PointerUp(x, y)
		if i := slices.Index(m.ed.State().SectionOrder, active); i >= 0 {
			m.selected = i
			m.field = 0
		}
		return
	}
	if msg.X >= canvasCols() || msg.Y < headerRows || msg.Y >= headerRows+canvasRows() {
		m.ed.PointerLeave()
		return
	}
	switch msg.Action {
	case tea.MouseActionMotion:
		m.ed.PointerMove(x, y)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.ed.PointerMove(x, y)
			m.ed.PointerDown(x, y)
		}
	}
}

func (m *designModel) apply(a label.Action) {
	if err := m.ed.Apply(a); err != nil {
		m.status = err.Error()
	}
}

func (m *designModel) move(delta int) {
	order := slices.Clone(m.ed.State().SectionOrder)
	j := m.selected + delta
	if j < 0 || j >= len(order) {
		return
	}
	order[m.selected], order[j] = order[j], order[m.selected]
	m.apply(label.ReorderSections{Order: order})
	m.selected = j
}

func (m *designModel) resize(delta float64) {
	key := m.sectionKey()
	h := m.ed.State().Height(key) + delta
	m.apply(label.ResizeSection{Section: key, Height: h})
}

func (m *designModel) scaleFont(delta float64) {
	f, ok := m.currentField()
	if !ok {
		return
	}
	size := m.ed.State().Field(f.Key).FontSize + delta
	if size < minFontSize {
		return
	}
	m.apply(label.SetFontSize{Field: f.Key, Size: size})
}

func (m designModel) sectionKey() label.SectionKey {
	return m.ed.State().SectionOrder[m.selected]
}

func (m designModel) fields() []label.FieldSpec {
	key := m.sectionKey()
	var out []label.FieldSpec
	for _, f := range label.Fields() {
		if f.Section == key {
			out = append(out, f)
		}
	}
	return out
}

func (m designModel) currentField() (label.FieldSpec, bool) {
	fs := m.fields()
	if m.field >= len(fs) {
		return label.FieldSpec{}, false
	}
	return fs[m.field], true
}

func (m designModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Label Designer"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("mode: %s", m.ed.Controller().Mode())))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("drag sections · j/k select · J/K move · +/- resize · tab/space fields · [/] size · e export · q quit"))
	b.WriteString("\n")

	canvas := m.renderCanvas()
	panel := designPanelStyle.Render(m.renderPanel())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvas, panel))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(m.status))
	}
	return b.String()
}

func canvasCols() int { return int(label.CanvasWidth / cellW) }
func canvasRows() int { return int(label.CanvasHeight / cellH) }

// renderCanvas draws one terminal row per cellH of label height, colouring
// each row by the topmost section under its centre.
func (m designModel) renderCanvas() string {
	g := m.ed.Scene()
	ctrl := m.ed.Controller()
	selected := m.sectionKey()
	cols := canvasCols()

	var rows []string
	var prev label.SectionKey
	for r := 0; r < canvasRows(); r++ {
		y := (float64(r) + 0.5) * cellH
		sec := g.SectionAt(geom.Point{X: label.CanvasWidth / 2, Y: y})
		if sec == nil {
			rows = append(rows, designBorderStyle.Render(strings.Repeat(" ", cols)))
			prev = ""
			continue
		}

		style := designSectionStyle
		switch {
		case sec.Section == ctrl.Active() && ctrl.Mode() == interact.Dragging:
			style = designDragStyle
		case sec.Section == ctrl.Active() && ctrl.Mode() == interact.Hovering:
			style = designHoverStyle
		case sec.Section == selected:
			style = designSelectedStyle
		}

		text := ""
		if sec.Section != prev {
			if spec, ok := label.Section(sec.Section); ok {
				text = fmt.Sprintf(" %s  %gpx", spec.Title, m.ed.State().Height(sec.Section))
			}
		}
		prev = sec.Section
		rows = append(rows, designBorderStyle.Render(" ")+style.Render(pad(text, cols-2))+designBorderStyle.Render(" "))
	}
	return strings.Join(rows, "\n")
}

func (m designModel) renderPanel() string {
	var b strings.Builder
	key := m.sectionKey()
	spec, _ := label.Section(key)
	b.WriteString(StyleHighlight.Render(spec.Title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  height %g", m.ed.State().Height(key))))
	b.WriteString("\n\n")

	state := m.ed.State()
	for i, f := range m.fields() {
		fs := state.Field(f.Key)
		cursor := "  "
		if i == m.field {
			cursor = "▸ "
		}
		check := "[ ]"
		if fs.Visible {
			check = "[x]"
		}
		line := fmt.Sprintf("%s%s %-28s %4gpx", cursor, check, f.Key, fs.FontSize)
		if i == m.field {
			b.WriteString(listSelectedStyle.Render(line))
		} else if !fs.Visible {
			b.WriteString(StyleDim.Render(line))
		} else {
			b.WriteString(StyleValue.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("order: " + joinKeys(state.SectionOrder)))
	return b.String()
}

var listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

func pad(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}

func joinKeys(keys []label.SectionKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, " ")
}
