package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ferris/pkg/pipeline"
	"github.com/matzehuels/ferris/pkg/render"
)

const (
	defaultScrollStep = 20
	sketchCols        = 64
	sketchRows        = 20
)

// Wheel view styles
var (
	listDimStyle       = lipgloss.NewStyle().Foreground(colorDim)
	sketchArcStyle     = lipgloss.NewStyle().Foreground(colorDim)
	sketchCapsuleStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	sketchFrameStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// tuiCommand creates the interactive wheel command.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		wf   wheelFlags
		step int
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Scroll a wheel interactively",
		Long: `Lay the wheel out and scroll it from the keyboard.

  j/↓  scroll forward      k/↑  scroll back
  pgdn page forward        pgup page back
  +/-  change step         r    lay out again
  q    quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &wf)
			if err != nil {
				return err
			}
			// The wheel logs would tear the alternate screen.
			w, err := pipeline.Build(cfg, nil)
			if err != nil {
				return err
			}
			if err := w.Layout(); err != nil {
				return err
			}
			if _, _, err := w.Replay(cfg.Scroll.Deltas); err != nil {
				return err
			}

			_, err = tea.NewProgram(newWheelModel(w, step), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	wf.register(cmd)
	cmd.Flags().IntVar(&step, "step", defaultScrollStep, "pixels per key press")
	return cmd
}

// =============================================================================
// WheelModel - Interactive scrolling
// =============================================================================

// WheelModel is the bubbletea model driving a live wheel.
type WheelModel struct {
	Wheel *pipeline.Wheel
	Step  int
	Frame render.Frame

	requested int
	consumed  int
	err       error
}

// newWheelModel wraps a laid out wheel.
func newWheelModel(w *pipeline.Wheel, step int) WheelModel {
	if step < 1 {
		step = defaultScrollStep
	}
	return WheelModel{Wheel: w, Step: step, Frame: w.Frame()}
}

func (m WheelModel) Init() tea.Cmd {
	return nil
}

func (m WheelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	page := m.Frame.Height / 2
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "down", "j":
		m.scroll(m.Step)
	case "up", "k":
		m.scroll(-m.Step)
	case "pgdown", " ":
		m.scroll(page)
	case "pgup":
		m.scroll(-page)
	case "+", "=":
		m.Step *= 2
	case "-":
		if m.Step > 1 {
			m.Step /= 2
		}
	case "r":
		m.err = m.Wheel.Layout()
		m.requested, m.consumed = 0, 0
		m.Frame = m.Wheel.Frame()
	}
	return m, nil
}

func (m *WheelModel) scroll(dy int) {
	consumed, err := m.Wheel.Scroll(dy)
	m.requested, m.consumed, m.err = dy, consumed, err
	m.Frame = m.Wheel.Frame()
}

func (m WheelModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Ferris Wheel"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("j/k scroll  pgup/pgdn page  +/- step  r relayout  q quit"))
	b.WriteString("\n\n")

	b.WriteString(sketchFrameStyle.Render(sketch(m.Frame, sketchCols, sketchRows)))
	b.WriteString("\n")

	status := fmt.Sprintf("window [%d, %d) of %d · step %dpx", m.Frame.Window.First, m.Frame.Window.Last, m.Frame.ItemCount, m.Step)
	if m.requested != 0 {
		status += fmt.Sprintf(" · consumed %d of %d", m.consumed, m.requested)
	}
	b.WriteString(listDimStyle.Render(status))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError + " " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	highlight := -1
	for _, c := range m.Frame.Capsules {
		if c.Visible {
			highlight = c.Position
			break
		}
	}
	if len(m.Frame.Capsules) > 0 {
		b.WriteString(capsuleTable(m.Frame, highlight))
	}
	return b.String()
}

// sketch draws the viewport of f scaled onto a cols x rows character grid:
// arc points as dots and capsule centers as the last digit of their
// position.
func sketch(f render.Frame, cols, rows int) string {
	grid := sketchGrid(f, cols, rows)
	lines := make([]string, len(grid))
	for r, row := range grid {
		var line strings.Builder
		for _, ch := range row {
			switch {
			case ch == '·':
				line.WriteString(sketchArcStyle.Render(string(ch)))
			case ch >= '0' && ch <= '9':
				line.WriteString(sketchCapsuleStyle.Render(string(ch)))
			default:
				line.WriteRune(ch)
			}
		}
		lines[r] = line.String()
	}
	return strings.Join(lines, "\n")
}

func sketchGrid(f render.Frame, cols, rows int) [][]rune {
	if f.Width <= 0 || f.Height <= 0 {
		return nil
	}
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}
	cell := func(x, y int) (int, int, bool) {
		if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
			return 0, 0, false
		}
		return x * cols / f.Width, y * rows / f.Height, true
	}
	for _, p := range f.Arc {
		if cx, cy, ok := cell(p.X, p.Y); ok {
			grid[cy][cx] = '·'
		}
	}
	for _, c := range f.Capsules {
		if cx, cy, ok := cell(c.Center.X, c.Center.Y); ok {
			grid[cy][cx] = rune('0' + c.Position%10)
		}
	}
	return grid
}
