package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cratelink/pkg/errors"
	"github.com/matzehuels/cratelink/pkg/links"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// LinkPickerModel is the bubbletea model for choosing one of a crate's links.
type LinkPickerModel struct {
	Crate    string
	Links    []links.Link
	Cursor   int
	Selected *links.Link
}

// NewLinkPickerModel creates a picker with the cursor on preferred when the
// crate publishes it, otherwise on the first link.
func NewLinkPickerModel(crate string, available []links.Link, preferred links.Destination) LinkPickerModel {
	m := LinkPickerModel{Crate: crate, Links: available}
	for i, l := range available {
		if l.Destination == preferred {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m LinkPickerModel) Init() tea.Cmd {
	return nil
}

func (m LinkPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k := key.String(); k {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Links)-1 {
			m.Cursor++
		}
	case "enter":
		if len(m.Links) == 0 {
			return m, tea.Quit
		}
		l := m.Links[m.Cursor]
		m.Selected = &l
		return m, tea.Quit
	default:
		// Single-letter shorthands jump straight to a link.
		if d, err := links.ParseDestination(k); err == nil && len(k) == 1 {
			for i, l := range m.Links {
				if l.Destination == d {
					m.Cursor = i
					m.Selected = &m.Links[i]
					return m, tea.Quit
				}
			}
		}
	}
	return m, nil
}

func (m LinkPickerModel) View() string {
	if m.Selected != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Open a link for " + m.Crate))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  c/h/d/r jump  q quit"))
	b.WriteString("\n\n")

	for i, l := range m.Links {
		cursor := "  "
		style := StyleValue
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(fmt.Sprintf("%-14s", l.Destination.Label())))
		b.WriteString(" ")
		b.WriteString(listDimStyle.Render(l.URL))
		b.WriteString("\n")
	}
	return b.String()
}

// pickLink runs the picker on in/out and returns the chosen link.
func pickLink(in io.Reader, out io.Writer, m LinkPickerModel) (links.Link, error) {
	final, err := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return links.Link{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "link picker failed")
	}
	picked, ok := final.(LinkPickerModel)
	if !ok || picked.Selected == nil {
		return links.Link{}, errors.New(errors.ErrCodeInvalidInput, "No link selected.")
	}
	return *picked.Selected, nil
}
