package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stanza-tools/cli/internal/store"
	"github.com/stanza-tools/cli/internal/ui/style"
)

func newConfigEditCmd(app *App, group *string) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit a group's entries interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("config edit requires an interactive terminal")
			}

			if _, err := app.Store.Read(); err != nil {
				return err
			}
			if err := routeGroup(app, *group); err != nil {
				return err
			}
			name := app.Store.DefaultGroup()

			m := newEditModel(name)
			if gc, ok := app.Store.GetGroup(name); ok {
				for _, e := range gc.Entries() {
					m.entries = append(m.entries, editEntry{key: e.Key, value: e.Value})
				}
			}

			p := tea.NewProgram(m, tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return err
			}

			fm := final.(editModel)
			if !fm.saved {
				fmt.Fprintln(app.Out, style.Muted("cancelled"))
				return nil
			}

			if err := applyEdits(app.Store, name, fm); err != nil {
				return err
			}

			fmt.Fprintln(app.Out, style.Success("saved"))
			return nil
		},
	}
}

// applyEdits flushes the outcome of an editing session to the store:
// removals first, then every remaining entry. Entries the user never
// touched keep their original values and types.
func applyEdits(g *store.Group, group string, m editModel) error {
	for _, k := range m.removed {
		g.SetInGroup(k, nil, group)
	}
	for _, e := range m.entries {
		g.SetInGroup(e.key, e.value, group)
	}
	return g.Write()
}

// editEntry is one row of the editor. value holds the stored value as-is;
// it only becomes a string once the user edits or adds the row.
type editEntry struct {
	key   string
	value any
}

type editKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Add    key.Binding
	Delete key.Binding
	Save   key.Binding
	Quit   key.Binding
}

func defaultEditKeyMap() editKeyMap {
	return editKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Edit:   key.NewBinding(key.WithKeys("enter")),
		Add:    key.NewBinding(key.WithKeys("a")),
		Delete: key.NewBinding(key.WithKeys("d")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s", "s")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

type editModel struct {
	group   string
	entries []editEntry
	removed []string
	cursor  int
	editing bool
	adding  bool
	input   textinput.Model
	keys    editKeyMap
	saved   bool
	width   int
	height  int
}

func newEditModel(group string) editModel {
	input := textinput.New()
	input.CharLimit = 256
	return editModel{
		group: group,
		input: input,
		keys:  defaultEditKeyMap(),
	}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m editModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		m.saved = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Edit):
		if m.cursor < len(m.entries) {
			m.editing = true
			m.adding = false
			m.input.SetValue(displayValue(m.entries[m.cursor].value))
			m.input.Focus()
		}

	case key.Matches(msg, m.keys.Add):
		m.editing = true
		m.adding = true
		m.input.SetValue("")
		m.input.Placeholder = "key=value"
		m.input.Focus()

	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(m.entries) {
			m.removed = append(m.removed, m.entries[m.cursor].key)
			m.entries = append(m.entries[:m.cursor], m.entries[m.cursor+1:]...)
			if m.cursor >= len(m.entries) && m.cursor > 0 {
				m.cursor--
			}
		}
	}

	return m, nil
}

func (m editModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if m.adding {
			if k, v, ok := strings.Cut(text, "="); ok && strings.TrimSpace(k) != "" {
				m.entries = append(m.entries, editEntry{key: strings.TrimSpace(k), value: strings.TrimSpace(v)})
				m.cursor = len(m.entries) - 1
			}
		} else if m.cursor < len(m.entries) {
			m.entries[m.cursor].value = text
		}
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m editModel) View() string {
	var b strings.Builder

	b.WriteString(style.Header("[" + m.group + "]"))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(style.Muted("  (empty)"))
		b.WriteString("\n")
	}

	for i, e := range m.entries {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s = %s\n", marker, style.Key(e.key), displayValue(e.value)))
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else {
		b.WriteString(style.Muted("enter edit · a add · d delete · s save · q quit"))
		b.WriteString("\n")
	}

	return b.String()
}
