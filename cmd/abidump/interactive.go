package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/abiwire/manifest"
	"github.com/wippyai/abiwire/typeid"
	"github.com/wippyai/abiwire/wire"
)

const (
	inputType = iota
	inputValue
)

type interactiveModel struct {
	app      *app
	inputs   []textinput.Model
	focusIdx int
	eval     evaluation
	entries  []manifest.Entry
	selected int
	loadErr  error
}

// evaluation is the result of interpreting the current inputs.
type evaluation struct {
	canonical   string
	fingerprint string
	checksum    uint16
	encoded     string
	decoded     string
	typeErr     error
	valueErr    error
}

func evaluate(reg *typeid.Registry, expr, literal string) evaluation {
	var ev evaluation
	if strings.TrimSpace(expr) == "" {
		return ev
	}
	e, err := reg.Lookup(expr)
	if err != nil {
		ev.typeErr = err
		return ev
	}
	ev.canonical = e.Expr
	ev.fingerprint = e.Fingerprint.String()
	ev.checksum = e.Checksum()

	if strings.TrimSpace(literal) == "" {
		return ev
	}
	a := &app{reg: reg}
	v, err := a.parseValue(e, literal)
	if err != nil {
		ev.valueErr = err
		return ev
	}
	data := wire.Encode(e.Codec, v)
	ev.encoded = hex.EncodeToString(data)

	back, err := wire.Decode(e.Codec, data)
	if err != nil {
		ev.valueErr = err
		return ev
	}
	ev.decoded = typeid.FormatValue(back)
	return ev
}

type manifestLoadedMsg struct {
	err     error
	entries []manifest.Entry
}

func newInteractiveModel(a *app) *interactiveModel {
	typeInput := textinput.New()
	typeInput.Prompt = "type:  "
	typeInput.Placeholder = "map<string, list<u32>>"
	typeInput.Width = 50
	typeInput.Focus()

	valueInput := textinput.New()
	valueInput.Prompt = "value: "
	valueInput.Placeholder = `{"ids": [1, 2, 3]}`
	valueInput.Width = 50

	return &interactiveModel{
		app:    a,
		inputs: []textinput.Model{typeInput, valueInput},
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	if m.app.cfg == nil || m.app.cfg.Manifest == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.loadManifest)
}

func (m *interactiveModel) loadManifest() tea.Msg {
	mf, err := manifest.Load(m.app.cfg.Manifest)
	if err != nil {
		return manifestLoadedMsg{err: err}
	}
	return manifestLoadedMsg{entries: mf.Types}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab":
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
			m.inputs[m.focusIdx].Focus()
			return m, nil

		case "up":
			if m.selected > 0 {
				m.selected--
				m.pick()
			}
			return m, nil

		case "down":
			if m.selected < len(m.entries)-1 {
				m.selected++
				m.pick()
			}
			return m, nil
		}

	case manifestLoadedMsg:
		m.loadErr = msg.err
		m.entries = msg.entries
		m.selected = 0
		if len(m.entries) > 0 {
			m.pick()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	m.refresh()
	return m, cmd
}

// pick loads the selected manifest entry into the type input.
func (m *interactiveModel) pick() {
	m.inputs[inputType].SetValue(m.entries[m.selected].Type)
	m.refresh()
}

func (m *interactiveModel) refresh() {
	m.eval = evaluate(m.app.reg, m.inputs[inputType].Value(), m.inputs[inputValue].Value())
}

func (m *interactiveModel) View() string {
	st := m.app.st
	var b strings.Builder

	b.WriteString(st.title.Render("ABI Explorer"))
	b.WriteString("\n\n")

	if m.loadErr != nil {
		b.WriteString(st.err.Render(fmt.Sprintf("manifest: %v", m.loadErr)))
		b.WriteString("\n\n")
	}
	if len(m.entries) > 0 {
		b.WriteString("Manifest types:\n")
		for i, e := range m.entries {
			status := "ok"
			if ev := evaluate(m.app.reg, e.Type, ""); ev.typeErr != nil {
				status = "invalid"
			} else if ev.checksum != e.Checksum {
				status = fmt.Sprintf("mismatch (computed %d)", ev.checksum)
			}
			line := fmt.Sprintf("%s %s  %d  %s", e.Name, e.Type, e.Checksum, status)
			if i == m.selected {
				b.WriteString(st.selected.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	ev := m.eval
	switch {
	case ev.typeErr != nil:
		b.WriteString(st.err.Render(ev.typeErr.Error()))
		b.WriteString("\n")
	case ev.canonical != "":
		fmt.Fprintf(&b, "canonical    %s\n", st.typ.Render(ev.canonical))
		fmt.Fprintf(&b, "fingerprint  %s\n", ev.fingerprint)
		fmt.Fprintf(&b, "checksum     %d\n", ev.checksum)
		if ev.valueErr != nil {
			b.WriteString(st.err.Render(ev.valueErr.Error()))
			b.WriteString("\n")
		} else if ev.encoded != "" {
			fmt.Fprintf(&b, "encoded      %s\n", st.result.Render(ev.encoded))
			fmt.Fprintf(&b, "decoded      %s\n", st.value.Render(ev.decoded))
		}
	}

	b.WriteString("\n")
	b.WriteString(st.help.Render("tab switch field • ↑/↓ manifest type • esc quit"))
	return b.String()
}

func runInteractive(a *app) error {
	p := tea.NewProgram(newInteractiveModel(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
