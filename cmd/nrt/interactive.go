package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/tensor-runtime/engine"
	"github.com/wippyai/tensor-runtime/runtime"
	"github.com/wippyai/tensor-runtime/value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	err      error
	eng      *engine.Engine
	desc     *runtime.ModuleDescriptor
	wasmFile string
	specFile string
	result   string
	specs    []engine.FuncSpec
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

func newInteractiveModel(wasmFile, specFile string) *interactiveModel {
	return &interactiveModel{
		wasmFile: wasmFile,
		specFile: specFile,
		state:    stateSelectFunc,
	}
}

type loadedMsg struct {
	err   error
	eng   *engine.Engine
	desc  *runtime.ModuleDescriptor
	specs []engine.FuncSpec
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadModule
}

func (m *interactiveModel) loadModule() tea.Msg {
	ctx := context.Background()

	wasmBytes, err := os.ReadFile(m.wasmFile)
	if err != nil {
		return loadedMsg{err: err}
	}
	specBytes, err := os.ReadFile(m.specFile)
	if err != nil {
		return loadedMsg{err: err}
	}
	specs, err := parseSpecs(specBytes)
	if err != nil {
		return loadedMsg{err: err}
	}

	eng, err := engine.New(ctx)
	if err != nil {
		return loadedMsg{err: err}
	}
	desc, err := eng.Load(ctx, wasmBytes, specs)
	if err != nil {
		eng.Close(ctx)
		return loadedMsg{err: err}
	}

	return loadedMsg{eng: eng, desc: desc, specs: specs}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.eng != nil {
				m.eng.Close(context.Background())
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.specs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callFunction
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.eng = msg.eng
		m.desc = msg.desc
		m.specs = msg.specs

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	spec := m.specs[m.selected]
	m.inputs = make([]textinput.Model, len(spec.Inputs))
	for i, kind := range spec.Inputs {
		ti := textinput.New()
		ti.Placeholder = placeholderFor(kind)
		ti.Prompt = fmt.Sprintf("arg%d: ", i)
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func placeholderFor(kind engine.ParamKind) string {
	if kind == engine.ParamTensor {
		return "2x3:1,2,3,4,5,6"
	}
	return kind.String()
}

// callFunction invokes the selected function. The invoke path panics on
// contract violations and traps, so the call is fenced with a recover that
// surfaces the failure in the result pane instead of tearing down the TUI.
func (m *interactiveModel) callFunction() (msg tea.Msg) {
	defer func() {
		if r := recover(); r != nil {
			msg = callResultMsg{err: fmt.Errorf("%v", r)}
		}
	}()

	spec := m.specs[m.selected]
	meta, err := runtime.GetMetadata(m.desc, spec.Name)
	if err != nil {
		return callResultMsg{err: err}
	}

	inputs := make([]value.Value, len(m.inputs))
	for i, input := range m.inputs {
		v, err := parseArg(spec.Inputs[i], strings.TrimSpace(input.Value()))
		if err != nil {
			value.ReleaseAll(inputs[:i])
			return callResultMsg{err: err}
		}
		inputs[i] = v
	}
	defer value.ReleaseAll(inputs)

	outputs := make([]value.Value, meta.NumOutputs)
	if err := runtime.InvokeChecked(m.desc, spec.Name, inputs, outputs); err != nil {
		return callResultMsg{err: err}
	}
	defer value.ReleaseAll(outputs)

	var parts []string
	for i := range outputs {
		parts = append(parts, formatValue(outputs[i]))
	}
	return callResultMsg{result: strings.Join(parts, "\n")}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.desc == nil {
		return "Loading module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Tensor Runtime"))
	b.WriteString(" ")
	b.WriteString(m.wasmFile)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a function to invoke:\n\n")
		for i, spec := range m.specs {
			line := m.formatFunc(spec)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter invoke • q quit"))

	case stateInputArgs:
		spec := m.specs[m.selected]
		b.WriteString(fmt.Sprintf("Invoking %s\n\n", funcStyle.Render(spec.Name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(spec.Inputs[i].String()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter invoke • esc back"))

	case stateShowResult:
		spec := m.specs[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(spec.Name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatFunc(spec engine.FuncSpec) string {
	ins := make([]string, len(spec.Inputs))
	for i, k := range spec.Inputs {
		ins[i] = typeStyle.Render(k.String())
	}
	outs := make([]string, len(spec.Outputs))
	for i, o := range spec.Outputs {
		outs[i] = typeStyle.Render(o.Kind.String())
	}
	sig := funcStyle.Render(spec.Name) + "(" + strings.Join(ins, ", ") + ")"
	if len(outs) > 0 {
		sig += " -> " + strings.Join(outs, ", ")
	}
	return sig
}

func runInteractive(wasmFile, specFile string) error {
	p := tea.NewProgram(newInteractiveModel(wasmFile, specFile), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
