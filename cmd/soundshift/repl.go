package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/soundshift/pkg/apply"
	"github.com/GriffinCanCode/soundshift/pkg/frontend"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive rule-testing session",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	_, err := tea.NewProgram(newReplModel()).Run()
	return err
}

// field identifies which of the two inputs has focus.
type field int

const (
	fieldRule field = iota
	fieldSequence
)

type replModel struct {
	rule     textinput.Model
	sequence textinput.Model
	focus    field
	output   viewport.Model
	history  []string
	width    int
	height   int
	ready    bool
}

func newReplModel() replModel {
	rule := textinput.New()
	rule.Placeholder = "p > b / V _ V"
	rule.Focus()

	seq := textinput.New()
	seq.Placeholder = "# a p a #"

	return replModel{rule: rule, sequence: seq, focus: fieldRule}
}

func (m replModel) Init() tea.Cmd {
	return nil
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		outHeight := m.height - headerHeight - footerHeight
		if outHeight < 1 {
			outHeight = 1
		}
		if !m.ready {
			m.output = viewport.New(m.width, outHeight)
			m.ready = true
		} else {
			m.output.Width = m.width
			m.output.Height = outHeight
		}
		m.syncOutput()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.toggleFocus()
		case "enter":
			m.runOnce()
			m.syncOutput()
		case "ctrl+l":
			m.history = nil
			m.syncOutput()
		default:
			var cmd tea.Cmd
			if m.focus == fieldRule {
				m.rule, cmd = m.rule.Update(msg)
			} else {
				m.sequence, cmd = m.sequence.Update(msg)
			}
			return m, cmd
		}
	}
	return m, nil
}

func (m replModel) View() string {
	if !m.ready {
		return "loading...\n"
	}
	header := titleStyle.Render("soundshift repl") + "  " + helpStyle.Render("tab: switch field  enter: run  ctrl+l: clear  esc: quit")
	body := m.output.View()
	footer := labelStyle.Render("rule: ") + m.rule.View() + "\n" + labelStyle.Render("seq:  ") + m.sequence.View()
	return header + "\n" + body + "\n" + footer
}

func (m *replModel) toggleFocus() {
	if m.focus == fieldRule {
		m.focus = fieldSequence
		m.rule.Blur()
		m.sequence.Focus()
	} else {
		m.focus = fieldRule
		m.sequence.Blur()
		m.rule.Focus()
	}
}

func (m *replModel) runOnce() {
	ruleSrc := strings.TrimSpace(m.rule.Value())
	seqSrc := strings.TrimSpace(m.sequence.Value())
	if ruleSrc == "" || seqSrc == "" {
		return
	}

	rule, err := frontend.ParseRule(ruleSrc, sys)
	if err != nil {
		m.history = append(m.history, errorStyle.Render(fmt.Sprintf("parse error: %v", err)))
		return
	}
	seq := frontend.ParseSequence(seqSrc, sys)

	fwd := apply.ForwardWithConfig(seq, rule, sys, sylConfig())
	back := apply.BackwardWithConfig(seq, rule, sys, sylConfig())
	backStrs := make([]string, len(back))
	for i, c := range back {
		backStrs[i] = c.String()
	}

	entry := fmt.Sprintf("%s\n  forward:  %s\n  backward: %s",
		ruleLineStyle.Render(ruleSrc+"  "+seqSrc),
		fwd.String(),
		strings.Join(backStrs, " | "))
	m.history = append(m.history, entry)
}

func (m *replModel) syncOutput() {
	m.output.SetContent(strings.Join(m.history, "\n\n"))
	m.output.GotoBottom()
}

const (
	headerHeight = 2
	footerHeight = 3
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	ruleLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)
