package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avashisht/grind/internal/commands"
	"github.com/avashisht/grind/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var teaCmd tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Toggle: func(a commands.ToggleArgs) (commands.Result, error) {
			def, rerr := model.ResolveTask(a.Task)
			if rerr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: rerr.Error()}
			}
			projected := m.projectedToday()
			current := false
			if entry, ok := projected.Entry(def.Code); ok {
				current = entry.Completed
			}
			intent := m.intents.Set(def.Code, !current, time.Now().UTC())
			teaCmd = m.toggleCmd(intent)
			verb := "done"
			if !intent.DesiredCompleted {
				verb = "not done"
			}
			return commands.Result{Message: fmt.Sprintf("%s -> %s", def.Label, verb)}, nil
		},
		Note: func(a commands.NoteArgs) (commands.Result, error) {
			def, rerr := model.ResolveTask(a.Task)
			if rerr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: rerr.Error()}
			}
			projected := m.projectedToday()
			completed := false
			if entry, ok := projected.Entry(def.Code); ok {
				completed = entry.Completed
			}
			note := a.Text
			teaCmd = m.saveDetailsCmd(def.Code, completed, nil, &note)
			return commands.Result{Message: fmt.Sprintf("saving note for %s", def.Label)}, nil
		},
		Value: func(a commands.ValueArgs) (commands.Result, error) {
			def, rerr := model.ResolveTask(a.Task)
			if rerr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: rerr.Error()}
			}
			projected := m.projectedToday()
			completed := false
			if entry, ok := projected.Entry(def.Code); ok {
				completed = entry.Completed
			}
			value := a.Text
			teaCmd = m.saveDetailsCmd(def.Code, completed, &value, nil)
			return commands.Result{Message: fmt.Sprintf("saving progress for %s", def.Label)}, nil
		},
		Reload: func() (commands.Result, error) {
			m.Loading = true
			teaCmd = tea.Batch(m.loadCmd(), m.loadingSpinner.Tick)
			return commands.Result{Message: "reloading progress"}, nil
		},
		Notify: func(a commands.NotifyArgs) (commands.Result, error) {
			switch a.Mode {
			case commands.NotifyModeOn:
				m.consent.SetAllow(true)
				perm, _ := m.consent.RequestPermission()
				return commands.Result{Message: fmt.Sprintf("notifications: %s", perm)}, nil
			case commands.NotifyModeOff:
				m.consent.SetAllow(false)
				perm, _ := m.consent.RequestPermission()
				return commands.Result{Message: fmt.Sprintf("notifications: %s", perm)}, nil
			default:
				return commands.Result{Message: fmt.Sprintf("notifications: %s", m.consent.CurrentPermission())}, nil
			}
		},
		Roadmap: func() (commands.Result, error) {
			m.CurrentView = ViewRoadmap
			m.ensureRoadmapContent()
			return commands.Result{Message: "roadmap view"}, nil
		},
		Help: func() (commands.Result, error) {
			m.HelpVisible = true
			return commands.Result{Message: "help shown"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m, teaCmd
}
