package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avashisht/grind/internal/challenge"
	"github.com/avashisht/grind/internal/model"
	"github.com/avashisht/grind/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCmd(), m.loadingSpinner.Tick}
	if m.reminders != nil {
		cmds = append(cmds, waitForReminderCmd(m.reminders.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Checklist:
			m.CurrentView = ViewChecklist
			return m, nil
		case m.Keys.History:
			m.CurrentView = ViewHistory
			return m, nil
		case m.Keys.Roadmap:
			m.CurrentView = ViewRoadmap
			m.ensureRoadmapContent()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "r":
			if !m.Loading {
				m.Loading = true
				m.Status = StatusBar{Text: "reloading progress", IsError: false}
				return m, tea.Batch(m.loadCmd(), m.loadingSpinner.Tick)
			}
			return m, nil
		case "N":
			return m.requestNotificationPermission()
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			m.controller.CancelAll()
			return m, tea.Quit
		}
		if m.CurrentView == ViewChecklist {
			return m.handleChecklistKey(typed)
		}
		if m.CurrentView == ViewRoadmap {
			var cmd tea.Cmd
			m.roadmapViewport, cmd = m.roadmapViewport.Update(typed)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		if m.Loading {
			var cmd tea.Cmd
			m.loadingSpinner, cmd = m.loadingSpinner.Update(typed)
			return m, cmd
		}
		return m, nil

	case ProgressLoadedMsg:
		m.Loading = false
		m.LoadErr = nil
		m.FromCache = false
		m.reconcileIntents()
		m.Status = StatusBar{Text: "progress loaded", IsError: false}
		return m, nil

	case ProgressLoadFailedMsg:
		m.Loading = false
		m.LoadErr = typed.Err
		m.logger.WithError(typed.Err).Warn("progress load failed")
		m.Status = StatusBar{Text: fmt.Sprintf("load error: %v (press r to retry)", typed.Err), IsError: true}
		return m, nil

	case ToggleSettledMsg:
		if typed.Superseded {
			// A newer toggle for the same task took over; nothing to show.
			m.logger.WithField("task", typed.Task).Debug("toggle superseded")
			return m, nil
		}
		if typed.Err != nil {
			m.logger.WithError(typed.Err).WithField("task", typed.Task).Warn("toggle failed")
			// The optimistic checkbox stays as the user left it; the next
			// reload reconciles instead of flickering it back.
			m.Status = StatusBar{Text: fmt.Sprintf("error saving %s: %v", model.TaskLabel(typed.Task), typed.Err), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%s saved", model.TaskLabel(typed.Task)), IsError: false}
		return m, nil

	case DetailsSavedMsg:
		if typed.Superseded {
			return m, nil
		}
		if typed.Err != nil {
			m.logger.WithError(typed.Err).WithField("task", typed.Task).Warn("details save failed")
			m.Status = StatusBar{Text: fmt.Sprintf("error saving %s details: %v", model.TaskLabel(typed.Task), typed.Err), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%s details saved", model.TaskLabel(typed.Task)), IsError: false}
		return m, nil

	case ReminderDueMsg:
		return m.onReminderDue(typed)

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}

	return m, nil
}

func (m Model) handleChecklistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < model.CatalogSize()-1 {
			m.cursor++
		}
		return m, nil
	case " ", "enter":
		return m.toggleSelectedTask()
	}
	return m, nil
}

// toggleSelectedTask records the user's intent and fires the mutation. The
// checkbox flips in the very next render via the projection; the request
// settles whenever the network gets around to it.
func (m Model) toggleSelectedTask() (tea.Model, tea.Cmd) {
	defs := model.Catalog()
	if m.cursor < 0 || m.cursor >= len(defs) {
		return m, nil
	}
	task := defs[m.cursor].Code
	projected := m.projectedToday()
	current := false
	if entry, ok := projected.Entry(task); ok {
		current = entry.Completed
	}
	intent := m.intents.Set(task, !current, time.Now().UTC())
	verb := "done"
	if !intent.DesiredCompleted {
		verb = "not done"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s -> %s", model.TaskLabel(task), verb), IsError: false}
	return m, m.toggleCmd(intent)
}

func (m Model) requestNotificationPermission() (tea.Model, tea.Cmd) {
	perm, err := m.consent.RequestPermission()
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("notification permission error: %v", err), IsError: true}
		return m, nil
	}
	// Denied is informational, not an application error.
	m.Status = StatusBar{Text: fmt.Sprintf("notifications: %s", perm), IsError: false}
	return m, nil
}

func (m Model) onReminderDue(msg ReminderDueMsg) (tea.Model, tea.Cmd) {
	body := fmt.Sprintf("%d tasks remaining today", msg.Event.Remaining)
	if msg.Event.Remaining == 1 {
		body = "1 task remaining today"
	}
	m.lastReminder = fmt.Sprintf("%s @ %s", body, msg.Event.At.Format("15:04"))
	m.Status = StatusBar{Text: "reminder: " + body, IsError: false}
	if err := m.notifier.Send("grind", body); err != nil {
		m.logger.WithError(err).Warn("desktop notification failed")
	}
	if m.cache != nil {
		ctx, cancel := contextWithShortTimeout()
		defer cancel()
		if err := m.cache.SaveReminderSlot(ctx, msg.Event.Slot); err != nil {
			m.logger.WithError(err).Warn("reminder slot persist failed")
		}
	}
	if m.reminders != nil {
		return m, waitForReminderCmd(m.reminders.C())
	}
	return m, nil
}

// reconcileIntents discards pending intents that no request is backing
// anymore, so a fresh load becomes the rendered truth for those tasks. An
// intent whose request is still in flight keeps overriding the snapshot; its
// own settlement clears it. This is what lets a failed toggle heal: the
// intent stays visible through the failure, then the next successful load
// drops it here.
func (m Model) reconcileIntents() {
	for code, intent := range m.intents.View() {
		if !m.controller.Active(code) {
			m.intents.Clear(code, intent.Seq)
		}
	}
}

// projectedToday layers live intents over the confirmed state; before the
// first fetch settles it projects onto an empty log for today.
func (m Model) projectedToday() model.DailyLog {
	snap := m.store.Snapshot()
	base := snap.Today
	if !snap.HasToday {
		base = model.DailyLog{Date: time.Now().Format(model.DateLayout)}
	}
	return challenge.Project(base, m.intents.View())
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
	}

	snap := m.store.Snapshot()
	projected := m.projectedToday()

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewChecklist:
		leftPane = m.renderChecklist(projected)
		rightPane = m.renderSummary(snap, projected) + "\n\n" + m.renderHistory(snap) + m.renderHelpIfVisible()
	case ViewHistory:
		leftPane = m.renderHistory(snap)
		rightPane = m.renderSummary(snap, projected) + m.renderHelpIfVisible()
	case ViewRoadmap:
		leftPane = views.RenderRoadmapPanel(views.RoadmapPanelData{MarkdownView: m.roadmapViewport.View()})
		rightPane = m.renderChecklist(projected) + m.renderHelpIfVisible()
	}
	rightPane += views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)

	notification := ""
	if m.lastReminder != "" {
		notification = views.RenderNotification("reminder", m.lastReminder)
	}

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("grind | 2-month challenge | view: %s", m.CurrentView),
		LeftPane:      leftPane,
		RightPane:     rightPane,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  notification,
		Footer: fmt.Sprintf(
			"keys: %s checklist | %s history | %s roadmap | r reload | N notify | / cmd | %s help | %s quit",
			m.Keys.Checklist, m.Keys.History, m.Keys.Roadmap, m.Keys.Help, m.Keys.Quit),
	})
}
