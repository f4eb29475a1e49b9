package update

import (
	"github.com/avashisht/grind/internal/challenge"
	"github.com/avashisht/grind/internal/model"
	"github.com/avashisht/grind/internal/views"
)

func (m Model) renderChecklist(projected model.DailyLog) string {
	defs := model.Catalog()
	items := make([]views.ChecklistItemData, 0, len(defs))
	selected := ""
	for i, def := range defs {
		entry, _ := projected.Entry(def.Code)
		_, pending := m.intents.Get(def.Code)
		items = append(items, views.ChecklistItemData{
			Code:      def.Code,
			Label:     def.Label,
			Completed: entry.Completed,
			Pending:   pending,
			Value:     entry.Value,
			Note:      entry.Note,
		})
		if i == m.cursor {
			selected = def.Code
		}
	}
	return views.RenderChecklistPanel(views.ChecklistPanelData{
		Date:         projected.Date,
		Items:        items,
		SelectedCode: selected,
		Loading:      m.Loading,
		Spinner:      m.loadingSpinner.View(),
		FromCache:    m.FromCache,
	})
}

func (m Model) renderSummary(snap challenge.Snapshot, projected model.DailyLog) string {
	data := views.SummaryPanelData{
		Available: snap.HasProgress,
		Remaining: projected.IncompleteCount(),
	}
	if snap.HasProgress {
		data.TotalDays = snap.Progress.TotalDays
		data.ActiveDays = snap.Progress.ActiveDays
		data.PerfectDays = snap.Progress.PerfectDays
		data.ConsistencyPercentage = snap.Progress.ConsistencyPercentage
		data.CompletionPercentage = snap.Progress.CompletionPercentage
	}
	return views.RenderSummaryPanel(data)
}

func (m Model) renderHistory(snap challenge.Snapshot) string {
	data := views.HistoryPanelData{Available: snap.HasProgress}
	if snap.HasProgress {
		for _, day := range snap.Progress.LastN(7) {
			completed := model.CatalogSize() - day.IncompleteCount()
			data.Days = append(data.Days, views.HistoryDayData{
				Date:      day.Date,
				Completed: completed,
				Total:     model.CatalogSize(),
				Perfect:   day.IsFullyCompleted,
			})
		}
	}
	return views.RenderHistoryPanel(data)
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n\n" + views.RenderHelpPanel(views.HelpPanelData{
		Bindings: []string{
			"j/k or arrows: move cursor",
			"space/enter: toggle task",
			"r: reload from backend",
			"N: request notification permission",
			"/: command palette (toggle, note, value, reload, notify, roadmap, help)",
			"1/2/3: checklist, history, roadmap",
			"q: quit",
		},
	})
}

func (m *Model) ensureRoadmapContent() {
	if m.roadmapReady {
		return
	}
	m.roadmapViewport.SetContent(views.RenderMarkdown(roadmapMarkdown))
	m.roadmapReady = true
}
