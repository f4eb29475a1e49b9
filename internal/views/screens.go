package views

import (
	"fmt"
	"strings"
)

type ChecklistItemData struct {
	Code      string
	Label     string
	Completed bool
	Pending   bool
	Value     string
	Note      string
}

type ChecklistPanelData struct {
	Date         string
	Items        []ChecklistItemData
	SelectedCode string
	Loading      bool
	Spinner      string
	FromCache    bool
}

type SummaryPanelData struct {
	TotalDays             int
	ActiveDays            int
	PerfectDays           int
	ConsistencyPercentage float64
	CompletionPercentage  float64
	Remaining             int
	Available             bool
}

type HistoryDayData struct {
	Date      string
	Completed int
	Total     int
	Perfect   bool
}

type HistoryPanelData struct {
	Days      []HistoryDayData
	Available bool
}

type RoadmapPanelData struct {
	MarkdownView string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderChecklistPanel(data ChecklistPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("today: %s\n", data.Date))
	b.WriteString("actions: [j/k]move [space]toggle [r]reload [/]cmd\n")
	if data.Loading {
		b.WriteString(fmt.Sprintf("%s loading...\n", data.Spinner))
	}
	if data.FromCache {
		b.WriteString("(showing cached state; backend unreachable)\n")
	}
	for _, item := range data.Items {
		cursor := " "
		if item.Code == data.SelectedCode {
			cursor = ">"
		}
		box := "[ ]"
		if item.Completed {
			box = doneStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s %s", cursor, box, item.Label)
		if item.Pending {
			line += pendingStyle.Render(" *")
		}
		if item.Value != "" {
			line += fmt.Sprintf("  (%s)", item.Value)
		}
		b.WriteString(line + "\n")
		if item.Note != "" {
			b.WriteString(fmt.Sprintf("      note: %s\n", item.Note))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderSummaryPanel(data SummaryPanelData) string {
	var b strings.Builder
	b.WriteString("challenge:\n")
	if !data.Available {
		b.WriteString("(no progress yet; complete a task to start)")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("day %d of 60 | active: %d | perfect: %d\n", data.TotalDays, data.ActiveDays, data.PerfectDays))
	b.WriteString(fmt.Sprintf("consistency: %.1f%% | completion: %.1f%%\n", data.ConsistencyPercentage, data.CompletionPercentage))
	if data.Remaining == 0 {
		b.WriteString("all tasks done today")
	} else {
		b.WriteString(fmt.Sprintf("remaining today: %d", data.Remaining))
	}
	return strings.TrimSpace(b.String())
}

func RenderHistoryPanel(data HistoryPanelData) string {
	var b strings.Builder
	b.WriteString("last 7 days:\n")
	if !data.Available || len(data.Days) == 0 {
		b.WriteString("(no history yet)")
		return b.String()
	}
	for _, day := range data.Days {
		bar := historyBar(day.Completed, day.Total, 16)
		marker := " "
		if day.Perfect {
			marker = doneStyle.Render("*")
		}
		b.WriteString(fmt.Sprintf("%s %s %s %d/%d\n", day.Date, bar, marker, day.Completed, day.Total))
	}
	return strings.TrimSpace(b.String())
}

func RenderRoadmapPanel(data RoadmapPanelData) string {
	var b strings.Builder
	b.WriteString("roadmap:\n")
	b.WriteString(data.MarkdownView)
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	for _, binding := range data.Bindings {
		b.WriteString("  " + binding + "\n")
	}
	if data.HelpView != "" {
		b.WriteString(data.HelpView)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func historyBar(completed, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}
	filled := completed * width / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
