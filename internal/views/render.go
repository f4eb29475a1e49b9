package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const paneWidth = 58

// AppData is everything one frame of the dashboard needs: the two panes, the
// status strip, and the optional reminder banner.
type AppData struct {
	Header        string
	LeftPane      string
	RightPane     string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Notification  string
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func RenderApp(data AppData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(data.Header))
	b.WriteByte('\n')
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(paneWidth).Render(data.LeftPane),
		panelStyle.Width(paneWidth).Render(data.RightPane),
	))
	b.WriteByte('\n')
	b.WriteString(renderStatusLine(data.StatusLine, data.StatusIsError))
	if data.Notification != "" {
		b.WriteByte('\n')
		b.WriteString(panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		b.WriteByte('\n')
		b.WriteString(footerStyle.Render(data.Footer))
	}
	return b.String()
}

func renderStatusLine(line string, isError bool) string {
	if isError {
		return errorStyle.Render(line)
	}
	return statusStyle.Render(line)
}

// RenderMarkdown runs roadmap/help copy through glamour; when rendering
// fails the raw markdown is still readable, so return it as-is.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	rendered, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(rendered)
}
