package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/study-marks/models"
)

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	successStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	markStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

func toastStyle(s models.Severity) lipgloss.Style {
	switch s {
	case models.SeverityError:
		return errorStyle
	case models.SeveritySuccess:
		return successStyle
	default:
		return helpStyle
	}
}
