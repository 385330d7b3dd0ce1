package render

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Border  lipgloss.Color
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Dim     lipgloss.Style
	Notice  lipgloss.Style
	Low     lipgloss.Style
	Normal  lipgloss.Style
	High    lipgloss.Style
	Section lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Border:  lipgloss.Color("212"),
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Low:     lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		Normal:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true),
		High:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Section: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Underline(true),
	}
}
