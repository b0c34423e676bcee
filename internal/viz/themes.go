package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name   string
	Body   lipgloss.Color
	Wall   lipgloss.Color
	Field  lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Body:   lipgloss.Color("#00ffff"),
		Wall:   lipgloss.Color("#ff00ff"),
		Field:  lipgloss.Color("#444466"),
		Accent: lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
	}

	// ThemeRetroGreen matches the green-on-black look of the original
	// raylib window.
	ThemeRetroGreen = Theme{
		Name:   "retro",
		Body:   lipgloss.Color("#00ff00"),
		Wall:   lipgloss.Color("#00cc00"),
		Field:  lipgloss.Color("#005500"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Body:   lipgloss.Color("#ffffff"),
		Wall:   lipgloss.Color("#cccccc"),
		Field:  lipgloss.Color("#555555"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Body:   lipgloss.Color("#ffd700"),
		Wall:   lipgloss.Color("#0077be"),
		Field:  lipgloss.Color("#1d4d6e"),
		Accent: lipgloss.Color("#00a8cc"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
	}
)

// ThemeIndex returns the position of the named theme, or 0 when unknown.
func ThemeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
