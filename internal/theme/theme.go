// Package theme defines the color palettes used by the TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds every color role the UI draws with. Roles rather than raw
// colors keep the panes palette-agnostic.
type Theme struct {
	Background lipgloss.Color
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // text placed on an Accent background
	AccentDim  lipgloss.Color
	Border     lipgloss.Color
	BorderDim  lipgloss.Color
	TextFg     lipgloss.Color
	MutedFg    lipgloss.Color
	SuccessFg  lipgloss.Color // staged entries, clean status
	WarnFg     lipgloss.Color // modified entries, stale upstreams
	ErrorFg    lipgloss.Color // conflicts, failed commands
	BranchFg   lipgloss.Color // branch and remote names
	HashFg     lipgloss.Color // abbreviated commit hashes
	AddedFg    lipgloss.Color // diff additions
	RemovedFg  lipgloss.Color // diff deletions
}

// Theme names.
const (
	DraculaName        = "dracula"
	DraculaLightName   = "dracula-light"
	NordName           = "nord"
	GruvboxDarkName    = "gruvbox-dark"
	GruvboxLightName   = "gruvbox-light"
	SolarizedDarkName  = "solarized-dark"
	SolarizedLightName = "solarized-light"
	MonokaiName        = "monokai"
)

// Dracula returns the Dracula palette (dark background, vibrant colors).
func Dracula() *Theme {
	return &Theme{
		Background: lipgloss.Color("#282A36"),
		Accent:     lipgloss.Color("#BD93F9"), // purple
		AccentFg:   lipgloss.Color("#282A36"),
		AccentDim:  lipgloss.Color("#44475A"), // current line / selection
		Border:     lipgloss.Color("#6272A4"),
		BorderDim:  lipgloss.Color("#44475A"),
		TextFg:     lipgloss.Color("#F8F8F2"),
		MutedFg:    lipgloss.Color("#6272A4"), // comment
		SuccessFg:  lipgloss.Color("#50FA7B"),
		WarnFg:     lipgloss.Color("#FFB86C"),
		ErrorFg:    lipgloss.Color("#FF5555"),
		BranchFg:   lipgloss.Color("#8BE9FD"), // cyan
		HashFg:     lipgloss.Color("#F1FA8C"), // yellow
		AddedFg:    lipgloss.Color("#50FA7B"),
		RemovedFg:  lipgloss.Color("#FF5555"),
	}
}

// DraculaLight returns the Dracula palette adapted for light backgrounds.
func DraculaLight() *Theme {
	return &Theme{
		Background: lipgloss.Color("#FFFFFF"),
		Accent:     lipgloss.Color("#7C3AED"),
		AccentFg:   lipgloss.Color("#FFFFFF"),
		AccentDim:  lipgloss.Color("#F3E8FF"),
		Border:     lipgloss.Color("#D0D7DE"),
		BorderDim:  lipgloss.Color("#E8E8E8"),
		TextFg:     lipgloss.Color("#24292F"),
		MutedFg:    lipgloss.Color("#6E7781"),
		SuccessFg:  lipgloss.Color("#059669"),
		WarnFg:     lipgloss.Color("#D97706"),
		ErrorFg:    lipgloss.Color("#DC2626"),
		BranchFg:   lipgloss.Color("#0891B2"),
		HashFg:     lipgloss.Color("#CA8A04"),
		AddedFg:    lipgloss.Color("#059669"),
		RemovedFg:  lipgloss.Color("#DC2626"),
	}
}

// Nord returns the Nord palette (arctic blues on dark gray).
func Nord() *Theme {
	return &Theme{
		Background: lipgloss.Color("#2E3440"),
		Accent:     lipgloss.Color("#88C0D0"),
		AccentFg:   lipgloss.Color("#2E3440"),
		AccentDim:  lipgloss.Color("#3B4252"),
		Border:     lipgloss.Color("#4C566A"),
		BorderDim:  lipgloss.Color("#3B4252"),
		TextFg:     lipgloss.Color("#ECEFF4"),
		MutedFg:    lipgloss.Color("#616E88"),
		SuccessFg:  lipgloss.Color("#A3BE8C"),
		WarnFg:     lipgloss.Color("#EBCB8B"),
		ErrorFg:    lipgloss.Color("#BF616A"),
		BranchFg:   lipgloss.Color("#81A1C1"),
		HashFg:     lipgloss.Color("#B48EAD"),
		AddedFg:    lipgloss.Color("#A3BE8C"),
		RemovedFg:  lipgloss.Color("#BF616A"),
	}
}

// GruvboxDark returns the Gruvbox palette on its dark background.
func GruvboxDark() *Theme {
	return &Theme{
		Background: lipgloss.Color("#282828"),
		Accent:     lipgloss.Color("#FE8019"),
		AccentFg:   lipgloss.Color("#282828"),
		AccentDim:  lipgloss.Color("#3C3836"),
		Border:     lipgloss.Color("#504945"),
		BorderDim:  lipgloss.Color("#3C3836"),
		TextFg:     lipgloss.Color("#EBDBB2"),
		MutedFg:    lipgloss.Color("#928374"),
		SuccessFg:  lipgloss.Color("#B8BB26"),
		WarnFg:     lipgloss.Color("#FABD2F"),
		ErrorFg:    lipgloss.Color("#FB4934"),
		BranchFg:   lipgloss.Color("#83A598"),
		HashFg:     lipgloss.Color("#D3869B"),
		AddedFg:    lipgloss.Color("#B8BB26"),
		RemovedFg:  lipgloss.Color("#FB4934"),
	}
}

// GruvboxLight returns the Gruvbox palette on its light background.
func GruvboxLight() *Theme {
	return &Theme{
		Background: lipgloss.Color("#FBF1C7"),
		Accent:     lipgloss.Color("#AF3A03"),
		AccentFg:   lipgloss.Color("#FBF1C7"),
		AccentDim:  lipgloss.Color("#EBDBB2"),
		Border:     lipgloss.Color("#BDAE93"),
		BorderDim:  lipgloss.Color("#D5C4A1"),
		TextFg:     lipgloss.Color("#3C3836"),
		MutedFg:    lipgloss.Color("#7C6F64"),
		SuccessFg:  lipgloss.Color("#79740E"),
		WarnFg:     lipgloss.Color("#B57614"),
		ErrorFg:    lipgloss.Color("#9D0006"),
		BranchFg:   lipgloss.Color("#076678"),
		HashFg:     lipgloss.Color("#8F3F71"),
		AddedFg:    lipgloss.Color("#79740E"),
		RemovedFg:  lipgloss.Color("#9D0006"),
	}
}

// SolarizedDark returns the Solarized palette on base03.
func SolarizedDark() *Theme {
	return &Theme{
		Background: lipgloss.Color("#002B36"),
		Accent:     lipgloss.Color("#268BD2"),
		AccentFg:   lipgloss.Color("#002B36"),
		AccentDim:  lipgloss.Color("#073642"),
		Border:     lipgloss.Color("#586E75"),
		BorderDim:  lipgloss.Color("#073642"),
		TextFg:     lipgloss.Color("#93A1A1"),
		MutedFg:    lipgloss.Color("#586E75"),
		SuccessFg:  lipgloss.Color("#859900"),
		WarnFg:     lipgloss.Color("#B58900"),
		ErrorFg:    lipgloss.Color("#DC322F"),
		BranchFg:   lipgloss.Color("#2AA198"),
		HashFg:     lipgloss.Color("#6C71C4"),
		AddedFg:    lipgloss.Color("#859900"),
		RemovedFg:  lipgloss.Color("#DC322F"),
	}
}

// SolarizedLight returns the Solarized palette on base3.
func SolarizedLight() *Theme {
	return &Theme{
		Background: lipgloss.Color("#FDF6E3"),
		Accent:     lipgloss.Color("#268BD2"),
		AccentFg:   lipgloss.Color("#FDF6E3"),
		AccentDim:  lipgloss.Color("#EEE8D5"),
		Border:     lipgloss.Color("#93A1A1"),
		BorderDim:  lipgloss.Color("#EEE8D5"),
		TextFg:     lipgloss.Color("#657B83"),
		MutedFg:    lipgloss.Color("#93A1A1"),
		SuccessFg:  lipgloss.Color("#859900"),
		WarnFg:     lipgloss.Color("#B58900"),
		ErrorFg:    lipgloss.Color("#DC322F"),
		BranchFg:   lipgloss.Color("#2AA198"),
		HashFg:     lipgloss.Color("#6C71C4"),
		AddedFg:    lipgloss.Color("#859900"),
		RemovedFg:  lipgloss.Color("#DC322F"),
	}
}

// Monokai returns the Monokai palette.
func Monokai() *Theme {
	return &Theme{
		Background: lipgloss.Color("#272822"),
		Accent:     lipgloss.Color("#AE81FF"),
		AccentFg:   lipgloss.Color("#272822"),
		AccentDim:  lipgloss.Color("#3E3D32"),
		Border:     lipgloss.Color("#75715E"),
		BorderDim:  lipgloss.Color("#3E3D32"),
		TextFg:     lipgloss.Color("#F8F8F2"),
		MutedFg:    lipgloss.Color("#75715E"),
		SuccessFg:  lipgloss.Color("#A6E22E"),
		WarnFg:     lipgloss.Color("#E6DB74"),
		ErrorFg:    lipgloss.Color("#F92672"),
		BranchFg:   lipgloss.Color("#66D9EF"),
		HashFg:     lipgloss.Color("#FD971F"),
		AddedFg:    lipgloss.Color("#A6E22E"),
		RemovedFg:  lipgloss.Color("#F92672"),
	}
}

// GetTheme returns the palette registered under name, or Dracula when
// the name is unknown.
func GetTheme(name string) *Theme {
	switch name {
	case DraculaLightName:
		return DraculaLight()
	case NordName:
		return Nord()
	case GruvboxDarkName:
		return GruvboxDark()
	case GruvboxLightName:
		return GruvboxLight()
	case SolarizedDarkName:
		return SolarizedDark()
	case SolarizedLightName:
		return SolarizedLight()
	case MonokaiName:
		return Monokai()
	default:
		return Dracula()
	}
}

// IsLight reports whether name is a light-background palette.
func IsLight(name string) bool {
	switch name {
	case DraculaLightName, GruvboxLightName, SolarizedLightName:
		return true
	default:
		return false
	}
}

// DefaultDark returns the default dark theme name.
func DefaultDark() string {
	return DraculaName
}

// DefaultLight returns the default light theme name.
func DefaultLight() string {
	return DraculaLightName
}

// AvailableThemes lists every registered theme name.
func AvailableThemes() []string {
	return []string{
		DraculaName,
		DraculaLightName,
		NordName,
		GruvboxDarkName,
		GruvboxLightName,
		SolarizedDarkName,
		SolarizedLightName,
		MonokaiName,
	}
}
