package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func darkTheme() *Theme {
	return &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Screening:   "#112233",
		Alternate:   "#445566",
		Today:       "#777777",
		Warning:     "#888888",
	}
}

func TestNewPalette_BlockShades(t *testing.T) {
	base := darkTheme()
	palette := NewPalette(base)

	if palette.ScreeningBg != lipgloss.Color(darkenColor(base.Screening)) {
		t.Fatalf("ScreeningBg = %q, want %q", palette.ScreeningBg, darkenColor(base.Screening))
	}
	if palette.AlternateBg != lipgloss.Color(darkenColor(base.Alternate)) {
		t.Fatalf("AlternateBg = %q, want %q", palette.AlternateBg, darkenColor(base.Alternate))
	}
	if palette.ScreeningPast != lipgloss.Color(muteColor(base.Screening)) {
		t.Fatalf("ScreeningPast = %q, want %q", palette.ScreeningPast, muteColor(base.Screening))
	}
}

func TestNewPalette_NilUsesDefault(t *testing.T) {
	palette := NewPalette(nil)
	mocha, err := Load(DefaultName)
	if err != nil {
		t.Fatalf("Load(mocha): %v", err)
	}
	if palette.Accent != lipgloss.Color(mocha.Accent) {
		t.Fatalf("Accent = %q, want %q", palette.Accent, mocha.Accent)
	}
}

func TestNewPalette_LightThemeInvertsShades(t *testing.T) {
	base := &Theme{
		Bg:        "#f5f5f5",
		Fg:        "#222222",
		Accent:    "#2f6feb",
		Screening: "#1d8a8a",
		Alternate: "#2f8f2f",
		Warning:   "#c2410c",
	}

	palette := NewPalette(base)
	if relativeLuminance(string(palette.ScreeningBg)) <= relativeLuminance(base.Screening) {
		t.Fatalf("ScreeningBg luminance = %f, want greater than Screening", relativeLuminance(string(palette.ScreeningBg)))
	}
	if relativeLuminance(string(palette.AlternateBg)) <= relativeLuminance(base.Alternate) {
		t.Fatalf("AlternateBg luminance = %f, want greater than Alternate", relativeLuminance(string(palette.AlternateBg)))
	}
}

func TestDarkenColorFloor(t *testing.T) {
	if got := darkenColor("#112233"); got != "#282828" {
		t.Fatalf("darkenColor(#112233) = %q, want #282828", got)
	}
	if got := darkenColor("bogus"); got != "bogus" {
		t.Fatalf("darkenColor(bogus) = %q, want input unchanged", got)
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}
