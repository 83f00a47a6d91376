package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// OrcaTheme defines the application theme: a pink accent palette with
// slightly compacted paddings and font sizes.
type OrcaTheme struct {
	Variant fyne.ThemeVariant
}

// NewOrcaTheme creates the theme for the given variant
func NewOrcaTheme(variant fyne.ThemeVariant) fyne.Theme {
	return &OrcaTheme{Variant: variant}
}

// Color returns theme colors
func (t *OrcaTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	variant := t.Variant
	switch name {
	case theme.ColorNamePrimary:
		return color.RGBA{R: 240, G: 29, B: 133, A: 255} // Pink accent
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255} // Green for completed
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255} // Red for failures
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 193, B: 7, A: 255} // Amber for warnings
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 15, G: 11, B: 13, A: 255} // Near-black with pink cast
		}
		return color.RGBA{R: 253, G: 239, B: 244, A: 255} // Pale pink
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 245, G: 235, B: 240, A: 255}
		}
		return color.RGBA{R: 45, G: 27, B: 36, A: 255}
	}

	// Use default colors for everything else
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *OrcaTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *OrcaTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *OrcaTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3 // Reduced from default 4
	case theme.SizeNameInnerPadding:
		return 6 // Reduced from default 8
	case theme.SizeNameText:
		return 13 // Reduced from default 14
	case theme.SizeNameHeadingText:
		return 16 // Reduced from default 18
	case theme.SizeNameInputRadius:
		return 3 // Reduced from default 5
	}

	// Use default theme for everything else
	return theme.DefaultTheme().Size(name)
}
