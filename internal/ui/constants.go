package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconStop     = "⏹"
	IconFolder   = "📁"
	IconMuted    = "🔇"
	IconVolume   = "🔊"
)

// Text fragments
const (
	DashPlaceholder   = "—"
	ClockFormat       = "%02d:%02d"
	PositionSeparator = " / "
)

// Layout sizing
const (
	PosterMinWidth  float32 = 320
	PosterMinHeight float32 = 180

	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 420
)

// Preview position polling while playing
const (
	PositionTickInterval = 250 * time.Millisecond
)
