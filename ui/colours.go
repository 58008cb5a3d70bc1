package ui

const (
	// Standard colors
	Black   = "\033[30m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Gray    = "\033[90m" // Bright black, often appears as gray

	// Inverse video colors
	RedInverse    = "\033[7;31m"
	GreenInverse  = "\033[7;32m"
	YellowInverse = "\033[7;33m"
	BlueInverse   = "\033[7;34m"

	ResetColor = "\033[0m" // Reset to default color
)

var kindColors = map[Kind]string{
	KindSuccess: Green,
	KindError:   Red,
	KindWarning: Yellow,
	KindInfo:    Blue,
}

var kindIcons = map[Kind]string{
	KindSuccess: "✔",
	KindError:   "✖",
	KindWarning: "!",
	KindInfo:    "i",
}

// StatusColor picks a colour for an active/inactive badge.
func StatusColor(active bool) string {
	if active {
		return Green
	}
	return Gray
}

// Colorize wraps s in color when enabled is set.
func Colorize(enabled bool, color, s string) string {
	if !enabled || color == "" {
		return s
	}
	return color + s + ResetColor
}
