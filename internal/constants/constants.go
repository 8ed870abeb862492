package constants

// TabWidth is the default rendering stride for tab expansion. Every tab
// advances the rendered column to the next multiple of this value.
const TabWidth = 4

// PlaceholderLine is the single line shown when there is nothing to load:
// no path given, the file is missing or unreadable, or the file is empty.
const PlaceholderLine = "Hello,World!"

// NoName is the display name used when no file backs the buffer.
const NoName = "No Name"

// StatusNameWidth is the number of cells the file name occupies in the status bar.
const StatusNameWidth = 20

// Screen rows taken by the bars under the text area. The message bar is the
// last row of the screen and is not followed by a line terminator.
const (
	StatusBarRows  = 1
	MessageBarRows = 1
	ReservedRows   = StatusBarRows + MessageBarRows
)

// Fallback window size when the terminal cannot be queried.
const (
	DefaultRows = 24
	DefaultCols = 80
)

// Legacy bounded-memory profile. Zero limits (the default) mean unlimited.
//
// Set these in config.toml to reproduce the bounded behaviour:
//
//	max_lines = 1024
//	max_line_length = 256
const (
	LegacyMaxLines      = 1024
	LegacyMaxLineLength = 256
)

// DefaultHint is the static text of the message bar.
const DefaultHint = "HELP: arrows/Home/End/PgUp/PgDn/Tab move | q quit"

// DefaultEscapeTimeoutMs is how long the decoder waits for the bytes that
// follow ESC before deciding it was a lone Escape keystroke.
const DefaultEscapeTimeoutMs = 25
