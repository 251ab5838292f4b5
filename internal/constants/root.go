package constants

import "time"

const (
	AppName            = "moodverse"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/moodverse"
	DefaultDBPath      = "~/.config/moodverse/poems.db"
	Version            = "v0.1.0"

	// DateFormat is the date format used for mood records (YYYY-MM-DD)
	DateFormat = "2006-01-02"
)

const (
	// Scores at or above HappyThreshold are matched with happy poems, everything below with sad ones.
	HappyThreshold = 6

	MinScore = 1
	MaxScore = 10

	// Streak detection looks at the last StreakWindow scores; a streak is all strictly below
	// or all strictly above StreakPivot.
	StreakWindow = 3
	StreakPivot  = 5
)

const (
	DefaultPoetryURL  = "https://poetrydb.org"
	PoetryRandomPath  = "/random"
	MaxFetchAttempts  = 20
	MaxPoemLineCount  = 1000
	FetchTimeout      = 5 * time.Second
	DefaultPoemTitle  = "Untitled"
	DefaultPoemAuthor = "Unknown"
)

const (
	// Display limits for the interactive journal
	PoemPreviewLines   = 5
	SeparatorLength    = 50
	TypewriterInterval = 50 * time.Millisecond
)
