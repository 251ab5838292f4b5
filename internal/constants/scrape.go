package constants

import "time"

const (
	DefaultScrapeURL      = "https://poemanalysis.com/themes/new-life/"
	DefaultScrapeMoodType = "new-life"
	DefaultScrapeDBPath   = "poems.db"
	DebugPageFile         = "debug_page.html"
	ScrapeTimeout         = 10 * time.Second
	MaxScrapeBodySize     = 10 * 1024 * 1024
	MaxConcurrentScrapes  = 4

	ScrapeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)
