package constants

import "time"

const (
	GoogleBooksAPIURL      = "https://www.googleapis.com/books/v1"
	GoogleBooksVolumesPath = "/volumes"
)

const (
	CachePrefix       = "trl"
	SummaryKeyPrefix  = "sum"
	FeedbackKeyPrefix = "fb"
)

const (
	SummaryTTL  = 30 * 24 * time.Hour
	FeedbackTTL = 60 * 24 * time.Hour
)

const (
	DefaultDesiredWords     = 2000
	DefaultTolerance        = 0.15
	DefaultLanguage         = "en"
	DescriptionSnippetLimit = 1200
	DefaultMaxResults       = 30
)
