// Package feedback appends thumbs-up/down events to per-day lists in the
// cache store. Events are append-only; eviction is TTL-driven.
package feedback

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/moseskang00/book-summary-service/common/constants"
)

const displayTimezone = "Asia/Kolkata"

// Event is the record appended to the day's feedback list.
type Event struct {
	Kind      string   `json:"kind"`
	ISOUTC    string   `json:"isoUTC"`
	ISTString string   `json:"istString"`
	TZ        string   `json:"tz"`
	Query     string   `json:"query"`
	Language  string   `json:"language"`
	Book      Book     `json:"book"`
	Location  Location `json:"location"`
	UA        string   `json:"ua"`
}

type Book struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
}

type Location struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	City    string `json:"city"`
}

// Input is what the handler collects from one feedback submission.
type Input struct {
	Kind      string
	Query     string
	Language  string
	Book      Book
	Country   string
	Region    string
	City      string
	UserAgent string
}

// Store is the slice of the cache the logger needs.
type Store interface {
	PushJSON(ctx context.Context, key string, v any) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// Logger writes feedback events. It is fire-and-forget: persistence
// failures are logged and swallowed, never returned.
type Logger struct {
	store  Store
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time
}

func New(store Store, logger *zap.Logger) *Logger {
	loc, err := time.LoadLocation(displayTimezone)
	if err != nil {
		// IST has no DST; a fixed offset is an exact substitute when the
		// tzdata is missing from the host.
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	return &Logger{store: store, logger: logger, loc: loc, now: time.Now}
}

// Record appends the event to the list for the current calendar day in the
// display timezone and refreshes that list's TTL.
func (l *Logger) Record(ctx context.Context, in Input) {
	if l.store == nil {
		return
	}
	now := l.now().UTC()
	local := now.In(l.loc)

	if in.Language == "" {
		in.Language = constants.DefaultLanguage
	}
	if in.Book.Authors == nil {
		in.Book.Authors = []string{}
	}

	event := Event{
		Kind:      in.Kind,
		ISOUTC:    now.Format(time.RFC3339Nano),
		ISTString: local.Format("2 Jan 2006, 3:04:05 pm"),
		TZ:        displayTimezone,
		Query:     in.Query,
		Language:  in.Language,
		Book:      in.Book,
		Location:  Location{Country: in.Country, Region: in.Region, City: in.City},
		UA:        in.UserAgent,
	}

	dayKey := fmt.Sprintf("%s:%s", constants.FeedbackKeyPrefix, local.Format("2006-01-02"))
	if err := l.store.PushJSON(ctx, dayKey, event); err != nil {
		l.logger.Warn("feedback push failed", zap.String("key", dayKey), zap.Error(err))
		return
	}
	if err := l.store.Expire(ctx, dayKey, constants.FeedbackTTL); err != nil {
		l.logger.Warn("feedback expire failed", zap.String("key", dayKey), zap.Error(err))
	}
}
