// Package idgenerator builds landing batch identifiers of the form
// "{PREFIX}_{YYYYMMDD_HHMMSS}", optionally followed by a short random suffix
// when several batches of one source system can start within the same second.
package idgenerator

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"

	"github.com/google/uuid"
)

var batchTimePattern = regexp.MustCompile(`_(\d{8}_\d{6})(?:_[0-9a-f]{8})?$`)

type Generator interface {
	Generate(prefix string) string
}

type BatchIDGenerator struct {
	now        func() time.Time
	withSuffix bool
}

type Option func(*BatchIDGenerator)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *BatchIDGenerator) {
		g.now = now
	}
}

// WithRandomSuffix appends 8 hex characters of a uuid to every id.
func WithRandomSuffix() Option {
	return func(g *BatchIDGenerator) {
		g.withSuffix = true
	}
}

func New(opts ...Option) Generator {
	g := &BatchIDGenerator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *BatchIDGenerator) Generate(prefix string) string {
	id := fmt.Sprintf("%s_%s", prefix, g.now().Format(common.DateFormatBatchID))
	if g.withSuffix {
		id = fmt.Sprintf("%s_%s", id, shortUUID())
	}
	return id
}

// ParseTime returns the start time encoded in a generated batch id. Batch ids
// chosen by a caller usually carry none.
func ParseTime(batchID string) (time.Time, bool) {
	m := batchTimePattern.FindStringSubmatch(batchID)
	if m == nil {
		return time.Time{}, false
	}

	t, err := time.ParseInLocation(common.DateFormatBatchID, m[1], time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func shortUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
