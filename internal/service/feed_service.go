package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/campus-events-hub/portal-api/internal/models"
	"github.com/campus-events-hub/portal-api/pkg/dates"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
)

const feedSnapshotCacheKey = "feed:snapshot"

// Chip filters accepted by the public feed.
const (
	ChipAll   = "all"
	ChipFree  = "free"
	ChipToday = "today"
	ChipWeek  = "week"
)

type feedEventSource interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

type feedAnnouncementSource interface {
	List(ctx context.Context, search string) ([]models.Announcement, error)
}

type feedWinnerSource interface {
	List(ctx context.Context, search string) ([]models.Winner, error)
	ListByEvent(ctx context.Context, eventID int64) ([]models.Winner, error)
}

// FeedSnapshot is the raw portal content before any filters apply. It is the
// unit of caching so that every filter combination is served from one entry.
type FeedSnapshot struct {
	Events        []models.Event        `json:"events"`
	Announcements []models.Announcement `json:"announcements"`
	Winners       []models.Winner       `json:"winners"`
	FetchedAt     time.Time             `json:"fetched_at"`
}

// FeedFilters narrows the feed. All populated filters are combined.
type FeedFilters struct {
	Search     string
	Department string
	Chip       string
}

// FeedView is the derived portal payload.
type FeedView struct {
	Upcoming         []models.Event        `json:"upcoming_events"`
	Past             []models.Event        `json:"past_events"`
	Announcements    []models.Announcement `json:"announcements"`
	Winners          []models.Winner       `json:"winners"`
	Departments      []string              `json:"departments"`
	TickerIntervalMS int64                 `json:"ticker_interval_ms"`
	GeneratedAt      time.Time             `json:"generated_at"`
}

// TickerFrame is one step of the rotating winner banner.
type TickerFrame struct {
	Winner           *models.Winner `json:"winner"`
	Index            int            `json:"index"`
	Total            int            `json:"total"`
	TickerIntervalMS int64          `json:"ticker_interval_ms"`
}

// EventDetail bundles a single event with its published winners.
type EventDetail struct {
	Event   models.Event    `json:"event"`
	Winners []models.Winner `json:"winners"`
	Past    bool            `json:"past"`
}

// FeedService assembles the public portal content.
type FeedService struct {
	events         feedEventSource
	announcements  feedAnnouncementSource
	winners        feedWinnerSource
	cache          *CacheService
	cacheTTL       time.Duration
	tickerInterval time.Duration
	logger         *zap.Logger
	now            func() time.Time
}

// NewFeedService constructs the service.
func NewFeedService(events feedEventSource, announcements feedAnnouncementSource, winners feedWinnerSource, cache *CacheService, cacheTTL, tickerInterval time.Duration, logger *zap.Logger) *FeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tickerInterval <= 0 {
		tickerInterval = 6 * time.Second
	}
	return &FeedService{
		events:         events,
		announcements:  announcements,
		winners:        winners,
		cache:          cache,
		cacheTTL:       cacheTTL,
		tickerInterval: tickerInterval,
		logger:         logger,
		now:            time.Now,
	}
}

// Load fetches the snapshot and derives the filtered feed view.
func (s *FeedService) Load(ctx context.Context, filters FeedFilters) (*FeedView, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	view := BuildFeedView(snapshot, filters, s.now())
	view.TickerIntervalMS = s.tickerInterval.Milliseconds()
	return view, nil
}

// Detail returns one event together with its winners. Soft-deleted events stay
// reachable here so shared deep links keep working.
func (s *FeedService) Detail(ctx context.Context, id int64) (*EventDetail, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		s.logger.Error("load event detail", zap.Int64("event_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	winners, err := s.winners.ListByEvent(ctx, id)
	if err != nil {
		s.logger.Error("load event winners", zap.Int64("event_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load winners")
	}
	return &EventDetail{
		Event:   *event,
		Winners: winners,
		Past:    !event.Upcoming(s.now()),
	}, nil
}

// Ticker returns the next winner frame after the given index. The rotation
// wraps, so any non-negative index is a valid cursor.
func (s *FeedService) Ticker(ctx context.Context, after int) (*TickerFrame, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	winners := publishedWinners(snapshot.Winners, s.now())
	frame := &TickerFrame{
		Total:            len(winners),
		TickerIntervalMS: s.tickerInterval.Milliseconds(),
	}
	if len(winners) == 0 {
		return frame, nil
	}
	frame.Index = NextTickerIndex(after, len(winners))
	winner := winners[frame.Index]
	frame.Winner = &winner
	return frame, nil
}

// Invalidate drops the cached snapshot after any content mutation.
func (s *FeedService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, feedSnapshotCacheKey)
	}
}

func (s *FeedService) snapshot(ctx context.Context) (*FeedSnapshot, error) {
	if s.cache.Enabled() {
		var cached FeedSnapshot
		if hit, err := s.cache.Get(ctx, feedSnapshotCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	snapshot := &FeedSnapshot{FetchedAt: s.now().UTC()}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := s.events.List(gctx, models.EventFilter{})
		if err != nil {
			return err
		}
		snapshot.Events = events
		return nil
	})
	g.Go(func() error {
		announcements, err := s.announcements.List(gctx, "")
		if err != nil {
			return err
		}
		snapshot.Announcements = announcements
		return nil
	})
	g.Go(func() error {
		winners, err := s.winners.List(gctx, "")
		if err != nil {
			return err
		}
		snapshot.Winners = winners
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, appErrors.ErrTimeout
		}
		s.logger.Error("load feed snapshot", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feed")
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, feedSnapshotCacheKey, snapshot, s.cacheTTL)
	}
	return snapshot, nil
}

// BuildFeedView derives the filtered, partitioned view from a snapshot.
func BuildFeedView(snapshot *FeedSnapshot, filters FeedFilters, now time.Time) *FeedView {
	view := &FeedView{
		Departments: DepartmentOptions(snapshot.Events),
		GeneratedAt: now.UTC(),
	}

	visible := make([]models.Event, 0, len(snapshot.Events))
	for _, event := range snapshot.Events {
		if event.SoftDeleted(now) {
			continue
		}
		if !MatchesFilters(event, filters, now) {
			continue
		}
		visible = append(visible, event)
	}
	view.Upcoming, view.Past = PartitionEvents(visible, now)

	search := normalize(filters.Search)
	view.Announcements = filterAnnouncements(snapshot.Announcements, search)

	view.Winners = filterWinners(publishedWinners(snapshot.Winners, now), search)
	return view
}

// PartitionEvents splits events into upcoming (soonest first) and past (most
// recent first). Events without a date count as upcoming.
func PartitionEvents(events []models.Event, now time.Time) (upcoming, past []models.Event) {
	upcoming = make([]models.Event, 0, len(events))
	past = make([]models.Event, 0)
	for _, event := range events {
		if event.Upcoming(now) {
			upcoming = append(upcoming, event)
		} else {
			past = append(past, event)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		a, b := upcoming[i].EventDate, upcoming[j].EventDate
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
	sort.SliceStable(past, func(i, j int) bool {
		return past[i].EventDate.After(*past[j].EventDate)
	})
	return upcoming, past
}

// MatchesFilters reports whether the event survives every populated filter.
func MatchesFilters(event models.Event, filters FeedFilters, now time.Time) bool {
	if search := normalize(filters.Search); search != "" {
		haystack := strings.ToLower(event.Title + " " + event.Description + " " + event.Location)
		if !strings.Contains(haystack, search) {
			return false
		}
	}
	if dept := normalize(filters.Department); dept != "" {
		if event.AudienceType != models.AudienceDepartment {
			return false
		}
		if event.TargetDepartment == nil || normalize(*event.TargetDepartment) != dept {
			return false
		}
	}
	switch normalize(filters.Chip) {
	case "", ChipAll:
	case ChipFree:
		if event.Fee > 0 {
			return false
		}
	case ChipToday:
		if event.EventDate == nil || !dates.IsToday(*event.EventDate, now) {
			return false
		}
	case ChipWeek:
		if event.EventDate == nil || !dates.WithinNextWeek(*event.EventDate, now) {
			return false
		}
	default:
		return false
	}
	return true
}

// DepartmentOptions collects the distinct target departments of
// department-scoped events, sorted case-insensitively.
func DepartmentOptions(events []models.Event) []string {
	seen := make(map[string]string)
	for _, event := range events {
		if event.AudienceType != models.AudienceDepartment || event.TargetDepartment == nil {
			continue
		}
		dept := strings.TrimSpace(*event.TargetDepartment)
		if dept == "" {
			continue
		}
		key := strings.ToLower(dept)
		if _, ok := seen[key]; !ok {
			seen[key] = dept
		}
	}
	options := make([]string, 0, len(seen))
	for _, dept := range seen {
		options = append(options, dept)
	}
	sort.Slice(options, func(i, j int) bool {
		return strings.ToLower(options[i]) < strings.ToLower(options[j])
	})
	return options
}

// NextTickerIndex advances the rotation cursor, wrapping at length.
func NextTickerIndex(after, length int) int {
	if length <= 0 {
		return 0
	}
	if after < 0 {
		after = -1
	}
	return (after + 1) % length
}

func filterAnnouncements(items []models.Announcement, search string) []models.Announcement {
	if search == "" {
		return items
	}
	out := make([]models.Announcement, 0, len(items))
	for _, item := range items {
		haystack := strings.ToLower(item.Title + " " + item.Content)
		if strings.Contains(haystack, search) {
			out = append(out, item)
		}
	}
	return out
}

func filterWinners(items []models.Winner, search string) []models.Winner {
	if search == "" {
		return items
	}
	out := make([]models.Winner, 0, len(items))
	for _, item := range items {
		haystack := strings.ToLower(item.WinnerName + " " + item.Position + " " + item.EventTitle)
		if strings.Contains(haystack, search) {
			out = append(out, item)
		}
	}
	return out
}

func publishedWinners(items []models.Winner, now time.Time) []models.Winner {
	out := make([]models.Winner, 0, len(items))
	for _, item := range items {
		if item.DeleteAt != nil && !item.DeleteAt.After(now) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
