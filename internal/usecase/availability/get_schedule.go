package availability

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/lesson-booking/internal/domain/availability"
	"github.com/BruksfildServices01/lesson-booking/internal/infra/cache"
	"github.com/BruksfildServices01/lesson-booking/internal/metrics"
	"github.com/BruksfildServices01/lesson-booking/internal/timezone"
)

// GetSchedule resolves the current windows into bookable slots, ordered by
// date. Results are cached per (today, locale) when a cache is configured.
type GetSchedule struct {
	repo    domain.Repository
	cache   cache.SlotCache
	metrics *metrics.Service
	log     *zap.Logger

	loc    *time.Location
	dedupe bool
	now    func() time.Time
}

func NewGetSchedule(
	repo domain.Repository,
	c cache.SlotCache,
	m *metrics.Service,
	log *zap.Logger,
	loc *time.Location,
	dedupe bool,
) *GetSchedule {
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}

	return &GetSchedule{
		repo:    repo,
		cache:   c,
		metrics: m,
		log:     log,
		loc:     loc,
		dedupe:  dedupe,
		now:     time.Now,
	}
}

func (uc *GetSchedule) Execute(
	ctx context.Context,
	locale domain.Locale,
) (*domain.Schedule, error) {

	today := timezone.StartOfDay(uc.now().In(uc.loc))
	day := today.Format(domain.DateLayout)

	// generation is read before the windows so a concurrent invalidation
	// leaves this result under a superseded key
	gen, genErr := uc.cache.Generation(ctx)
	if genErr != nil {
		uc.log.Warn("slot cache generation read failed", zap.Error(genErr))
	} else if cached, ok, err := uc.cache.Get(ctx, gen, day, locale); err != nil {
		uc.log.Warn("slot cache read failed", zap.Error(err))
	} else {
		uc.metrics.SlotsCacheLookup(ok)
		if ok {
			return cached, nil
		}
	}

	windows, err := uc.repo.ListWindows(ctx)
	if err != nil {
		return nil, err
	}

	resolver := domain.NewResolver(
		domain.WithLocale(locale),
		domain.WithDedupe(uc.dedupe),
	)
	schedule := resolver.Resolve(windows, today)

	// ISO dates sort lexically; stable keeps same-date order intact
	sort.SliceStable(schedule.Days, func(i, j int) bool {
		return schedule.Days[i].Date < schedule.Days[j].Date
	})

	uc.log.Debug("schedule resolved",
		zap.String("today", day),
		zap.Int("windows", len(windows)),
		zap.Int("slots", schedule.SlotCount()),
	)

	if genErr == nil {
		if err := uc.cache.Set(ctx, gen, day, locale, schedule); err != nil {
			uc.log.Warn("slot cache write failed", zap.Error(err))
		}
	}

	return &schedule, nil
}
