package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/aggregate"
	apperrors "github.com/vladimiradmaev/babycare-helper/internal/errors"
	"github.com/vladimiradmaev/babycare-helper/internal/repository"
	"github.com/vladimiradmaev/babycare-helper/internal/utils"
)

// DayStats is the daily summary plus sleep, which lives outside the log
type DayStats struct {
	aggregate.DailySummary
	Sleep time.Duration
}

type StatsService struct {
	entries *repository.EntryRepository
	sleep   *SleepService
}

func NewStatsService(entries *repository.EntryRepository, sleep *SleepService) *StatsService {
	return &StatsService{entries: entries, sleep: sleep}
}

// Day summarises the calendar day containing now
func (s *StatsService) Day(ctx context.Context, profileID string, now time.Time) (*DayStats, error) {
	from := utils.StartOfDay(now)
	entries, err := s.entries.ListByProfile(ctx, profileID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	stats := &DayStats{DailySummary: aggregate.Summarize(entries, now)}
	if s.sleep != nil {
		if stats.Sleep, err = s.sleep.TotalOnDay(ctx, profileID, now, now); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// Week summarises the last seven calendar days ending with today
func (s *StatsService) Week(ctx context.Context, profileID string, now time.Time) (*aggregate.WeekSummary, error) {
	from := utils.StartOfDay(now).AddDate(0, 0, -7)
	entries, err := s.entries.ListByProfile(ctx, profileID, from, now)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	week := aggregate.SummarizeWeek(entries, now)
	return &week, nil
}
