package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// VisitStat is the navigation count of one URL.
type VisitStat struct {
	URL       string    `json:"url"`
	Count     int64     `json:"count"`
	LastVisit time.Time `json:"last_visit,omitempty"`
}

// RecordVisit increments the counter of url and stamps its last visit.
func (s *Store) RecordVisit(ctx context.Context, url string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, VisitsKey(), url, 1)
		pipe.HSet(ctx, LastVisitKey(), url, time.Now().Unix())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// VisitCount returns the counter of url, 0 when never visited.
func (s *Store) VisitCount(ctx context.Context, url string) (int64, error) {
	n, err := s.client.HGet(ctx, VisitsKey(), url).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get visit count: %w", err)
	}
	return n, nil
}

// GetUsageStats returns every counter, most visited first.
func (s *Store) GetUsageStats(ctx context.Context) ([]VisitStat, error) {
	counts, err := s.client.HGetAll(ctx, VisitsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get visit counts: %w", err)
	}
	last, err := s.client.HGetAll(ctx, LastVisitKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get last visits: %w", err)
	}
	return parseStats(counts, last), nil
}

// ResetVisits deletes every counter.
func (s *Store) ResetVisits(ctx context.Context) error {
	if err := s.client.Del(ctx, VisitsKey(), LastVisitKey()).Err(); err != nil {
		return fmt.Errorf("failed to reset visits: %w", err)
	}
	return nil
}

// parseStats skips malformed counters. Ties are ordered by URL.
func parseStats(counts, last map[string]string) []VisitStat {
	stats := make([]VisitStat, 0, len(counts))
	for url, raw := range counts {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		stat := VisitStat{URL: url, Count: n}
		if ts, err := strconv.ParseInt(last[url], 10, 64); err == nil {
			stat.LastVisit = time.Unix(ts, 0).UTC()
		}
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].URL < stats[j].URL
	})
	return stats
}
