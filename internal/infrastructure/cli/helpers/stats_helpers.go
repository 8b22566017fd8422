package helpers

import (
	"sort"

	"github.com/doeshing/minebot/internal/domain"
)

// MineCountStatistic is how often a mine count was predicted.
type MineCountStatistic struct {
	MineCount domain.MineCount
	Count     int
}

// HistoryStatistics summarises a slice of prediction records.
type HistoryStatistics struct {
	Total         int
	DistinctChats int
	Frequency     map[domain.MineCount]int
	SafeCells     int
}

// AnalyzeHistory computes statistics over records.
func AnalyzeHistory(records []domain.PredictionRecord) HistoryStatistics {
	stats := HistoryStatistics{Frequency: make(map[domain.MineCount]int)}
	chats := make(map[int64]struct{})
	for _, rec := range records {
		stats.Total++
		stats.Frequency[rec.MineCount]++
		stats.SafeCells += len(rec.SafePositions)
		chats[rec.ChatID] = struct{}{}
	}
	stats.DistinctChats = len(chats)
	return stats
}

// AverageSafeCells is the mean number of cells marked safe per prediction.
func (s HistoryStatistics) AverageSafeCells() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.SafeCells) / float64(s.Total)
}

// CalculateTopMineCounts returns the most requested mine counts, most
// frequent first and ties broken by the smaller count. A non-positive
// limit returns all of them.
func CalculateTopMineCounts(frequency map[domain.MineCount]int, limit int) []MineCountStatistic {
	stats := make([]MineCountStatistic, 0, len(frequency))
	for count, n := range frequency {
		stats = append(stats, MineCountStatistic{MineCount: count, Count: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].MineCount < stats[j].MineCount
		}
		return stats[i].Count > stats[j].Count
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}
