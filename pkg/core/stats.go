package core

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Conflict describes one unresolved pair for display (spec §6: "conflict
// list (first N with descriptions)").
type Conflict struct {
	RelativePath string
	Description  string
}

// sideCount accumulates operation counts for one side.
type sideCount struct {
	CreateCount         int
	DeleteCount         int
	OverwriteCount      int
	CopyMetadataCount   int
	MoveCount           int
}

// Statistics aggregates the resolved operation stream into counts and
// totals for a UI collaborator (spec §6, component I).
type Statistics struct {
	Left  sideCount
	Right sideCount

	TotalBytesToCopy     uint64
	EqualCount           int
	DoNothingCount       int
	UnresolvedConflicts  []Conflict
}

// ConflictCount returns the number of unresolved conflicts recorded.
func (s *Statistics) ConflictCount() int {
	return len(s.UnresolvedConflicts)
}

// Conflicts returns at most limit conflicts (spec §6: "first N with
// descriptions"). limit <= 0 returns every conflict.
func (s *Statistics) Conflicts(limit int) []Conflict {
	if limit <= 0 || limit >= len(s.UnresolvedConflicts) {
		return s.UnresolvedConflicts
	}
	return s.UnresolvedConflicts[:limit]
}

// TotalBytesHuman renders TotalBytesToCopy using human-friendly units.
func (s *Statistics) TotalBytesHuman() string {
	return humanize.Bytes(s.TotalBytesToCopy)
}

// String implements a one-line summary, in the style of a progress/status
// line.
func (s *Statistics) String() string {
	return fmt.Sprintf(
		"left: +%d -%d ~%d, right: +%d -%d ~%d, %s to copy, %d conflicts",
		s.Left.CreateCount, s.Left.DeleteCount, s.Left.OverwriteCount,
		s.Right.CreateCount, s.Right.DeleteCount, s.Right.OverwriteCount,
		s.TotalBytesHuman(), s.ConflictCount(),
	)
}

// ComputeStatistics walks an operation stream and aggregates it.
func ComputeStatistics(records []OperationRecord) Statistics {
	var stats Statistics

	for _, record := range records {
		switch record.Operation {
		case OpCreateLeft:
			stats.Left.CreateCount++
			stats.TotalBytesToCopy += record.Size
		case OpCreateRight:
			stats.Right.CreateCount++
			stats.TotalBytesToCopy += record.Size
		case OpDeleteLeft:
			stats.Left.DeleteCount++
		case OpDeleteRight:
			stats.Right.DeleteCount++
		case OpOverwriteLeft:
			stats.Left.OverwriteCount++
			stats.TotalBytesToCopy += record.Size
		case OpOverwriteRight:
			stats.Right.OverwriteCount++
			stats.TotalBytesToCopy += record.Size
		case OpCopyMetadataLeft:
			stats.Left.CopyMetadataCount++
		case OpCopyMetadataRight:
			stats.Right.CopyMetadataCount++
		case OpMoveLeftSource, OpMoveLeftTarget:
			stats.Left.MoveCount++
		case OpMoveRightSource, OpMoveRightTarget:
			stats.Right.MoveCount++
		case OpEqual:
			stats.EqualCount++
		case OpDoNothing:
			stats.DoNothingCount++
		case OpUnresolvedConflict:
			stats.UnresolvedConflicts = append(stats.UnresolvedConflicts, Conflict{
				RelativePath: record.RelativePath,
				Description:  record.ConflictDescription,
			})
		}
	}

	return stats
}
