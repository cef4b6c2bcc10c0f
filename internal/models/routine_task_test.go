package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecalculateProgress(t *testing.T) {
	r := RoutineTask{}
	r.RecalculateProgress()
	require.Equal(t, 0, r.Progress)

	r.PerformedTasks = []PerformedItem{
		{Description: "check boiler", IsCompleted: true},
		{Description: "check pumps", IsCompleted: false},
		{Description: "check valves", IsCompleted: false},
	}
	r.RecalculateProgress()
	require.Equal(t, 33, r.Progress)

	r.PerformedTasks[1].IsCompleted = true
	r.PerformedTasks[2].IsCompleted = true
	r.RecalculateProgress()
	require.Equal(t, 100, r.Progress)
}
