package webhook

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLog_AppendAndSnapshot(t *testing.T) {
	fixed := time.Unix(1700000000, 0).UTC()
	l := NewLog(3)
	l.now = func() time.Time { return fixed }

	e := l.Append(LogEntry{Source: "ci", Message: "m", Tags: []string{"a"}})
	require.NotEmpty(t, e.ID)
	require.Equal(t, fixed, e.ReceivedAt)

	entries := l.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, "ci", entries[0].Source)
	require.Equal(t, []string{"a"}, entries[0].Tags)
}

func TestLog_EvictsOldestAtCapacity(t *testing.T) {
	l := NewLog(20)

	for i := 1; i <= 21; i++ {
		l.Append(LogEntry{Source: "ci", Message: fmt.Sprintf("m%d", i)})
	}

	entries := l.Entries()
	require.Len(t, entries, 20)
	// the 1st entry is gone, the 21st is present, order is oldest first
	require.Equal(t, "m2", entries[0].Message)
	require.Equal(t, "m21", entries[19].Message)
}

func TestLog_SmallCapacityWrapsRepeatedly(t *testing.T) {
	l := NewLog(2)

	for i := 1; i <= 5; i++ {
		l.Append(LogEntry{Message: fmt.Sprintf("m%d", i)})
	}

	entries := l.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "m4", entries[0].Message)
	require.Equal(t, "m5", entries[1].Message)
}

func TestLog_DefaultCapacity(t *testing.T) {
	l := NewLog(0)
	for i := 0; i < DefaultLogCapacity+5; i++ {
		l.Append(LogEntry{Message: "m"})
	}
	require.Len(t, l.Entries(), DefaultLogCapacity)
}

func TestLog_EmptySnapshot(t *testing.T) {
	require.Empty(t, NewLog(3).Entries())
}
