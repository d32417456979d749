package activity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_EvictsOldest(t *testing.T) {
	l := NewLog(3)
	for i := 1; i <= 5; i++ {
		l.Append(Entry{TaskID: i, Message: fmt.Sprintf("entry %d", i)})
	}

	entries := l.Recent(0)
	require.Len(t, entries, 3)
	assert.Equal(t, 3, entries[0].TaskID)
	assert.Equal(t, 5, entries[2].TaskID)
	assert.Equal(t, 2, l.Dropped())
}

func TestLog_RecentLimit(t *testing.T) {
	l := NewLog(10)
	for i := 1; i <= 4; i++ {
		l.Append(Entry{TaskID: i})
	}

	tests := []struct {
		limit int
		want  []int
	}{
		{limit: 0, want: []int{1, 2, 3, 4}},
		{limit: -1, want: []int{1, 2, 3, 4}},
		{limit: 2, want: []int{3, 4}},
		{limit: 10, want: []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit=%d", tt.limit), func(t *testing.T) {
			var got []int
			for _, e := range l.Recent(tt.limit) {
				got = append(got, e.TaskID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLog_RecentReturnsCopy(t *testing.T) {
	l := NewLog(2)
	l.Append(Entry{TaskID: 1})

	entries := l.Recent(0)
	entries[0].TaskID = 99

	assert.Equal(t, 1, l.Recent(0)[0].TaskID)
}

func TestNewLog_MinimumCapacity(t *testing.T) {
	l := NewLog(0)
	l.Append(Entry{TaskID: 1})
	l.Append(Entry{TaskID: 2})

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 2, l.Recent(0)[0].TaskID)
}
