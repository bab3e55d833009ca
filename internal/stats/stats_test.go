package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tabular/internal/rawdata"
)

func get(t *testing.T, s Summary, stat Stat) float64 {
	t.Helper()
	v, ok := s.Get(stat)
	if !ok {
		t.Fatalf("stat %s missing", stat)
	}
	return v
}

func TestSummarize_ConnectedSkipsNulls(t *testing.T) {
	points := []rawdata.Datapoint{
		rawdata.Point(1, 10),
		rawdata.NullPoint(20),
		rawdata.Point(5, 30),
		rawdata.Point(3, 40),
		rawdata.NullPoint(50),
	}
	s := Default.Summarize(points, Connected)

	assert.Equal(t, 9.0, get(t, s, Total))
	assert.Equal(t, 3.0, get(t, s, Count))
	assert.Equal(t, 3.0, get(t, s, Avg))
	assert.Equal(t, 1.0, get(t, s, Min))
	assert.Equal(t, 5.0, get(t, s, Max))
	assert.Equal(t, 3.0, get(t, s, Current))
}

func TestSummarize_NullAsZero(t *testing.T) {
	points := []rawdata.Datapoint{rawdata.Point(4, 10), rawdata.NullPoint(20)}
	s := Default.Summarize(points, NullAsZero)

	assert.Equal(t, 2.0, get(t, s, Count))
	assert.Equal(t, 2.0, get(t, s, Avg))
	assert.Equal(t, 0.0, get(t, s, Min))
	assert.Equal(t, 0.0, get(t, s, Current))
}

func TestSummarize_EmptySeries(t *testing.T) {
	s := Default.Summarize(nil, Connected)

	assert.Equal(t, 0.0, get(t, s, Count))
	assert.Equal(t, 0.0, get(t, s, Total))
	for _, stat := range []Stat{Avg, Min, Max, Current} {
		_, ok := s.Get(stat)
		assert.False(t, ok, string(stat))
	}
}
