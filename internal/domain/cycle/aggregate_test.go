package cycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmrconsultoria/portal-os/internal/domain/cycle"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
)

func matched(os, item, process string, in, out time.Time) cycle.MatchedCycle {
	return cycle.MatchedCycle{
		WorkOrderID: os,
		ItemID:      item,
		GroupingKey: os + "-" + item,
		ProcessTag:  process,
		EntryAt:     in,
		ExitAt:      out,
		Duration:    out.Sub(in),
	}
}

func TestAggregate_SumaPorClave(t *testing.T) {
	aggs := cycle.Aggregate([]cycle.MatchedCycle{
		matched("10", "1", "AFIACAO", at(8, 0), at(8, 30)),
		matched("10", "1", "EROSAO", at(9, 0), at(10, 0)),
		matched("2", "1", "AFIACAO", at(7, 0), at(7, 10)),
	}, cycle.ByItem)

	require.Len(t, aggs, 2)
	// "2" antes que "10": orden numérico
	assert.Equal(t, "2-1", aggs[0].GroupingKey)
	assert.Equal(t, "10-1", aggs[1].GroupingKey)
	assert.Equal(t, 2, aggs[1].Cycles)
	assert.Equal(t, 90*time.Minute, aggs[1].TotalDuration)
	assert.Equal(t, at(8, 0), aggs[1].FirstEntry)
	assert.Equal(t, at(10, 0), aggs[1].LastExit)
	assert.Empty(t, aggs[1].ProcessTag)
}

func TestAggregate_PorProceso(t *testing.T) {
	aggs := cycle.Aggregate([]cycle.MatchedCycle{
		matched("10", "1", "EROSAO", at(9, 0), at(10, 0)),
		matched("10", "1", "AFIACAO", at(8, 0), at(8, 30)),
	}, cycle.ByItemAndProcess)

	require.Len(t, aggs, 2)
	assert.Equal(t, "AFIACAO", aggs[0].ProcessTag)
	assert.Equal(t, 30*time.Minute, aggs[0].TotalDuration)
	assert.Equal(t, "EROSAO", aggs[1].ProcessTag)
}

func TestAggregate_Vacio(t *testing.T) {
	aggs := cycle.Aggregate(nil, cycle.ByItem)
	assert.NotNil(t, aggs)
	assert.Empty(t, aggs)
}

func TestOpenDuration_CalculadaAlConsultar(t *testing.T) {
	res := cycle.Reconcile([]entity.MovementEvent{entry("10-1", at(9, 0))}, cycle.ByItem)
	require.Len(t, res.Open, 1)

	ages := cycle.OpenDuration(res.Open, at(12, 0))
	assert.Equal(t, []time.Duration{3 * time.Hour}, ages)
	assert.Equal(t, 4*time.Hour, res.Open[0].Age(at(13, 0)))
}

func TestTopByDuration(t *testing.T) {
	aggs := []cycle.CycleAggregate{
		{GroupingKey: "10-1", TotalDuration: time.Minute},
		{GroupingKey: "10-2", TotalDuration: time.Hour},
		{GroupingKey: "10-3", TotalDuration: 10 * time.Minute},
	}

	top := cycle.TopByDuration(aggs, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "10-2", top[0].GroupingKey)
	assert.Equal(t, "10-3", top[1].GroupingKey)
	// no altera el slice original
	assert.Equal(t, "10-1", aggs[0].GroupingKey)

	assert.Len(t, cycle.TopByDuration(aggs, 0), 3)
}

func TestDailySeries_AgrupaPorFechaDeSalida(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	day1 := time.Date(2024, 5, 6, 10, 0, 0, 0, loc)
	// 01:00 UTC del día 7 sigue siendo día 6 en BRT
	lateExit := time.Date(2024, 5, 7, 1, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 7, 9, 0, 0, 0, loc)

	series := cycle.DailySeries([]cycle.MatchedCycle{
		matched("10", "1", "", day2.Add(-time.Hour), day2),
		matched("10", "1", "", day1.Add(-30*time.Minute), day1),
		matched("10", "2", "", lateExit.Add(-15*time.Minute), lateExit),
	}, loc)

	require.Len(t, series, 2)
	assert.Equal(t, 6, series[0].Day.Day())
	assert.Equal(t, 2, series[0].Cycles)
	assert.Equal(t, 45*time.Minute, series[0].TotalDuration)
	assert.Equal(t, 7, series[1].Day.Day())
	assert.Equal(t, time.Hour, series[1].TotalDuration)
}

func TestFormatHMS(t *testing.T) {
	cases := map[time.Duration]string{
		0:                       "00:00:00",
		1800 * time.Second:      "00:30:00",
		1500 * time.Millisecond: "00:00:02",
		-90 * time.Second:       "-00:01:30",
		49*time.Hour + 3*time.Minute + 10*time.Second: "49:03:10",
	}
	for d, want := range cases {
		assert.Equal(t, want, cycle.FormatHMS(d), d.String())
	}
}
