package report

import (
	"time"

	"github.com/mmrconsultoria/portal-os/internal/application/dto"
	"github.com/mmrconsultoria/portal-os/internal/domain/cycle"
)

// ToResponse adapta el reporte al DTO JSON. Los instantes salen en la zona del portal.
func ToResponse(r *Report) dto.CycleReportResponse {
	loc := r.Location
	out := dto.CycleReportResponse{
		GeneratedAt:   r.GeneratedAt.In(loc),
		Timezone:      loc.String(),
		PairByProcess: r.Filter.PairByProcess,
		From:          dateKey(r.Filter.From),
		To:            dateKey(r.Filter.To),
		Aggregates:    aggregatesResponse(r.Aggregates, loc),
		Cycles:        make([]dto.MatchedCycleResponse, 0, len(r.Result.Matched)),
		Open:          make([]dto.OpenEntryResponse, 0, len(r.Result.Open)),
		Orphans:       make([]dto.OrphanExitResponse, 0, len(r.Result.Orphans)),
		Top:           aggregatesResponse(r.Top, loc),
		Daily:         make([]dto.DailyTotalResponse, 0, len(r.Daily)),
		Skipped:       make([]dto.SkippedRowResponse, 0, len(r.Skipped)),
	}

	for _, m := range r.Result.Matched {
		out.Cycles = append(out.Cycles, dto.MatchedCycleResponse{
			WorkOrder: m.WorkOrderID,
			Item:      m.ItemID,
			OSItem:    m.GroupingKey,
			Process:   m.ProcessTag,
			EntryAt:   m.EntryAt.In(loc),
			ExitAt:    m.ExitAt.In(loc),
			Seconds:   seconds(m.Duration),
			HMS:       cycle.FormatHMS(m.Duration),
		})
	}
	for i, o := range r.Result.Open {
		age := r.OpenAges[i]
		out.Open = append(out.Open, dto.OpenEntryResponse{
			WorkOrder:  o.WorkOrderID,
			Item:       o.ItemID,
			OSItem:     o.GroupingKey,
			Process:    o.ProcessTag,
			EntryAt:    o.EntryAt.In(loc),
			OpenFor:    cycle.FormatHMS(age),
			OpenForSec: seconds(age),
		})
	}
	for _, o := range r.Result.Orphans {
		out.Orphans = append(out.Orphans, dto.OrphanExitResponse{
			WorkOrder: o.WorkOrderID,
			Item:      o.ItemID,
			OSItem:    o.GroupingKey,
			Process:   o.ProcessTag,
			ExitAt:    o.ExitAt.In(loc),
		})
	}
	for _, d := range r.Daily {
		out.Daily = append(out.Daily, dto.DailyTotalResponse{
			Day:     d.Day.Format("2006-01-02"),
			Cycles:  d.Cycles,
			Seconds: seconds(d.TotalDuration),
			HMS:     cycle.FormatHMS(d.TotalDuration),
		})
	}
	for _, s := range r.Skipped {
		out.Skipped = append(out.Skipped, dto.SkippedRowResponse{
			RecordID: s.Record.ID,
			Row:      s.Row,
			Reason:   s.Reason,
		})
	}
	return out
}

func aggregatesResponse(aggs []cycle.CycleAggregate, loc *time.Location) []dto.CycleAggregateResponse {
	out := make([]dto.CycleAggregateResponse, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, dto.CycleAggregateResponse{
			WorkOrder:  a.WorkOrderID,
			Item:       a.ItemID,
			OSItem:     a.GroupingKey,
			Process:    a.ProcessTag,
			Cycles:     a.Cycles,
			Seconds:    seconds(a.TotalDuration),
			HMS:        cycle.FormatHMS(a.TotalDuration),
			FirstEntry: a.FirstEntry.In(loc),
			LastExit:   a.LastExit.In(loc),
		})
	}
	return out
}

func seconds(d time.Duration) int64 {
	return int64(d.Round(time.Second) / time.Second)
}
