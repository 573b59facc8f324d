// Command genmock writes a matching pair of incident fixtures, one JSON and
// one CSV, from a fixed sample set. It runs the rows through the actual
// normalizer so the printed stats reflect real map behavior.
//
// Usage:
//
//	go run ./cmd/genmock -json-out data/incidents.json -csv-out data/incidents.csv
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/openstreetarena/incident-map/internal/domain"
)

var columns = []string{"id", "title", "date", "time", "period_zh", "district_abbr", "location", "lat", "lng", "category", "source", "notes"}

// sampleRows is the fixture source of truth. The JSON and CSV outputs carry
// these same rows so either source loads an identical dataset.
var sampleRows = []domain.Record{
	{"id": "inc-001", "title": "旺角街头冲突", "date": "2024-04-02", "time": "21:15", "period_zh": "晚", "district_abbr": "YTM", "location": "弥敦道", "lat": 22.3186, "lng": 114.1701, "category": "冲突", "source": "https://example.com/post/001", "notes": "目击者两名"},
	{"id": "inc-002", "title": "深水埗袭击事件", "date": "2024-04-05", "time": "2:40", "period_zh": "凌晨", "district_abbr": "SSP", "location": "福荣街", "lat": 22.3307, "lng": 114.1622, "category": "袭击", "source": "https://example.com/post/002", "notes": ""},
	{"id": "inc-003", "title": "观塘口角升级", "date": "2024-03-18", "time": "13:05", "period_zh": "下", "district_abbr": "KT", "location": "", "lat": 22.3122, "lng": 114.2259, "category": "纠纷", "source": "", "notes": ""},
	{"id": "inc-004", "title": "湾仔夜间事件", "date": "2024-02-11", "time": "", "period_zh": "夜", "district_abbr": "WC", "location": "轩尼诗道", "lat": 22.2775, "lng": 114.1722, "category": "", "source": "https://example.com/post/004", "notes": "时间不详"},
	{"id": "inc-005", "title": "", "date": "2023-12-30", "time": "8:00", "period_zh": "早", "district_abbr": "CW", "location": "", "lat": 22.2819, "lng": 114.1545, "category": "袭击", "source": "", "notes": ""},
	{"id": "inc-006", "title": "沙田商场外推撞", "date": "2023-10-07", "time": "17:30", "period_zh": "下", "district_abbr": "ST", "location": "", "lat": 22.3823, "lng": 114.1889, "category": "冲突", "source": "https://example.com/post/006", "notes": ""},
	{"id": "inc-007", "title": "元朗无坐标事件", "date": "2024-01-21", "time": "23:50", "period_zh": "夜", "district_abbr": "YL", "location": "", "lat": nil, "lng": nil, "category": "袭击", "source": "", "notes": "位置待确认"},
	{"id": "inc-008", "title": "将军澳深夜事件", "date": "2022-06-14", "time": "0:30", "period_zh": "半夜", "district_abbr": "TMK", "location": "", "lat": 22.3075, "lng": 114.2602, "category": "", "source": "", "notes": ""},
	{"id": "inc-009", "title": "无日期事件", "date": "", "time": "", "period_zh": "", "district_abbr": "", "location": "", "lat": 22.2963, "lng": 114.1725, "category": "", "source": "", "notes": "来源帖子未注明时间"},
	{"id": "inc-010", "title": "中环午间争执", "date": "2024-04-20", "time": "12:10", "period_zh": "中", "district_abbr": "CA", "location": "毕打街", "lat": 22.2817, "lng": 114.1585, "category": "纠纷", "source": "https://example.com/post/010", "notes": ""},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	jsonOut := flag.String("json-out", "data/incidents.json", "output path for the JSON fixture")
	csvOut := flag.String("csv-out", "data/incidents.csv", "output path for the CSV fixture")
	flag.Parse()

	// Fix the clock so stats (and any synthesized fields) are reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.April, 26, 12, 0, 0, 0, time.FixedZone("UTC+8", 8*60*60)),
	))
	defer domain.SetClock(nil)

	if err := writeJSON(*jsonOut, sampleRows); err != nil {
		return fmt.Errorf("writing json fixture: %w", err)
	}
	log.Printf("wrote json fixture: %s", *jsonOut)

	if err := writeCSV(*csvOut, sampleRows); err != nil {
		return fmt.Errorf("writing csv fixture: %w", err)
	}
	log.Printf("wrote csv fixture: %s", *csvOut)

	printStats(sampleRows)
	return nil
}

func writeJSON(path string, rows []domain.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rows)
}

func writeCSV(path string, rows []domain.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		fields := make([]string, len(columns))
		for i, col := range columns {
			fields[i] = row.Field(col)
		}
		if err := w.Write(fields); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func printStats(rows []domain.Record) {
	plottable := 0
	byPeriod := map[domain.Period]int{}
	for _, row := range rows {
		in := domain.Normalize(row)
		if in.Plottable() {
			plottable++
		}
		byPeriod[in.Period]++
	}

	log.Printf("total: %d rows, %d plottable", len(rows), plottable)
	for _, p := range append(domain.Periods, domain.PeriodUnknown) {
		if n := byPeriod[p]; n > 0 {
			log.Printf("  %-10s %d", p, n)
		}
	}
}
