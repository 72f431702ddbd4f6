package export

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"bp-advisor/internal/bp"
)

// Sheet names.
const (
	SummarySheet  = "Summary"
	ReadingsSheet = "Readings"
)

// ErrNoReadings is returned when there is nothing to export.
var ErrNoReadings = errors.New("no readings to export")

// ReadingsHeader is the header row of the readings sheet.
var ReadingsHeader = []string{
	"Date",
	"Time",
	"Systolic (mmHg)",
	"Diastolic (mmHg)",
	"Heart Rate (bpm)",
	"Heart Rate Status",
	"Category",
}

// Entry is one exported reading. HeartRate is zero when it was not measured.
type Entry struct {
	TakenAt   time.Time
	Reading   bp.Reading
	HeartRate int
}

// Options configures a report.
type Options struct {
	PatientName string
	Creator     string
	Now         func() time.Time // defaults to time.Now
}

type palette struct {
	fill string
	font string
}

var categoryColors = map[bp.Category]palette{
	bp.Normal:   {fill: "ECFDF5", font: "10B981"},
	bp.Elevated: {fill: "FFFBEB", font: "F59E0B"},
	bp.Stage1:   {fill: "FFF7ED", font: "F97316"},
	bp.Stage2:   {fill: "FEF2F2", font: "EF4444"},
	bp.Crisis:   {fill: "450A0A", font: "FFFFFF"},
}

const (
	primaryBlue = "2563EB"
	lightBlue   = "E0F2FE"
	darkGray    = "6B7280"
)

// Workbook renders the readings and their weekly advisory as an .xlsx file.
// Entries are reported in chronological order; the slice is not modified.
func Workbook(opts Options, entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrNoReadings
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return a.TakenAt.Compare(b.TakenAt)
	})

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ReadingsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(0)

	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:        opts.Creator,
		LastModifiedBy: opts.Creator,
		Title:          "Blood Pressure Monitoring Report",
		Created:        opts.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeSummary(f, st, opts, sorted); err != nil {
		return nil, err
	}
	if err := writeReadings(f, st, sorted); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type styles struct {
	title    int
	section  int
	label    int
	header   int
	category map[bp.Category]int
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		st  = styles{category: make(map[bp.Category]int, len(categoryColors))}
		err error
	)

	st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{primaryBlue}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return st, fmt.Errorf("failed to create title style: %w", err)
	}

	st.section, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{darkGray}, Pattern: 1},
	})
	if err != nil {
		return st, fmt.Errorf("failed to create section style: %w", err)
	}

	st.label, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{lightBlue}, Pattern: 1},
	})
	if err != nil {
		return st, fmt.Errorf("failed to create label style: %w", err)
	}

	st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{primaryBlue}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return st, fmt.Errorf("failed to create header style: %w", err)
	}

	for _, c := range bp.Categories {
		colors := categoryColors[c]
		id, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: colors.font},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{colors.fill}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return st, fmt.Errorf("failed to create %s style: %w", c, err)
		}
		st.category[c] = id
	}
	return st, nil
}

// sheetWriter keeps the first error so cell writes can be chained.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(col, row int, value interface{}, style int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = fmt.Errorf("failed to convert coordinates: %w", err)
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		w.err = fmt.Errorf("failed to set cell %s!%s: %w", w.sheet, cell, err)
		return
	}
	if style > 0 {
		if err := w.f.SetCellStyle(w.sheet, cell, cell, style); err != nil {
			w.err = fmt.Errorf("failed to style cell %s!%s: %w", w.sheet, cell, err)
		}
	}
}

func (w *sheetWriter) merge(from, to string) {
	if w.err != nil {
		return
	}
	if err := w.f.MergeCell(w.sheet, from, to); err != nil {
		w.err = fmt.Errorf("failed to merge %s:%s: %w", from, to, err)
	}
}

func (w *sheetWriter) widths(widths ...float64) {
	for i, width := range widths {
		if w.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = fmt.Errorf("failed to convert column number: %w", err)
			return
		}
		if err := w.f.SetColWidth(w.sheet, col, col, width); err != nil {
			w.err = fmt.Errorf("failed to set column width: %w", err)
		}
	}
}

func writeSummary(f *excelize.File, st styles, opts Options, entries []Entry) error {
	w := &sheetWriter{f: f, sheet: SummarySheet}
	w.widths(24, 48, 16, 16)

	w.set(1, 1, "BLOOD PRESSURE MONITORING REPORT", st.title)
	w.merge("A1", "D1")

	row := 3
	w.set(1, row, "PATIENT INFORMATION", st.section)
	row++

	first, last := entries[0].TakenAt, entries[len(entries)-1].TakenAt
	info := [][2]string{
		{"Patient Name:", opts.PatientName},
		{"Report Date:", opts.Now().Format("2006-01-02")},
		{"Total Readings:", fmt.Sprint(len(entries))},
		{"Monitoring Period:", first.Format("2006-01-02") + " to " + last.Format("2006-01-02")},
	}
	for _, kv := range info {
		w.set(1, row, kv[0], st.label)
		w.set(2, row, kv[1], 0)
		row++
	}

	readings := make([]bp.Reading, len(entries))
	for i, e := range entries {
		readings[i] = e.Reading
	}
	advice := bp.AnalyzeWeek(readings)

	row++
	w.set(1, row, "WEEKLY ADVISORY", st.section)
	row++
	w.set(1, row, "Status:", st.label)
	w.set(2, row, strings.ToUpper(string(advice.Type))+" - "+advice.Message, 0)
	row++
	w.set(1, row, "Recommendations:", st.label)
	for _, rec := range advice.Recommendations {
		w.set(2, row, "• "+rec, 0)
		row++
	}

	if advice.Stats != nil {
		row++
		w.set(1, row, "Average BP:", st.label)
		w.set(2, row, fmt.Sprintf("%.1f/%.1f mmHg", advice.Stats.AvgSystolic, advice.Stats.AvgDiastolic), 0)
		row += 2

		w.set(1, row, "CATEGORY DISTRIBUTION", st.section)
		row++
		for _, c := range bp.Categories {
			w.set(1, row, c.String(), st.category[c])
			w.set(2, row, advice.Stats.CategoryCounts[c], 0)
			row++
		}
	}
	return w.err
}

func writeReadings(f *excelize.File, st styles, entries []Entry) error {
	w := &sheetWriter{f: f, sheet: ReadingsSheet}
	w.widths(14, 10, 16, 16, 16, 18, 24)

	for col, header := range ReadingsHeader {
		w.set(col+1, 1, header, st.header)
	}

	for i, e := range entries {
		row := i + 2
		category := e.Reading.Category()

		w.set(1, row, e.TakenAt.Format("2006-01-02"), 0)
		w.set(2, row, e.TakenAt.Format("15:04:05"), 0)
		w.set(3, row, e.Reading.Systolic, 0)
		w.set(4, row, e.Reading.Diastolic, 0)
		if e.HeartRate > 0 {
			w.set(5, row, e.HeartRate, 0)
			w.set(6, row, string(bp.ClassifyHeartRate(e.HeartRate)), 0)
		}
		w.set(7, row, category.String(), st.category[category])
	}
	return w.err
}
