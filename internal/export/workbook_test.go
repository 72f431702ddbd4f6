package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bp-advisor/internal/bp"
)

var fixedNow = func() time.Time {
	return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
}

func weekEntries() []Entry {
	start := time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC)
	readings := []bp.Reading{
		{Systolic: 118, Diastolic: 78},
		{Systolic: 125, Diastolic: 82},
		{Systolic: 135, Diastolic: 85},
		{Systolic: 128, Diastolic: 79},
		{Systolic: 142, Diastolic: 92},
		{Systolic: 138, Diastolic: 88},
		{Systolic: 145, Diastolic: 95},
	}

	entries := make([]Entry, len(readings))
	for i, r := range readings {
		entries[i] = Entry{
			TakenAt: start.Add(time.Duration(i) * 24 * time.Hour),
			Reading: r,
		}
	}
	entries[0].HeartRate = 72
	return entries
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWorkbook_NoReadings(t *testing.T) {
	_, err := Workbook(Options{}, nil)
	assert.ErrorIs(t, err, ErrNoReadings)
}

func TestWorkbook_Sheets(t *testing.T) {
	data, err := Workbook(Options{PatientName: "Jane Doe", Creator: "test", Now: fixedNow}, weekEntries())
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{SummarySheet, ReadingsSheet}, f.GetSheetList())

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "test", props.Creator)
}

func TestWorkbook_ReadingsSheet(t *testing.T) {
	entries := weekEntries()
	// reverse the input; the report is chronological
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	data, err := Workbook(Options{Now: fixedNow}, entries)
	require.NoError(t, err)

	f := open(t, data)
	rows, err := f.GetRows(ReadingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 8)

	assert.Equal(t, ReadingsHeader, rows[0])
	assert.Equal(t, []string{"2026-10-01", "08:30:00", "118", "78", "72", "Normal", "Normal"}, rows[1])
	assert.Equal(t, "Hypertension Stage 1", rows[2][6])
	assert.Equal(t, "", rows[2][4], "missing heart rate stays blank")
	assert.Equal(t, "Hypertension Stage 2", rows[7][6])

	normalStyle, err := f.GetCellStyle(ReadingsSheet, "G2")
	require.NoError(t, err)
	stage2Style, err := f.GetCellStyle(ReadingsSheet, "G8")
	require.NoError(t, err)
	assert.NotEqual(t, normalStyle, stage2Style)

	assert.Equal(t, time.Date(2026, 10, 7, 8, 30, 0, 0, time.UTC), entries[0].TakenAt, "input order is untouched")
}

func TestWorkbook_Summary(t *testing.T) {
	data, err := Workbook(Options{PatientName: "Jane Doe", Now: fixedNow}, weekEntries())
	require.NoError(t, err)

	f := open(t, data)
	cell := func(ref string) string {
		v, err := f.GetCellValue(SummarySheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "BLOOD PRESSURE MONITORING REPORT", cell("A1"))
	assert.Equal(t, "Jane Doe", cell("B4"))
	assert.Equal(t, "2026-10-14", cell("B5"))
	assert.Equal(t, "7", cell("B6"))
	assert.Equal(t, "2026-10-01 to 2026-10-07", cell("B7"))

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)

	var flat []string
	for _, r := range rows {
		flat = append(flat, r...)
	}
	assert.Contains(t, flat, "WARNING - monitor closely and consider talking to a doctor")
	assert.Contains(t, flat, "• Implement lifestyle changes")
	assert.Contains(t, flat, "133.0/85.6 mmHg")
	assert.Contains(t, flat, "CATEGORY DISTRIBUTION")
}

func TestWorkbook_SummaryWithoutEnoughReadings(t *testing.T) {
	data, err := Workbook(Options{Now: fixedNow}, weekEntries()[:3])
	require.NoError(t, err)

	f := open(t, data)
	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)

	var flat []string
	for _, r := range rows {
		flat = append(flat, r...)
	}
	assert.Contains(t, flat, "INFO - need at least 7 readings for weekly analysis")
	assert.NotContains(t, flat, "CATEGORY DISTRIBUTION")
}
