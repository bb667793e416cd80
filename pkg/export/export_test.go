package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Events",
		Headers: []string{"Title", "Start"},
		Widths:  []float64{3, 1},
		Rows: []map[string]string{
			{"Title": "GDG Taipei, DevFest", "Start": "2025/11/01 13:00"},
			{"Title": "勉強会", "Start": ""},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter(false).Render(sampleDataset())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Title,Start", lines[0])
	assert.Equal(t, `"GDG Taipei, DevFest",2025/11/01 13:00`, lines[1])
	assert.Equal(t, "勉強会,", lines[2])
}

func TestCSVExporterBOM(t *testing.T) {
	out, err := NewCSVExporter(true).Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), utf8BOM))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter(false).Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()
	exporter.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	out, err := exporter.Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF-"))

	_, err = exporter.Render(Dataset{})
	assert.Error(t, err)
}

func TestColumnWidths(t *testing.T) {
	widths := columnWidths(Dataset{Headers: []string{"a", "b", "c"}, Widths: []float64{2}})
	require.Len(t, widths, 3)
	assert.InDelta(t, pdfPageWidth/2, widths[0], 1e-9)
	assert.InDelta(t, pdfPageWidth/4, widths[1], 1e-9)
}

func TestLatin1(t *testing.T) {
	assert.Equal(t, "café ??", latin1("café 台北"))
	assert.Equal(t, "a b", latin1("a\nb"))
}

func TestICSExporterRender(t *testing.T) {
	exporter := NewICSExporter("-//wazai-maps//events//EN")
	exporter.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	start := time.Date(2025, 11, 1, 13, 0, 0, 0, time.FixedZone("UTC+8", 8*3600))

	out, err := exporter.Render("wazai", []CalendarEntry{
		{
			UID:         "evt-1@wazai-maps",
			Summary:     "GDG; DevFest, Taipei",
			Description: "line one\nline two",
			Location:    "Taipei",
			URL:         "https://example.com/e/1",
			Start:       start,
			End:         start.Add(3 * time.Hour),
			Latitude:    25.033,
			Longitude:   121.5654,
			HasGeo:      true,
		},
		{UID: "evt-2@wazai-maps", Summary: "no start"},
	})
	require.NoError(t, err)

	body := string(out)
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(body, "END:VCALENDAR\r\n"))
	assert.Contains(t, body, "DTSTART:20251101T050000Z\r\n")
	assert.Contains(t, body, "DTEND:20251101T080000Z\r\n")
	assert.Contains(t, body, `SUMMARY:GDG\; DevFest\, Taipei`)
	assert.Contains(t, body, `DESCRIPTION:line one\nline two`)
	assert.Contains(t, body, "GEO:25.033000;121.565400")
	assert.Equal(t, 1, strings.Count(body, "BEGIN:VEVENT"))
	assert.NotContains(t, body, "no start")
}

func TestICSLineFolding(t *testing.T) {
	buf := new(bytes.Buffer)
	long := "SUMMARY:" + strings.Repeat("台", 40)
	writeLine(buf, long)

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), icsLineLimit)
	}
	unfolded := strings.ReplaceAll(strings.TrimSuffix(buf.String(), "\r\n"), "\r\n ", "")
	assert.Equal(t, long, unfolded)
}
