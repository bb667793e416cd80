package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

const (
	icsTimeLayout = "20060102T150405Z"
	icsLineLimit  = 75
)

// CalendarEntry is one VEVENT.
type CalendarEntry struct {
	UID         string
	Summary     string
	Description string
	Location    string
	URL         string
	Start       time.Time
	End         time.Time
	Latitude    float64
	Longitude   float64
	HasGeo      bool
}

// ICSExporter writes iCalendar feeds with CRLF line endings and folded lines.
type ICSExporter struct {
	productID string
	now       func() time.Time
}

// NewICSExporter constructs an exporter stamping feeds with productID.
func NewICSExporter(productID string) *ICSExporter {
	return &ICSExporter{productID: productID, now: time.Now}
}

// Render builds a calendar named name. Entries without a start are skipped.
func (e *ICSExporter) Render(name string, entries []CalendarEntry) ([]byte, error) {
	if e.productID == "" {
		return nil, fmt.Errorf("ics requires a product id")
	}
	buf := &bytes.Buffer{}
	stamp := e.now().UTC().Format(icsTimeLayout)

	writeLine(buf, "BEGIN:VCALENDAR")
	writeLine(buf, "VERSION:2.0")
	writeLine(buf, "PRODID:"+e.productID)
	writeLine(buf, "CALSCALE:GREGORIAN")
	writeLine(buf, "METHOD:PUBLISH")
	if name != "" {
		writeLine(buf, "X-WR-CALNAME:"+escapeText(name))
	}

	for _, entry := range entries {
		if entry.Start.IsZero() || entry.UID == "" {
			continue
		}
		writeLine(buf, "BEGIN:VEVENT")
		writeLine(buf, "UID:"+entry.UID)
		writeLine(buf, "DTSTAMP:"+stamp)
		writeLine(buf, "DTSTART:"+entry.Start.UTC().Format(icsTimeLayout))
		if !entry.End.IsZero() && entry.End.After(entry.Start) {
			writeLine(buf, "DTEND:"+entry.End.UTC().Format(icsTimeLayout))
		}
		writeLine(buf, "SUMMARY:"+escapeText(entry.Summary))
		if entry.Description != "" {
			writeLine(buf, "DESCRIPTION:"+escapeText(entry.Description))
		}
		if entry.Location != "" {
			writeLine(buf, "LOCATION:"+escapeText(entry.Location))
		}
		if entry.HasGeo {
			writeLine(buf, fmt.Sprintf("GEO:%.6f;%.6f", entry.Latitude, entry.Longitude))
		}
		if entry.URL != "" {
			writeLine(buf, "URL:"+entry.URL)
		}
		writeLine(buf, "END:VEVENT")
	}

	writeLine(buf, "END:VCALENDAR")
	return buf.Bytes(), nil
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", "",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// writeLine folds content lines longer than 75 octets without splitting a
// UTF-8 sequence.
func writeLine(buf *bytes.Buffer, line string) {
	limit := icsLineLimit
	for len(line) > limit {
		cut := limit
		for cut > 0 && !isRuneStart(line[cut]) {
			cut--
		}
		buf.WriteString(line[:cut])
		buf.WriteString("\r\n ")
		line = line[cut:]
		// continuation lines lose one octet to the leading space
		limit = icsLineLimit - 1
	}
	buf.WriteString(line)
	buf.WriteString("\r\n")
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
