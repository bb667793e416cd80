package service

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/mapview"
	"github.com/noah-isme/wazai-maps/internal/models"
	appErrors "github.com/noah-isme/wazai-maps/pkg/errors"
)

const (
	listDateLayout = "2006/01/02"
	noDateLabel    = "No Date"
)

// ListService orders, filters and groups an already fetched result set.
type ListService struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewListService constructs a ListService.
func NewListService(logger *zap.Logger) *ListService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListService{logger: logger, now: time.Now}
}

// startOf resolves the event start. A timestamp that is present but cannot be
// parsed is logged; the event is then treated as undated.
func (s *ListService) startOf(event models.Event, clock *EventClock) (time.Time, bool) {
	start, ok := clock.StartOf(event)
	if !ok && event.HasStart() {
		s.logger.Debug("unparseable event start",
			zap.String("event_id", event.ID),
			zap.String("start_time", event.StartTime),
			zap.String("country", string(event.Country)),
		)
	}
	return start, ok
}

type datedEvent struct {
	event models.Event
	start time.Time
	dated bool
}

// Sort orders events by resolved start. Events without a usable start go
// last in both directions and keep their relative order.
func (s *ListService) Sort(events []models.Event, order models.SortOrder, clock *EventClock) []models.Event {
	rows := make([]datedEvent, len(events))
	for i, event := range events {
		start, ok := s.startOf(event, clock)
		rows[i] = datedEvent{event: event, start: start, dated: ok}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.dated != b.dated {
			return a.dated
		}
		if !a.dated {
			return false
		}
		if order == models.SortDescending {
			return a.start.After(b.start)
		}
		return a.start.Before(b.start)
	})
	out := make([]models.Event, len(rows))
	for i, row := range rows {
		out[i] = row.event
	}
	return out
}

// Filter keeps events whose title, description or id contains query,
// ignoring case. An empty query keeps everything.
func (s *ListService) Filter(events []models.Event, query string) []models.Event {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return events
	}
	out := make([]models.Event, 0, len(events))
	for _, event := range events {
		if strings.Contains(strings.ToLower(event.Title), query) ||
			strings.Contains(strings.ToLower(event.Description), query) ||
			strings.Contains(strings.ToLower(event.ID), query) {
			out = append(out, event)
		}
	}
	return out
}

// Items builds list rows for events already in display order.
func (s *ListService) Items(events []models.Event, selectedID string, clock *EventClock) []dto.EventListItem {
	items := make([]dto.EventListItem, 0, len(events))
	for _, event := range events {
		display := noDateLabel
		if start, ok := s.startOf(event, clock); ok {
			display = clock.InEventZone(start, event.Country).Format(listDateLayout)
		}
		items = append(items, dto.EventListItem{
			ID:          event.ID,
			Title:       event.Title,
			Description: event.Description,
			URL:         event.URL,
			DisplayDate: display,
			StartTime:   event.StartTime,
			SourceLabel: models.Label(event.Source),
			Country:     string(event.Country),
			Color:       mapview.EventColor(event),
			Selected:    selectedID != "" && event.ID == selectedID,
		})
	}
	return items
}

// Calendar buckets events by day in the display timezone and lists the ones
// on day, ascending. An empty day means today.
func (s *ListService) Calendar(events []models.Event, day, selectedID string, clock *EventClock) (dto.CalendarView, error) {
	if strings.TrimSpace(day) == "" {
		day = s.now().In(clock.Display()).Format(dayLayout)
	} else if _, err := time.ParseInLocation(dayLayout, day, clock.Display()); err != nil {
		return dto.CalendarView{}, appErrors.Clone(appErrors.ErrValidation, "date must be formatted as YYYY-MM-DD")
	}

	marked := make(map[string]struct{})
	var onDay []datedEvent
	for _, event := range events {
		start, ok := s.startOf(event, clock)
		if !ok {
			continue
		}
		key := clock.DayKey(start)
		marked[key] = struct{}{}
		if key == day {
			onDay = append(onDay, datedEvent{event: event, start: start, dated: true})
		}
	}

	sort.SliceStable(onDay, func(i, j int) bool { return onDay[i].start.Before(onDay[j].start) })

	view := dto.CalendarView{
		Date:       day,
		Timezone:   clock.Name(),
		MarkedDays: make([]string, 0, len(marked)),
		Events:     make([]dto.CalendarEntry, 0, len(onDay)),
	}
	for key := range marked {
		view.MarkedDays = append(view.MarkedDays, key)
	}
	sort.Strings(view.MarkedDays)

	for _, row := range onDay {
		view.Events = append(view.Events, dto.CalendarEntry{
			ID:       row.event.ID,
			Title:    row.event.Title,
			Time:     clock.InEventZone(row.start, row.event.Country).Format("15:04"),
			Zone:     clock.ZoneLabel(row.event.Country),
			Color:    mapview.EventColor(row.event),
			Source:   models.Label(row.event.Source),
			Selected: selectedID != "" && row.event.ID == selectedID,
		})
	}
	return view, nil
}
