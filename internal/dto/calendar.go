package dto

// CalendarQuery picks the day to show.
type CalendarQuery struct {
	Date string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

// CalendarEntry is one event on the selected day.
type CalendarEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Time     string `json:"time"`
	Zone     string `json:"zone"`
	Color    string `json:"color"`
	Source   string `json:"source"`
	Selected bool   `json:"selected"`
}

// CalendarView is the calendar surface.
type CalendarView struct {
	Date       string          `json:"date"`
	Timezone   string          `json:"timezone"`
	MarkedDays []string        `json:"markedDays"`
	Events     []CalendarEntry `json:"events"`
}
