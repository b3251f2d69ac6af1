package model

import "time"

// Weekday — доменная нумерация дней недели: 1 = понедельник .. 7 = воскресенье
type Weekday int

const (
	WeekdayMonday Weekday = iota + 1
	WeekdayTuesday
	WeekdayWednesday
	WeekdayThursday
	WeekdayFriday
	WeekdaySaturday
	WeekdaySunday
)

// weekdayFromTime — явное соответствие календарной нумерации time.Weekday
// (0=Sunday..6=Saturday) и доменной (1=Monday..7=Sunday). Шкалы разные,
// поэтому таблица, а не арифметика.
var weekdayFromTime = map[time.Weekday]Weekday{
	time.Monday:    WeekdayMonday,
	time.Tuesday:   WeekdayTuesday,
	time.Wednesday: WeekdayWednesday,
	time.Thursday:  WeekdayThursday,
	time.Friday:    WeekdayFriday,
	time.Saturday:  WeekdaySaturday,
	time.Sunday:    WeekdaySunday,
}

// WeekdayFromTime переводит календарный день недели в доменный
func WeekdayFromTime(w time.Weekday) Weekday {
	return weekdayFromTime[w]
}

var weekdayNames = map[Weekday]string{
	WeekdayMonday:    "Monday",
	WeekdayTuesday:   "Tuesday",
	WeekdayWednesday: "Wednesday",
	WeekdayThursday:  "Thursday",
	WeekdayFriday:    "Friday",
	WeekdaySaturday:  "Saturday",
	WeekdaySunday:    "Sunday",
}

func (w Weekday) String() string {
	if name, ok := weekdayNames[w]; ok {
		return name
	}
	return "Weekday(?)"
}

// ScheduleBlock — повторяющийся недельный слот группы.
// Уникален по (group, weekday, start_time).
type ScheduleBlock struct {
	ID          int64     `json:"id"`
	GroupID     int64     `json:"group_id"`
	Weekday     Weekday   `json:"weekday"`
	StartTime   TimeOfDay `json:"start_time"`
	EndTime     TimeOfDay `json:"end_time"`
	IsOnline    bool      `json:"is_online"`
	Location    string    `json:"location"`
	MeetingLink string    `json:"meeting_link"`
	CreatedAt   time.Time `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Group *Group `json:"group,omitempty"`
}
