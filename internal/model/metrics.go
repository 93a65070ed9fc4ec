package model

// DayTotals holds the totals for a single calendar day.
type DayTotals struct {
	Date string
	Totals
}

// Redistribution is the result of spreading earlier-in-week deficits over
// the remaining days of the current week.
type Redistribution struct {
	WeekDates         []string // Sunday through Saturday of the current week
	Before            []string // week dates strictly before the selected date
	OnOrAfterSelected []string // selected date through today, inside the week
	Deficits          []int    // goal - total, one per Before date
	TotalDifference   int
	SpreadPerDay      float64
	DailyGoal         int
	EffectiveGoal     float64
}

// DayProgress describes progress toward the effective goal on one date.
type DayProgress struct {
	Date          string
	Consumed      Totals
	EffectiveGoal float64
	Remaining     float64
	Percent       float64 // capped at 100
	OnTarget      bool
	Plan          Redistribution
}

// WeekProgress describes progress toward the weekly goal.
type WeekProgress struct {
	WeekDates  []string
	Consumed   int
	WeeklyGoal int
	Remaining  int
	Percent    float64 // capped at 100
	Days       []DayTotals
}

// TrendDirection classifies the sign of a week-over-week change.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// Trend compares the mean of the last 7 tracked days with the 7 before them.
type Trend struct {
	LastAverage     float64
	PreviousAverage float64
	Value           int
	Percent         int
	Direction       TrendDirection
}

// Analytics holds the 30-day averages and, given enough data, the trend.
type Analytics struct {
	DaysTracked int
	Averages    Totals
	Trend       *Trend // nil when fewer than 14 days are tracked
}

// Intensity is the heat-map class of a day's total relative to the goal.
type Intensity int

const (
	NoData Intensity = iota
	Under50
	Under75
	Under100
	Over100
)

// String returns a short label for legends.
func (i Intensity) String() string {
	switch i {
	case Under50:
		return "<50%"
	case Under75:
		return "50-75%"
	case Under100:
		return "75-100%"
	case Over100:
		return ">=100%"
	default:
		return "no data"
	}
}

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Date       string
	Day        int
	Calories   int
	Intensity  Intensity
	IsToday    bool
	IsPast     bool
	IsSelected bool
	Selectable bool
}

// MonthGrid is a Sunday-start month layout. Leading holds the number of
// blank cells before the first day.
type MonthGrid struct {
	Year    int
	Month   int
	Leading int
	Days    []CalendarDay
}

// StreakDay marks whether anything was logged on one of the last 7 days.
type StreakDay struct {
	Date     string
	Weekday  string
	HasEntry bool
	IsToday  bool
}

// Streaks holds the current logging streak and the last-7-day presence row.
type Streaks struct {
	Current int
	Last7   []StreakDay
}

// GraphBar is one bar of the last-7-days calorie chart.
type GraphBar struct {
	Date     string
	Label    string
	Calories int
	Over     bool
}
