package schedule

// ShiftPlan is the planned start/end of one shift, wall-clock "HH:MM".
type ShiftPlan struct {
	Start string
	End   string
}

type DayType string

const (
	DayOpen    DayType = "open"
	DayClosed  DayType = "closed"
	DayHalfDay DayType = "half_day"
)
