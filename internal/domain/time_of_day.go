package domain

// TimeOfDay is the coarse bucket a task deadline falls into.
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "Morning"
	TimeOfDayAfternoon TimeOfDay = "Afternoon"
	TimeOfDayEvening   TimeOfDay = "Evening"
)

func (t TimeOfDay) String() string {
	return string(t)
}

func (t TimeOfDay) IsValid() bool {
	switch t {
	case TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening:
		return true
	default:
		return false
	}
}
