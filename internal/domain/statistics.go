package domain

// Statistics is the productivity summary shown on the dashboard. Weekly holds
// one value per day starting Monday, normalized 0..1 against the best day of
// the week.
type Statistics struct {
	DoneToday       int
	DoneAllTimeHigh int
	Weekly          [7]float64
}
