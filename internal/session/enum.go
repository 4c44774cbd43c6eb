package session

type State string

const (
	StateSelecting State = "selecting"
	StatePlaying   State = "playing"
	StateReviewing State = "reviewing"
)
