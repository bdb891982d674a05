package dto

type StateOutput struct {
	Remaining int
	Running   bool
	Display   string
}

type TickOutput struct {
	State     StateOutput
	Completed bool
	TimerUses int
}

type RunOutput struct {
	State     StateOutput
	Completed bool
	TimerUses int
}
