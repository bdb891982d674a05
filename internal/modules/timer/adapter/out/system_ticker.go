package out

import (
	"time"

	timerout "studyplanner/internal/modules/timer/port/out"
)

type SystemTicker struct{}

func NewSystemTicker() timerout.Ticker {
	return SystemTicker{}
}

func (SystemTicker) Start(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}
