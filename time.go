package chasecam

import (
	"time"
)

// Time is the frame clock handed to every system.
type Time struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64
}

// advance moves the clock to now. The first call yields Dt == 0; a clock that
// goes backwards also yields Dt == 0.
func (t *Time) advance(now time.Time) {
	if t.Time.IsZero() || now.Before(t.Time) {
		t.Dt = 0
	} else {
		t.Dt = now.Sub(t.Time)
	}
	t.Time = now
	t.Frame++
}

// step advances the clock by a fixed dt.
func (t *Time) step(dt time.Duration) {
	if t.Time.IsZero() {
		t.Time = time.Now()
	}
	t.Time = t.Time.Add(dt)
	t.Dt = dt
	t.Frame++
}

func (t *Time) DeltaSeconds() float32 {
	return float32(t.Dt.Seconds())
}
