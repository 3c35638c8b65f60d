package scheduler

import "time"

// Clock abstrae el tiempo para poder simular el avance de los ticks en tests
// en lugar de esperar al reloj de pared.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
	After(d time.Duration) <-chan time.Time
}

// Ticker abstrae time.Ticker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// RealClock implementa Clock sobre el paquete time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }
