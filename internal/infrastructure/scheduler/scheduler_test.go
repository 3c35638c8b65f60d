package scheduler_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/Ofertas-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/Ofertas-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// fakeClock: reloj controlado por el test. Cada Advance emite exactamente un
// tick en todos los tickers vivos y dispara los After cuyo plazo ya venció.
// ──────────────────────────────────────────────────────────────────────────────

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []chan time.Time
	afters  []*fakeAfter
}

type fakeAfter struct {
	at time.Time
	ch chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) NewTicker(d time.Duration) scheduler.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan time.Time, 16)
	f.tickers = append(f.tickers, ch)
	return &fakeTicker{ch: ch}
}

func (f *fakeClock) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := &fakeAfter{at: f.now.Add(d), ch: make(chan time.Time, 1)}
	f.afters = append(f.afters, a)
	return a.ch
}

// Advance mueve el reloj, emite un tick y dispara los diferidos vencidos.
func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	for _, ch := range f.tickers {
		ch <- f.now
	}
	remaining := f.afters[:0]
	for _, a := range f.afters {
		if !a.at.After(f.now) {
			a.ch <- f.now
		} else {
			remaining = append(remaining, a)
		}
	}
	f.afters = remaining
}

func (f *fakeClock) tickerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

func (f *fakeClock) afterCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.afters)
}

type fakeTicker struct {
	ch chan time.Time
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }
func (t *fakeTicker) Stop()               {}

// waitSignal espera una señal con timeout generoso para CI lenta.
func waitSignal(t *testing.T, ch <-chan time.Time, msg string) time.Time {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal(msg)
		return time.Time{}
	}
}

func assertNoSignal(t *testing.T, ch <-chan time.Time, msg string) {
	t.Helper()
	select {
	case <-ch:
		t.Fatal(msg)
	case <-time.After(50 * time.Millisecond):
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ticks recurrentes
// ──────────────────────────────────────────────────────────────────────────────

func TestScheduler_EjecutaJobsEnCadaTick(t *testing.T) {
	clock := newFakeClock()
	sched := scheduler.New(clock, time.Second, logger.Nop())

	ran := make(chan time.Time, 16)
	sched.AddJob("test", func(ctx context.Context, now time.Time) {
		ran <- now
	})

	sched.Start()
	defer sched.Stop()
	require.Eventually(t, func() bool { return clock.tickerCount() == 1 },
		2*time.Second, 5*time.Millisecond, "el bucle debe crear su ticker")

	clock.Advance(time.Second)
	first := waitSignal(t, ran, "el job debe correr en el primer tick")

	clock.Advance(time.Second)
	second := waitSignal(t, ran, "el job debe correr en el segundo tick")

	assert.Equal(t, time.Second, second.Sub(first), "cada job recibe el instante de su tick")
}

func TestScheduler_JobsCorrenEnOrdenDeRegistro(t *testing.T) {
	clock := newFakeClock()
	sched := scheduler.New(clock, time.Second, logger.Nop())

	var mu sync.Mutex
	var order []string
	done := make(chan time.Time, 1)
	sched.AddJob("primero", func(ctx context.Context, now time.Time) {
		mu.Lock()
		order = append(order, "primero")
		mu.Unlock()
	})
	sched.AddJob("segundo", func(ctx context.Context, now time.Time) {
		mu.Lock()
		order = append(order, "segundo")
		mu.Unlock()
		done <- now
	})

	sched.Start()
	defer sched.Stop()
	require.Eventually(t, func() bool { return clock.tickerCount() == 1 },
		2*time.Second, 5*time.Millisecond)

	clock.Advance(time.Second)
	waitSignal(t, done, "ambos jobs deben correr en el tick")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"primero", "segundo"}, order)
}

func TestScheduler_PanicoEnUnJobNoMataElBucle(t *testing.T) {
	clock := newFakeClock()
	sched := scheduler.New(clock, time.Second, logger.Nop())

	survived := make(chan time.Time, 16)
	sched.AddJob("explota", func(ctx context.Context, now time.Time) {
		panic("boom")
	})
	sched.AddJob("sobrevive", func(ctx context.Context, now time.Time) {
		survived <- now
	})

	sched.Start()
	defer sched.Stop()
	require.Eventually(t, func() bool { return clock.tickerCount() == 1 },
		2*time.Second, 5*time.Millisecond)

	clock.Advance(time.Second)
	waitSignal(t, survived, "el job hermano debe correr pese al pánico")
	clock.Advance(time.Second)
	waitSignal(t, survived, "el bucle debe seguir vivo en el siguiente tick")
}

func TestScheduler_StopDetieneLosTicks(t *testing.T) {
	clock := newFakeClock()
	sched := scheduler.New(clock, time.Second, logger.Nop())

	ran := make(chan time.Time, 16)
	sched.AddJob("test", func(ctx context.Context, now time.Time) {
		ran <- now
	})

	sched.Start()
	require.Eventually(t, func() bool { return clock.tickerCount() == 1 },
		2*time.Second, 5*time.Millisecond)
	sched.Stop()

	clock.Advance(time.Second)
	assertNoSignal(t, ran, "después de Stop no deben correr jobs")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tareas diferidas (one-shot)
// ──────────────────────────────────────────────────────────────────────────────

func TestScheduleOnce_DisparaUnaVezAlVencer(t *testing.T) {
	clock := newFakeClock()
	sched := scheduler.New(clock, time.Second, logger.Nop())
	sched.Start()
	defer sched.Stop()

	fired := make(chan time.Time, 2)
	sched.ScheduleOnce(time.Minute, "notificar", func(ctx context.Context) {
		fired <- clock.Now()
	})
	require.Eventually(t, func() bool { return clock.afterCount() == 1 },
		2*time.Second, 5*time.Millisecond, "la tarea debe registrar su timer")

	clock.Advance(30 * time.Second)
	assertNoSignal(t, fired, "antes del plazo no debe dispararse")

	clock.Advance(31 * time.Second)
	waitSignal(t, fired, "al vencer el plazo debe dispararse")

	clock.Advance(time.Minute)
	assertNoSignal(t, fired, "es one-shot: no debe repetirse")
}
