package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Ofertas-api/pkg/logger"
)

// Job es una tarea recurrente. Recibe el instante del tick que la disparó
// para que los casos de uso no consulten el reloj de pared por su cuenta.
type Job struct {
	Name string
	Run  func(ctx context.Context, now time.Time)
}

// Scheduler dispara los jobs registrados en cada tick de intervalo fijo, en
// orden de registro y de forma secuencial: el cuerpo completo de un tick
// termina antes de atender el siguiente (modelo cooperativo, sin guard de
// solape entre ticks). Es propiedad del proceso: Start()/Stop() controlan su
// ciclo de vida y el Clock inyectado permite tests deterministas.
type Scheduler struct {
	clock    Clock
	interval time.Duration
	jobs     []Job
	log      *logger.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New construye el scheduler. interval <= 0 usa 1 segundo.
func New(clock Clock, interval time.Duration, log *logger.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{clock: clock, interval: interval, log: log}
}

// AddJob registra una tarea recurrente. Debe llamarse antes de Start.
func (s *Scheduler) AddJob(name string, run func(ctx context.Context, now time.Time)) {
	s.jobs = append(s.jobs, Job{Name: name, Run: run})
}

// Start lanza el bucle de ticks en segundo plano. Llamarlo dos veces sin
// Stop intermedio es un no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.ctx = ctx
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)
	s.log.Info().Dur("interval", s.interval).Int("jobs", len(s.jobs)).Msg("scheduler iniciado")
}

// Stop detiene el bucle y espera a que termine el tick en curso.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.ctx = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C():
			for _, job := range s.jobs {
				if ctx.Err() != nil {
					return
				}
				s.runJob(ctx, job, now)
			}
		}
	}
}

// runJob aísla cada job: un pánico se registra y el bucle sigue vivo.
func (s *Scheduler) runJob(ctx context.Context, job Job, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("job", job.Name).Msg("pánico en job del scheduler")
		}
	}()
	job.Run(ctx, now)
}

// ScheduleOnce programa una única ejecución diferida. Es volátil: vive solo
// en memoria y se pierde si el proceso se reinicia antes de dispararse; no
// hay handle de cancelación una vez programada (Stop del scheduler sí la
// aborta junto con el resto).
func (s *Scheduler) ScheduleOnce(delay time.Duration, name string, fn func(ctx context.Context)) {
	// Reutiliza el contexto del bucle para que Stop también corte las tareas
	// diferidas pendientes.
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.log.Error().Interface("panic", r).Str("task", name).Msg("pánico en tarea diferida")
			}
		}()
		select {
		case <-ctx.Done():
			s.log.Warn().Str("task", name).Msg("tarea diferida cancelada por apagado")
		case <-s.clock.After(delay):
			s.log.Info().Str("task", name).Dur("delay", delay).Msg("ejecutando tarea diferida")
			fn(ctx)
		}
	}()
}
