package infra

import (
	"errors"
	"sync"
	"time"
)

// ── Circuit breaker ───────────────────────────────────────────────────────────
// Guards the SMTP relay. When the mail server is down every send would block
// a pool goroutine on a connection timeout; after a few consecutive failures
// the breaker opens and sends fast-fail until a probe succeeds again.

// ErrCircuitOpen is returned by Execute while the breaker refuses calls.
var ErrCircuitOpen = errors.New("circuito abierto: servicio externo caido")

type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive failures that open the circuit
	SuccessThreshold int           // consecutive probe successes that close it
	OpenTimeout      time.Duration // wait before probing an open circuit
}

// DefaultCBConfig is tuned for the receipt mailer: trip after 5 failures,
// probe once a minute, close after 2 good sends.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      time.Minute,
	}
}

// CircuitBreaker tracks consecutive outcomes. The open interval is stored as
// a deadline: while time.Now() is before abiertoHasta the circuit rejects
// calls, afterwards it lets requests through as probes until SuccessThreshold
// of them succeed in a row.
type CircuitBreaker struct {
	mu           sync.Mutex
	cfg          CircuitBreakerConfig
	fallos       int
	exitosPrueba int
	abiertoHasta time.Time
	probando     bool
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{cfg: cfg}
}

// Execute runs fn unless the circuit is open. The outcome of fn feeds the
// breaker state; fn's own error is returned untouched.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if time.Now().Before(cb.abiertoHasta) {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	// Past the deadline with a deadline set means this call is a probe.
	if !cb.abiertoHasta.IsZero() && !cb.probando {
		cb.probando = true
		cb.exitosPrueba = 0
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		if cb.probando {
			// Failed probe: re-open for another full interval.
			cb.abiertoHasta = time.Now().Add(cb.cfg.OpenTimeout)
			cb.probando = false
			cb.fallos = 0
			return err
		}
		cb.fallos++
		if cb.fallos >= cb.cfg.FailureThreshold {
			cb.abiertoHasta = time.Now().Add(cb.cfg.OpenTimeout)
			cb.fallos = 0
		}
		return err
	}

	if cb.probando {
		cb.exitosPrueba++
		if cb.exitosPrueba >= cb.cfg.SuccessThreshold {
			cb.abiertoHasta = time.Time{}
			cb.probando = false
		}
	}
	cb.fallos = 0
	return nil
}
