package mea

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"momex/model"
	"momex/moments"
	"momex/problem"
)

// Expansion is a configured moment expansion run over one reaction network.
type Expansion struct {
	model   *model.Model
	order   int
	closure Closure
	log     zerolog.Logger
}

// Option configures an Expansion.
type Option func(*Expansion)

// WithLogger attaches a logger; derivation stages emit debug events on it.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Expansion) { e.log = log }
}

// New validates the model and the truncation order and prepares a run with
// the given closure strategy.
func New(m *model.Model, order int, kind ClosureKind, opts ...Option) (*Expansion, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if order < 1 {
		return nil, &moments.OrderError{Order: order, Species: len(m.Species)}
	}
	closure, err := NewClosure(kind, order)
	if err != nil {
		return nil, err
	}
	e := &Expansion{model: m, order: order, closure: closure, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run derives the closed ODE system: counters, mean equations, central
// moment equations, raw moment elimination, closure, assembly. The result
// is deterministic for a given model, order and closure kind.
func (e *Expansion) Run() (*problem.ODEProblem, error) {
	start := time.Now()
	log := e.log.With().
		Str("model", e.model.Name).
		Int("order", e.order).
		Stringer("closure", e.closure.Kind()).
		Logger()

	kCounter, nCounter, err := moments.NewCounters(e.model.Species, e.order)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("raw_moments", len(kCounter)).
		Int("central_moments", len(nCounter)).
		Msg("generated moment counters")

	dmu := RawMomentDerivatives(e.model.Species, e.model.Propensities, nCounter, e.model.Stoichiometry)
	log.Debug().Int("species", dmu.Rows()).Msg("derived mean equations")

	centralExprs := CentralMomentDerivatives(nCounter, kCounter, dmu, e.model.Species, e.model.Propensities, e.model.Stoichiometry)
	if centralExprs != nil {
		log.Debug().Int("equations", centralExprs.Rows()).Msg("derived central moment equations")
	}

	r2c := RawToCentral(nCounter, kCounter, e.model.Species)

	eliminated, err := eliminateRawMoments(centralExprs, r2c, nCounter, kCounter)
	if err != nil {
		return nil, fmt.Errorf("mea: eliminating raw moments: %w", err)
	}
	log.Debug().Msg("eliminated raw moments")

	lhs, rhs, moms, err := e.closure.Close(eliminated, dmu, r2c, e.model.Species, nCounter, kCounter)
	if err != nil {
		return nil, fmt.Errorf("mea: closing moment hierarchy: %w", err)
	}

	p, err := problem.New(lhs, rhs, e.model.Constants, moms)
	if err != nil {
		return nil, fmt.Errorf("mea: assembling problem: %w", err)
	}
	log.Debug().
		Int("equations", p.Size()).
		Dur("elapsed", time.Since(start)).
		Msg("moment expansion complete")
	return p, nil
}

// Order is the truncation order of the run.
func (e *Expansion) Order() int { return e.order }

// Closure is the configured closure strategy.
func (e *Expansion) Closure() ClosureKind { return e.closure.Kind() }
