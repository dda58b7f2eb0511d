package cdt

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// MetropolisConfig drives the Metropolis-Hastings sampler.
type MetropolisConfig struct {
	// Temperature of the ensemble; the inverse temperature
	// beta = 1/Temperature scales the action difference.
	Temperature float64 `yaml:"temperature"`
	// Steps is the total number of Monte Carlo steps.
	Steps int `yaml:"steps"`
	// ThermalizationSteps is the equilibration prefix. Measurements
	// taken during it are recorded but excluded from equilibrium
	// observables.
	ThermalizationSteps int `yaml:"thermalization_steps"`
	// MeasurementFrequency takes a measurement every N steps.
	MeasurementFrequency int `yaml:"measurement_frequency"`
}

// DefaultMetropolisConfig mirrors the CLI defaults.
func DefaultMetropolisConfig() MetropolisConfig {
	return MetropolisConfig{
		Temperature:          1.0,
		Steps:                1000,
		ThermalizationSteps:  100,
		MeasurementFrequency: 10,
	}
}

// Beta returns the inverse temperature.
func (c MetropolisConfig) Beta() float64 { return 1.0 / c.Temperature }

// Validate applies the parameter constraints.
func (c MetropolisConfig) Validate() error {
	if !(c.Temperature > 0) || math.IsInf(c.Temperature, 0) {
		return &InvalidParametersError{
			Parameter:  "temperature",
			Value:      fmt.Sprintf("%g", c.Temperature),
			Constraint: "must be finite and positive",
		}
	}
	if c.Steps <= 0 {
		return &InvalidParametersError{
			Parameter:  "steps",
			Value:      fmt.Sprintf("%d", c.Steps),
			Constraint: "must be positive",
		}
	}
	if c.ThermalizationSteps < 0 {
		return &InvalidParametersError{
			Parameter:  "thermalization-steps",
			Value:      fmt.Sprintf("%d", c.ThermalizationSteps),
			Constraint: "must be non-negative",
		}
	}
	if c.ThermalizationSteps >= c.Steps {
		return &InvalidParametersError{
			Parameter:  "thermalization-steps",
			Value:      fmt.Sprintf("%d", c.ThermalizationSteps),
			Constraint: fmt.Sprintf("must be below steps (%d)", c.Steps),
		}
	}
	if c.MeasurementFrequency < 1 {
		return &InvalidParametersError{
			Parameter:  "measurement-frequency",
			Value:      fmt.Sprintf("%d", c.MeasurementFrequency),
			Constraint: "must be at least 1",
		}
	}
	return nil
}

// MonteCarloStep records one step of the chain. ActionAfter and
// DeltaAction are present only when the move was accepted.
type MonteCarloStep struct {
	Step         int
	Move         MoveType
	Outcome      MoveOutcome
	Accepted     bool
	ActionBefore float64
	ActionAfter  *float64
	DeltaAction  *float64
}

// Measurement is a snapshot of the observables at one step.
type Measurement struct {
	Step       int
	Action     float64
	Vertices   int
	Edges      int
	Faces      int
	EulerValue int
}

// SimulationResults aggregates everything a run produced.
type SimulationResults struct {
	Config       MetropolisConfig
	Action       ActionConfig
	Steps        []MonteCarloStep
	Measurements []Measurement
	MoveStats    MoveStatistics
	FinalAction  float64
	Elapsed      time.Duration
}

// AcceptanceRate is accepted steps over total steps.
func (r *SimulationResults) AcceptanceRate() float64 {
	if len(r.Steps) == 0 {
		return 0
	}
	accepted := 0
	for _, s := range r.Steps {
		if s.Accepted {
			accepted++
		}
	}
	return float64(accepted) / float64(len(r.Steps))
}

// EquilibriumMeasurements filters out the thermalization prefix.
func (r *SimulationResults) EquilibriumMeasurements() []Measurement {
	out := make([]Measurement, 0, len(r.Measurements))
	for _, m := range r.Measurements {
		if m.Step > r.Config.ThermalizationSteps {
			out = append(out, m)
		}
	}
	return out
}

func actionsOf(measurements []Measurement) []float64 {
	actions := make([]float64, len(measurements))
	for i, m := range measurements {
		actions[i] = m.Action
	}
	return actions
}

// AverageAction is the mean action over all measurements, including
// the thermalization prefix. NaN-free: zero when there are none.
func (r *SimulationResults) AverageAction() float64 {
	actions := actionsOf(r.Measurements)
	if len(actions) == 0 {
		return 0
	}
	return stat.Mean(actions, nil)
}

// ActionStdDev is the sample standard deviation of the action over all
// measurements, zero below two samples.
func (r *SimulationResults) ActionStdDev() float64 {
	actions := actionsOf(r.Measurements)
	if len(actions) < 2 {
		return 0
	}
	return stat.StdDev(actions, nil)
}

// EquilibriumAverageAction is AverageAction restricted to the
// equilibrium window.
func (r *SimulationResults) EquilibriumAverageAction() float64 {
	actions := actionsOf(r.EquilibriumMeasurements())
	if len(actions) == 0 {
		return 0
	}
	return stat.Mean(actions, nil)
}

// EquilibriumActionStdDev is ActionStdDev restricted to the
// equilibrium window.
func (r *SimulationResults) EquilibriumActionStdDev() float64 {
	actions := actionsOf(r.EquilibriumMeasurements())
	if len(actions) < 2 {
		return 0
	}
	return stat.StdDev(actions, nil)
}

// MetropolisAlgorithm runs the Metropolis-Hastings chain over a
// triangulation: propose an ergodic move, evaluate the action
// difference, accept with probability min(1, exp(-beta*deltaS)).
type MetropolisAlgorithm struct {
	config   MetropolisConfig
	action   ActionConfig
	ergodics *Ergodics
	rng      *rand.Rand
	log      logrus.FieldLogger
}

// NewMetropolisAlgorithm wires the sampler. The rng must be the
// acceptance stream (SubsystemMetropolis), distinct from the move
// stream inside ergodics.
func NewMetropolisAlgorithm(config MetropolisConfig, action ActionConfig, ergodics *Ergodics, rng *rand.Rand, log logrus.FieldLogger) (*MetropolisAlgorithm, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := action.Validate(); err != nil {
		return nil, err
	}
	return &MetropolisAlgorithm{
		config:   config,
		action:   action,
		ergodics: ergodics,
		rng:      rng,
		log:      log,
	}, nil
}

// Run executes the configured number of steps against the
// triangulation and returns the full step and measurement record.
func (a *MetropolisAlgorithm) Run(tri *Triangulation) (*SimulationResults, error) {
	if err := tri.Validate(); err != nil {
		return nil, err
	}

	results := &SimulationResults{
		Config:       a.config,
		Action:       a.action,
		Steps:        make([]MonteCarloStep, 0, a.config.Steps),
		Measurements: make([]Measurement, 0, a.config.Steps/a.config.MeasurementFrequency),
	}
	beta := a.config.Beta()
	started := time.Now()

	for step := 1; step <= a.config.Steps; step++ {
		move := a.ergodics.SelectRandomMove()
		actionBefore := a.action.EvaluateTriangulation(tri)

		record := MonteCarloStep{
			Step:         step,
			Move:         move,
			ActionBefore: actionBefore,
		}

		attempt := a.ergodics.Attempt(tri, move)
		record.Outcome = attempt.Outcome
		if attempt.Applied() {
			// The move holds mutable access while it runs; taking it
			// here keeps the cache honest even though the stub bodies
			// leave the complex untouched.
			_ = tri.Mutable()
			if err := tri.RefreshCache(); err != nil {
				return nil, err
			}
			actionAfter := a.action.EvaluateTriangulation(tri)
			delta := actionAfter - actionBefore

			if a.rng.Float64() < acceptProbability(beta, delta) {
				record.Accepted = true
				record.ActionAfter = &actionAfter
				record.DeltaAction = &delta
				tri.RecordEvent(EventMoveAccepted, fmt.Sprintf("%s at step %d", move, step))
			}
		}

		results.Steps = append(results.Steps, record)

		if step%a.config.MeasurementFrequency == 0 {
			m := Measurement{
				Step:       step,
				Action:     a.action.EvaluateTriangulation(tri),
				Vertices:   tri.VertexCount(),
				Edges:      tri.EdgeCount(),
				Faces:      tri.FaceCount(),
				EulerValue: tri.EulerCharacteristic(),
			}
			results.Measurements = append(results.Measurements, m)
			tri.RecordEvent(EventMeasurementTaken, fmt.Sprintf("step %d action %g", step, m.Action))
		}

		if a.log != nil && step%logEvery(a.config.Steps) == 0 {
			a.log.WithFields(logrus.Fields{
				"step":   step,
				"action": record.ActionBefore,
			}).Debug("monte carlo progress")
		}
	}

	results.MoveStats = a.ergodics.Statistics()
	results.FinalAction = a.action.EvaluateTriangulation(tri)
	results.Elapsed = time.Since(started)
	return results, nil
}

// acceptProbability is the Metropolis rule: certain acceptance for a
// non-increasing action, exponential damping otherwise.
func acceptProbability(beta, delta float64) float64 {
	if delta <= 0 {
		return 1
	}
	return math.Exp(-beta * delta)
}

// logEvery spaces progress lines to roughly ten per run.
func logEvery(steps int) int {
	every := steps / 10
	if every < 1 {
		return 1
	}
	return every
}
