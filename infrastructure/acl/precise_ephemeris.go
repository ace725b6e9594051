// Package acl is the anti-corruption layer around the external precision
// calculator. It translates the calculator's JSON chart output into
// domain models so the rest of the engine never sees its wire format.
package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"astrotune-backend/application/ports"
	"astrotune-backend/domain/core/aggregates"
	"astrotune-backend/domain/core/entities"
	"astrotune-backend/domain/core/valueobjects"
	pkgerrors "astrotune-backend/pkg/errors"
)

// CircuitBreakerConfig holds configuration for the calculator breaker
type CircuitBreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// ReadyToTrip parameters: trip once FailureThreshold of the last
	// window failed, but only after MinRequests observations
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultCircuitBreakerConfig returns a default configuration for the
// calculator breaker
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      4,
	}
}

// calculatorChart is the calculator's JSON chart document. Only the
// fields the translation needs are mapped.
type calculatorChart struct {
	Planets map[string]calculatorPlanet `json:"planets"`
	Houses  map[string]calculatorHouse  `json:"houses"`
	Error   string                      `json:"error"`
}

// calculatorPlanet is one body entry in the calculator output
type calculatorPlanet struct {
	Sign       string  `json:"sign"`
	Degree     float64 `json:"degree"`
	Minute     float64 `json:"minute"`
	Retrograde bool    `json:"retrograde"`
}

// calculatorHouse is one house entry in the calculator output
type calculatorHouse struct {
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
	Minute float64 `json:"minute"`
}

// external node labels differ from the domain's
const (
	externalNorthNode = "True North Node"
	externalAscendant = "Ascendant"
)

// PreciseEphemerisAdapter runs the external precision calculator as a
// subprocess and translates its output into a domain PositionSet. Every
// exchange is bounded by a timeout and guarded by a circuit breaker;
// any failure is reported as an external error for the caller to fall
// back on.
type PreciseEphemerisAdapter struct {
	command string
	script  string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewPreciseEphemerisAdapter creates the subprocess adapter
func NewPreciseEphemerisAdapter(command, script string, timeout time.Duration, cbConfig CircuitBreakerConfig, logger *zap.Logger) *PreciseEphemerisAdapter {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cbConfig.Name,
		MaxRequests: cbConfig.MaxRequests,
		Interval:    cbConfig.Interval,
		Timeout:     cbConfig.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cbConfig.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cbConfig.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Precision calculator breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &PreciseEphemerisAdapter{
		command: command,
		script:  script,
		timeout: timeout,
		breaker: breaker,
		logger:  logger,
	}
}

// Name identifies the source for logs and metrics
func (a *PreciseEphemerisAdapter) Name() string {
	return string(aggregates.SourcePrecise)
}

// Compute runs one calculator exchange and translates the result
func (a *PreciseEphemerisAdapter) Compute(ctx context.Context, moment valueobjects.BirthMoment) (*ports.PositionSet, error) {
	result, err := a.breaker.Execute(func() (any, error) {
		return a.invoke(ctx, moment)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, pkgerrors.NewExternal("precision calculator circuit is open", err)
		}
		return nil, err
	}

	chart, ok := result.(*calculatorChart)
	if !ok {
		return nil, pkgerrors.NewInternal("unexpected breaker result type", nil)
	}

	return a.translate(chart)
}

// invoke runs the calculator subprocess and decodes its stdout
func (a *PreciseEphemerisAdapter) invoke(ctx context.Context, moment valueobjects.BirthMoment) (*calculatorChart, error) {
	runCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	coords := moment.Coordinates()
	cmd := exec.CommandContext(runCtx, a.command, a.script,
		moment.DateString(),
		moment.TimeString(),
		fmt.Sprintf("%.6f", coords.Latitude()),
		fmt.Sprintf("%.6f", coords.Longitude()),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, pkgerrors.NewExternal(
				fmt.Sprintf("precision calculator exceeded %s timeout", a.timeout), runCtx.Err())
		}
		a.logger.Warn("Precision calculator exited with error",
			zap.Error(err),
			zap.String("stderr", stderr.String()),
			zap.Duration("elapsed", elapsed),
		)
		return nil, pkgerrors.NewExternal("precision calculator failed", err)
	}

	var chart calculatorChart
	if err := json.Unmarshal(stdout.Bytes(), &chart); err != nil {
		return nil, pkgerrors.NewExternal("precision calculator returned malformed JSON", err)
	}
	if chart.Error != "" {
		return nil, pkgerrors.NewExternal(
			fmt.Sprintf("precision calculator reported: %s", chart.Error), nil)
	}

	a.logger.Debug("Precision calculator exchange complete",
		zap.Duration("elapsed", elapsed),
		zap.Int("planets", len(chart.Planets)),
	)

	return &chart, nil
}

// translate converts the calculator chart into a domain PositionSet
func (a *PreciseEphemerisAdapter) translate(chart *calculatorChart) (*ports.PositionSet, error) {
	set := &ports.PositionSet{Source: aggregates.SourcePrecise}

	for _, body := range entities.TrackedBodies() {
		entry, ok := chart.Planets[body.String()]
		if !ok {
			return nil, pkgerrors.NewExternal(
				fmt.Sprintf("precision calculator output is missing %s", body), nil)
		}
		position, err := translatePosition(body, entry)
		if err != nil {
			return nil, err
		}
		set.Bodies = append(set.Bodies, position)
	}

	north, ok := chart.Planets[externalNorthNode]
	if !ok {
		return nil, pkgerrors.NewExternal("precision calculator output is missing the north node", nil)
	}
	northPos, err := translatePosition(entities.NorthNode, north)
	if err != nil {
		return nil, err
	}
	set.NorthNode = northPos

	// The south node is always the point opposite the north node.
	// Deriving it here instead of reading the calculator's entry keeps
	// the pair exactly opposite despite the arcminute rounding in the
	// calculator output.
	southPos, err := entities.NewBodyPosition(
		entities.SouthNode, northPos.Longitude().Opposite(), northPos.Retrograde(), false)
	if err != nil {
		return nil, pkgerrors.NewExternal("failed to derive south node", err)
	}
	set.SouthNode = southPos

	for number := 1; number <= 12; number++ {
		entry, ok := chart.Houses[fmt.Sprintf("%d", number)]
		if !ok {
			return nil, pkgerrors.NewExternal(
				fmt.Sprintf("precision calculator output is missing house %d", number), nil)
		}
		sign, ok := valueobjects.SignFromName(entry.Sign)
		if !ok {
			return nil, pkgerrors.NewExternal(
				fmt.Sprintf("precision calculator returned unknown sign %q for house %d", entry.Sign, number), nil)
		}
		cusp := absoluteLongitude(sign, entry.Degree, entry.Minute)
		house, err := entities.NewHouse(number, sign, cusp)
		if err != nil {
			return nil, pkgerrors.NewExternal(fmt.Sprintf("invalid house %d from calculator", number), err)
		}
		set.Houses[number-1] = house
	}

	if asc, ok := chart.Planets[externalAscendant]; ok {
		sign, found := valueobjects.SignFromName(asc.Sign)
		if !found {
			return nil, pkgerrors.NewExternal(
				fmt.Sprintf("precision calculator returned unknown ascendant sign %q", asc.Sign), nil)
		}
		longitude, err := valueobjects.NewLongitude(absoluteLongitude(sign, asc.Degree, asc.Minute))
		if err != nil {
			return nil, pkgerrors.NewExternal("invalid ascendant from calculator", err)
		}
		set.Ascendant = longitude
	} else {
		// Fall back to the first house cusp
		longitude, err := valueobjects.NewLongitude(set.Houses[0].CuspDegree())
		if err != nil {
			return nil, pkgerrors.NewExternal("invalid first house cusp from calculator", err)
		}
		set.Ascendant = longitude
	}

	return set, nil
}

// translatePosition converts one calculator planet entry
func translatePosition(body entities.Body, entry calculatorPlanet) (entities.BodyPosition, error) {
	sign, ok := valueobjects.SignFromName(entry.Sign)
	if !ok {
		return entities.BodyPosition{}, pkgerrors.NewExternal(
			fmt.Sprintf("precision calculator returned unknown sign %q for %s", entry.Sign, body), nil)
	}

	longitude, err := valueobjects.NewLongitude(absoluteLongitude(sign, entry.Degree, entry.Minute))
	if err != nil {
		return entities.BodyPosition{}, pkgerrors.NewExternal(
			fmt.Sprintf("invalid longitude for %s from calculator", body), err)
	}

	// The luminaries are never retrograde; ignore any flag the
	// calculator sets on them rather than rejecting the whole chart.
	retrograde := entry.Retrograde && !body.IsLuminary()

	position, err := entities.NewBodyPosition(body, longitude, retrograde, false)
	if err != nil {
		return entities.BodyPosition{}, pkgerrors.NewExternal(
			fmt.Sprintf("invalid position for %s from calculator", body), err)
	}
	return position, nil
}

// absoluteLongitude rebuilds an ecliptic longitude from sign-relative
// degrees and minutes
func absoluteLongitude(sign valueobjects.Sign, degree, minute float64) float64 {
	return float64(int(sign))*30 + degree + minute/60
}
