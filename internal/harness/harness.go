package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/registry/internal/registry"
	"github.com/roach88/registry/internal/seed"
	"github.com/roach88/registry/internal/session"
	"github.com/roach88/registry/internal/store"
	"github.com/roach88/registry/internal/testutil"
)

// Harness holds one scenario's isolated registry.
type Harness struct {
	store  *store.Store
	svc    *registry.Service
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database. Execution flow:
//  1. Open the database and apply the seed, if any
//  2. Run a session over the scenario's input lines
//  3. Evaluate every assertion against the transcript and tables
//
// A failed assertion is reported in the Result; the error return is for
// scenarios that could not be run at all.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := &Harness{
		store:  st,
		logger: logger,
		svc: registry.New(st,
			registry.WithClock(testutil.NewFixedClockOn(scenario.Today)),
			registry.WithIDGenerator(testutil.NewSequentialGenerator("p")),
			registry.WithLogger(logger),
		),
	}

	if err := h.seed(ctx, scenario); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(scenario.Input, "\n") + "\n")
	sess := session.New(h.svc, in, &out, session.WithLogger(logger))
	if err := sess.Run(ctx); err != nil {
		return nil, fmt.Errorf("session failed: %w", err)
	}

	result := NewResult()
	result.Transcript = out.String()
	for i, a := range scenario.Assertions {
		if err := h.check(ctx, result.Transcript, a); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return result, nil
}

func (h *Harness) seed(ctx context.Context, scenario *Scenario) error {
	var (
		d   *seed.Data
		err error
	)
	switch {
	case scenario.SeedFile != "":
		d, err = seed.LoadFile(scenario.SeedFile)
	case scenario.Seed:
		d, err = seed.Default()
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load seed: %w", err)
	}
	if _, err := seed.Apply(ctx, h.store, d, testutil.NewSequentialGenerator("s"), h.logger); err != nil {
		return fmt.Errorf("failed to apply seed: %w", err)
	}
	return nil
}

func (h *Harness) check(ctx context.Context, transcript string, a Assertion) error {
	switch a.Type {
	case AssertOutputContains:
		return assertOutputContains(transcript, a)
	case AssertOutputNotContains:
		return assertOutputNotContains(transcript, a)
	case AssertRowCount:
		return assertRowCount(ctx, h.svc, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}
