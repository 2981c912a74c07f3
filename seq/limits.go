package seq

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
)

// Limits bounds the memory buffering operators may use during one enumeration.
type Limits struct {
	// MaxBuffer is the largest number of elements a single buffering stage
	// may hold. Zero means unlimited.
	MaxBuffer int
}

type limitsKey struct{}

// WithLimits returns a context whose enumerations are bounded by l.
func WithLimits(ctx context.Context, l Limits) context.Context {
	return context.WithValue(ctx, limitsKey{}, l)
}

// LimitsFrom returns the limits carried by ctx, or the zero Limits.
func LimitsFrom(ctx context.Context) Limits {
	l, _ := ctx.Value(limitsKey{}).(Limits)
	return l
}

// budget counts the elements one buffering stage has taken in.
type budget struct {
	ctx context.Context
	op  string
	max int
	n   int
}

func newBudget(ctx context.Context, op string) *budget {
	return &budget{ctx: ctx, op: op, max: LimitsFrom(ctx).MaxBuffer}
}

func (b *budget) grow() error {
	b.n++
	if b.max > 0 && b.n > b.max {
		log().WithContext(b.ctx).Warn("buffer limit exceeded",
			logger.Fields(logger.FieldOperator, b.op, logger.FieldLimit, b.max))
		return errors.BufferLimit(b.op, b.max)
	}
	return nil
}

func (b *budget) done() {
	logMaterialized(b.ctx, b.op, b.n)
}

// drain pulls it to exhaustion into a slice, charging every element to the
// stage's budget. It does not close it.
func drain[T any](ctx context.Context, it Iterator[T], op string) ([]T, error) {
	b := newBudget(ctx, op)
	var items []T
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := b.grow(); err != nil {
			return nil, err
		}
		items = append(items, val)
	}
	b.done()
	return items, nil
}

func log() *logger.Logger {
	return logger.Get("seq")
}

func logMaterialized(ctx context.Context, op string, n int) {
	l := log()
	if !l.Enabled(zerolog.DebugLevel) {
		return
	}
	l.WithContext(ctx).Debug("stage materialized", logger.Fields(logger.FieldOperator, op, logger.FieldCount, n))
}
