package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kbukum/seqkit/bootstrap"
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/seq"
	"github.com/kbukum/seqkit/span"
)

// lineIter yields the lines of a reader. It is single-pass.
type lineIter struct {
	sc *bufio.Scanner
}

func (it *lineIter) Next(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if !it.sc.Scan() {
		return "", false, it.sc.Err()
	}
	return it.sc.Text(), true, nil
}

func (it *lineIter) Close() error { return nil }

// readValues parses every non-blank line as a number and buffers the result
// so the statistics can enumerate it repeatedly.
func readValues(ctx context.Context, app *bootstrap.App, r io.Reader) (*seq.Seq[float64], error) {
	lines := bootstrap.Instrument(app, seq.From[string](&lineIter{sc: bufio.NewScanner(r)}), "input")
	numbered := seq.Where(seq.Enumerate(lines), func(l seq.Indexed[string]) bool {
		return strings.TrimSpace(l.Value) != ""
	})
	parsed := seq.SelectErr(numbered, func(_ context.Context, l seq.Indexed[string]) (float64, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(l.Value), 64)
		if err != nil {
			return 0, errors.InvalidArgument("input", fmt.Sprintf("line %d: %q is not a number", l.Index+1, l.Value))
		}
		return v, nil
	})
	values, err := seq.ToSlice(ctx, parsed)
	if err != nil {
		return nil, err
	}
	return seq.FromSlice(values), nil
}

type stats struct {
	count    int
	sum      float64
	mean     float64
	min, max float64
	distinct int
	top      []seq.KeyValue[float64, int]
	slice    []float64
	rng      *span.Range
}

func summarize(ctx context.Context, values *seq.Seq[float64], top int, rng *span.Range) (*stats, error) {
	st := &stats{rng: rng}
	var err error
	if st.count, err = seq.Count(ctx, values); err != nil {
		return nil, err
	}
	if st.sum, err = seq.Sum(ctx, values); err != nil {
		return nil, err
	}
	if st.distinct, err = seq.Count(ctx, seq.Distinct(values)); err != nil {
		return nil, err
	}
	if st.count > 0 {
		if st.mean, err = seq.Average(ctx, values); err != nil {
			return nil, err
		}
		if st.min, err = seq.Min(ctx, values); err != nil {
			return nil, err
		}
		if st.max, err = seq.Max(ctx, values); err != nil {
			return nil, err
		}
	}

	frequent := seq.ThenBy(
		seq.OrderByDescending(seq.CountBy(values, func(v float64) float64 { return v }),
			func(kv seq.KeyValue[float64, int]) int { return kv.Value }),
		func(kv seq.KeyValue[float64, int]) float64 { return kv.Key })
	if st.top, err = seq.ToSlice(ctx, seq.Take(frequent.Seq, top)); err != nil {
		return nil, err
	}

	if rng != nil {
		if st.slice, err = seq.ToSlice(ctx, seq.TakeRange(seq.Order(values).Seq, *rng)); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (st *stats) write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "count\t%d\n", st.count)
	fmt.Fprintf(tw, "sum\t%s\n", formatFloat(st.sum))
	if st.count > 0 {
		fmt.Fprintf(tw, "average\t%s\n", formatFloat(st.mean))
		fmt.Fprintf(tw, "min\t%s\n", formatFloat(st.min))
		fmt.Fprintf(tw, "max\t%s\n", formatFloat(st.max))
	}
	fmt.Fprintf(tw, "distinct\t%d\n", st.distinct)
	for i, kv := range st.top {
		fmt.Fprintf(tw, "top %d\t%s\t(%d)\n", i+1, formatFloat(kv.Key), kv.Value)
	}
	if st.rng != nil {
		parts := make([]string, len(st.slice))
		for i, v := range st.slice {
			parts[i] = formatFloat(v)
		}
		fmt.Fprintf(tw, "range %s\t%s\n", st.rng, strings.Join(parts, " "))
	}
	return tw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
