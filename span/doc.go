// Package span provides Index and Range, value types that describe positions
// and half-open intervals of a finite sequence either from its start or from
// its end. Neither type knows the sequence it is applied to: both are
// resolved against a concrete length when one becomes available.
//
// # Usage
//
//	r := span.NewRange(span.FromStart(2), span.FromEnd(1)) // 2..^1
//	off, n, err := r.Resolve(5)                            // 2, 2, nil
//
//	r, err := span.Parse("1..^2")
package span
