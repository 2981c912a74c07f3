// Package util provides pointer helpers for the nullable forms of the seq
// aggregates (SumNullable, AverageNullable, MinNullable, MaxNullable).
package util
