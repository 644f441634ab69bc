// Package stats provides small order statistics over numeric samples.
package stats

import (
	"errors"
	"slices"
)

// ErrEmptyInput is returned when an aggregate is requested over no values.
var ErrEmptyInput = errors.New("stats: empty input")

// Number is the set of element types the aggregates accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Median returns the middle value of data, or the mean of the two middle
// values when len(data) is even.
//
// Precondition: none; data is never modified.
// Postcondition: Returns ErrEmptyInput when len(data) == 0.
func Median[T Number](data []T) (float64, error) {
	n := len(data)
	if n == 0 {
		return 0, ErrEmptyInput
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2]), nil
	}
	return 0.5 * (float64(sorted[n/2-1]) + float64(sorted[n/2])), nil
}

// Mean returns the arithmetic mean of data.
//
// Postcondition: Returns ErrEmptyInput when len(data) == 0.
func Mean[T Number](data []T) (float64, error) {
	if len(data) == 0 {
		return 0, ErrEmptyInput
	}
	var sum float64
	for _, v := range data {
		sum += float64(v)
	}
	return sum / float64(len(data)), nil
}

// Summary describes a sample.
type Summary struct {
	Count  int     `yaml:"count"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Mean   float64 `yaml:"mean"`
	Median float64 `yaml:"median"`
}

// Summarize computes a Summary of data.
//
// Postcondition: Returns ErrEmptyInput when len(data) == 0; otherwise
// Min <= Median <= Max and Min <= Mean <= Max.
func Summarize[T Number](data []T) (Summary, error) {
	median, err := Median(data)
	if err != nil {
		return Summary{}, err
	}
	mean, err := Mean(data)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Count:  len(data),
		Min:    float64(slices.Min(data)),
		Max:    float64(slices.Max(data)),
		Mean:   mean,
		Median: median,
	}, nil
}
