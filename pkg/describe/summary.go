package describe

import (
	"math"
)

// Summary holds the descriptive statistics of a numeric sample.
// Statistics that need more observations than available are NaN.
type Summary struct {
	Count    int     `json:"count" yaml:"count"`
	Mean     float64 `json:"mean" yaml:"mean"`
	Std      float64 `json:"std" yaml:"std"`
	Min      float64 `json:"min" yaml:"min"`
	Q1       float64 `json:"q1" yaml:"q1"`
	Median   float64 `json:"median" yaml:"median"`
	Q3       float64 `json:"q3" yaml:"q3"`
	Max      float64 `json:"max" yaml:"max"`
	IQR      float64 `json:"iqr" yaml:"iqr"`
	CV       float64 `json:"cv" yaml:"cv"`
	Skew     float64 `json:"skew" yaml:"skew"`
	Kurtosis float64 `json:"kurtosis" yaml:"kurtosis"`
	GeoMean  float64 `json:"geomean" yaml:"geomean"`
}

// Summarize computes the Summary of xs. NaN values are ignored.
func Summarize(xs []float64) (Summary, error) {
	sorted := cleanSorted(xs)
	if len(sorted) == 0 {
		return Summary{}, ErrEmptySample
	}

	sum := Summary{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     linearQuantile(sorted, 0.25),
		Median: linearQuantile(sorted, 0.5),
		Q3:     linearQuantile(sorted, 0.75),
	}
	sum.IQR = sum.Q3 - sum.Q1
	// sorted is already clean, errors can only come from the sample size.
	sum.Mean, _ = Mean(sorted)
	sum.Std = orNaN(StdDev(sorted))
	sum.CV = orNaN(CV(sorted))
	sum.Skew = orNaN(Skew(sorted))
	sum.Kurtosis = orNaN(Kurtosis(sorted))
	sum.GeoMean = orNaN(GeoMean(sorted))

	return sum, nil
}

func orNaN(v float64, err error) float64 {
	if err != nil {
		return math.NaN()
	}

	return v
}
