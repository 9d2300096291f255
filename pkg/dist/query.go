package dist

import (
	"strings"

	"github.com/pkg/errors"
)

// Op is a query that can be evaluated against a distribution.
type Op string

const (
	OpPMF Op = "pmf"
	OpPDF Op = "pdf"
	OpCDF Op = "cdf"
	OpSF  Op = "sf"
	OpPPF Op = "ppf"
)

// ParseOp returns the operation matching name.
func ParseOp(name string) (Op, error) {
	op := Op(strings.ToLower(strings.TrimSpace(name)))
	switch op {
	case OpPMF, OpPDF, OpCDF, OpSF, OpPPF:
		return op, nil
	}

	return "", errors.Wrapf(ErrUnknownOp, "%q", name)
}

// Result is the answer to a single query.
type Result struct {
	Dist  string  `json:"dist" yaml:"dist"`
	Op    Op      `json:"op" yaml:"op"`
	X     float64 `json:"x" yaml:"x"`
	Value float64 `json:"value" yaml:"value"`
}

// Evaluate runs op at x against d. For OpPPF, x is the cumulative probability.
// OpPMF is only valid for discrete distributions and OpPDF for continuous ones.
func Evaluate(d Distribution, op Op, x float64) (Result, error) {
	res := Result{Dist: d.String(), Op: op, X: x}

	switch op {
	case OpPMF:
		if !d.Discrete() {
			return res, errors.Wrapf(ErrUnknownOp, "%s has no mass function, use pdf", d.Family())
		}
		res.Value = d.Prob(x)
	case OpPDF:
		if d.Discrete() {
			return res, errors.Wrapf(ErrUnknownOp, "%s has no density, use pmf", d.Family())
		}
		res.Value = d.Prob(x)
	case OpCDF:
		res.Value = d.CDF(x)
	case OpSF:
		res.Value = d.SF(x)
	case OpPPF:
		v, err := d.PPF(x)
		if err != nil {
			return res, errors.Wrapf(err, "%s ppf", d)
		}
		res.Value = v
	default:
		return res, errors.Wrapf(ErrUnknownOp, "%q", op)
	}

	return res, nil
}

// EvaluateAll runs op at every x and stops at the first error.
func EvaluateAll(d Distribution, op Op, xs ...float64) ([]Result, error) {
	results := make([]Result, 0, len(xs))
	for _, x := range xs {
		res, err := Evaluate(d, op, x)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, nil
}
