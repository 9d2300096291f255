// Package dist answers probability questions about the binomial, continuous uniform and normal distributions.
//
// Every distribution is built through a validating constructor and then queried with one of three primitives:
// the point probability (PMF for discrete families, PDF for continuous ones), the cumulative probability (CDF) and
// the inverse cumulative probability (PPF). The survival function (SF) is provided for "more than" questions.
//
// The numerical work is delegated to gonum's distuv package. This package adds parameter validation, the inverse
// CDF of the binomial distribution, which distuv does not provide, and small helpers to build evaluation grids,
// standardise values and fit a distribution to a sample.
package dist
