// Package describe computes descriptive statistics of numeric samples and categorical columns.
//
// Numeric functions drop NaN values before computing anything and follow the conventions of dataframe
// libraries: variances and standard deviations use one degree of freedom, and the default quantile
// interpolates linearly between order statistics. Categorical helpers count occurrences, build
// contingency tables and normalise them.
package describe
