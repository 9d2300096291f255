// Package stream runs values through a chain of stages connected by channels.
//
// A stream starts with one or more sources, goes through map and flat-map stages and ends in sinks. Every stage
// runs in its own goroutines as soon as it is added; map and flat-map stages can process values concurrently.
// Run waits for every stage to finish and returns the first error, which also cancels the context shared by
// all stages so that the remaining goroutines stop.
//
// Hooks observe the stream: they are told about every stage when it is added and about every value a stage
// handles. The measure and topology subpackages provide timing and DOT export hooks.
package stream
