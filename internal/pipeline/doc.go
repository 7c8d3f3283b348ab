// Package pipeline sequences the scattered-light correction for whole
// observations: fit the parameters for every snapshot of a pair, then apply
// them to produce the corrected stack.
//
// Processing is strictly sequential and synchronous. Each (observation,
// filter) pair is opened, fully processed, and closed before the next one;
// a failure inside one pair aborts that pair only and the batch moves on.
// Parameter files are pair-scoped, so one pair's failure can never corrupt
// another's store.
package pipeline
