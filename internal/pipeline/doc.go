// Package pipeline streams input files through the extractor and the block
// scanner, and calls a visit callback per captured block.
//
// One bad input must not abort the batch: read failures are logged, the
// first error is remembered, and the remaining files are still processed.
package pipeline
