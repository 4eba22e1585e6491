// Package extractor turns the three known report layouts into normalized
// tables. Each extractor is a pure function over a RawSheet: structural
// detection failures are returned as errors, unparseable cells become nil
// and rows without a recoverable year are dropped.
package extractor
