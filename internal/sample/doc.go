// Package sample defines the per-sample recognition results that drive match
// reconstruction.
//
// A Sample is one timestamped bundle of optional field detections produced by
// an upstream recognizer. Each field is a closed variant: a nil pointer means
// the recognizer did not fire for that sample, which is common and expected.
// Samples are never mutated after they are decoded; the segmenter and resolver
// only read them.
//
// Samples travel as newline-delimited JSON. Decoder reads that format and
// implements Source, the pull interface the pipeline consumes.
package sample
