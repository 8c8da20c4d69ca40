// Package textutil provides fuzzy text matching for noisy recognizer output
// and filename sanitization.
//
// The primary use cases are:
//   - Scoring similarity between two OCR strings (Ratio)
//   - Snapping raw text onto a fixed vocabulary of canonical names (Vocabulary)
//   - Sanitizing match keys for safe filesystem use
//
// Similarity is a normalized Levenshtein ratio computed on case-folded,
// whitespace-collapsed text, so "MAP - ASCENT" and "map  -  ascent" compare
// as identical.
package textutil
