// Package rangespec turns the range inputs of a sequence request into
// validated half-open intervals.
//
// Two forms are accepted, never together:
//
//   - start and end query parameters, zero-based and end-exclusive
//   - a Range header of inclusive "a-b" pairs, optionally prefixed with
//     "bytes=", where each pair becomes [a, b+1)
//
// Header ranges keep their listed order and may overlap.
package rangespec
