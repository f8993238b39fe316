// Package fibonacci computes Fibonacci values F(n) with arbitrary precision.
//
// Three interchangeable strategies implement [Generator]:
//
//   - [Naive] evaluates the recurrence with two recursive calls per step.
//     It is pure and runs in O(φⁿ) time.
//   - [Memoized] evaluates the same recursion over an explicit [Cache],
//     looking an index up before computing it and inserting it afterwards.
//     It runs in O(n) time and keeps every value for the generator's lifetime.
//   - [Iterative] walks two running values up to n and needs no recursion.
//
// Every strategy rejects a negative index with apperrors.InvalidIndexError.
// Generators are not safe for concurrent use; a Memoized generator owns its
// cache and must stay confined to one goroutine.
package fibonacci
