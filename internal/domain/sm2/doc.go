// Package sm2 implements the SuperMemo-2 spaced repetition algorithm
// used by spaced study mode. Reviews are graded on a 0-5 quality scale;
// a quality of 3 or higher counts as a pass. The package exposes pure
// calculation functions behind a small Service interface so callers can
// swap parameters or implementations in tests.
package sm2
