// Package sanitizer normalizes free-text input before it is validated and
// stored.
//
// All functions are idempotent and never fail: input that cannot be
// normalized is returned trimmed rather than rejected, so validation rules
// stay the only place where input is refused.
//
// Normalization includes:
//   - Strings: collapse internal whitespace, trim leading/trailing spaces
//   - Emails: trim and lowercase
//   - Phone numbers: E.164 when the number is valid, otherwise left as typed
//   - Slices: remove duplicates and empty values after normalization
package sanitizer
