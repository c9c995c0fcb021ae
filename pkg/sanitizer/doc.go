// Package sanitizer normalizes user supplied text before validation and
// storage.
//
// All functions are idempotent and never fail: invalid input is returned in
// a shape the validators will reject (usually the empty string).
//
// Normalization includes:
//   - Free text: collapse whitespace runs, trim leading/trailing spaces
//   - Emails: trim and lowercase
//   - Image URLs: trim, lowercase scheme and host, keep path and query
//   - Coordinates and prices: round to a fixed number of decimals
package sanitizer
