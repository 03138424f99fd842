// Package validate holds the client-side input checks that run before any
// call to the wallet service.
//
// Checks are pure: the same input always yields the same verdict and nothing
// is recorded. Each check returns nil when the input is acceptable, or a
// *Failure carrying the error code and the Spanish message shown to the user.
//
// Struct checks are driven by `validate` tags on the domain payloads and a
// shared go-playground validator with three custom rules:
//
//   - notblank:         non-empty after trimming whitespace
//   - wallet_email:     local@domain.tld shape, no whitespace, a single '@'
//   - positive_decimal: decimal.Decimal strictly greater than zero
//
// Fields are checked in declaration order and the first failure wins.
package validate
