// Package domain defines the wallet front end's data models and contracts.
// It contains plain types (request payloads, the result envelope, the payment
// session) and interfaces only; behaviour lives in the services and the
// transport client.
package domain
