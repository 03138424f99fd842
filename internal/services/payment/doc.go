// Package payment drives the two-step payment flow: request a payment,
// receive a session id, confirm it with the token the wallet service sends
// to the client out of band.
//
// The flow is a finite-state machine with two steps, REQUEST and CONFIRM.
// Reduce is the pure transition function; Service wraps it with the wallet
// client, a busy guard, a stale-response guard and the timed reset that
// returns the view to an empty REQUEST step after a confirmed payment.
package payment
