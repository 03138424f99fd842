// Package balance is the controller of the balance inquiry view. A
// successful inquiry keeps the returned saldo along with its currency
// rendering; a failed one shows the reason and no value.
package balance
