// Package commands defines the billetera CLI and wires dependencies for subcommands.
//
// Commands
//
//   - register   Register a wallet client
//   - recharge   Credit a wallet
//   - pay        Request a payment and confirm it with the emailed token
//   - balance    Show a wallet balance
//   - serve      Run the browser front end
//
// # Implementation
//
// The root command loads configuration (.env file, environment, flags) and
// builds the dependency graph before any subcommand runs. Each terminal
// subcommand drives its own fresh set of view controllers, the same ones the
// browser front end uses, and prints the outcome. A failed outcome exits with
// status 1.
package commands
