// Package app wires billetera's dependencies for the CLI and the browser
// front end.
//
// LoadConfig reads configuration from an optional .env file, the process
// environment and command-line flags, in increasing precedence. NewWire
// turns a validated Config into the logger, the HTTP client and the wallet
// client, and hands out fresh sets of view controllers through NewViews.
package app
