// Package registration is the controller of the client registration view.
package registration
