// Package recharge is the controller of the wallet recharge view.
package recharge
