// Package view holds what every view controller shares: the message shown
// to the user, the refusal errors, and the Gate that serializes calls.
//
// A controller owns its own mutex. Gate is plain data manipulated under that
// mutex; it tracks whether a call is in flight, whether the view has been
// torn down, and a generation counter so responses that resolve after a
// back-navigation, reset or teardown are dropped instead of applied.
package view
