// Package clock is a tiny time abstraction.
//
// Code that needs the current time should depend on Clocker instead of
// calling time.Now() directly, so tests can freeze or rewind time.
package clock
