// Package clock provides a tiny time abstraction.
//
// Business code depends on Clocker instead of calling time.Now directly, so
// expiry and throttle rules can be driven from tests with a Fixed clock.
package clock
