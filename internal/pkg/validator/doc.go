// Package validator validates request and domain structs.
//
// Business code depends on the Validator interface; V10Validator wraps
// go-playground/validator with English messages and snake_case field keys.
package validator
