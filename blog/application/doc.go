// Package application implements the use cases of the blogging service.
//
// Services here take domain contracts and return domain values or
// sentinel errors. They know nothing about HTTP: status codes, headers
// and JSON shapes are the adapter's problem.
package application
