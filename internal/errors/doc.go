// Package errors provides structured errors for the veld toolchain.
//
// Every known failure mode has a stable code (e.g. "E040") registered with
// a category, message, detail and fix suggestion. The CLI and dev server
// surface these with terminal formatting; library packages keep returning
// plain sentinel errors and wrap them here at the tool boundary.
//
// Usage:
//
//	return errors.New("E060").Wrap(err)
//
//	ve := errors.FromError(err, "E101")
//	ve.Print()
package errors
