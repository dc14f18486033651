// Package utils provides decorators that every application stacks in
// front of its router: panic recovery, transaction logging and savepoints.
package utils
