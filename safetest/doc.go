/*
Package safetest provides mocks and helpers for testing handlers,
decorators and contract code of this module.
*/
package safetest
