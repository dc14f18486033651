/*
Package x contains some standard extensions

Extensions are not required for the framework to run, and are
simply plug-and-play components that can be mixed into an application.
This package also defines interfaces shared by extensions, like the
Authenticator.
*/
package x
