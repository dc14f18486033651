/*
Package errors implements the error handling used across multisafe.

Every error returned by an extension should wrap one of the registered root
errors. Root errors declared here cover concerns shared by all extensions,
while an extension that needs its own category (for example x/wallet) declares
it in its own package using Register(code, description).

Create errors at the point of failure with ErrXyz.New("...") or
errors.Wrap(err, "...") so that a stacktrace is attached. Only the innermost
wrap records a stacktrace.

Test an error category with the Is method:

	if wallet.ErrNotOwner.Is(err) {
		...
	}

Formatting:
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
