/*
Package vm hosts contract accounts.

A contract account is an address with code attached. Code is Go, registered
with the Machine under a kind name, and instantiated by deploying it. Each
deployed account owns an isolated namespace of the key value store and may
hold a balance of the native currency.

Every invocation (a call or a deployment) runs in its own frame. A frame
wraps the store in a savepoint, moves the attached value, and executes the
code. If the code fails, the frame is discarded together with all events it
emitted. Otherwise its writes are flushed into the parent frame and its
events are appended to the parent's list.

Calls to addresses without code only transfer the value.
*/
package vm
