/*
Package app wires extensions into a runnable state machine.

The Router dispatches a transaction to the handler registered for the
message path. Decorators are stacked in front of it with ChainDecorators.
Application runs transactions against a commit store: every transaction is
applied to the block cache, which is persisted on Commit.
*/
package app
