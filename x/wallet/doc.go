/*
Package wallet implements a multi signature wallet as a contract account.

A wallet holds the native currency and is controlled by a fixed set of
owners. Any owner can submit a proposal: a call of a target address with a
value and an opaque payload. Owners approve proposals and can revoke their
approval for as long as the proposal is pending. Once the number of
approvals reaches the required quorum, the proposal can be executed. Each
proposal is executed at most once.

Sending value to a wallet without a payload is a deposit and is allowed for
anyone.

Execution marks the proposal as executed before the target is called. A
target that calls back into the wallet observes the proposal as executed and
cannot execute it again. If the target call fails, the whole execution is
rolled back and the proposal stays pending.
*/
package wallet
