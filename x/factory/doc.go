/*
Package factory implements a contract account that deploys wallets.

The account that deploys a factory becomes its administrator. Anyone can
use the factory to create a new wallet. Every transfer to the factory that
is not a factory operation is kept as a donation and only the
administrator can withdraw the collected funds.

The factory does not keep track of the wallets it created. Each creation
emits a new_wallet event carrying the wallet address.
*/
package factory
