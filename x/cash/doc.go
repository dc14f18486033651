/*
Package cash keeps the balances of the native currency.

There is a single currency, stored as an unsigned amount of its smallest
unit. Any address may hold a balance, regardless if it belongs to a key
holder or to a contract account. Balances never go below zero.
*/
package cash
