// Package domain holds the core types and storage contracts shared by all
// backend adapters: the User record, the UserStore account contract, and the
// SessionStore token contract.
package domain
