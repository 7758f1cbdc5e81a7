package backend

import "github.com/google/uuid"

// UniqueID mints an id for a new account, document, or file. The platform
// accepts client-chosen ids; every create call in this codebase mints a fresh
// one, so repeated calls always produce distinct records.
func UniqueID() string {
	return uuid.NewString()
}
