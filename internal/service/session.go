package service

import "github.com/google/uuid"

// ResolveSession returns the caller-presented session token unchanged when
// present, otherwise mints a fresh 128-bit random identifier. The resolver
// does not check that a presented token corresponds to a stored row; an
// unknown token simply locates nothing downstream.
func ResolveSession(incomingToken string) string {
	if incomingToken != "" {
		return incomingToken
	}
	return uuid.NewString()
}
