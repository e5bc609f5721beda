package service

// Owns reports whether the authenticated principal owns a resource
// recorded against ownerID. A zero principal never owns anything; the
// middleware guarantees handlers only see resolved principals, so the
// zero check guards service-level callers.
func Owns(principalID, ownerID uint) bool {
	return principalID != 0 && principalID == ownerID
}
