package policy

import "blogicum/services/blog/internal/entity"

// CanEdit permits only the authenticated author.
func CanEdit(principal entity.Principal, authorID string) bool {
	return principal.IsAuthenticated() && principal.UserID == authorID
}

// Authorize is CanEdit with the reason for a denial.
func Authorize(principal entity.Principal, authorID string) error {
	if !principal.IsAuthenticated() {
		return entity.ErrUnauthenticated
	}
	if principal.UserID != authorID {
		return entity.ErrForbidden
	}
	return nil
}
