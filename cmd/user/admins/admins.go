// Package admins maintains the set of email addresses that are granted the
// administrator role on sign-up.
package admins

// Contains checks if the passed email address belongs to the passed set of
// administrator email addresses.
func Contains(set []string, email string) bool {
	for _, admin := range set {
		if admin == email {
			return true
		}
	}
	return false
}
