package handlers

import "testing"

// SetMissingUserCheck replaces the comparison run for unknown users until t ends.
func SetMissingUserCheck(t testing.TB, f func(password string) bool) {
	orig := checkMissingUser
	checkMissingUser = f
	t.Cleanup(func() { checkMissingUser = orig })
}
