package errors

import "testing"

func TestSentinelErrors(t *testing.T) {
	if ErrInvalidCredentials == nil {
		t.Error("ErrInvalidCredentials should not be nil")
	}
	if ErrEmailTaken == nil {
		t.Error("ErrEmailTaken should not be nil")
	}
	if ErrUserNotFound == nil {
		t.Error("ErrUserNotFound should not be nil")
	}
}
