package store

import (
	"errors"
	"testing"
)

func TestRegisterAndVerify(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	user, err := us.Register("a@x.com", "pw123456", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected generated id")
	}
	if user.Email != "a@x.com" {
		t.Errorf("email = %q, want a@x.com", user.Email)
	}
	if user.FullName != "Alice" {
		t.Errorf("full name = %q, want Alice", user.FullName)
	}
	if user.PasswordHash == "pw123456" || user.PasswordHash == "" {
		t.Error("password must be stored as a hash")
	}

	got, err := us.Verify("a@x.com", "pw123456")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("verified id = %d, want %d", got.ID, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	if _, err := us.Register("a@x.com", "pw123456", "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := us.Register("a@x.com", "different", "Someone Else")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegisterDistinctEmails(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	a, err := us.Register("a@x.com", "pw123456", "Alice")
	if err != nil {
		t.Fatalf("register a: %v", err)
	}
	b, err := us.Register("b@x.com", "pw123456", "Bob")
	if err != nil {
		t.Fatalf("register b: %v", err)
	}
	if a.ID == b.ID {
		t.Error("expected distinct user ids")
	}
}

func TestVerifyFailuresAreIdentical(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	if _, err := us.Register("a@x.com", "pw123456", "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPw := us.Verify("a@x.com", "wrong-password")
	_, unknown := us.Verify("nobody@x.com", "pw123456")

	if !errors.Is(wrongPw, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPw)
	}
	if !errors.Is(unknown, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}
	if wrongPw.Error() != unknown.Error() {
		t.Errorf("failure messages differ: %q vs %q", wrongPw, unknown)
	}
}

func TestChangePassword(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	user, err := us.Register("a@x.com", "oldpassword", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := us.ChangePassword(user.ID, "oldpassword", "newpass8"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := us.Verify("a@x.com", "newpass8"); err != nil {
		t.Errorf("new password should verify: %v", err)
	}
	if _, err := us.Verify("a@x.com", "oldpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password should fail, got %v", err)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	user, err := us.Register("a@x.com", "pw123456", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	err = us.ChangePassword(user.ID, "not-the-password", "newpass8")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestChangePasswordTooShort(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	user, err := us.Register("a@x.com", "pw123456", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	err = us.ChangePassword(user.ID, "pw123456", "short")
	if !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	user, err := us.Register("a@x.com", "pw123456", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := us.UpdateProfile(user.ID, "Alice B", "alice@x.com")
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.FullName != "Alice B" || updated.Email != "alice@x.com" {
		t.Errorf("profile = %q/%q, want Alice B/alice@x.com", updated.FullName, updated.Email)
	}

	// Keeping your own email is not a conflict
	if _, err := us.UpdateProfile(user.ID, "Alice B", "alice@x.com"); err != nil {
		t.Errorf("unchanged email should succeed: %v", err)
	}
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	if _, err := us.Register("a@x.com", "pw123456", "Alice"); err != nil {
		t.Fatalf("register a: %v", err)
	}
	bob, err := us.Register("b@x.com", "pw123456", "Bob")
	if err != nil {
		t.Fatalf("register b: %v", err)
	}

	_, err = us.UpdateProfile(bob.ID, "Bob", "a@x.com")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUpdateAvatar(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	user, err := us.Register("a@x.com", "pw123456", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Avatar != nil {
		t.Error("expected nil avatar for new user")
	}

	updated, err := us.UpdateAvatar(user.ID, "data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("update avatar: %v", err)
	}
	if updated.Avatar == nil || *updated.Avatar != "data:image/png;base64,AAAA" {
		t.Errorf("avatar = %v, want stored payload", updated.Avatar)
	}
}
