package services

import (
	"testing"
	"time"

	"authbase/internal/models"
	"authbase/internal/repositories"
)

func newOTPFixture(t *testing.T) (*OTPService, *repositories.MemoryUserRepository, *MemoryEmailService, *models.User) {
	t.Helper()

	repo := repositories.NewMemoryUserRepository()
	emails := NewMemoryEmailService()
	svc := NewOTPService(repo, emails)

	user := &models.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "irrelevant"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return svc, repo, emails, user
}

func TestOTP_IssueStoresCodeAndSendsEmail(t *testing.T) {
	t.Parallel()

	svc, repo, emails, user := newOTPFixture(t)

	code, err := svc.Issue(user, models.PurposeVerify)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if len(code) != 6 || code[0] == '0' {
		t.Fatalf("expected 6-digit code in [100000,999999], got %q", code)
	}

	stored, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if stored.VerifyOTP != code {
		t.Fatalf("stored code %q does not match issued %q", stored.VerifyOTP, code)
	}
	if !stored.VerifyOTPExpireAt.After(time.Now()) {
		t.Fatalf("expiry %v not in the future", stored.VerifyOTPExpireAt)
	}

	sent := emails.Last()
	if sent == nil {
		t.Fatal("no email recorded")
	}
	if sent.To != user.Email || sent.Subject != "Verify Your Email" || sent.Body != code {
		t.Fatalf("unexpected email: %+v", sent)
	}
}

func TestOTP_IssueOverwritesPendingCode(t *testing.T) {
	t.Parallel()

	svc, repo, _, user := newOTPFixture(t)

	first, err := svc.Issue(user, models.PurposeReset)
	if err != nil {
		t.Fatalf("first Issue error: %v", err)
	}

	var second string
	// codes are random; retry until the new one differs
	for i := 0; i < 20; i++ {
		second, err = svc.Issue(user, models.PurposeReset)
		if err != nil {
			t.Fatalf("second Issue error: %v", err)
		}
		if second != first {
			break
		}
	}
	if second == first {
		t.Fatal("could not obtain a distinct second code")
	}

	stored, _ := repo.GetByID(user.ID)
	if stored.ResetOTP != second {
		t.Fatalf("pending code %q, want latest %q", stored.ResetOTP, second)
	}

	if err := svc.Redeem(stored, models.PurposeReset, first); err != ErrCodeInvalid {
		t.Fatalf("superseded code should be ErrCodeInvalid, got %v", err)
	}
}

func TestOTP_RedeemRoundTrip(t *testing.T) {
	t.Parallel()

	svc, repo, _, user := newOTPFixture(t)

	code, err := svc.Issue(user, models.PurposeVerify)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	fresh, _ := repo.GetByID(user.ID)
	if err := svc.Redeem(fresh, models.PurposeVerify, code); err != nil {
		t.Fatalf("Redeem error: %v", err)
	}

	// single-use: the code is cleared, a second redeem is invalid
	after, _ := repo.GetByID(user.ID)
	if after.VerifyOTP != "" {
		t.Fatalf("code not cleared after redeem: %q", after.VerifyOTP)
	}
	if err := svc.Redeem(after, models.PurposeVerify, code); err != ErrCodeInvalid {
		t.Fatalf("second redeem should be ErrCodeInvalid, got %v", err)
	}
}

func TestOTP_RedeemWrongCodeKeepsPending(t *testing.T) {
	t.Parallel()

	svc, repo, _, user := newOTPFixture(t)

	code, err := svc.Issue(user, models.PurposeVerify)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	fresh, _ := repo.GetByID(user.ID)
	if err := svc.Redeem(fresh, models.PurposeVerify, "000000"); err != ErrCodeInvalid {
		t.Fatalf("wrong code should be ErrCodeInvalid, got %v", err)
	}

	// failure does not consume the code; the right one still works
	fresh, _ = repo.GetByID(user.ID)
	if err := svc.Redeem(fresh, models.PurposeVerify, code); err != nil {
		t.Fatalf("retry with correct code failed: %v", err)
	}
}

func TestOTP_RedeemAtOrAfterExpiryIsExpired(t *testing.T) {
	t.Parallel()

	svc, repo, _, user := newOTPFixture(t)

	// a correct value past its expiry is still Expired
	if err := repo.SetOTP(user.ID, models.PurposeVerify, "123456", time.Now()); err != nil {
		t.Fatalf("SetOTP error: %v", err)
	}
	fresh, _ := repo.GetByID(user.ID)
	if err := svc.Redeem(fresh, models.PurposeVerify, "123456"); err != ErrCodeExpired {
		t.Fatalf("expected ErrCodeExpired at expiry instant, got %v", err)
	}

	if err := repo.SetOTP(user.ID, models.PurposeVerify, "123456", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("SetOTP error: %v", err)
	}
	fresh, _ = repo.GetByID(user.ID)
	if err := svc.Redeem(fresh, models.PurposeVerify, "wrong!"); err != ErrCodeExpired {
		t.Fatalf("expired wins over mismatch, got %v", err)
	}
}

func TestOTP_NeverIssuedIsInvalid(t *testing.T) {
	t.Parallel()

	svc, _, _, user := newOTPFixture(t)

	if err := svc.Redeem(user, models.PurposeReset, "123456"); err != ErrCodeInvalid {
		t.Fatalf("expected ErrCodeInvalid with no pending code, got %v", err)
	}
}

func TestOTP_PurposesAreIndependent(t *testing.T) {
	t.Parallel()

	svc, repo, _, user := newOTPFixture(t)

	verifyCode, err := svc.Issue(user, models.PurposeVerify)
	if err != nil {
		t.Fatalf("Issue verify error: %v", err)
	}
	if _, err := svc.Issue(user, models.PurposeReset); err != nil {
		t.Fatalf("Issue reset error: %v", err)
	}

	// a verify code never redeems the reset purpose
	fresh, _ := repo.GetByID(user.ID)
	if fresh.ResetOTP == verifyCode {
		t.Skip("random collision between purposes")
	}
	if err := svc.Redeem(fresh, models.PurposeReset, verifyCode); err != ErrCodeInvalid {
		t.Fatalf("cross-purpose redeem should be ErrCodeInvalid, got %v", err)
	}

	// redeeming reset leaves the verify code pending
	if err := svc.Redeem(fresh, models.PurposeReset, fresh.ResetOTP); err != nil {
		t.Fatalf("Redeem reset error: %v", err)
	}
	after, _ := repo.GetByID(user.ID)
	if after.VerifyOTP != verifyCode {
		t.Fatalf("verify code disturbed by reset redeem: %q", after.VerifyOTP)
	}
}
