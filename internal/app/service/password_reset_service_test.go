package service

import (
	"strings"
	"testing"
	"time"

	"github.com/paragonmaik/accounts-api/internal/app/repository"
	"github.com/paragonmaik/accounts-api/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFrontendURL = "http://localhost:3000"

type stubMailer struct {
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *stubMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// resetLinkParts pulls uid and token out of the link embedded in the last
// sent email.
func (m *stubMailer) resetLinkParts(t *testing.T) (uid, token string) {
	t.Helper()
	require.NotEmpty(t, m.sent)

	body := m.sent[len(m.sent)-1].body
	start := strings.Index(body, testFrontendURL+"/reset-password/")
	require.GreaterOrEqual(t, start, 0)

	link := body[start+len(testFrontendURL+"/reset-password/"):]
	if end := strings.IndexAny(link, "\"\n <"); end >= 0 {
		link = link[:end]
	}

	parts := strings.SplitN(link, "/", 2)
	require.Len(t, parts, 2)
	return parts[0], parts[1]
}

func setupPasswordResetTest(t *testing.T) (PasswordResetService, AccountService, *stubMailer) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	accountRepo := repository.NewAccountRepository(testDB)
	accountService := NewAccountService(
		accountRepo,
		"test-jwt-secret",
		15*time.Minute,
		7*24*time.Hour,
	)

	mail := &stubMailer{}
	resetService := NewPasswordResetService(
		accountRepo,
		mail,
		"test-reset-secret",
		time.Hour,
		testFrontendURL,
	)

	return resetService, accountService, mail
}

func TestPasswordResetService_RequestReset(t *testing.T) {
	resetService, accountService, mail := setupPasswordResetTest(t)

	_, _, err := accountService.Register("e@x.com", "Teste123**", "Teste123**", "Teste", true, false)
	require.NoError(t, err)

	t.Run("Unknown email sends nothing and succeeds", func(t *testing.T) {
		require.NoError(t, resetService.RequestReset("nobody@example.com"))
		assert.Empty(t, mail.sent)
	})

	t.Run("Known email sends exactly one reset email", func(t *testing.T) {
		require.NoError(t, resetService.RequestReset("e@x.com"))
		require.Len(t, mail.sent, 1)
		assert.Equal(t, "e@x.com", mail.sent[0].to)
		assert.Contains(t, mail.sent[0].body, testFrontendURL+"/reset-password/")
	})
}

func TestPasswordResetService_ResetPassword(t *testing.T) {
	resetService, accountService, mail := setupPasswordResetTest(t)

	email := "e@x.com"
	oldPassword := "Teste123**"
	_, _, err := accountService.Register(email, oldPassword, oldPassword, "Teste", true, false)
	require.NoError(t, err)

	require.NoError(t, resetService.RequestReset(email))
	uid, token := mail.resetLinkParts(t)

	t.Run("Mismatched confirmation", func(t *testing.T) {
		err := resetService.ResetPassword(uid, token, "NewPass456**", "Other456**")
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("Missing uid or token", func(t *testing.T) {
		err := resetService.ResetPassword("", token, "NewPass456**", "NewPass456**")
		assert.ErrorIs(t, err, ErrInvalidResetToken)

		err = resetService.ResetPassword(uid, "", "NewPass456**", "NewPass456**")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("Tampered token", func(t *testing.T) {
		err := resetService.ResetPassword(uid, token+"x", "NewPass456**", "NewPass456**")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("Malformed uid", func(t *testing.T) {
		err := resetService.ResetPassword("%%%", token, "NewPass456**", "NewPass456**")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("Valid token resets the password once", func(t *testing.T) {
		newPassword := "NewPass456**"
		require.NoError(t, resetService.ResetPassword(uid, token, newPassword, newPassword))

		_, _, err := accountService.Login(email, oldPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = accountService.Login(email, newPassword)
		assert.NoError(t, err)

		// The same token is now bound to a stale password hash and is
		// rejected on reuse
		err = resetService.ResetPassword(uid, token, "Another789**", "Another789**")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})
}

func TestPasswordResetService_PasswordChangeInvalidatesToken(t *testing.T) {
	resetService, accountService, mail := setupPasswordResetTest(t)

	email := "e@x.com"
	password := "Teste123**"
	account, _, err := accountService.Register(email, password, password, "Teste", true, false)
	require.NoError(t, err)

	require.NoError(t, resetService.RequestReset(email))
	uid, token := mail.resetLinkParts(t)

	// Changing the password through the normal flow invalidates the
	// outstanding reset token
	require.NoError(t, accountService.ChangePassword(account.ID, "Changed123**", "Changed123**"))

	err = resetService.ResetPassword(uid, token, "NewPass456**", "NewPass456**")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}
