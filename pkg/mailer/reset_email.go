package mailer

import "fmt"

const resetEmailSubject = "Reset your password"

// ResetLink builds the password-reset URL embedded in the email.
func ResetLink(frontendURL, uid, token string) string {
	return fmt.Sprintf("%s/reset-password/%s/%s", frontendURL, uid, token)
}

// ComposeResetEmail renders the reset email for the given link.
func ComposeResetEmail(resetLink string) (subject, htmlBody string) {
	body := fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
	<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 40px; border-radius: 10px;">
		<h1 style="color: #333; margin-bottom: 20px;">Password reset</h1>
		<p style="color: #666; line-height: 1.6; margin-bottom: 30px;">
			A password reset was requested for your account.<br>
			Click the button below to choose a new password.
		</p>
		<div style="text-align: center; margin-bottom: 30px;">
			<a href="%s" style="display: inline-block; background-color: #4a7dff; color: white; padding: 15px 40px; text-decoration: none; border-radius: 8px; font-weight: bold; font-size: 16px;">
				Reset password
			</a>
		</div>
		<p style="color: #999; font-size: 14px; margin-bottom: 10px;">
			* This link expires after a short time.
		</p>
		<p style="color: #999; font-size: 14px; margin-bottom: 10px;">
			* If the button does not work, copy this link into your browser:
		</p>
		<p style="color: #666; font-size: 12px; word-break: break-all; background-color: #f8f9fa; padding: 10px; border-radius: 4px;">
			%s
		</p>
		<p style="color: #999; font-size: 14px; margin-top: 30px;">
			* If you did not request this, you can safely ignore this email.
		</p>
	</div>
</body>
</html>
`, resetLink, resetLink)

	return resetEmailSubject, body
}
