package auth

import (
	"fmt"
	"time"

	"github.com/go-users-api/internal/domain"
)

const emailStyle = `
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; text-align: center; }
    h1 { color: #2c3e50; }
    .info { background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px auto; max-width: 400px; text-align: left; }
    .code { font-size: 32px; font-weight: bold; letter-spacing: 5px; color: #3498db; display: block; margin: 30px 0; }
    .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; }`

// verificationEmail builds the account-verification message sent on signup
// and on signup resends. The code is already display-formatted (XXX-XXX).
func verificationEmail(u *domain.User, formattedCode string) (subject, body string) {
	subject = "Account verification - Digital Repository"
	body = emailBody(
		"Account verification",
		"To complete your registration, use the following verification code:",
		"Enter this code on the verification page to activate your account.",
		u, formattedCode,
	)
	return subject, body
}

// signInEmail builds the sign-in confirmation message.
func signInEmail(u *domain.User, formattedCode string) (subject, body string) {
	subject = "Confirm sign-in - Digital Repository"
	body = emailBody(
		"Confirm sign-in",
		"A sign-in attempt was detected on your account. To confirm it was you, use the following code:",
		"Enter this code on the sign-in page to complete the process.",
		u, formattedCode,
	)
	return subject, body
}

func emailBody(title, intro, outro string, u *domain.User, formattedCode string) string {
	boleta := ""
	if u.Boleta != nil {
		boleta = *u.Boleta
	}
	return fmt.Sprintf(`
    <html>
    <head><style>%s</style></head>
    <body>
        <div class='container'>
            <h1>%s</h1>
            <p>Hello <strong>%s %s</strong>,</p>
            <p>%s</p>
            <div class='info'>
                <p><strong>Email:</strong> %s</p>
                <p><strong>Boleta:</strong> %s</p>
            </div>
            <span class='code'>%s</span>
            <p>%s</p>
            <p>This code expires in 1 hour.</p>
            <div class='footer'>
                <p>This is an automated message, please do not reply.</p>
                <p>&copy; Digital Repository %d</p>
            </div>
        </div>
    </body>
    </html>`,
		emailStyle, title, u.FirstName, u.LastName, intro,
		u.Email, boleta, formattedCode, outro, time.Now().UTC().Year())
}
