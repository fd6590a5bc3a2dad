package mail

import (
	"fmt"

	"github.com/coderun/account-service/internal/core/ports"
)

// ConfirmationMessage builds the signup confirmation email. The link embeds
// the raw address and account id; clicking it hits the redirect endpoint.
func ConfirmationMessage(baseURL, email string, userID int64) ports.Message {
	link := fmt.Sprintf("%s/api/emailconfirm/redirect/%s/%d", baseURL, email, userID)
	html := fmt.Sprintf(`
    <h1>Hello, this is CODE:RUN.</h1>
    <h3>Press the button below to finish signing up.</h3>
    <a href="%s"> Confirm e-mail </a>
    `, link)

	return ports.Message{
		Kind:    "confirmation",
		To:      email,
		Subject: "CODE:RUN e-mail verification",
		HTML:    html,
	}
}

// TempPasswordMessage builds the password-reset email. It carries the
// plaintext temporary password; the stored credential only ever sees its
// SHA-256 digest.
func TempPasswordMessage(email, tempPassword string) ports.Message {
	html := fmt.Sprintf(`
    <h1>Hello, this is CODE:RUN.</h1>
    <h3>Your temporary password is %s.</h3>
    `, tempPassword)

	return ports.Message{
		Kind:    "temp_password",
		To:      email,
		Subject: "CODE:RUN temporary password",
		HTML:    html,
	}
}
