package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is the fallback body.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeEmail builds the plaintext welcome mail sent after signup.
func WelcomeEmail(to, name string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to Second Brain",
		Text: "Hi " + name + ",\n\n" +
			"Your Second Brain account is ready. Create a brain, save your first " +
			"tweet, link, or note, and tag it so you can find it again.\n\n" +
			"The Second Brain team",
	}
}
