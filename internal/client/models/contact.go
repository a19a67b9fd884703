package models

// ContactSubmission is a message left through the public contact form.
type ContactSubmission struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Company     string    `json:"company,omitempty"`
	Message     string    `json:"comment"`
	SubmittedAt Timestamp `json:"submissionDate"`
}
