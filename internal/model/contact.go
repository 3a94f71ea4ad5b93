package model

// ContactRequest is the raw JSON body of a contact form submission, before
// validation. Field values arrive as the client sent them.
type ContactRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	EnquiryType      string `json:"enquiryType"`
	Company          string `json:"company,omitempty"`
	Message          string `json:"message"`
	MeetingScheduled bool   `json:"meetingScheduled"`
	MeetingDateTime  string `json:"meetingDateTime,omitempty"`
	CalendlyEventID  string `json:"calendlyEventId,omitempty"`
}

// ContactSubmission is a validated, normalized contact submission: fields are
// trimmed, the email is lower-cased and Company is empty when not provided.
// Submissions are not persisted; they live for the duration of one request.
type ContactSubmission struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	EnquiryType      string `json:"enquiryType"`
	Company          string `json:"company,omitempty"`
	Message          string `json:"message"`
	MeetingScheduled bool   `json:"meetingScheduled"`
	MeetingDateTime  string `json:"meetingDateTime,omitempty"`
	CalendlyEventID  string `json:"calendlyEventId,omitempty"`
}
