package domain

// EnquiryTypes are the categories offered on the contact form
var EnquiryTypes = []string{"Mutual Fund", "Debt", "Gold", "Others"}

// Enquiry is a contact form submission. The message travels as "query" on the wire.
type Enquiry struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	EnquiryType string `json:"enquiryType"`
	Message     string `json:"query"`
}
