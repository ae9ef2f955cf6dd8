package dto

// SubmitRequest is a public form submission
type SubmitRequest struct {
	FormID uint
	// Values holds every posted value by field name; multi-valued inputs are comma joined
	Values map[string]string
	// Files holds the client file names of uploaded parts by field name
	Files    map[string][]string
	Redirect string
}

// SubmitResult is the outcome of an accepted submission
type SubmitResult struct {
	MessageID uint
	// Redirect is the verified redirect target, empty when none was posted or it did not verify
	Redirect string
	Spam     bool
}
