package contact

const (
	MessageSuccess     = "Thank you for your message! We'll be in touch soon."
	MessageRejected    = "Unable to submit your message. Please try again."
	MessageInvalid     = "Please check your form inputs and try again."
	MessageRateLimited = "Too many submissions. Please try again later."
	MessageError       = "Something went wrong. Please try again or email us directly."
)

// Outcome classifies how a submission ended.
type Outcome string

const (
	OutcomeAccepted    Outcome = "accepted"
	OutcomeRejected    Outcome = "rejected"
	OutcomeInvalid     Outcome = "invalid"
	OutcomeRateLimited Outcome = "rate_limited"
	OutcomeError       Outcome = "error"
)

// Response is returned to the website for every submission.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`

	Outcome Outcome `json:"-"`
}

func accepted() Response {
	return Response{Success: true, Message: MessageSuccess, Outcome: OutcomeAccepted}
}

func rejected() Response {
	return Response{Message: MessageRejected, Outcome: OutcomeRejected}
}

func invalid(errs []FieldError) Response {
	return Response{Message: MessageInvalid, Errors: errs, Outcome: OutcomeInvalid}
}

func rateLimited() Response {
	return Response{Message: MessageRateLimited, Outcome: OutcomeRateLimited}
}

func failed() Response {
	return Response{Message: MessageError, Outcome: OutcomeError}
}
