package contact

import "github.com/northlight/website/pkg/validator"

const (
	nameMinLen           = 2
	nameMaxLen           = 100
	emailMaxLen          = 254
	phoneMaxLen          = 30
	companyMaxLen        = 100
	marketingSpendMaxLen = 50
	hearAboutUsMaxLen    = 100
	messageMinLen        = 10
	messageMaxLen        = 5000
)

// Form is a contact-form submission as posted by the website. Website is a
// honeypot: it is hidden from people and must arrive empty.
type Form struct {
	Name           string `json:"name" form:"name"`
	Email          string `json:"email" form:"email"`
	Phone          string `json:"phone" form:"phone"`
	Company        string `json:"company" form:"company"`
	MarketingSpend string `json:"marketingSpend" form:"marketingSpend"`
	Message        string `json:"message" form:"message"`
	HearAboutUs    string `json:"hearAboutUs" form:"hearAboutUs"`
	Website        string `json:"website" form:"website"`
}

// IsSpam reports whether the honeypot field was filled in.
func (f Form) IsSpam() bool {
	return f.Website != ""
}

// FieldError reports a single invalid field back to the caller.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message" form:"message"`
}

// Validate checks field presence and lengths. Lengths count characters.
// Optional fields are only checked when filled in.
func (f Form) Validate() []FieldError {
	err := validator.Apply(
		validator.Required("name", f.Name),
		validator.MinLen("name", f.Name, nameMinLen),
		validator.MaxLen("name", f.Name, nameMaxLen),

		validator.Required("email", f.Email),
		validator.MaxLen("email", f.Email, emailMaxLen),
		validator.ValidEmail("email", f.Email),

		validator.MaxLen("phone", f.Phone, phoneMaxLen).When(f.Phone != ""),
		validator.MaxLen("company", f.Company, companyMaxLen).When(f.Company != ""),
		validator.MaxLen("marketingSpend", f.MarketingSpend, marketingSpendMaxLen).When(f.MarketingSpend != ""),
		validator.MaxLen("hearAboutUs", f.HearAboutUs, hearAboutUsMaxLen).When(f.HearAboutUs != ""),

		validator.Required("message", f.Message),
		validator.MinLen("message", f.Message, messageMinLen),
		validator.MaxLen("message", f.Message, messageMaxLen),

		validator.Empty("website", f.Website),
	)
	verrs := validator.ExtractValidationErrors(err)
	if len(verrs) == 0 {
		return nil
	}

	out := make([]FieldError, 0, len(verrs))
	for _, v := range verrs {
		out = append(out, FieldError{Field: v.Field, Message: v.Message})
	}
	return out
}
