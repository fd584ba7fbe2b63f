package quotes

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate re-runs the full submission rule set at the trust boundary and
// returns a field-keyed error map; an empty map means the request is valid.
// The same rules gate the client before any network call is made.
func Validate(req QuoteRequest) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(req.FullName) == "" {
		errs["fullName"] = "full name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "email is required"
	} else if !emailRe.MatchString(strings.TrimSpace(req.Email)) {
		errs["email"] = "email must be a valid address"
	}
	if strings.TrimSpace(req.Phone) == "" {
		errs["phone"] = "phone is required"
	}

	switch req.QuoteType {
	case QuoteTypeProducts:
		if len(req.Products) == 0 {
			errs["products"] = "quote cart is empty"
		}
	case QuoteTypeServices:
		if !req.Services.Any() {
			errs["services"] = "select at least one service type"
		}
		if strings.TrimSpace(req.ServiceDescription) == "" {
			errs["serviceDescription"] = "service description is required"
		}
	default:
		errs["quoteType"] = "quote type must be products or services"
	}

	return errs
}
