package quotes

// QuoteType discriminates the payload shape of a quote request.
type QuoteType string

const (
	QuoteTypeProducts QuoteType = "products"
	QuoteTypeServices QuoteType = "services"
)

// ProductItem mirrors one cart line at submission time.
type ProductItem struct {
	Name        string
	OEMSku      string
	Quantity    int
	Description string
}

// ServiceSelection carries the service-type flags of a services quote.
type ServiceSelection struct {
	Repair             bool
	Consulting         bool
	ReverseEngineering bool
	Rebuild            bool
}

// Any reports whether at least one service type is selected.
func (s ServiceSelection) Any() bool {
	return s.Repair || s.Consulting || s.ReverseEngineering || s.Rebuild
}

// QuoteRequest is the fully assembled submission payload. Exactly one of
// Products / (Services + ServiceDescription) is populated, matching QuoteType.
type QuoteRequest struct {
	FullName           string
	Company            string
	Email              string
	Phone              string
	CountryCode        string
	Country            string
	QuoteType          QuoteType
	Products           []ProductItem
	Services           ServiceSelection
	ServiceDescription string
	AttachmentURLs     []string
}

// RequestMeta is derived from the inbound HTTP request for the audit trail.
type RequestMeta struct {
	ClientIP    string
	UserAgent   string
	SubmittedAt string
}

// Result is returned on full pipeline success.
type Result struct {
	MessageID string
}
