package order

// Candidate is a normalized order payload awaiting admission. It is the shape
// the normalization collaborator produces from raw intake data and the input
// the Validator and Fingerprinter operate on. A Candidate carries no identity:
// an order id exists only after successful admission.
type Candidate struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Street        string
	City          string
	State         string
	Zip           string
	Country       string
	Items         []CandidateItem
	PaymentMethod string
	Total         float64
}

// CandidateItem is one unvalidated order line within a Candidate.
type CandidateItem struct {
	SKU       string
	Name      string
	Quantity  int
	UnitPrice float64
}
