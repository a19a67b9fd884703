package models

// RequesterKind tells who asked for a quotation.
type RequesterKind string

const (
	RequesterCustomer       RequesterKind = "customer"
	RequesterNormalPartner  RequesterKind = "normal"
	RequesterSpecialPartner RequesterKind = "special"
)

// QuotationItem snapshots the product title and price at quoting time.
type QuotationItem struct {
	ProductID ID     `json:"productId"`
	Title     string `json:"title"`
	Model     string `json:"model,omitempty"`
	Quantity  Count  `json:"quantity"`
	Price     Amount `json:"price"`
}

func (i QuotationItem) Total() float64 {
	return float64(i.Quantity) * float64(i.Price)
}

type QuotationParty struct {
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
}

// Quotation is produced by the public quoting flow and is read-only here.
type Quotation struct {
	ID            ID              `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	RequesterKind RequesterKind   `json:"userType"`
	Company       string          `json:"company,omitempty"`
	Partner       *QuotationParty `json:"partner,omitempty"`
	Customer      *QuotationParty `json:"customer,omitempty"`
	Items         []QuotationItem `json:"items"`
	DocumentPath  string          `json:"quotationPdfPath,omitempty"`
}

// CompanyName prefers the top-level company and falls back to the partner's.
func (q Quotation) CompanyName() string {
	if q.Company != "" {
		return q.Company
	}
	if q.Partner != nil {
		return q.Partner.Company
	}
	return ""
}

// Address of the requester, whichever side carries it.
func (q Quotation) Address() string {
	if q.Partner != nil && q.Partner.Address != "" {
		return q.Partner.Address
	}
	if q.Customer != nil {
		return q.Customer.Address
	}
	return ""
}

func (q Quotation) Total() float64 {
	var sum float64
	for _, it := range q.Items {
		sum += it.Total()
	}
	return sum
}

func (q Quotation) HasDocument() bool {
	return q.DocumentPath != ""
}
