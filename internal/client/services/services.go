package services

import (
	"database/sql"

	"github.com/dmitrijs2005/shopadmin/internal/client/client"
	"github.com/dmitrijs2005/shopadmin/internal/logging"
)

// Services is the set of client services built once at startup and passed
// to every screen.
type Services struct {
	Session    *SessionStore
	Products   *ProductService
	Categories *CategoryService
	Partners   *PartnerService
	Quotations *QuotationService
	Contacts   *ContactService
}

// New wires the session store and subscribes every resource context to it.
func New(c client.Client, db *sql.DB, log logging.Logger) *Services {
	session := NewSessionStore(c, db, log)
	s := &Services{
		Session:    session,
		Products:   NewProductService(c, session, log),
		Categories: NewCategoryService(c, session, log),
		Partners:   NewPartnerService(c, session, log),
		Quotations: NewQuotationService(c, session, log),
		Contacts:   NewContactService(c, session, log),
	}
	session.Subscribe(s.Products)
	session.Subscribe(s.Categories)
	session.Subscribe(s.Partners)
	session.Subscribe(s.Quotations)
	session.Subscribe(s.Contacts)
	return s
}
