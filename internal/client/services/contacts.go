package services

import (
	"github.com/dmitrijs2005/shopadmin/internal/client/client"
	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/client/policy"
	"github.com/dmitrijs2005/shopadmin/internal/logging"
)

// ContactService lists contact form submissions. Submissions have no id on
// the wire; they are keyed by email.
type ContactService struct {
	*snapshot[models.ContactSubmission]
}

func NewContactService(c client.Client, session Session, log logging.Logger) *ContactService {
	return &ContactService{
		snapshot: newSnapshot(policy.Contacts, session, log, c.ListContacts,
			func(s models.ContactSubmission) models.ID { return models.ID(s.Email) }),
	}
}
