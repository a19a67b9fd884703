package services

import (
	"errors"

	"github.com/dmitrijs2005/shopadmin/internal/client/policy"
	"github.com/dmitrijs2005/shopadmin/internal/common"
)

var (
	// ErrAlreadyVerified is returned when verifying a verified partner.
	ErrAlreadyVerified = errors.New("partner is already verified")

	// ErrNoDocument is returned for quotations without a generated PDF.
	ErrNoDocument = errors.New("quotation has no document")
)

// isSkip reports errors that mean "nothing to fetch" rather than a failure.
func isSkip(err error) bool {
	return errors.Is(err, common.ErrNotAuthenticated) || errors.Is(err, policy.ErrDenied)
}
