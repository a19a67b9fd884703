package cli

import (
	"context"
	"strings"
)

func (a *App) ListContacts(_ context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	tw := newTable(a.out, "DATE", "NAME", "EMAIL", "PHONE", "COMPANY", "MESSAGE")
	for _, c := range a.svc.Contacts.All() {
		date := ""
		if !c.SubmittedAt.IsZero() {
			date = c.SubmittedAt.Format("2006-01-02")
		}
		name := strings.TrimSpace(c.FirstName + " " + c.LastName)
		row(tw, date, name, c.Email, c.Phone, c.Company, truncate(c.Message, 40))
	}
	return tw.Flush()
}
