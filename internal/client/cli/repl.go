package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/shopadmin/internal/client/client"
	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/client/policy"
	"github.com/dmitrijs2005/shopadmin/internal/client/services"
	"github.com/dmitrijs2005/shopadmin/internal/client/validation"
	"github.com/dmitrijs2005/shopadmin/internal/common"
)

// errUsage makes the REPL print the command's usage line.
var errUsage = errors.New("bad arguments")

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a recording stub.
type execIface interface {
	isLoggedIn() bool
	role() models.Role

	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error
	Refresh(ctx context.Context, args []string) error
	Forget(ctx context.Context, args []string) error

	ListProducts(ctx context.Context, args []string) error
	SearchProducts(ctx context.Context, args []string) error
	ShowProduct(ctx context.Context, args []string) error
	AddProduct(ctx context.Context, args []string) error
	EditProduct(ctx context.Context, args []string) error
	SetQuantity(ctx context.Context, args []string) error
	ToggleStatus(ctx context.Context, args []string) error
	DeleteProduct(ctx context.Context, args []string) error

	ListCategories(ctx context.Context, args []string) error
	AddCategory(ctx context.Context, args []string) error

	ListPartners(ctx context.Context, args []string) error
	SearchPartners(ctx context.Context, args []string) error
	ShowPartner(ctx context.Context, args []string) error
	AddPartner(ctx context.Context, args []string) error
	EditPartner(ctx context.Context, args []string) error
	SetPartnerType(ctx context.Context, args []string) error
	VerifyPartner(ctx context.Context, args []string) error
	DeletePartner(ctx context.Context, args []string) error

	ListQuotations(ctx context.Context, args []string) error
	ShowQuotation(ctx context.Context, args []string) error
	DownloadQuotation(ctx context.Context, args []string) error

	ListContacts(ctx context.Context, args []string) error
}

type command struct {
	name  string
	usage string
	help  string
	// anonymous commands are offered only while logged out.
	anonymous bool
	// always commands are offered in every session state.
	always bool
	// resource and action gate the command by role; an empty resource
	// only requires a session.
	resource policy.Resource
	action   policy.Action
	run      func(e execIface, ctx context.Context, args []string) error
}

var commands = []command{
	{name: "login", usage: "login", help: "sign in", anonymous: true, run: execIface.Login},
	{name: "logout", usage: "logout", help: "sign out", run: execIface.Logout},
	{name: "whoami", usage: "whoami", help: "show the signed-in user", run: execIface.Whoami},
	{name: "refresh", usage: "refresh", help: "reload every screen from the server", run: execIface.Refresh},
	{name: "forget", usage: "forget", help: "log out and wipe the session kept on this machine",
		always: true, run: execIface.Forget},

	{name: "products", usage: "products [page]", help: "list products",
		resource: policy.Products, action: policy.Read, run: execIface.ListProducts},
	{name: "product-search", usage: "product-search [text]", help: "filter products by name or description",
		resource: policy.Products, action: policy.Read, run: execIface.SearchProducts},
	{name: "product", usage: "product <id>", help: "show product details",
		resource: policy.Products, action: policy.Read, run: execIface.ShowProduct},
	{name: "product-add", usage: "product-add", help: "create a product",
		resource: policy.Products, action: policy.Create, run: execIface.AddProduct},
	{name: "product-edit", usage: "product-edit <id>", help: "edit a product",
		resource: policy.Products, action: policy.Update, run: execIface.EditProduct},
	{name: "qty", usage: "qty <id> <quantity>", help: "set the stock quantity",
		resource: policy.Products, action: policy.UpdateQuantity, run: execIface.SetQuantity},
	{name: "product-status", usage: "product-status <id>", help: "toggle active/inactive",
		resource: policy.Products, action: policy.Update, run: execIface.ToggleStatus},
	{name: "product-delete", usage: "product-delete <id>", help: "delete a product",
		resource: policy.Products, action: policy.Delete, run: execIface.DeleteProduct},

	{name: "categories", usage: "categories", help: "list categories with product counts",
		resource: policy.Categories, action: policy.Read, run: execIface.ListCategories},
	{name: "category-add", usage: "category-add <name>", help: "create a category",
		resource: policy.Categories, action: policy.Create, run: execIface.AddCategory},

	{name: "partners", usage: "partners [page]", help: "list partners",
		resource: policy.Partners, action: policy.Read, run: execIface.ListPartners},
	{name: "partner-search", usage: "partner-search [text]", help: "filter partners",
		resource: policy.Partners, action: policy.Read, run: execIface.SearchPartners},
	{name: "partner", usage: "partner <id>", help: "show partner details",
		resource: policy.Partners, action: policy.Read, run: execIface.ShowPartner},
	{name: "partner-add", usage: "partner-add", help: "register a partner",
		resource: policy.Partners, action: policy.Create, run: execIface.AddPartner},
	{name: "partner-edit", usage: "partner-edit <id>", help: "edit a partner",
		resource: policy.Partners, action: policy.Update, run: execIface.EditPartner},
	{name: "partner-type", usage: "partner-type <id> <normal|special>", help: "change the partner type",
		resource: policy.Partners, action: policy.Update, run: execIface.SetPartnerType},
	{name: "partner-verify", usage: "partner-verify <id>", help: "mark a partner verified",
		resource: policy.Partners, action: policy.Verify, run: execIface.VerifyPartner},
	{name: "partner-delete", usage: "partner-delete <id>", help: "delete a partner",
		resource: policy.Partners, action: policy.Delete, run: execIface.DeletePartner},

	{name: "quotations", usage: "quotations", help: "list quotations",
		resource: policy.Quotations, action: policy.Read, run: execIface.ListQuotations},
	{name: "quotation", usage: "quotation <id>", help: "show quotation items",
		resource: policy.Quotations, action: policy.Read, run: execIface.ShowQuotation},
	{name: "quotation-pdf", usage: "quotation-pdf <id> <file>", help: "save the quotation PDF",
		resource: policy.Quotations, action: policy.Read, run: execIface.DownloadQuotation},

	{name: "contacts", usage: "contacts", help: "list contact form submissions",
		resource: policy.Contacts, action: policy.Read, run: execIface.ListContacts},
}

// available reports whether c is offered in the current session state.
func (c command) available(loggedIn bool, role models.Role) bool {
	if c.always {
		return true
	}
	if c.anonymous {
		return !loggedIn
	}
	if !loggedIn {
		return false
	}
	return c.resource == "" || policy.Allow(role, c.resource, c.action)
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// runREPL reads commands from reader until EOF or "exit"/"quit".
//
// The first token of a line selects the command; the rest are its arguments.
// Commands the current role may not use are neither listed by "help" nor
// executed. Handler errors are reported to out and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "shopadmin (%s)> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printHelp(out, a.isLoggedIn(), a.role())
			continue
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		}

		c, ok := lookup(name)
		if !ok {
			fmt.Fprintln(out, "Unknown command:", name)
			continue
		}
		if !c.available(a.isLoggedIn(), a.role()) {
			if !a.isLoggedIn() {
				fmt.Fprintln(out, "Please log in first")
			} else {
				fmt.Fprintln(out, "Not available for your role")
			}
			continue
		}

		if err := c.run(a, ctx, args); err != nil {
			if errors.Is(err, errUsage) {
				fmt.Fprintln(out, "Usage:", c.usage)
				continue
			}
			report(out, err)
		}
	}
}

func printHelp(out io.Writer, loggedIn bool, role models.Role) {
	fmt.Fprintln(out, "Available commands:")
	for _, c := range commands {
		if c.available(loggedIn, role) {
			fmt.Fprintf(out, "  %-36s %s\n", c.usage, c.help)
		}
	}
	fmt.Fprintf(out, "  %-36s %s\n", "exit", "leave the program")
}

// report renders a handler error for the user.
func report(out io.Writer, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		fmt.Fprintln(out, "Please fix the following:")
		for _, f := range verr.Fields {
			fmt.Fprintln(out, "  -", f.Message)
		}
	case errors.Is(err, common.ErrNotAuthenticated), errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(out, "Your session has ended, please log in again")
	case errors.Is(err, policy.ErrDenied), errors.Is(err, client.ErrForbidden):
		fmt.Fprintln(out, "Not permitted:", err)
	case errors.Is(err, common.ErrNotFound), errors.Is(err, client.ErrNotFound):
		fmt.Fprintln(out, "Not found:", err)
	case errors.Is(err, services.ErrAlreadyVerified), errors.Is(err, services.ErrNoDocument):
		fmt.Fprintln(out, err)
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(out, "Server unavailable, try again later")
	default:
		fmt.Fprintln(out, "Error:", err)
	}
}
