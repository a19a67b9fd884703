// Package policy decides what an identity's role may do. The predicates are
// pure: they look at the role only and hold no state.
package policy

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopadmin/internal/client/models"
)

// ErrDenied is returned when the role policy refuses an action locally.
var ErrDenied = errors.New("action not permitted for role")

type Resource string

const (
	Products   Resource = "products"
	Categories Resource = "categories"
	Partners   Resource = "partners"
	Quotations Resource = "quotations"
	Contacts   Resource = "contacts"
)

// Resources lists every resource in menu order.
var Resources = []Resource{Products, Categories, Partners, Quotations, Contacts}

type Action string

const (
	Read   Action = "read"
	Create Action = "create"
	Update Action = "update"
	Delete Action = "delete"
	// UpdateQuantity is an update touching the product quantity only.
	UpdateQuantity Action = "update-quantity"
	// Verify marks a partner verified.
	Verify Action = "verify"
)

// Allow reports whether role may perform action on resource. Unknown roles
// are denied everything.
func Allow(role models.Role, resource Resource, action Action) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleStoreClerk:
		return resource == Products && (action == Read || action == UpdateQuantity)
	default:
		return false
	}
}

// Visible reports whether the screens of resource are shown to role.
func Visible(role models.Role, resource Resource) bool {
	return Allow(role, resource, Read)
}

// Check is Allow returning ErrDenied on refusal.
func Check(role models.Role, resource Resource, action Action) error {
	if Allow(role, resource, action) {
		return nil
	}
	return fmt.Errorf("%w: %s may not %s %s", ErrDenied, roleName(role), action, resource)
}

// CheckProductPatch applies the product update rule: a patch touching
// exactly the quantity field needs UpdateQuantity, anything else needs Update.
func CheckProductPatch(role models.Role, fields []string) error {
	if len(fields) == 1 && fields[0] == models.FieldQuantity {
		return Check(role, Products, UpdateQuantity)
	}
	return Check(role, Products, Update)
}

func roleName(role models.Role) string {
	if role == "" {
		return "anonymous"
	}
	return string(role)
}
