package permissions

import (
	"github.com/aquatrack/pool-service-api/internal/models"
)

// Resource is a protected resource type.
type Resource string

const (
	ResourceWorkOrders    Resource = "work_orders"
	ResourceCustomers     Resource = "customers"
	ResourceInventory     Resource = "inventory"
	ResourceInvoices      Resource = "invoices"
	ResourceUsers         Resource = "users"
	ResourceOrganizations Resource = "organizations"
	ResourceReports       Resource = "reports"
)

// Action is an operation performed on a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var crud = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

// capabilities is the static role -> resource -> actions table. system_admin
// is intentionally absent: it short-circuits in HasPermission. Roles missing
// a resource entry are denied.
var capabilities = map[models.Role]map[Resource][]Action{
	models.RoleOrgAdmin: {
		ResourceWorkOrders:    crud,
		ResourceCustomers:     crud,
		ResourceInventory:     crud,
		ResourceInvoices:      crud,
		ResourceUsers:         crud,
		ResourceOrganizations: {ActionRead, ActionUpdate},
		ResourceReports:       {ActionRead},
	},
	models.RoleAdmin: {
		ResourceWorkOrders:    crud,
		ResourceCustomers:     crud,
		ResourceInventory:     crud,
		ResourceInvoices:      crud,
		ResourceUsers:         {ActionCreate, ActionRead, ActionUpdate},
		ResourceOrganizations: {ActionRead},
		ResourceReports:       {ActionRead},
	},
	models.RoleManager: {
		ResourceWorkOrders:    crud,
		ResourceCustomers:     crud,
		ResourceInventory:     {ActionCreate, ActionRead, ActionUpdate},
		ResourceInvoices:      {ActionCreate, ActionRead, ActionUpdate},
		ResourceUsers:         {ActionRead},
		ResourceOrganizations: {ActionRead},
		ResourceReports:       {ActionRead},
	},
	models.RoleTechnician: {
		ResourceWorkOrders:    {ActionRead, ActionUpdate},
		ResourceCustomers:     {ActionRead},
		ResourceInventory:     {ActionRead, ActionUpdate},
		ResourceOrganizations: {ActionRead},
	},
	models.RoleOfficeStaff: {
		ResourceWorkOrders:    {ActionCreate, ActionRead, ActionUpdate},
		ResourceCustomers:     crud,
		ResourceInvoices:      crud,
		ResourceOrganizations: {ActionRead},
		ResourceReports:       {ActionRead},
	},
	models.RoleClient: {
		ResourceWorkOrders:    {ActionRead},
		ResourceInvoices:      {ActionRead},
		ResourceOrganizations: {ActionRead},
	},
	models.RoleVendor: {
		ResourceInventory:     {ActionRead},
		ResourceOrganizations: {ActionRead},
	},
}

// HasPermission answers whether the role may perform the action on the
// resource. system_admin is always allowed; unknown roles are always denied.
func HasPermission(role models.Role, resource Resource, action Action) bool {
	if role == models.RoleSystemAdmin {
		return true
	}

	actions, ok := capabilities[role][resource]
	if !ok {
		return false
	}
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// Evaluate checks the user's role against the capability table. A nil user
// or a role outside the enumeration evaluates to false.
func Evaluate(user *models.User, resource Resource, action Action) bool {
	if user == nil || !user.Role.Valid() {
		return false
	}
	return HasPermission(user.Role, resource, action)
}

// CheckOrganizationAccess reports whether the user may act on data belonging
// to the given organization. Only system_admin crosses tenant boundaries.
func CheckOrganizationAccess(user *models.User, organizationID uint64) bool {
	if user == nil {
		return false
	}
	if user.Role == models.RoleSystemAdmin {
		return true
	}
	return user.OrganizationID == organizationID
}
