// Package rbac holds the declarative permission table and the gate that
// enforces it, both as a service-level check and as chi middleware.
package rbac

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/transport"
)

type Operation string

const (
	UserRegister Operation = "user.register"
	UserList     Operation = "user.list"
	UserRead     Operation = "user.read"

	DepartmentCreate Operation = "department.create"
	DepartmentUpdate Operation = "department.update"
	DepartmentDelete Operation = "department.delete"

	BrandCreate Operation = "brand.create"
	BrandUpdate Operation = "brand.update"
	BrandDelete Operation = "brand.delete"

	CategoryCreate Operation = "category.create"
	CategoryUpdate Operation = "category.update"
	CategoryDelete Operation = "category.delete"

	SubcategoryCreate Operation = "subcategory.create"
	SubcategoryUpdate Operation = "subcategory.update"
	SubcategoryDelete Operation = "subcategory.delete"

	ProductCreate Operation = "product.create"
	ProductUpdate Operation = "product.update"
	ProductDelete Operation = "product.delete"

	PlanCreate Operation = "plan.create"
	PlanUpdate Operation = "plan.update"
	PlanDelete Operation = "plan.delete"

	PlanningDataCreate Operation = "planning_data.create"
	PlanningDataUpdate Operation = "planning_data.update"

	NotificationCreate Operation = "notification.create"
)

var (
	superAdminOnly = []internal.Role{internal.RoleSuperAdmin}
	admins         = []internal.Role{internal.RoleSuperAdmin, internal.RoleAdmin}
)

// Permissions maps every guarded operation to the roles allowed to run it.
// Reads of catalog records are open to any authenticated user and are not listed.
var Permissions = map[Operation][]internal.Role{
	UserRegister: admins,
	UserList:     admins,
	UserRead:     admins,

	DepartmentCreate: superAdminOnly,
	DepartmentUpdate: superAdminOnly,
	DepartmentDelete: superAdminOnly,

	BrandCreate: superAdminOnly,
	BrandUpdate: superAdminOnly,
	BrandDelete: superAdminOnly,

	CategoryCreate: superAdminOnly,
	CategoryUpdate: superAdminOnly,
	CategoryDelete: superAdminOnly,

	SubcategoryCreate: superAdminOnly,
	SubcategoryUpdate: superAdminOnly,
	SubcategoryDelete: superAdminOnly,

	ProductCreate: admins,
	ProductUpdate: admins,
	ProductDelete: admins,

	PlanCreate: admins,
	PlanUpdate: admins,
	PlanDelete: admins,

	PlanningDataCreate: {internal.RoleSuperAdmin, internal.RoleAdmin, internal.RoleCreator},
	PlanningDataUpdate: internal.Roles,

	NotificationCreate: admins,
}

// departmentScoped lists roles whose writes are confined to their own department.
var departmentScoped = map[internal.Role]bool{internal.RoleCreator: true}

// listScoped lists roles whose reads of department data are filtered to their department.
var listScoped = map[internal.Role]bool{
	internal.RoleCreator:  true,
	internal.RoleApprover: true,
	internal.RoleUser:     true,
}

type Gate struct {
	table  map[Operation][]internal.Role
	logger *slog.Logger
}

func NewGate(logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{table: Permissions, logger: logger}
}

// Allowed reports whether role may run op. Unknown operations are denied.
func (g *Gate) Allowed(role internal.Role, op Operation) bool {
	for _, r := range g.table[op] {
		if r == role {
			return true
		}
	}
	return false
}

func (g *Gate) Authorize(u *internal.User, op Operation) error {
	if u == nil {
		return internal.ErrInvalidCredentials
	}
	if !g.Allowed(u.Role, op) {
		g.logger.Warn("access denied: role not permitted",
			"user_id", u.ID,
			"role", u.Role,
			"operation", op)
		return internal.ErrNotEnoughPermission
	}
	return nil
}

// AuthorizeDepartment checks op and, for department-scoped roles, that the
// target record belongs to the user's own department.
func (g *Gate) AuthorizeDepartment(u *internal.User, op Operation, departmentID string) error {
	if err := g.Authorize(u, op); err != nil {
		return err
	}
	if departmentScoped[u.Role] && !u.InDepartment(departmentID) {
		g.logger.Warn("access denied: department mismatch",
			"user_id", u.ID,
			"role", u.Role,
			"operation", op,
			"department_id", departmentID)
		return internal.ErrDepartmentAccess
	}
	return nil
}

// AuthorizeSelfOr allows the user acting on their own record, otherwise falls back to op.
func (g *Gate) AuthorizeSelfOr(u *internal.User, op Operation, targetUserID string) error {
	if u != nil && u.ID == targetUserID {
		return nil
	}
	return g.Authorize(u, op)
}

// DepartmentScope returns the department a user's list queries are limited to.
func (g *Gate) DepartmentScope(u *internal.User) (string, bool) {
	if u == nil || !listScoped[u.Role] || u.DepartmentID == nil {
		return "", false
	}
	return *u.DepartmentID, true
}

// Require rejects requests whose authenticated user may not run op.
func (g *Gate) Require(op Operation) func(http.Handler) http.Handler {
	base := transport.NewBaseHandler(g.logger)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, _ := internal.UserFromContext(r.Context())
			if err := g.Authorize(u, op); err != nil {
				base.HandleServiceError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
