// Package authz decides which staff role may perform which action.
package authz

import (
	"fmt"

	casbin "github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"MediTrack/models"
)

// Resources guarded by the policy.
const (
	ResourcePatient   = "patient"
	ResourceVital     = "vital"
	ResourceLab       = "lab"
	ResourceReport    = "report"
	ResourceDashboard = "dashboard"
)

// Actions a principal can request.
const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionExport = "export"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

var policies = [][]string{
	{models.RoleAdmin, "*", "*"},

	{models.RoleClinician, ResourcePatient, ActionRead},
	{models.RoleClinician, ResourcePatient, ActionCreate},
	{models.RoleClinician, ResourcePatient, ActionUpdate},
	{models.RoleClinician, ResourceVital, ActionRead},
	{models.RoleClinician, ResourceVital, ActionCreate},
	{models.RoleClinician, ResourceLab, ActionRead},
	{models.RoleClinician, ResourceLab, ActionCreate},
	{models.RoleClinician, ResourceReport, ActionRead},
	{models.RoleClinician, ResourceReport, ActionExport},
	{models.RoleClinician, ResourceDashboard, ActionRead},
}

// Principal is the authenticated caller.
type Principal struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Authorizer evaluates the role policy. It is safe for concurrent use.
type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewAuthorizer builds the in-memory role policy.
func NewAuthorizer() (*Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse authorization model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("failed to load policies: %w", err)
	}
	return &Authorizer{enforcer: e}, nil
}

// Authorize returns nil when p may perform act on obj, and an
// *AuthorizationError otherwise.
func (a *Authorizer) Authorize(p *Principal, obj, act string) error {
	if p == nil {
		return Unauthenticated("authentication required")
	}
	ok, err := a.enforcer.Enforce(p.Role, obj, act)
	if err != nil {
		return fmt.Errorf("failed to evaluate policy: %w", err)
	}
	if !ok {
		return Forbidden(fmt.Sprintf("role %q may not %s %s", p.Role, act, obj))
	}
	return nil
}
