// Package permission gates API access by role with casbin. Subjects are
// role names; Admin inherits User and User inherits Viewer.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// Enforcer answers "may this role do act on obj".
type Enforcer interface {
	Enforce(role, resource, action string) (bool, error)
}

type CasbinEnforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewGormEnforcer keeps policies in the casbin_rule table.
func NewGormEnforcer(db *gorm.DB, log logger.Interface) (*CasbinEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}
	return newEnforcer(adapter, log)
}

// NewMemoryEnforcer keeps policies in memory only.
func NewMemoryEnforcer(log logger.Interface) (*CasbinEnforcer, error) {
	return newEnforcer(nil, log)
}

func newEnforcer(adapter persist.Adapter, log logger.Interface) (*CasbinEnforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	var e *casbin.Enforcer
	if adapter != nil {
		e, err = casbin.NewEnforcer(m, adapter)
	} else {
		e, err = casbin.NewEnforcer(m)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	ce := &CasbinEnforcer{enforcer: e, logger: log}
	if err := ce.InitDefaultPolicies(); err != nil {
		return nil, err
	}
	return ce, nil
}

func (e *CasbinEnforcer) Enforce(role, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

// InitDefaultPolicies adds the built-in role policies that are missing.
func (e *CasbinEnforcer) InitDefaultPolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range DefaultPolicies {
		if _, err := e.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			e.logger.Errorw("failed to add permission policy", "error", err, "role", p[0], "resource", p[1], "action", p[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", p[0], p[1], p[2], err)
		}
	}
	for _, g := range DefaultRoleInheritance {
		if _, err := e.enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return fmt.Errorf("failed to add role inheritance [%s, %s]: %w", g[0], g[1], err)
		}
	}
	return nil
}

func (e *CasbinEnforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}
	e.logger.Infow("policy reloaded successfully")
	return nil
}
