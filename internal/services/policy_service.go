package services

import (
	"github.com/casbin/casbin/v2"

	"github.com/you/agrialert/domain"
)

// enforcerAdapter exposes a *casbin.Enforcer through the narrow
// domain.CasbinEnforcer surface the policy service depends on.
type enforcerAdapter struct {
	e *casbin.Enforcer
}

func (a *enforcerAdapter) AddPolicy(params ...interface{}) (bool, error) {
	return a.e.AddPolicy(params...)
}

func (a *enforcerAdapter) RemovePolicy(params ...interface{}) (bool, error) {
	return a.e.RemovePolicy(params...)
}

func (a *enforcerAdapter) GetPolicy() ([][]string, error) {
	return a.e.GetPolicy()
}

func (a *enforcerAdapter) SavePolicy() error {
	return a.e.SavePolicy()
}

// PolicyServiceImpl manages the role/route policy table behind the
// admin policy endpoints. Every mutation is persisted through the
// enforcer's adapter so a restart keeps the table.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a policy service backed by the real Casbin enforcer
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return NewPolicyServiceWithEnforcer(&enforcerAdapter{e: enforcer})
}

// NewPolicyServiceWithEnforcer creates a policy service on any CasbinEnforcer
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	if _, err := p.enforcer.AddPolicy(role, resource, action); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	if _, err := p.enforcer.RemovePolicy(role, resource, action); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, err := p.enforcer.GetPolicy()
	if err != nil {
		return nil
	}
	return policies
}
