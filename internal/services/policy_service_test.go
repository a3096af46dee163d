package services

import (
	"errors"
	"testing"

	"github.com/you/agrialert/internal/mocks"
)

func TestPolicyAddPersists(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	var added [][]interface{}
	enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
		added = append(added, params)
		return true, nil
	}
	svc := NewPolicyServiceWithEnforcer(enforcer)

	if err := svc.AddPolicy("role_farmer", "/farms", "GET"); err != nil {
		t.Fatalf("AddPolicy() error = %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("enforcer AddPolicy calls = %d, want 1", len(added))
	}
	if enforcer.Saves != 1 {
		t.Errorf("SavePolicy calls = %d, want 1", enforcer.Saves)
	}
}

func TestPolicyAddErrorSkipsSave(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
		return false, errors.New("adapter unavailable")
	}
	svc := NewPolicyServiceWithEnforcer(enforcer)

	if err := svc.AddPolicy("role_farmer", "/farms", "GET"); err == nil {
		t.Fatal("AddPolicy() error = nil, want enforcer failure")
	}
	if enforcer.Saves != 0 {
		t.Errorf("SavePolicy calls = %d, want 0 after a failed add", enforcer.Saves)
	}
}

func TestPolicyRemovePersists(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	removed := 0
	enforcer.RemovePolicyFunc = func(params ...interface{}) (bool, error) {
		removed++
		return true, nil
	}
	svc := NewPolicyServiceWithEnforcer(enforcer)

	if err := svc.RemovePolicy("role_farmer", "/farms", "GET"); err != nil {
		t.Fatalf("RemovePolicy() error = %v", err)
	}
	if removed != 1 || enforcer.Saves != 1 {
		t.Errorf("removes = %d, saves = %d, want 1 and 1", removed, enforcer.Saves)
	}
}

func TestPolicyList(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.GetPolicyFunc = func() ([][]string, error) {
		return [][]string{{"role_admin", "/*", "(GET|POST|PUT|DELETE)"}}, nil
	}
	svc := NewPolicyServiceWithEnforcer(enforcer)

	policies := svc.GetPolicies()
	if len(policies) != 1 || policies[0][0] != "role_admin" {
		t.Errorf("GetPolicies() = %v, want the single admin rule", policies)
	}

	enforcer.GetPolicyFunc = func() ([][]string, error) {
		return nil, errors.New("adapter unavailable")
	}
	if got := svc.GetPolicies(); got != nil {
		t.Errorf("GetPolicies() on enforcer failure = %v, want nil", got)
	}
}
