package health

import (
	"context"
	"errors"
	"testing"
)

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockCatalogChecker struct {
	err error
}

func (m *mockCatalogChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockCatalogChecker{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("Status = %q, want %q", r.Status, Healthy)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("database = %q, want %q", r.Checks["database"], CheckOK)
	}
	if r.Checks["catalog"] != CheckOK {
		t.Errorf("catalog = %q, want %q", r.Checks["catalog"], CheckOK)
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("connection refused")}, &mockCatalogChecker{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("Status = %q, want %q", r.Status, Degraded)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("database = %q, want %q", r.Checks["database"], CheckError)
	}
}

func TestCheck_CatalogUnreadable(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockCatalogChecker{err: errors.New("no such file")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("Status = %q, want %q", r.Status, Degraded)
	}
}

func TestCheck_NilCatalog(t *testing.T) {
	svc := New(&mockDBPinger{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("Status = %q, want %q", r.Status, Healthy)
	}
	if _, ok := r.Checks["catalog"]; ok {
		t.Error("catalog check present, want absent")
	}
}
