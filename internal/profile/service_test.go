package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/session"
)

func newTestService() *Service {
	return NewService(session.NewMemoryStore(), nil)
}

func TestLoginDefaults(t *testing.T) {
	svc := newTestService()

	p, token := svc.Login(context.Background(), "trader@stratix.io")
	if token == "" {
		t.Fatalf("expected session token")
	}
	if p.Email != "trader@stratix.io" || p.Name != "trader" {
		t.Errorf("identity = %s/%s", p.Email, p.Name)
	}
	if p.Level != 3 || p.XP != 450 || p.XPToNextLevel != 1000 {
		t.Errorf("progression defaults = %d/%d/%d", p.Level, p.XP, p.XPToNextLevel)
	}
	if p.Tier != TierFree || p.CompletedAssessment || p.Capital != 10000 {
		t.Errorf("unexpected defaults: %+v", p)
	}
}

func TestLogoutDiscardsSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, token := svc.Login(ctx, "a@b.c")
	svc.Logout(ctx, token)

	_, err := svc.Get(ctx, token)
	if !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("Get after logout = %v, want session not found", err)
	}
}

func TestGetUnknownToken(t *testing.T) {
	svc := newTestService()
	_, err := svc.Get(context.Background(), "bogus")
	if !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("err = %v, want session not found", err)
	}
}

func TestCompleteAssessmentCommit(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, token := svc.Login(ctx, "a@b.c")

	p, err := svc.CompleteAssessment(ctx, token, 6, 25000)
	if err != nil {
		t.Fatalf("complete assessment: %v", err)
	}

	if p.Level != 6 {
		t.Errorf("Level = %d, want 6", p.Level)
	}
	if p.Capital != 25000 {
		t.Errorf("Capital = %v, want 25000", p.Capital)
	}
	if !p.CompletedAssessment {
		t.Error("CompletedAssessment should be true")
	}
	if p.XP != 0 {
		t.Errorf("XP = %d, want 0", p.XP)
	}
	if p.XPToNextLevel != 6000 {
		t.Errorf("XPToNextLevel = %d, want 6000", p.XPToNextLevel)
	}
}

func TestUpdateMergesAndRederivesXPTarget(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, token := svc.Login(ctx, "a@b.c")

	name := "Renamed"
	level := 5
	p, err := svc.Update(ctx, token, Patch{Name: &name, Level: &level})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if p.Name != "Renamed" {
		t.Errorf("Name = %s", p.Name)
	}
	if p.Level != 5 {
		t.Errorf("Level = %d, want 5", p.Level)
	}
	if p.XPToNextLevel != 5000 {
		t.Errorf("XPToNextLevel = %d, want 5000 (re-derived)", p.XPToNextLevel)
	}
	// Untouched fields survive the merge.
	if p.Email != "a@b.c" || p.XP != 450 {
		t.Errorf("merge clobbered fields: %+v", p)
	}
}

func TestSessionRecoveredFromStore(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	first := NewService(store, nil)
	_, token := first.Login(ctx, "a@b.c")
	if _, err := first.CompleteAssessment(ctx, token, 8, 50000); err != nil {
		t.Fatalf("complete assessment: %v", err)
	}

	// A fresh service sharing the store stands in for a restarted process.
	second := NewService(store, nil)
	p, err := second.Get(ctx, token)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if p.Level != 8 || p.Capital != 50000 || !p.CompletedAssessment {
		t.Errorf("recovered profile = %+v", p)
	}
}

// failingStore drops every write; sessions must keep working in memory.
type failingStore struct{}

func (failingStore) Save(context.Context, string, []byte) error { return errors.New("store down") }
func (failingStore) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}
func (failingStore) Delete(context.Context, string) error { return errors.New("store down") }

func TestStoreFailureDoesNotSurface(t *testing.T) {
	svc := NewService(failingStore{}, nil)
	ctx := context.Background()

	p, token := svc.Login(ctx, "a@b.c")
	if p.Level != 3 {
		t.Fatalf("login should succeed with a failing store")
	}

	updated, err := svc.CompleteAssessment(ctx, token, 5, 1000)
	if err != nil {
		t.Fatalf("mutation should succeed with a failing store: %v", err)
	}
	if updated.Level != 5 {
		t.Errorf("Level = %d, want 5", updated.Level)
	}
}
