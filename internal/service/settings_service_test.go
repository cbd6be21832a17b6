package service

import (
	"context"
	"testing"
)

func TestSettingsServiceRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(&fakeSettingsRepo{}, SchemeProgressive)

	// Nothing stored yet: the configured default is reported.
	name, err := svc.ActiveFineScheme(ctx)
	if err != nil {
		t.Fatalf("ActiveFineScheme failed: %v", err)
	}
	if name != SchemeProgressive {
		t.Errorf("unset scheme = %q, want default %q", name, SchemeProgressive)
	}

	if err := svc.SetActiveFineScheme(ctx, SchemeFlat); err != nil {
		t.Fatalf("SetActiveFineScheme failed: %v", err)
	}
	name, _ = svc.ActiveFineScheme(ctx)
	if name != SchemeFlat {
		t.Errorf("scheme after set = %q, want %q", name, SchemeFlat)
	}
}

func TestSettingsServiceRejectsUnknownScheme(t *testing.T) {
	ctx := context.Background()
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, SchemeProgressive)

	if err := svc.SetActiveFineScheme(ctx, "percentage"); err == nil {
		t.Fatal("expected error for unknown scheme")
	}
	if repo.scheme != "" {
		t.Errorf("rejected scheme was persisted: %q", repo.scheme)
	}
}

func TestSettingsServiceReportsDefaultOnCorruptValue(t *testing.T) {
	ctx := context.Background()
	repo := &fakeSettingsRepo{scheme: "percentage"}
	svc := NewSettingsService(repo, SchemeHourly)

	name, err := svc.ActiveFineScheme(ctx)
	if err != nil {
		t.Fatalf("ActiveFineScheme failed: %v", err)
	}
	if name != SchemeHourly {
		t.Errorf("corrupt value reported as %q, want default %q", name, SchemeHourly)
	}
}
