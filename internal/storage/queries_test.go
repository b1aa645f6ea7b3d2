package storage

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSessionLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Unknown session comes back at the menu.
	s, err := db.GetSession(ctx, "p1", "s1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if s.State != "menu" || len(s.Data) != 0 {
		t.Errorf("fresh session = %+v", s)
	}

	if err := db.SaveSession(ctx, "p1", "s1", "lf_station", map[string]string{"item_type": "جوال"}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	s, err = db.GetSession(ctx, "p1", "s1")
	if err != nil {
		t.Fatal(err)
	}
	if s.State != "lf_station" || s.Data["item_type"] != "جوال" {
		t.Errorf("session = %+v", s)
	}

	// Same passenger, different device session: isolated state.
	other, err := db.GetSession(ctx, "p1", "s2")
	if err != nil {
		t.Fatal(err)
	}
	if other.State != "menu" {
		t.Errorf("state leaked across sessions: %+v", other)
	}

	if err := db.ResetSession(ctx, "p1", "s1"); err != nil {
		t.Fatal(err)
	}
	s, _ = db.GetSession(ctx, "p1", "s1")
	if s.State != "menu" || len(s.Data) != 0 {
		t.Errorf("reset session = %+v", s)
	}
}

func TestReports(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := db.SaveReport(ctx, &Report{TicketID: "AB12CD34"}); err == nil {
		t.Error("report without passenger should be rejected")
	}
	if err := db.SaveReport(ctx, &Report{PassengerID: "p1"}); err == nil {
		t.Error("report without ticket should be rejected")
	}

	r := &Report{
		TicketID:    "AB12CD34",
		PassengerID: "p1",
		ItemType:    "حقيبة",
		Description: "حقيبة سوداء",
		Station:     "KAFD",
		LostWhen:    "2026-08-20",
		Phone:       "0501234567",
	}
	if err := db.SaveReport(ctx, r); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	got, err := db.GetReport(ctx, "AB12CD34")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got == nil || got.ItemType != "حقيبة" || got.Status != "open" || got.CreatedAt == "" {
		t.Errorf("report = %+v", got)
	}

	missing, err := db.GetReport(ctx, "ZZ99ZZ99")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("missing ticket should be nil, got %+v", missing)
	}
}

func TestFAQ(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	entries, err := db.ListFAQ(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("fresh corpus = %+v", entries)
	}

	if err := db.AddFAQ(ctx, "كم سعر التذكرة؟", "أربعة ريالات للرحلة الواحدة.", "prices"); err != nil {
		t.Fatal(err)
	}
	if err := db.AddFAQ(ctx, "متى يفتح المترو؟", "من السادسة صباحاً حتى منتصف الليل.", "working_hours"); err != nil {
		t.Fatal(err)
	}

	entries, err = db.ListFAQ(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Subcategory != "prices" || entries[1].Question != "متى يفتح المترو؟" {
		t.Errorf("corpus = %+v", entries)
	}
}
