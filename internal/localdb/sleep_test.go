package localdb

import (
	"context"
	"testing"

	"github.com/sakif/nutrition-tracker/internal/model"
)

func TestUpsertSleepEntryInsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")

	entry := &model.SleepEntry{UserID: user.ID, Date: "2024-06-14", Hours: 7.5, Quality: 4}
	db.UpsertSleepEntry(ctx, entry)

	if entry.ID == "" {
		t.Error("UpsertSleepEntry() did not assign an ID on insert")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("UpsertSleepEntry() did not stamp CreatedAt on insert")
	}

	got := db.GetSleepEntries(ctx, user.ID)
	if len(got) != 1 {
		t.Fatalf("GetSleepEntries() returned %d entries, want 1", len(got))
	}
}

func TestUpsertSleepEntrySameDateOverwrites(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")

	first := &model.SleepEntry{UserID: user.ID, Date: "2024-06-14", Hours: 6, Quality: 2}
	db.UpsertSleepEntry(ctx, first)

	// Second log for the same night: overwrite, not append — and the record
	// keeps its original identity.
	second := &model.SleepEntry{UserID: user.ID, Date: "2024-06-14", Hours: 8, Quality: 5}
	db.UpsertSleepEntry(ctx, second)

	got := db.GetSleepEntries(ctx, user.ID)
	if len(got) != 1 {
		t.Fatalf("GetSleepEntries() returned %d entries, want 1 (upsert)", len(got))
	}
	if got[0].Hours != 8 || got[0].Quality != 5 {
		t.Errorf("entry = %+v, want the second log's fields", got[0])
	}
	if got[0].ID != first.ID {
		t.Errorf("ID = %q, want the original %q preserved", got[0].ID, first.ID)
	}
	if !got[0].CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt = %v, want the original %v preserved", got[0].CreatedAt, first.CreatedAt)
	}
}

func TestUpsertSleepEntryDifferentDatesAppend(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")

	db.UpsertSleepEntry(ctx, &model.SleepEntry{UserID: user.ID, Date: "2024-06-13", Hours: 7})
	db.UpsertSleepEntry(ctx, &model.SleepEntry{UserID: user.ID, Date: "2024-06-14", Hours: 8})

	if got := db.GetSleepEntries(ctx, user.ID); len(got) != 2 {
		t.Errorf("GetSleepEntries() returned %d entries, want 2", len(got))
	}
}

func TestSleepEntriesScopedToUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "a@x.com")
	bob := createTestUser(t, db, "b@x.com")

	// Same date, different users — two independent records.
	db.UpsertSleepEntry(ctx, &model.SleepEntry{UserID: alice.ID, Date: "2024-06-14", Hours: 7})
	db.UpsertSleepEntry(ctx, &model.SleepEntry{UserID: bob.ID, Date: "2024-06-14", Hours: 9})

	if got := db.GetSleepEntries(ctx, alice.ID); len(got) != 1 || got[0].Hours != 7 {
		t.Errorf("alice's entries = %+v, want her single 7h record", got)
	}
}
