package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	donationDomain "charity-fund-backend/internal/domain/donation"
	"charity-fund-backend/internal/domain/fund"
	projectDomain "charity-fund-backend/internal/domain/project"
)

var base = time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)

// openTestDB returns an in-memory sqlite DB with both tables migrated.
// One connection, otherwise every pooled connection sees its own empty database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&projectDomain.CharityProject{}, &donationDomain.Donation{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeProject(name string, full int64, created time.Time) *projectDomain.CharityProject {
	return &projectDomain.CharityProject{
		Ledger:      fund.Open(full, created),
		Name:        name,
		Description: "desc " + name,
	}
}

func makeDonation(full int64, created time.Time, user *string) *donationDomain.Donation {
	return &donationDomain.Donation{Ledger: fund.Open(full, created), UserID: user, Comment: "c"}
}

func strp(s string) *string { return &s }

func TestProjectRepository_CreateGetByIDAndName(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	p := makeProject("Cats", 100, base)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Cats" || got.FullAmount != 100 || got.InvestedAmount != 0 || got.FullyInvested || got.CloseDate != nil {
		t.Fatalf("unexpected project: %+v", got)
	}
	if !got.CreateDate.Equal(base) {
		t.Fatalf("create date = %v, want %v", got.CreateDate, base)
	}

	if _, err := repo.GetByName(ctx, "Cats"); err != nil {
		t.Fatalf("GetByName exact: %v", err)
	}
	if _, err := repo.GetByName(ctx, "cats"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByName must be case-sensitive, got %v", err)
	}
	if _, err := repo.GetByIDForUpdate(ctx, 999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestProjectRepository_UniqueName(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, makeProject("Dogs", 10, base)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, makeProject("Dogs", 20, base)); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestProjectRepository_ListOpenForUpdate_OrderAndFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	newer := makeProject("newer", 10, base.Add(time.Hour))
	tieB := makeProject("tie-b", 10, base)
	tieA := makeProject("tie-a", 10, base)
	closed := makeProject("closed", 10, base.Add(-time.Hour))
	closed.Invest(10, base)
	for _, p := range []*projectDomain.CharityProject{newer, tieB, tieA, closed} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create %s: %v", p.Name, err)
		}
	}

	open, err := repo.ListOpenForUpdate(ctx)
	if err != nil {
		t.Fatalf("ListOpenForUpdate: %v", err)
	}
	want := []string{"tie-b", "tie-a", "newer"} // tie broken by id (insert order)
	if len(open) != len(want) {
		t.Fatalf("got %d open projects, want %d", len(open), len(want))
	}
	for i, p := range open {
		if p.Name != want[i] {
			t.Fatalf("open[%d] = %s, want %s", i, p.Name, want[i])
		}
	}

	all, err := repo.List(ctx)
	if err != nil || len(all) != 4 {
		t.Fatalf("List = %d, err=%v", len(all), err)
	}
	if all[0].Name != "closed" || all[0].CloseDate == nil {
		t.Fatalf("closed project not first or close date lost: %+v", all[0])
	}
}

func TestProjectRepository_SaveAndDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	p := makeProject("Birds", 100, base)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	p.Invest(100, base.Add(time.Minute))
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := repo.GetByID(ctx, p.ID)
	if !got.FullyInvested || got.InvestedAmount != 100 || got.CloseDate == nil {
		t.Fatalf("allocation fields not persisted: %+v", got)
	}

	if err := repo.Delete(ctx, p); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, p.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("project still present after delete: %v", err)
	}
}

func TestDonationRepository_ListByUserAndOpen(t *testing.T) {
	db := openTestDB(t)
	repo := NewDonationRepository(db)
	ctx := context.Background()

	alice := strp("alice")
	d1 := makeDonation(50, base.Add(time.Minute), alice)
	d2 := makeDonation(70, base, strp("bob"))
	d3 := makeDonation(30, base.Add(2*time.Minute), nil) // anonymous
	d4 := makeDonation(20, base.Add(3*time.Minute), alice)
	d4.Invest(20, base.Add(3*time.Minute))
	for _, d := range []*donationDomain.Donation{d1, d2, d3, d4} {
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	mine, err := repo.ListByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != d1.ID || mine[1].ID != d4.ID {
		t.Fatalf("ListByUser = %+v", mine)
	}

	open, err := repo.ListOpenForUpdate(ctx)
	if err != nil {
		t.Fatalf("ListOpenForUpdate: %v", err)
	}
	if len(open) != 3 || open[0].ID != d2.ID || open[1].ID != d1.ID || open[2].ID != d3.ID {
		t.Fatalf("open donations in wrong order: %+v", open)
	}
	if open[2].UserID != nil {
		t.Fatalf("anonymous donation got a user: %v", *open[2].UserID)
	}

	got, err := repo.GetByIDForUpdate(ctx, d4.ID)
	if err != nil || !got.FullyInvested {
		t.Fatalf("GetByIDForUpdate = %+v, err=%v", got, err)
	}
	all, err := repo.List(ctx)
	if err != nil || len(all) != 4 {
		t.Fatalf("List = %d, err=%v", len(all), err)
	}
}
