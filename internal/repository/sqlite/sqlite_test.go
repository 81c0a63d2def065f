package sqlite_test

import (
	"context"
	"testing"

	dbfs "github.com/mightytheif/sakany/db"
	dbpkg "github.com/mightytheif/sakany/internal/db"
	sqlite "github.com/mightytheif/sakany/internal/repository/sqlite"
	"github.com/mightytheif/sakany/pkg/models"
)

func setupRepo(t *testing.T, name string) *sqlite.SQLiteRepo {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, "file:"+name+"?mode=memory&cache=shared", nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return sqlite.New(d, nil)
}

func TestUserCRUD(t *testing.T) {
	repo := setupRepo(t, "repo_users")
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil user")
	}

	// non-existing ID returns nil, nil
	got, err := repo.GetByID(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing user: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing user, got %#v", got)
	}

	u := &models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleUser, PasswordHash: "x"}
	id, err := repo.CreateUser(ctx, u)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	got, err = repo.GetByEmail(ctx, "alice@example.com")
	if err != nil || got == nil {
		t.Fatalf("get by email: %v %v", got, err)
	}
	if got.ID != id || got.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", got)
	}

	// duplicate email violates the unique index
	if _, err := repo.CreateUser(ctx, &models.User{Name: "Dup", Email: "alice@example.com", PasswordHash: "y"}); err == nil {
		t.Fatalf("expected error on duplicate email")
	}

	got.Name = "Alice B"
	if err := repo.UpdateUser(ctx, got); err != nil {
		t.Fatalf("update user: %v", err)
	}
	got, _ = repo.GetByID(ctx, id)
	if got.Name != "Alice B" {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := repo.DeleteUser(ctx, id); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	got, err = repo.GetByID(ctx, id)
	if err != nil || got != nil {
		t.Fatalf("expected nil after delete, got %v %v", got, err)
	}
}

func TestPropertyCRUD(t *testing.T) {
	repo := setupRepo(t, "repo_properties")
	ctx := context.Background()

	ownerID, err := repo.CreateUser(ctx, &models.User{Name: "Owner", Email: "owner@example.com", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}

	p := &models.Property{
		OwnerID:      ownerID,
		Title:        "Seafront flat",
		PropertyType: "apartment",
		Price:        320000,
		Bedrooms:     2,
		Location:     "Jeddah Corniche",
		Amenities:    []string{"gym", "pool"},
		Published:    true,
	}
	id, err := repo.CreateProperty(ctx, p)
	if err != nil {
		t.Fatalf("create property: %v", err)
	}

	got, err := repo.GetPropertyByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("get property: %v %v", got, err)
	}
	if got.Status != models.StatusPending {
		t.Fatalf("new property should default to pending, got %q", got.Status)
	}
	if got.Verified {
		t.Fatalf("new property should be unverified")
	}
	if len(got.Amenities) != 2 || got.Amenities[0] != "gym" {
		t.Fatalf("amenities not round-tripped: %+v", got.Amenities)
	}

	// missing id returns nil, nil
	missing, err := repo.GetPropertyByID(ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing property, got %v %v", missing, err)
	}

	// moderation decision
	if err := repo.SetModeration(ctx, id, true, models.StatusActive); err != nil {
		t.Fatalf("set moderation: %v", err)
	}
	got, _ = repo.GetPropertyByID(ctx, id)
	if !got.Verified || got.Status != models.StatusActive {
		t.Fatalf("moderation not applied: %+v", got)
	}

	// detail edits never touch the moderation fields
	got.Title = "Renamed flat"
	if err := repo.UpdateProperty(ctx, got); err != nil {
		t.Fatalf("update property: %v", err)
	}
	got, _ = repo.GetPropertyByID(ctx, id)
	if got.Title != "Renamed flat" {
		t.Fatalf("title not updated: %+v", got)
	}
	if !got.Verified || got.Status != models.StatusActive {
		t.Fatalf("update touched moderation fields: %+v", got)
	}

	if err := repo.SetStatus(ctx, id, models.StatusSold); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if err := repo.SetPublished(ctx, id, false); err != nil {
		t.Fatalf("set published: %v", err)
	}
	got, _ = repo.GetPropertyByID(ctx, id)
	if got.Status != models.StatusSold || got.Published {
		t.Fatalf("status/published not persisted: %+v", got)
	}

	if err := repo.DeleteProperty(ctx, id); err != nil {
		t.Fatalf("delete property: %v", err)
	}
	got, err = repo.GetPropertyByID(ctx, id)
	if err != nil || got != nil {
		t.Fatalf("expected nil after delete, got %v %v", got, err)
	}
}

func TestListPropertiesFilters(t *testing.T) {
	repo := setupRepo(t, "repo_filters")
	ctx := context.Background()

	seed := []models.Property{
		{OwnerID: 1, Title: "downtown flat", PropertyType: "Apartment", Price: 150000, Bedrooms: 2, Location: "Riyadh Olaya", Published: true},
		{OwnerID: 1, Title: "family villa", PropertyType: "villa", Price: 900000, Bedrooms: 5, Location: "Riyadh Diplomatic Quarter", Published: true},
		{OwnerID: 2, Title: "studio", PropertyType: "apartment", Price: 80000, Bedrooms: 1, Location: "Jeddah", Published: true},
	}
	for i := range seed {
		if _, err := repo.CreateProperty(ctx, &seed[i]); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	// type filter is case-insensitive
	got, err := repo.ListProperties(ctx, models.PropertyFilter{Type: "APARTMENT"}, 50, 0)
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("type filter: expected 2, got %d", len(got))
	}

	// price range
	got, err = repo.ListProperties(ctx, models.PropertyFilter{PriceMin: 100000, PriceMax: 200000}, 50, 0)
	if err != nil {
		t.Fatalf("list by price: %v", err)
	}
	if len(got) != 1 || got[0].Title != "downtown flat" {
		t.Fatalf("price filter: got %+v", got)
	}

	// location substring
	got, err = repo.ListProperties(ctx, models.PropertyFilter{Location: "Riyadh"}, 50, 0)
	if err != nil {
		t.Fatalf("list by location: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("location filter: expected 2, got %d", len(got))
	}

	// owner listing
	got, err = repo.ListByOwner(ctx, 1)
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("owner listing: expected 2, got %d", len(got))
	}

	// status listing picks up the pending defaults
	got, err = repo.ListByStatus(ctx, models.StatusPending, 50, 0)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("status listing: expected 3, got %d", len(got))
	}
}

func TestFavorites(t *testing.T) {
	repo := setupRepo(t, "repo_favorites")
	ctx := context.Background()

	uid, _ := repo.CreateUser(ctx, &models.User{Name: "Fan", Email: "fan@example.com", PasswordHash: "x"})
	pid, err := repo.CreateProperty(ctx, &models.Property{OwnerID: uid, Title: "saved", PropertyType: "apartment", Published: true})
	if err != nil {
		t.Fatalf("create property: %v", err)
	}

	if err := repo.AddFavorite(ctx, uid, pid); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	// adding twice is a no-op, not an error
	if err := repo.AddFavorite(ctx, uid, pid); err != nil {
		t.Fatalf("re-add favorite: %v", err)
	}

	props, err := repo.ListFavoriteProperties(ctx, uid)
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(props) != 1 || props[0].ID != pid {
		t.Fatalf("unexpected favorites: %+v", props)
	}

	if err := repo.RemoveFavorite(ctx, uid, pid); err != nil {
		t.Fatalf("remove favorite: %v", err)
	}
	props, _ = repo.ListFavoriteProperties(ctx, uid)
	if len(props) != 0 {
		t.Fatalf("favorite not removed: %+v", props)
	}
}

func TestMessages(t *testing.T) {
	repo := setupRepo(t, "repo_messages")
	ctx := context.Background()

	pid := int64(3)
	msgs := []models.Message{
		{SenderID: 1, RecipientID: 2, Body: "is it available?", PropertyID: &pid},
		{SenderID: 2, RecipientID: 1, Body: "yes, come see it"},
		{SenderID: 1, RecipientID: 9, Body: "different thread"},
	}
	for i := range msgs {
		if _, err := repo.CreateMessage(ctx, &msgs[i]); err != nil {
			t.Fatalf("create message %d: %v", i, err)
		}
	}

	between, err := repo.ListBetween(ctx, 1, 2, 50, 0)
	if err != nil {
		t.Fatalf("list between: %v", err)
	}
	if len(between) != 2 {
		t.Fatalf("conversation: expected 2 messages, got %d", len(between))
	}

	inbox, err := repo.ListForUser(ctx, 1, 50, 0)
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(inbox) != 3 {
		t.Fatalf("inbox: expected 3 messages, got %d", len(inbox))
	}
}

func TestReports(t *testing.T) {
	repo := setupRepo(t, "repo_reports")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		r := &models.Report{PropertyID: 5, ReporterID: int64(i + 1), Reason: "scam", Status: models.ReportOpen}
		if _, err := repo.CreateReport(ctx, r); err != nil {
			t.Fatalf("create report %d: %v", i, err)
		}
	}

	n, err := repo.CountOpenByProperty(ctx, 5)
	if err != nil {
		t.Fatalf("count open: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 open reports, got %d", n)
	}

	open, err := repo.ListReportsByStatus(ctx, models.ReportOpen, 50, 0)
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 3 {
		t.Fatalf("expected 3 open reports listed, got %d", len(open))
	}

	if err := repo.UpdateReportStatus(ctx, open[0].ID, models.ReportResolved); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	n, _ = repo.CountOpenByProperty(ctx, 5)
	if n != 2 {
		t.Fatalf("expected 2 open after resolve, got %d", n)
	}

	got, err := repo.GetReportByID(ctx, open[0].ID)
	if err != nil || got == nil {
		t.Fatalf("get report: %v %v", got, err)
	}
	if got.Status != models.ReportResolved {
		t.Fatalf("status not updated: %+v", got)
	}

	missing, err := repo.GetReportByID(ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing report, got %v %v", missing, err)
	}
}
