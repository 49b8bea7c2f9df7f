package repository

import (
	"context"
	"testing"

	"materialOrderManagement/internal/db"
	"materialOrderManagement/models"
)

func TestUserRepository_CRUDAndQueries(t *testing.T) {
	d, err := db.Open("file:userrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()

	// Create with empty role defaults to customer
	u, err := repo.Create(ctx, "alice", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Username != "alice" || u.Role != models.RoleCustomer {
		t.Fatalf("unexpected created user: %+v", u)
	}

	// GetByID
	g, err := repo.GetByID(ctx, u.ID)
	if err != nil || g == nil || g.Username != "alice" {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	// GetByUsername
	g2, err := repo.GetByUsername(ctx, "alice")
	if err != nil || g2 == nil || g2.ID != u.ID {
		t.Fatalf("get by username: %v %+v", err, g2)
	}

	// List
	list, err := repo.List(ctx, 10, 0)
	if err != nil || len(list) == 0 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}

	// UpdateRoleByUsername
	if err := repo.UpdateRoleByUsername(ctx, "alice", models.RoleAdmin); err != nil {
		t.Fatalf("update role: %v", err)
	}
	g3, _ := repo.GetByUsername(ctx, "alice")
	if !g3.IsAdmin() {
		t.Fatalf("role not updated: %+v", g3)
	}

	// Delete
	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	gone, err := repo.GetByID(ctx, u.ID)
	if err != nil || gone != nil {
		t.Fatalf("expected user deleted, got: %+v err=%v", gone, err)
	}
}

func TestUserRepository_ListAdmins(t *testing.T) {
	d, err := db.Open("file:userrepoadmins?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "bob", models.RoleCustomer); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	a1, err := repo.Create(ctx, "staff1", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	a2, err := repo.Create(ctx, "staff2", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}

	admins, err := repo.ListAdmins(ctx)
	if err != nil {
		t.Fatalf("list admins: %v", err)
	}
	if len(admins) != 2 || admins[0].ID != a1.ID || admins[1].ID != a2.ID {
		t.Fatalf("unexpected admins: %+v", admins)
	}
}
