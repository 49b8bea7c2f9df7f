package repository

import (
	"context"
	"testing"

	"materialOrderManagement/internal/db"
)

func TestMaterialRepository_SeededCatalog(t *testing.T) {
	d, err := db.Open("file:matrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewMaterialRepository(d)
	ctx := context.Background()

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("expected 4 seeded materials, got %d", len(list))
	}

	m, err := repo.GetByName(ctx, "cemento")
	if err != nil || m == nil {
		t.Fatalf("get cemento: %v %+v", err, m)
	}
	if m.UnitPrice != 250 || m.Unit != "bulto" {
		t.Fatalf("unexpected catalog entry: %+v", m)
	}

	unknown, err := repo.GetByName(ctx, "granito")
	if err != nil || unknown != nil {
		t.Fatalf("expected (nil, nil) for unknown material, got %+v err=%v", unknown, err)
	}
}
