package interest

import (
	"context"
	"errors"
	"testing"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository/memory"
)

func TestInterestLifecycle(t *testing.T) {
	store := memory.NewStore()
	uc := NewInterestUseCase(store.Interests(), store.Accounts())
	ctx := context.Background()

	outdoors := store.SeedCategory(domain.InterestCategory{Name: "Outdoors"})
	music := store.SeedCategory(domain.InterestCategory{Name: "Music"})
	hiking := store.SeedInterest(domain.Interest{CategoryID: &outdoors.ID, Name: "Hiking", Importance: 2})
	climbing := store.SeedInterest(domain.Interest{CategoryID: &outdoors.ID, Name: "Climbing", Importance: 5})
	store.SeedInterest(domain.Interest{CategoryID: &music.ID, Name: "Jazz"})

	account := domain.NewAccount("ada@example.com", "")
	if err := store.Accounts().Create(ctx, account); err != nil {
		t.Fatalf("Create: %v", err)
	}

	categories, _ := uc.ListCategories(ctx)
	if len(categories) != 2 || categories[0].Name != "Music" {
		t.Fatalf("unexpected categories %+v", categories)
	}

	filtered, _ := uc.ListInterests(ctx, &outdoors.ID)
	if len(filtered) != 2 || filtered[0].ID != climbing.ID {
		t.Fatalf("unexpected filtered interests %+v", filtered)
	}
	all, _ := uc.ListInterests(ctx, nil)
	if len(all) != 3 {
		t.Fatalf("expected 3 interests, got %d", len(all))
	}

	if _, err := uc.AddInterest(ctx, account.ID, hiking.ID); err != nil {
		t.Fatalf("AddInterest: %v", err)
	}
	linked, err := uc.AddInterest(ctx, account.ID, hiking.ID)
	if err != nil || len(linked) != 1 {
		t.Fatalf("repeat add: %+v %v", linked, err)
	}

	reloaded, _ := store.Accounts().GetByID(ctx, account.ID)
	if len(reloaded.InterestIDs) != 1 || reloaded.InterestIDs[0] != hiking.ID {
		t.Fatalf("account interest ids = %v", reloaded.InterestIDs)
	}

	if _, err := uc.AddInterest(ctx, account.ID, 999); !errors.Is(err, domain.ErrInterestNotFound) {
		t.Fatalf("unknown interest added: %v", err)
	}
	if _, err := uc.AddInterest(ctx, 999, hiking.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("interest added to unknown account: %v", err)
	}

	left, err := uc.RemoveInterest(ctx, account.ID, hiking.ID)
	if err != nil || len(left) != 0 {
		t.Fatalf("RemoveInterest: %+v %v", left, err)
	}
	if _, err := uc.RemoveInterest(ctx, account.ID, hiking.ID); !errors.Is(err, domain.ErrInterestNotFound) {
		t.Fatalf("second remove: %v", err)
	}
}
