package seed

import (
	"strings"
	"testing"
	"time"

	"foodgram/internal/models"
)

func TestFactory_CreateUserDryRun(t *testing.T) {
	f := NewFactory(nil, SeedOptions{DryRun: true, SkipBcrypt: true})

	u, err := f.CreateUser()
	if err != nil {
		t.Fatalf("dry-run CreateUser: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("expected synthetic ID for dry-run user")
	}
	if u.Username == "" || !strings.Contains(u.Email, "@") {
		t.Fatalf("incomplete generated user: %+v", u)
	}
	if u.Password != "password123" {
		t.Fatalf("SkipBcrypt should store plaintext, got %q", u.Password)
	}

	u2, err := f.CreateUser(func(user *models.User) {
		user.Username = "chef_override"
	})
	if err != nil {
		t.Fatalf("dry-run CreateUser with override: %v", err)
	}
	if u2.Username != "chef_override" {
		t.Fatalf("override not applied: %s", u2.Username)
	}
	if u2.ID == u.ID {
		t.Fatalf("synthetic IDs should be distinct")
	}
}

func TestFactory_BuildRecipe(t *testing.T) {
	opts := SeedOptions{DryRun: true, MaxDays: 30}
	f := NewFactory(nil, opts)
	author := &models.User{ID: 1}

	tags := DefaultTags
	catalog := make([]models.Ingredient, len(defaultIngredients))
	copy(catalog, defaultIngredients)
	for i := range catalog {
		catalog[i].ID = uint(i + 1)
	}

	r := f.BuildRecipe(author, tags, catalog)
	if r.AuthorID != author.ID {
		t.Fatalf("recipe not bound to author: %d", r.AuthorID)
	}
	if r.Name == "" || r.Text == "" {
		t.Fatalf("incomplete recipe: %+v", r)
	}
	if r.CookingTime < 5 || r.CookingTime > 180 {
		t.Fatalf("cooking time out of range: %d", r.CookingTime)
	}
	if len(r.Tags) < 1 || len(r.Tags) > 2 {
		t.Fatalf("unexpected tag count: %d", len(r.Tags))
	}
	if len(r.Ingredients) < 2 {
		t.Fatalf("expected at least 2 ingredients, got %d", len(r.Ingredients))
	}
	for _, ing := range r.Ingredients {
		if ing.IngredientID == 0 || ing.Amount <= 0 {
			t.Fatalf("invalid generated ingredient line: %+v", ing)
		}
	}

	// timestamp should be within MaxDays
	if time.Since(r.CreatedAt) > (time.Duration(opts.MaxDays)+1)*24*time.Hour {
		t.Fatalf("created_at too old: %v", r.CreatedAt)
	}

	r2 := f.BuildRecipe(author, tags, catalog, func(recipe *models.Recipe) {
		recipe.Name = "Signature Dish"
	})
	if r2.Name != "Signature Dish" {
		t.Fatalf("override not applied: %s", r2.Name)
	}
}

func TestFactory_CreateRecipesBatchDryRun(t *testing.T) {
	f := NewFactory(nil, SeedOptions{DryRun: true})
	recipes := []*models.Recipe{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	if err := f.CreateRecipesBatch(recipes); err != nil {
		t.Fatalf("dry-run batch: %v", err)
	}
	seen := map[uint]bool{}
	for _, r := range recipes {
		if r.ID == 0 {
			t.Fatalf("batch recipe missing synthetic ID")
		}
		if seen[r.ID] {
			t.Fatalf("duplicate synthetic ID %d", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestFactory_Pick(t *testing.T) {
	f := NewFactory(nil, SeedOptions{DryRun: true})

	if got := f.pick(0, 3); got != nil {
		t.Fatalf("pick from empty set should return nil, got %v", got)
	}
	got := f.pick(4, 10)
	if len(got) != 4 {
		t.Fatalf("pick should cap at n, got %d", len(got))
	}
	seen := map[int]bool{}
	for _, i := range got {
		if i < 0 || i >= 4 {
			t.Fatalf("index out of range: %d", i)
		}
		if seen[i] {
			t.Fatalf("duplicate index %d", i)
		}
		seen[i] = true
	}
}
