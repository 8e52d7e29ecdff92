// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"foodgram/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tunes how the factory generates data.
type SeedOptions struct {
	// SkipBcrypt stores a plaintext password instead of hashing. Dev only.
	SkipBcrypt bool
	// MaxDays spreads created_at timestamps over the past N days.
	MaxDays int
	// DryRun logs what would be created without touching the database.
	DryRun bool
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Avatar:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s", user.Username)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildRecipe constructs a recipe for the author with random tags and
// ingredients drawn from the given catalogs, but does not persist it.
func (f *Factory) BuildRecipe(author *models.User, tags []models.Tag, catalog []models.Ingredient, overrides ...func(*models.Recipe)) *models.Recipe {
	recipe := &models.Recipe{
		Name:        gofakeit.Dinner(),
		Text:        gofakeit.Paragraph(1, 3, 8, "\n"),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		CookingTime: gofakeit.Number(5, 180),
		AuthorID:    author.ID,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	recipe.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, i := range f.pick(len(tags), 1+f.rng.Intn(2)) {
		recipe.Tags = append(recipe.Tags, tags[i])
	}
	for _, i := range f.pick(len(catalog), 2+f.rng.Intn(5)) {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			IngredientID: catalog[i].ID,
			Amount:       gofakeit.Number(1, 500),
		})
	}

	for _, override := range overrides {
		override(recipe)
	}
	return recipe
}

// CreateRecipesBatch persists multiple recipes in a single DB call when possible.
func (f *Factory) CreateRecipesBatch(recipes []*models.Recipe) error {
	if f.opts.DryRun {
		for _, r := range recipes {
			f.nextID++
			r.ID = f.nextID
		}
		log.Printf("[dry-run] CreateRecipesBatch: %d recipes (no DB write)", len(recipes))
		return nil
	}
	return f.db.Create(&recipes).Error
}

// pick returns up to count distinct indexes in [0, n).
func (f *Factory) pick(n, count int) []int {
	if n == 0 {
		return nil
	}
	if count > n {
		count = n
	}
	return f.rng.Perm(n)[:count]
}
