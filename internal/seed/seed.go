package seed

import (
	"log"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumRecipes  int
	ShouldClean bool
	SkipBcrypt  bool
}

// DefaultTags is the fixture tag set used when the tags table is empty.
var DefaultTags = []models.Tag{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	{Name: "Dessert", Color: "#F5C518", Slug: "dessert"},
}

var defaultIngredients = []models.Ingredient{
	{Name: "flour", MeasurementUnit: "g"},
	{Name: "sugar", MeasurementUnit: "g"},
	{Name: "salt", MeasurementUnit: "g"},
	{Name: "butter", MeasurementUnit: "g"},
	{Name: "milk", MeasurementUnit: "ml"},
	{Name: "water", MeasurementUnit: "ml"},
	{Name: "olive oil", MeasurementUnit: "ml"},
	{Name: "egg", MeasurementUnit: "pcs"},
	{Name: "onion", MeasurementUnit: "pcs"},
	{Name: "garlic", MeasurementUnit: "clove"},
	{Name: "tomato", MeasurementUnit: "pcs"},
	{Name: "potato", MeasurementUnit: "pcs"},
	{Name: "carrot", MeasurementUnit: "pcs"},
	{Name: "chicken breast", MeasurementUnit: "g"},
	{Name: "ground beef", MeasurementUnit: "g"},
	{Name: "rice", MeasurementUnit: "g"},
	{Name: "pasta", MeasurementUnit: "g"},
	{Name: "cheese", MeasurementUnit: "g"},
	{Name: "black pepper", MeasurementUnit: "g"},
	{Name: "parsley", MeasurementUnit: "bunch"},
}

// Seed populates the database with demo data: users, the tag and
// ingredient catalogs, recipes and a random mesh of subscriptions,
// favorites and cart items.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d recipes...", opts.NumUsers, opts.NumRecipes)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db, SeedOptions{SkipBcrypt: opts.SkipBcrypt})

	tags, err := ensureTags(db)
	if err != nil {
		return err
	}
	catalog, err := ensureIngredients(db)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	recipes := make([]*models.Recipe, 0, opts.NumRecipes)
	for i := 0; i < opts.NumRecipes; i++ {
		author := users[factory.rng.Intn(len(users))]
		recipes = append(recipes, factory.BuildRecipe(author, tags, catalog))
	}
	if len(recipes) > 0 {
		if err := factory.CreateRecipesBatch(recipes); err != nil {
			return err
		}
	}

	if err := meshCollections(db, factory, users, recipes); err != nil {
		return err
	}

	log.Printf("Seeding complete: %d users, %d recipes", len(users), len(recipes))
	return nil
}

func ensureTags(db *gorm.DB) ([]models.Tag, error) {
	var tags []models.Tag
	if err := db.Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		return tags, nil
	}
	tags = append(tags, DefaultTags...)
	if err := db.Create(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func ensureIngredients(db *gorm.DB) ([]models.Ingredient, error) {
	var catalog []models.Ingredient
	if err := db.Find(&catalog).Error; err != nil {
		return nil, err
	}
	if len(catalog) > 0 {
		return catalog, nil
	}
	catalog = append(catalog, defaultIngredients...)
	if err := db.Create(&catalog).Error; err != nil {
		return nil, err
	}
	return catalog, nil
}

// meshCollections wires users together: subscriptions, favorites and
// shopping cart entries, skipping self-edges and duplicates.
func meshCollections(db *gorm.DB, factory *Factory, users []*models.User, recipes []*models.Recipe) error {
	for _, user := range users {
		for _, i := range factory.pick(len(users), factory.rng.Intn(4)) {
			author := users[i]
			if author.ID == user.ID {
				continue
			}
			sub := models.Subscription{UserID: user.ID, AuthorID: author.ID}
			if err := db.Where(&sub).FirstOrCreate(&sub).Error; err != nil {
				return err
			}
		}
		for _, i := range factory.pick(len(recipes), factory.rng.Intn(6)) {
			fav := models.Favorite{UserID: user.ID, RecipeID: recipes[i].ID}
			if err := db.Where(&fav).FirstOrCreate(&fav).Error; err != nil {
				return err
			}
		}
		for _, i := range factory.pick(len(recipes), factory.rng.Intn(4)) {
			item := models.ShoppingCartItem{UserID: user.ID, RecipeID: recipes[i].ID}
			if err := db.Where(&item).FirstOrCreate(&item).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func clearData(db *gorm.DB) error {
	tables := []string{
		"shopping_cart_items", "favorites", "subscriptions",
		"recipe_ingredients", "recipe_tags", "recipes", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
