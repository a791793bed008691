package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pantrybase/backend/internal/models"
	"github.com/pantrybase/backend/internal/types"
)

// seedAllergens is the fixed registry of the major nine allergens plus the
// dietary-preference entries that ride the same exclusion machinery.
var seedAllergens = []models.Allergen{
	{
		Name:             "Milk",
		Category:         models.CategoryMajorAllergen,
		AlternativeNames: models.JSONBStringArray{"dairy", "lactose", "casein", "whey", "cream", "butter", "cheese", "yogurt"},
		Description:      "Milk and dairy products from cows, goats, and other mammals",
	},
	{
		Name:             "Eggs",
		Category:         models.CategoryMajorAllergen,
		AlternativeNames: models.JSONBStringArray{"egg", "albumin", "ovalbumin", "egg white", "egg yolk", "mayonnaise"},
		Description:      "Eggs and egg-containing products",
	},
	{
		Name:             "Fish",
		Category:         models.CategoryMajorAllergen,
		AlternativeNames: models.JSONBStringArray{"seafood", "finned fish", "salmon", "tuna", "cod", "halibut", "tilapia"},
		Description:      "Fish with fins (salmon, tuna, cod, etc.)",
	},
	{
		Name:             "Shellfish",
		Category:         models.CategoryMajorAllergen,
		AlternativeNames: models.JSONBStringArray{"crustacean", "mollusk", "shrimp", "crab", "lobster", "clam", "oyster", "mussel", "scallop"},
		Description:      "Crustaceans (shrimp, crab, lobster) and mollusks (clams, oysters)",
	},
	{
		Name:             "Tree Nuts",
		Category:         models.CategoryMajorAllergen,
		AlternativeNames: models.JSONBStringArray{"almond", "walnut", "cashew", "pecan", "pistachio", "macadamia", "hazelnut", "brazil nut"},
		Description:      "Tree nuts including almonds, walnuts, cashews, pecans, and more",
	},
	{
		Name:             "Peanuts",
		Category:         models.CategoryMajorAllergen,
		AlternativeNames: models.JSONBStringArray{"peanut", "groundnut", "peanut butter", "arachis"},
		Description:      "Peanuts and peanut-containing products",
	},
	{
		Name:             "Wheat",
		Category:         models.CategoryMajorAllergen,
		AlternativeNames: models.JSONBStringArray{"gluten", "flour", "wheat flour", "whole wheat", "durum", "semolina", "spelt"},
		Description:      "Wheat and wheat-containing products (primary source of gluten)",
	},
	{
		Name:             "Soybeans",
		Category:         models.CategoryMajorAllergen,
		AlternativeNames: models.JSONBStringArray{"soy", "soya", "tofu", "edamame", "soy sauce", "tempeh", "miso"},
		Description:      "Soybeans and soy-containing products",
	},
	{
		Name:             "Sesame",
		Category:         models.CategoryMajorAllergen,
		AlternativeNames: models.JSONBStringArray{"tahini", "sesame seed", "sesame oil", "sesamol"},
		Description:      "Sesame seeds and sesame-containing products",
	},
	{
		Name:             "Meat",
		Category:         models.CategoryDietaryPreference,
		AlternativeNames: models.JSONBStringArray{"beef", "pork", "chicken", "lamb", "poultry", "turkey", "duck", "veal"},
		Description:      "All meat products for vegetarian filtering",
	},
	{
		Name:             "Animal Products",
		Category:         models.CategoryDietaryPreference,
		AlternativeNames: models.JSONBStringArray{"meat", "dairy", "eggs", "honey", "gelatin", "animal"},
		Description:      "All animal-derived products for vegan filtering",
	},
	{
		Name:             "Pork",
		Category:         models.CategoryDietaryPreference,
		AlternativeNames: models.JSONBStringArray{"bacon", "ham", "pork chop", "sausage", "prosciutto"},
		Description:      "Pork products for Halal/Kosher dietary restrictions",
	},
}

// SeedAllergens inserts the fixed registry entries that are not already
// present. Existing rows are left untouched, so re-running is a no-op.
func SeedAllergens(db *gorm.DB) (created int, err error) {
	for _, entry := range seedAllergens {
		var existing models.Allergen
		err := db.Where("name = ?", entry.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}
		allergen := entry
		if err := db.Create(&allergen).Error; err != nil {
			return created, fmt.Errorf("failed to seed allergen %q: %w", entry.Name, err)
		}
		created++
		log.Printf("Seeded allergen %q", allergen.Name)
	}
	return created, nil
}

type seedIngredient struct {
	Name      string
	Calories  int
	Allergens []string
	Amount    string
	Unit      string
}

type seedRecipe struct {
	Title        string
	Instructions []string
	Servings     int
	PrepTime     int
	CookTime     int
	Difficulty   string
	Ingredients  []seedIngredient
}

var seedRecipes = []seedRecipe{
	{
		Title: "Classic Margherita Pizza",
		Instructions: []string{
			"Mix flour, yeast, salt and warm water into a dough and let rise for an hour.",
			"Stretch the dough, spread crushed tomatoes, top with sliced mozzarella.",
			"Bake at 250C for 8-10 minutes, finish with fresh basil.",
		},
		Servings: 4, PrepTime: 75, CookTime: 10, Difficulty: "medium",
		Ingredients: []seedIngredient{
			{Name: "Wheat Flour", Calories: 364, Allergens: []string{"Wheat"}, Amount: "500", Unit: "g"},
			{Name: "Mozzarella", Calories: 280, Allergens: []string{"Milk", "Animal Products"}, Amount: "200", Unit: "g"},
			{Name: "Crushed Tomatoes", Calories: 32, Amount: "400", Unit: "g"},
			{Name: "Fresh Basil", Calories: 23, Amount: "1", Unit: "handful"},
		},
	},
	{
		Title: "Peanut Butter Sandwich",
		Instructions: []string{
			"Spread peanut butter on one slice of bread.",
			"Top with the second slice and cut diagonally.",
		},
		Servings: 1, PrepTime: 5, CookTime: 0, Difficulty: "easy",
		Ingredients: []seedIngredient{
			{Name: "Peanut Butter", Calories: 588, Allergens: []string{"Peanuts"}, Amount: "2", Unit: "tbsp"},
			{Name: "White Bread", Calories: 265, Allergens: []string{"Wheat"}, Amount: "2", Unit: "slices"},
		},
	},
	{
		Title: "Garden Salad",
		Instructions: []string{
			"Chop lettuce, cucumber and tomatoes into bite-sized pieces.",
			"Toss with olive oil, lemon juice and a pinch of salt.",
		},
		Servings: 2, PrepTime: 10, CookTime: 0, Difficulty: "easy",
		Ingredients: []seedIngredient{
			{Name: "Lettuce", Calories: 15, Amount: "1", Unit: "head"},
			{Name: "Cucumber", Calories: 16, Amount: "1", Unit: "whole"},
			{Name: "Tomatoes", Calories: 18, Amount: "2", Unit: "whole"},
			{Name: "Olive Oil", Calories: 884, Amount: "2", Unit: "tbsp"},
		},
	},
	{
		Title: "Shrimp Stir-Fry",
		Instructions: []string{
			"Marinate shrimp in soy sauce and sesame oil for 15 minutes.",
			"Stir-fry vegetables over high heat, add shrimp and cook until pink.",
			"Serve over steamed rice.",
		},
		Servings: 3, PrepTime: 20, CookTime: 10, Difficulty: "medium",
		Ingredients: []seedIngredient{
			{Name: "Shrimp", Calories: 99, Allergens: []string{"Shellfish", "Animal Products"}, Amount: "300", Unit: "g"},
			{Name: "Soy Sauce", Calories: 53, Allergens: []string{"Soybeans", "Wheat"}, Amount: "3", Unit: "tbsp"},
			{Name: "Sesame Oil", Calories: 884, Allergens: []string{"Sesame"}, Amount: "1", Unit: "tbsp"},
			{Name: "White Rice", Calories: 130, Amount: "200", Unit: "g"},
		},
	},
}

const (
	seedAuthorUsername = "pantrybase-kitchen"
	seedAuthorEmail    = "kitchen@pantrybase.example"
)

// SeedSampleRecipes populates the catalog with a fixed sample set under a
// dedicated author account. Already-seeded recipes are skipped by title, so
// re-running is safe. Allergens must be seeded first.
func SeedSampleRecipes(db *gorm.DB) (created int, err error) {
	author, err := ensureSeedAuthor(db)
	if err != nil {
		return 0, err
	}

	recipes := NewRecipeService(db)
	ctx := context.Background()

	for _, sr := range seedRecipes {
		var existing models.Recipe
		if err := db.Where("title = ? AND user_id = ?", sr.Title, author.ID).First(&existing).Error; err == nil {
			continue
		}

		req := types.CreateRecipeRequest{
			Title:        sr.Title,
			Instructions: sr.Instructions,
			Servings:     sr.Servings,
			PrepTime:     sr.PrepTime,
			CookTime:     sr.CookTime,
			Difficulty:   sr.Difficulty,
		}
		for _, si := range sr.Ingredients {
			ingredient, err := ensureSeedIngredient(db, si)
			if err != nil {
				return created, err
			}
			req.Ingredients = append(req.Ingredients, types.RecipeIngredientInput{
				IngredientID: ingredient.ID.String(),
				Amount:       si.Amount,
				Unit:         si.Unit,
			})
		}

		if _, err := recipes.Create(ctx, author.ID, &req); err != nil {
			return created, fmt.Errorf("failed to seed recipe %q: %w", sr.Title, err)
		}
		created++
		log.Printf("Seeded recipe %q", sr.Title)
	}

	return created, nil
}

func ensureSeedAuthor(db *gorm.DB) (*models.User, error) {
	var profile models.UserProfile
	if err := db.Where("username = ?", seedAuthorUsername).First(&profile).Error; err == nil {
		var user models.User
		if err := db.First(&user, "id = ?", profile.UserID).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}

	// Random password; the seed author is never logged into.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:         "PantryBase Kitchen",
		Email:        seedAuthorEmail,
		PasswordHash: string(hash),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserProfile{UserID: user.ID, Username: seedAuthorUsername}).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func ensureSeedIngredient(db *gorm.DB, si seedIngredient) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := db.Where("name = ?", si.Name).First(&ingredient).Error; err == nil {
		return &ingredient, nil
	}

	var allergens []models.Allergen
	if len(si.Allergens) > 0 {
		if err := db.Where("name IN ?", si.Allergens).Find(&allergens).Error; err != nil {
			return nil, err
		}
		if len(allergens) != len(si.Allergens) {
			return nil, fmt.Errorf("allergens %v not fully seeded, run allergen seeding first", si.Allergens)
		}
	}

	ingredient = models.Ingredient{
		Name:      si.Name,
		Calories:  si.Calories,
		Allergens: allergens,
	}
	if err := db.Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// EnsureSuperuser creates an administrative account with the given
// credentials unless the username is already taken. An existing account is
// never modified; in particular its password is left alone.
func EnsureSuperuser(db *gorm.DB, username, email, password string) (created bool, err error) {
	if username == "" || email == "" || password == "" {
		return false, fmt.Errorf("%w: username, email and password are all required", ErrInvalidInput)
	}

	var profile models.UserProfile
	if err := db.Where("username = ?", username).First(&profile).Error; err == nil {
		log.Printf("Superuser %q already exists", username)
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	user := models.User{
		Name:         username,
		Email:        email,
		PasswordHash: string(hash),
		IsSuperuser:  true,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserProfile{UserID: user.ID, Username: username}).Error
	})
	if err != nil {
		return false, err
	}

	log.Printf("Superuser %q created", username)
	return true, nil
}
