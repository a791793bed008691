package types

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents the request body for profile updates
type UpdateProfileRequest struct {
	Bio *string `json:"bio"`
}

// UpdateProfileAllergensRequest replaces the profile's avoided allergen set
type UpdateProfileAllergensRequest struct {
	AllergenIDs []string `json:"allergen_ids" binding:"required"`
}

// CreateIngredientRequest represents the request body for creating an
// ingredient. Calories is a pointer so zero is accepted while a missing
// value still fails validation.
type CreateIngredientRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Calories    *int     `json:"calories" binding:"required,gte=0"`
	AllergenIDs []string `json:"allergen_ids"`
}

// UpdateIngredientRequest represents the request body for updating an ingredient
type UpdateIngredientRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Calories    *int     `json:"calories" binding:"omitempty,gte=0"`
	AllergenIDs []string `json:"allergen_ids"`
}

// RecipeIngredientInput names one ingredient of a recipe with its amount
type RecipeIngredientInput struct {
	IngredientID string `json:"ingredient_id" binding:"required,uuid"`
	Amount       string `json:"amount" binding:"max=50"`
	Unit         string `json:"unit" binding:"max=50"`
	Note         string `json:"note" binding:"max=200"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title        string                  `json:"title" binding:"required,max=200"`
	Instructions []string                `json:"instructions" binding:"required"`
	Servings     int                     `json:"servings" binding:"omitempty,gte=1"`
	PrepTime     int                     `json:"prep_time" binding:"omitempty,gte=0"`
	CookTime     int                     `json:"cook_time" binding:"omitempty,gte=0"`
	Difficulty   string                  `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Ingredients  []RecipeIngredientInput `json:"ingredients"`
}

// UpdateRecipeRequest represents the request body for updating a recipe
type UpdateRecipeRequest struct {
	Title        *string  `json:"title" binding:"omitempty,max=200"`
	Instructions []string `json:"instructions"`
	Servings     *int     `json:"servings" binding:"omitempty,gte=1"`
	PrepTime     *int     `json:"prep_time" binding:"omitempty,gte=0"`
	CookTime     *int     `json:"cook_time" binding:"omitempty,gte=0"`
	Difficulty   *string  `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// AddPantryItemRequest represents the request body for adding or updating a
// pantry entry
type AddPantryItemRequest struct {
	IngredientID string `json:"ingredient_id" binding:"required,uuid"`
	Quantity     string `json:"quantity" binding:"max=100"`
}

// CreateAllergenRequest represents the admin request body for adding a
// custom allergen to the registry
type CreateAllergenRequest struct {
	Name             string   `json:"name" binding:"required,max=100"`
	Description      string   `json:"description" binding:"max=2000"`
	AlternativeNames []string `json:"alternative_names"`
}
