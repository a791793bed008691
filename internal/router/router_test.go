package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pantrybase/backend/internal/api"
	"github.com/pantrybase/backend/internal/service"
	"github.com/pantrybase/backend/internal/testhelpers"
)

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)

	authService := service.NewAuthService(db, "test-secret", nil)
	profileService := service.NewProfileService(db)
	allergenService := service.NewAllergenService(db)
	ingredientService := service.NewIngredientService(db)
	recipeService := service.NewRecipeService(db)
	pantryService := service.NewPantryService(db)

	h := Handlers{
		Auth:       api.NewAuthHandler(authService),
		Profile:    api.NewProfileHandler(profileService),
		Allergen:   api.NewAllergenHandler(allergenService),
		Ingredient: api.NewIngredientHandler(ingredientService),
		Recipe:     api.NewRecipeHandler(recipeService, profileService, nil),
		Pantry:     api.NewPantryHandler(pantryService),
		Admin:      api.NewAdminHandler(db, allergenService),
	}

	return SetupRouter(h, authService, nil), db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerUser(t *testing.T, engine *gin.Engine, email, username string) string {
	t.Helper()
	w := doJSON(t, engine, "POST", "/api/v1/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthEndpoint(t *testing.T) {
	engine, _ := setupTestServer(t)

	w := doJSON(t, engine, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestRegisterAndLoginFlow(t *testing.T) {
	engine, _ := setupTestServer(t)

	registerUser(t, engine, "alice@example.com", "alice")

	// The email is taken now.
	w := doJSON(t, engine, "POST", "/api/v1/auth/register", "", gin.H{
		"name":     "Imposter",
		"email":    "alice@example.com",
		"username": "alice2",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, engine, "POST", "/api/v1/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	w = doJSON(t, engine, "POST", "/api/v1/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	engine, _ := setupTestServer(t)

	for _, route := range []struct{ method, path string }{
		{"GET", "/api/v1/profile"},
		{"POST", "/api/v1/recipes"},
		{"POST", "/api/v1/ingredients"},
		{"GET", "/api/v1/pantry"},
		{"GET", "/api/v1/admin/users"},
	} {
		w := doJSON(t, engine, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestIngredientEndpoints(t *testing.T) {
	engine, _ := setupTestServer(t)
	token := registerUser(t, engine, "alice@example.com", "alice")

	w := doJSON(t, engine, "POST", "/api/v1/ingredients", token, gin.H{
		"name":     "Water",
		"calories": 0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	// Missing and negative calories both fail validation.
	w = doJSON(t, engine, "POST", "/api/v1/ingredients", token, gin.H{"name": "Air"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, "POST", "/api/v1/ingredients", token, gin.H{"name": "Air", "calories": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Public reads need no token.
	w = doJSON(t, engine, "GET", "/api/v1/ingredients/"+id, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, "GET", "/api/v1/ingredients?q=wat", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Water")

	w = doJSON(t, engine, "GET", "/api/v1/ingredients/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecipeEndpointsWithAllergenExclusion(t *testing.T) {
	engine, db := setupTestServer(t)
	token := registerUser(t, engine, "alice@example.com", "alice")

	_, err := service.SeedAllergens(db)
	require.NoError(t, err)

	w := doJSON(t, engine, "GET", "/api/v1/allergens", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var allergenList struct {
		Allergens []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"allergens"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &allergenList))
	var peanutsID string
	for _, a := range allergenList.Allergens {
		if a.Name == "Peanuts" {
			peanutsID = a.ID
		}
	}
	require.NotEmpty(t, peanutsID)

	w = doJSON(t, engine, "POST", "/api/v1/ingredients", token, gin.H{
		"name":         "Peanut Butter",
		"calories":     588,
		"allergen_ids": []string{peanutsID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	peanutButterID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, engine, "POST", "/api/v1/ingredients", token, gin.H{
		"name":     "Lettuce",
		"calories": 15,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	lettuceID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, engine, "POST", "/api/v1/recipes", token, gin.H{
		"title":        "Peanut Snack",
		"instructions": []string{"Eat peanut butter."},
		"ingredients": []gin.H{
			{"ingredient_id": peanutButterID, "amount": "2", "unit": "tbsp"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, engine, "POST", "/api/v1/recipes", token, gin.H{
		"title":        "Plain Salad",
		"instructions": []string{"Wash and chop lettuce."},
		"ingredients": []gin.H{
			{"ingredient_id": lettuceID, "amount": "1", "unit": "head"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Anonymous listing returns everything.
	w = doJSON(t, engine, "GET", "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Peanut Snack")
	assert.Contains(t, w.Body.String(), "Plain Salad")

	// Explicit exclusion drops the peanut recipe.
	w = doJSON(t, engine, "GET", "/api/v1/recipes?exclude="+peanutsID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Peanut Snack")
	assert.Contains(t, w.Body.String(), "Plain Salad")

	// The same exclusion applies implicitly once the profile avoids peanuts.
	w = doJSON(t, engine, "PUT", "/api/v1/profile/allergens", token, gin.H{
		"allergen_ids": []string{peanutsID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, "GET", "/api/v1/recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Peanut Snack")
	assert.Contains(t, w.Body.String(), "Plain Salad")

	// Malformed exclusion IDs are rejected.
	w = doJSON(t, engine, "GET", "/api/v1/recipes?exclude=nonsense", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestRecipesNotImplemented(t *testing.T) {
	engine, _ := setupTestServer(t)
	token := registerUser(t, engine, "alice@example.com", "alice")

	w := doJSON(t, engine, "GET", "/api/v1/recipes/suggest", token, nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestRecipeOwnershipOverHTTP(t *testing.T) {
	engine, _ := setupTestServer(t)
	aliceToken := registerUser(t, engine, "alice@example.com", "alice")
	bobToken := registerUser(t, engine, "bob@example.com", "bob")

	w := doJSON(t, engine, "POST", "/api/v1/recipes", aliceToken, gin.H{
		"title":        "Toast",
		"instructions": []string{"Toast bread."},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Recipe struct {
			ID string `json:"id"`
		} `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, engine, "PUT", "/api/v1/recipes/"+created.Recipe.ID, bobToken, gin.H{"title": "Stolen Toast"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, engine, "DELETE", "/api/v1/recipes/"+created.Recipe.ID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, engine, "DELETE", "/api/v1/recipes/"+created.Recipe.ID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, "GET", "/api/v1/recipes/"+created.Recipe.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPantryEndpoints(t *testing.T) {
	engine, _ := setupTestServer(t)
	token := registerUser(t, engine, "alice@example.com", "alice")

	w := doJSON(t, engine, "POST", "/api/v1/ingredients", token, gin.H{
		"name":     "Milk",
		"calories": 42,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	milkID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, engine, "POST", "/api/v1/pantry", token, gin.H{
		"ingredient_id": milkID,
		"quantity":      "1 liter",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, "GET", "/api/v1/pantry", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Milk")
	assert.Contains(t, w.Body.String(), "1 liter")

	w = doJSON(t, engine, "DELETE", "/api/v1/pantry/"+milkID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, "DELETE", "/api/v1/pantry/"+milkID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	engine, db := setupTestServer(t)
	userToken := registerUser(t, engine, "alice@example.com", "alice")

	_, err := service.EnsureSuperuser(db, "admin", "admin@example.com", "supersecret")
	require.NoError(t, err)

	w := doJSON(t, engine, "POST", "/api/v1/auth/login", "", gin.H{
		"email":    "admin@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	adminToken := decodeBody(t, w)["token"].(string)

	// Regular accounts are shut out.
	w = doJSON(t, engine, "GET", "/api/v1/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, engine, "GET", "/api/v1/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")

	w = doJSON(t, engine, "POST", "/api/v1/admin/allergens", adminToken, gin.H{
		"name":              "Sulfites",
		"description":       "Preservative found in dried fruit",
		"alternative_names": []string{"E220"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, engine, "POST", "/api/v1/admin/allergens", userToken, gin.H{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The new entry is publicly listed.
	w = doJSON(t, engine, "GET", "/api/v1/allergens", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sulfites")
}

func TestProfileEndpoints(t *testing.T) {
	engine, _ := setupTestServer(t)
	token := registerUser(t, engine, "alice@example.com", "alice")

	w := doJSON(t, engine, "GET", "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)

	w = doJSON(t, engine, "PUT", "/api/v1/profile", token, gin.H{"bio": "Home cook."})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Home cook.")

	w = doJSON(t, engine, "PUT", "/api/v1/profile/allergens", token, gin.H{
		"allergen_ids": []string{"not-a-uuid"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
