package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"centavo/internal/config"
	"centavo/internal/handlers"
	"centavo/internal/logger"
	"centavo/internal/middleware"
	"centavo/internal/models"
	"centavo/internal/services"
	"centavo/internal/validator"
)

const sessionSecret = "integration-test-secret"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Transaction{},
		&models.Budget{},
		&models.SavingsGoal{},
		&models.RecurringTransaction{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	return setupAppWithConfig(t, &config.Config{SessionSecret: sessionSecret})
}

// setupAppWithConfig builds the stack with a custom config, e.g. an email allow-list.
func setupAppWithConfig(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	budgetService := services.NewBudgetService(db)
	transactionService := services.NewTransactionService(db, budgetService)
	savingsGoalService := services.NewSavingsGoalService(db)
	recurringService := services.NewRecurringService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	goalHandler := handlers.NewSavingsGoalHandler(savingsGoalService, auditService)
	recurringHandler := handlers.NewRecurringHandler(recurringService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(cfg))
	v1.Use(middleware.ProvisionUser(userService))

	v1.GET("/me", userHandler.GetCurrentUser)
	v1.PUT("/me", userHandler.UpdateProfile)

	categories := v1.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/monthly", transactionHandler.GetMonthly)
	transactions.GET("/stats", transactionHandler.GetStats)
	transactions.POST("/bulk-delete", transactionHandler.BulkDeleteTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := v1.Group("/budgets")
	budgets.GET("", budgetHandler.GetMonthlyBudgets)
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.POST("/copy", budgetHandler.CopyFromPreviousMonth)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	goals := v1.Group("/goals")
	goals.GET("", goalHandler.GetGoals)
	goals.POST("", goalHandler.CreateGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.POST("/:id/contribute", goalHandler.Contribute)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	recurring := v1.Group("/recurring")
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// sessionToken signs a session token the way the identity provider would.
func sessionToken(t *testing.T, externalID, email string) string {
	t.Helper()
	token, err := middleware.NewSessionToken(sessionSecret, externalID, email, "Test User", time.Hour)
	if err != nil {
		t.Fatalf("failed to sign session token: %v", err)
	}
	return token
}

// firstCategoryID returns the id of one of the user's seeded categories with
// the given type, provisioning the user via /me if needed.
func (app *testApp) firstCategoryID(t *testing.T, token, categoryType string) string {
	t.Helper()
	rec := app.request("GET", "/api/v1/categories?type="+categoryType, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("listing categories failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	categories := result["categories"].([]interface{})
	if len(categories) == 0 {
		t.Fatalf("expected seeded %s categories", categoryType)
	}
	return categories[0].(map[string]interface{})["id"].(string)
}
