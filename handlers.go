package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	msgNotFound     = "The requested resource was not found"
	msgMissingParam = "A required parameter is missing"
	msgUnauthorized = "Unauthorized"
)

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)

	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)

	accounts := authGroup.Group("/accounts")
	accounts.GET("", listAccountsHandler)
	accounts.POST("", createAccountHandler)
	accounts.GET("/:id", getAccountHandler)
	accounts.PATCH("/:id", updateAccountHandler)
	accounts.DELETE("/:id", deleteAccountHandler)

	categories := authGroup.Group("/categories")
	categories.GET("", listCategoriesHandler)
	categories.POST("", createCategoryHandler)
	categories.GET("/:id", getCategoryHandler)
	categories.PATCH("/:id", updateCategoryHandler)
	categories.DELETE("/:id", deleteCategoryHandler)

	transactions := authGroup.Group("/transactions")
	transactions.GET("", listTransactionsHandler)
	transactions.POST("", createTransactionHandler)
	transactions.POST("/bulk-delete", bulkDeleteTransactionsHandler)
	transactions.POST("/shopping-plan/:id", createTransactionFromShoppingPlanHandler)
	transactions.GET("/summary", transactionsSummaryHandler)
	transactions.GET("/export", exportTransactionsHandler)
	transactions.GET("/account/:id", listAccountTransactionsHandler)
	transactions.GET("/budget-plan/:id", listBudgetPlanTransactionsHandler)
	transactions.GET("/:id", getTransactionHandler)
	transactions.GET("/:id/budget", getTransactionBudgetHandler)
	transactions.GET("/:id/shopping", getTransactionShoppingHandler)
	transactions.PATCH("/:id", updateTransactionHandler)
	transactions.PATCH("/:id/budget-category", connectTransactionBudgetHandler)
	transactions.PATCH("/:id/shopping-plan", linkTransactionShoppingHandler)
	transactions.DELETE("/:id", deleteTransactionHandler)

	shoppingPlans := authGroup.Group("/shopping-plans")
	shoppingPlans.GET("", listShoppingPlansHandler)
	shoppingPlans.POST("", createShoppingPlanHandler)
	shoppingPlans.GET("/:id", getShoppingPlanHandler)
	shoppingPlans.PATCH("/:id", updateShoppingPlanHandler)
	shoppingPlans.DELETE("/:id", deleteShoppingPlanHandler)

	shoppingItems := authGroup.Group("/shopping-items")
	shoppingItems.GET("/:planID", listShoppingItemsHandler)
	shoppingItems.POST("/:planID", createShoppingItemHandler)
	shoppingItems.POST("/bulk-delete", bulkDeleteShoppingItemsHandler)
	shoppingItems.GET("/item/:id", getShoppingItemHandler)
	shoppingItems.PATCH("/item/:id", updateShoppingItemHandler)
	shoppingItems.DELETE("/item/:id", deleteShoppingItemHandler)

	budgetPlans := authGroup.Group("/budget-plans")
	budgetPlans.GET("", listBudgetPlansHandler)
	budgetPlans.POST("", createBudgetPlanHandler)
	budgetPlans.GET("/summary", budgetPlansSummaryHandler)
	budgetPlans.GET("/categories", budgetPlanCategoryOptionsHandler)
	budgetPlans.GET("/:id", getBudgetPlanHandler)
	budgetPlans.PATCH("/:id", updateBudgetPlanHandler)
	budgetPlans.DELETE("/:id", deleteBudgetPlanHandler)

	budgetCategories := authGroup.Group("/budget-categories")
	budgetCategories.GET("/:planID", listBudgetCategoriesHandler)
	budgetCategories.POST("/:planID", createBudgetCategoryHandler)
	budgetCategories.POST("/bulk-delete", bulkDeleteBudgetCategoriesHandler)
	budgetCategories.GET("/category/:id", getBudgetCategoryHandler)
	budgetCategories.PATCH("/category/:id", updateBudgetCategoryHandler)
	budgetCategories.DELETE("/category/:id", deleteBudgetCategoryHandler)

	authGroup.GET("/summary", summaryHandler)
}

// respondData wraps every successful payload in the {data, error} envelope.
// data is always an array, even for single-entity responses.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"data": data, "error": []gin.H{}})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"data": []any{}, "error": []gin.H{{"message": msg}}})
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			respondError(c, http.StatusUnauthorized, msgUnauthorized)
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			respondError(c, http.StatusUnauthorized, msgUnauthorized)
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respondError(c, http.StatusUnauthorized, msgUnauthorized)
			c.Abort()
			return
		}
		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			respondError(c, http.StatusUnauthorized, msgUnauthorized)
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		c.Set("userID", userID)
		c.Set("username", username)
		c.Next()
	}
}

// currentUserID returns the authenticated user id set by jwtAuthMiddleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// pathID parses the uuid path parameter, answering 400 on absence or garbage.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	if raw == "" {
		respondError(c, http.StatusBadRequest, msgMissingParam)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, msgMissingParam)
		return uuid.Nil, false
	}
	return id, true
}

// parseIDs converts a bulk-delete id list, dropping malformed entries the
// same way ownership scoping drops foreign ones.
func parseIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, err := uuid.Parse(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := RegisterUser(req.Username, req.Email, req.Password); err != nil {
		respondError(c, http.StatusConflict, err.Error())
		return
	}
	respondData(c, http.StatusCreated, []gin.H{{"message": "user registered successfully"}})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondData(c, http.StatusOK, []gin.H{{"token": tokenString, "username": user.Username}})
}

func meHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	user, err := userByID(userID)
	if err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []gin.H{{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	}})
}
