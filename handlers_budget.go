package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zoincas/models"
	"zoincas/pkg/money"
)

type budgetPlanResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

func budgetPlanToResponse(p models.BudgetPlan) budgetPlanResponse {
	return budgetPlanResponse{ID: p.ID, Title: p.Title, CreatedAt: p.CreatedAt}
}

type budgetPlanRequest struct {
	Title string `json:"title" binding:"required"`
}

func listBudgetPlansHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var plans []models.BudgetPlan
	err := db.Order("created_at DESC").Find(&plans, "user_id = ?", userID).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(plans) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	out := make([]budgetPlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, budgetPlanToResponse(p))
	}
	respondData(c, http.StatusOK, out)
}

func createBudgetPlanHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var req budgetPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	plan := models.BudgetPlan{Title: req.Title, UserID: userID}
	if err := db.Create(&plan).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "create failed")
		return
	}
	respondData(c, http.StatusCreated, []budgetPlanResponse{budgetPlanToResponse(plan)})
}

type budgetCategorySummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Amount float64   `json:"amount"`
	Spend  float64   `json:"spend"`
}

type budgetPlanSummary struct {
	ID         uuid.UUID               `json:"id"`
	Title      string                  `json:"title"`
	Total      float64                 `json:"total"`
	Categories []budgetCategorySummary `json:"categories"`
}

// budgetPlansSummaryHandler assembles every plan with its categories and
// their derived spend. Plans come back newest first, categories alphabetical,
// and a plan's total is the sum of its category allocations.
func budgetPlansSummaryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var plans []models.BudgetPlan
	err := db.Order("created_at DESC").Find(&plans, "user_id = ?", userID).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(plans) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	rows, err := budgetCategoriesWithSpend(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	byPlan := make(map[uuid.UUID][]budgetCategorySpendRow, len(plans))
	for _, r := range rows {
		byPlan[r.BudgetPlanID] = append(byPlan[r.BudgetPlanID], r)
	}
	out := make([]budgetPlanSummary, 0, len(plans))
	for _, p := range plans {
		s := budgetPlanSummary{
			ID:         p.ID,
			Title:      p.Title,
			Categories: make([]budgetCategorySummary, 0, len(byPlan[p.ID])),
		}
		var total int64
		for _, r := range byPlan[p.ID] {
			total += r.Amount
			s.Categories = append(s.Categories, budgetCategorySummary{
				ID:     r.ID,
				Name:   r.Name,
				Amount: money.FromMiliunits(r.Amount),
				Spend:  money.FromMiliunits(r.Spend),
			})
		}
		s.Total = money.FromMiliunits(total)
		out = append(out, s)
	}
	respondData(c, http.StatusOK, out)
}

// budgetPlanCategoryOptionsHandler feeds the connect-a-transaction picker.
func budgetPlanCategoryOptionsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	rows, err := budgetCategoryOptions(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(rows) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		out = append(out, gin.H{
			"planId":     r.BudgetPlanID,
			"categoryId": r.CategoryID,
			"name":       r.Name,
		})
	}
	respondData(c, http.StatusOK, out)
}

func getBudgetPlanHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var plan models.BudgetPlan
	if err := db.First(&plan, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []budgetPlanResponse{budgetPlanToResponse(plan)})
}

func updateBudgetPlanHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req budgetPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	res := db.Model(&models.BudgetPlan{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("title", req.Title)
	if res.Error != nil {
		respondError(c, http.StatusInternalServerError, "update failed")
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	var plan models.BudgetPlan
	if err := db.First(&plan, "id = ?", id).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []budgetPlanResponse{budgetPlanToResponse(plan)})
}

func deleteBudgetPlanHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var plan models.BudgetPlan
	if err := db.First(&plan, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	// categories cascade; transactions connected to them fall back to null
	if err := db.Delete(&plan).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	respondData(c, http.StatusOK, []budgetPlanResponse{budgetPlanToResponse(plan)})
}

type budgetCategoryResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Amount float64   `json:"amount"`
	PlanID uuid.UUID `json:"planId"`
}

func budgetCategoryToResponse(bc models.BudgetCategory) budgetCategoryResponse {
	return budgetCategoryResponse{
		ID:     bc.ID,
		Name:   bc.Name,
		Amount: money.FromMiliunits(bc.Amount),
		PlanID: bc.BudgetPlanID,
	}
}

type budgetCategoryRequest struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount"`
}

func listBudgetCategoriesHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	planID, ok := pathID(c, "planID")
	if !ok {
		return
	}
	owned, err := budgetPlanOwned(userID, planID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !owned {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	var cats []models.BudgetCategory
	err = db.Order("name ASC").Find(&cats, "budget_plan_id = ?", planID).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(cats) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	out := make([]budgetCategoryResponse, 0, len(cats))
	for _, bc := range cats {
		out = append(out, budgetCategoryToResponse(bc))
	}
	respondData(c, http.StatusOK, out)
}

func createBudgetCategoryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	planID, ok := pathID(c, "planID")
	if !ok {
		return
	}
	var req budgetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	owned, err := budgetPlanOwned(userID, planID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !owned {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	bc := models.BudgetCategory{
		Name:         req.Name,
		Amount:       money.ToMiliunits(req.Amount),
		BudgetPlanID: planID,
	}
	if err := db.Create(&bc).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "create failed")
		return
	}
	respondData(c, http.StatusCreated, []budgetCategoryResponse{budgetCategoryToResponse(bc)})
}

func getBudgetCategoryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	validID, found, err := scopedBudgetCategoryID(userID, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	var bc models.BudgetCategory
	if err := db.First(&bc, "id = ?", validID).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []budgetCategoryResponse{budgetCategoryToResponse(bc)})
}

func updateBudgetCategoryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req budgetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	validID, found, err := scopedBudgetCategoryID(userID, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	err = db.Model(&models.BudgetCategory{}).
		Where("id = ?", validID).
		Updates(map[string]any{
			"name":   req.Name,
			"amount": money.ToMiliunits(req.Amount),
		}).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "update failed")
		return
	}
	var bc models.BudgetCategory
	if err := db.First(&bc, "id = ?", validID).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []budgetCategoryResponse{budgetCategoryToResponse(bc)})
}

func bulkDeleteBudgetCategoriesHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	owned, err := scopedBudgetCategoryIDs(userID, parseIDs(req.IDs))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(owned) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	var deleted []models.BudgetCategory
	if err := db.Find(&deleted, "id IN ?", owned).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if err := db.Delete(&models.BudgetCategory{}, "id IN ?", owned).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	out := make([]budgetCategoryResponse, 0, len(deleted))
	for _, bc := range deleted {
		out = append(out, budgetCategoryToResponse(bc))
	}
	respondData(c, http.StatusOK, out)
}

func deleteBudgetCategoryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	validID, found, err := scopedBudgetCategoryID(userID, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	var bc models.BudgetCategory
	if err := db.First(&bc, "id = ?", validID).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	if err := db.Delete(&bc).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	respondData(c, http.StatusOK, []budgetCategoryResponse{budgetCategoryToResponse(bc)})
}
