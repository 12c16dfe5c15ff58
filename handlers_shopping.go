package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zoincas/models"
	"zoincas/pkg/money"
)

type shoppingPlanResponse struct {
	ID            uuid.UUID  `json:"id"`
	Datetime      time.Time  `json:"datetime"`
	Title         string     `json:"title"`
	Count         int64      `json:"count"`
	Total         float64    `json:"total"`
	TransactionID *uuid.UUID `json:"transactionId"`
}

func shoppingPlanRowToResponse(r shoppingPlanSummaryRow) shoppingPlanResponse {
	return shoppingPlanResponse{
		ID:            r.ID,
		Datetime:      r.Datetime,
		Title:         r.Title,
		Count:         r.Count,
		Total:         money.FromMiliunits(r.Total),
		TransactionID: r.TransactionID,
	}
}

type shoppingPlanRequest struct {
	Title    string    `json:"title" binding:"required"`
	Datetime time.Time `json:"datetime"`
}

func listShoppingPlansHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	rows, err := shoppingPlansWithSummary(userID, nil)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(rows) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	out := make([]shoppingPlanResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, shoppingPlanRowToResponse(r))
	}
	respondData(c, http.StatusOK, out)
}

func createShoppingPlanHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var req shoppingPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	plan := models.ShoppingPlan{
		Title:    req.Title,
		Datetime: req.Datetime,
		UserID:   userID,
	}
	if plan.Datetime.IsZero() {
		plan.Datetime = time.Now()
	}
	if err := db.Create(&plan).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "create failed")
		return
	}
	respondData(c, http.StatusCreated, []shoppingPlanResponse{{
		ID:       plan.ID,
		Datetime: plan.Datetime,
		Title:    plan.Title,
	}})
}

func getShoppingPlanHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rows, err := shoppingPlansWithSummary(userID, &id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(rows) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []shoppingPlanResponse{shoppingPlanRowToResponse(rows[0])})
}

func updateShoppingPlanHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req shoppingPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	datetime := req.Datetime
	if datetime.IsZero() {
		datetime = time.Now()
	}
	res := db.Model(&models.ShoppingPlan{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"title": req.Title, "datetime": datetime})
	if res.Error != nil {
		respondError(c, http.StatusInternalServerError, "update failed")
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	rows, err := shoppingPlansWithSummary(userID, &id)
	if err != nil || len(rows) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []shoppingPlanResponse{shoppingPlanRowToResponse(rows[0])})
}

func deleteShoppingPlanHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var plan models.ShoppingPlan
	if err := db.First(&plan, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	// items go with the plan through the cascade; linked transactions keep
	// existing with shopping_plan_id set to null
	if err := db.Delete(&plan).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	respondData(c, http.StatusOK, []shoppingPlanResponse{{
		ID:       plan.ID,
		Datetime: plan.Datetime,
		Title:    plan.Title,
	}})
}

type shoppingItemResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Amount   float64   `json:"amount"`
	Quantity int64     `json:"quantity"`
	Discount float64   `json:"discount"`
	Tax      float64   `json:"tax"`
	Total    float64   `json:"total"`
	PlanID   uuid.UUID `json:"planId"`
}

func shoppingItemToResponse(it models.ShoppingItem) shoppingItemResponse {
	return shoppingItemResponse{
		ID:       it.ID,
		Name:     it.Name,
		Amount:   money.FromMiliunits(it.Amount),
		Quantity: it.Quantity,
		Discount: money.FromMiliunits(it.Discount),
		Tax:      money.FromMiliunits(it.Tax),
		Total:    money.FromMiliunits(it.Total),
		PlanID:   it.ShoppingPlanID,
	}
}

type shoppingItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Amount   float64 `json:"amount"`
	Quantity int64   `json:"quantity"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
}

func listShoppingItemsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	planID, ok := pathID(c, "planID")
	if !ok {
		return
	}
	owned, err := shoppingPlanOwned(userID, planID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !owned {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	var items []models.ShoppingItem
	if err := db.Find(&items, "shopping_plan_id = ?", planID).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(items) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	out := make([]shoppingItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, shoppingItemToResponse(it))
	}
	respondData(c, http.StatusOK, out)
}

func createShoppingItemHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	planID, ok := pathID(c, "planID")
	if !ok {
		return
	}
	var req shoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	owned, err := shoppingPlanOwned(userID, planID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !owned {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	amount := money.ToMiliunits(req.Amount)
	discount := money.ToMiliunits(req.Discount)
	tax := money.ToMiliunits(req.Tax)
	item := models.ShoppingItem{
		Name:           req.Name,
		Amount:         amount,
		Quantity:       req.Quantity,
		Discount:       discount,
		Tax:            tax,
		Total:          money.ItemTotal(amount, req.Quantity, discount, tax),
		ShoppingPlanID: planID,
	}
	if err := db.Create(&item).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "create failed")
		return
	}
	respondData(c, http.StatusCreated, []shoppingItemResponse{shoppingItemToResponse(item)})
}

func getShoppingItemHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	validID, found, err := scopedShoppingItemID(userID, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	var item models.ShoppingItem
	if err := db.First(&item, "id = ?", validID).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []shoppingItemResponse{shoppingItemToResponse(item)})
}

// updateShoppingItemHandler replaces the item's fields and recomputes the
// stored total from the incoming values.
func updateShoppingItemHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req shoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	validID, found, err := scopedShoppingItemID(userID, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	amount := money.ToMiliunits(req.Amount)
	discount := money.ToMiliunits(req.Discount)
	tax := money.ToMiliunits(req.Tax)
	err = db.Model(&models.ShoppingItem{}).
		Where("id = ?", validID).
		Updates(map[string]any{
			"item":     req.Name,
			"amount":   amount,
			"quantity": req.Quantity,
			"discount": discount,
			"tax":      tax,
			"total":    money.ItemTotal(amount, req.Quantity, discount, tax),
		}).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "update failed")
		return
	}
	var item models.ShoppingItem
	if err := db.First(&item, "id = ?", validID).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []shoppingItemResponse{shoppingItemToResponse(item)})
}

func bulkDeleteShoppingItemsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	owned, err := scopedShoppingItemIDs(userID, parseIDs(req.IDs))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(owned) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	var deleted []models.ShoppingItem
	if err := db.Find(&deleted, "id IN ?", owned).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if err := db.Delete(&models.ShoppingItem{}, "id IN ?", owned).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	out := make([]shoppingItemResponse, 0, len(deleted))
	for _, it := range deleted {
		out = append(out, shoppingItemToResponse(it))
	}
	respondData(c, http.StatusOK, out)
}

func deleteShoppingItemHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	validID, found, err := scopedShoppingItemID(userID, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	var item models.ShoppingItem
	if err := db.First(&item, "id = ?", validID).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	if err := db.Delete(&item).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	respondData(c, http.StatusOK, []shoppingItemResponse{shoppingItemToResponse(item)})
}
