package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"zoincas/models"
	"zoincas/pkg/money"
)

type transactionResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Datetime           time.Time  `json:"datetime"`
	Description        string     `json:"description"`
	Amount             float64    `json:"amount"`
	AccountID          uuid.UUID  `json:"accountId"`
	CategoryID         *uuid.UUID `json:"categoryId,omitempty"`
	ShoppingPlanID     *uuid.UUID `json:"shoppingPlanId,omitempty"`
	BudgetCategoryID   *uuid.UUID `json:"budgetCategoryId,omitempty"`
	Account            string     `json:"account,omitempty"`
	Category           *string    `json:"category,omitempty"`
	BudgetCategory     *string    `json:"budgetCategory,omitempty"`
	ShoppingPlanAmount float64    `json:"shoppingPlanAmount"`
}

func transactionRowToResponse(r transactionRow) transactionResponse {
	return transactionResponse{
		ID:                 r.ID,
		Datetime:           r.Datetime,
		Description:        r.Description,
		Amount:             money.FromMiliunits(r.Amount),
		AccountID:          r.AccountID,
		CategoryID:         r.CategoryID,
		ShoppingPlanID:     r.ShoppingPlanID,
		BudgetCategoryID:   r.BudgetCategoryID,
		Account:            r.Account,
		Category:           r.Category,
		BudgetCategory:     r.BudgetCategory,
		ShoppingPlanAmount: money.FromMiliunits(r.ShoppingPlanAmount),
	}
}

func transactionToResponse(t models.Transaction) transactionResponse {
	return transactionResponse{
		ID:               t.ID,
		Datetime:         t.Datetime,
		Description:      t.Description,
		Amount:           money.FromMiliunits(t.Amount),
		AccountID:        t.AccountID,
		CategoryID:       t.CategoryID,
		ShoppingPlanID:   t.ShoppingPlanID,
		BudgetCategoryID: t.BudgetCategoryID,
	}
}

type transactionRequest struct {
	Datetime    time.Time  `json:"datetime"`
	Description string     `json:"description" binding:"required"`
	Amount      float64    `json:"amount"`
	AccountID   uuid.UUID  `json:"accountId" binding:"required"`
	CategoryID  *uuid.UUID `json:"categoryId"`
}

func respondTransactionRows(c *gin.Context, rows []transactionRow, err error) {
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(rows) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	out := make([]transactionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, transactionRowToResponse(r))
	}
	respondData(c, http.StatusOK, out)
}

func listTransactionsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	rows, err := listTransactions(userID)
	respondTransactionRows(c, rows, err)
}

func listAccountTransactionsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rows, err := listTransactionsByAccount(userID, id)
	respondTransactionRows(c, rows, err)
}

func listBudgetPlanTransactionsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rows, err := listTransactionsByBudgetPlan(userID, id)
	respondTransactionRows(c, rows, err)
}

func createTransactionHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	owned, err := accountOwned(userID, req.AccountID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !owned {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	tx := models.Transaction{
		Datetime:    req.Datetime,
		Description: req.Description,
		Amount:      money.ToMiliunits(req.Amount),
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
	}
	if tx.Datetime.IsZero() {
		tx.Datetime = time.Now()
	}
	if err := db.Create(&tx).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "create failed")
		return
	}
	respondData(c, http.StatusCreated, []transactionResponse{transactionToResponse(tx)})
}

// createTransactionFromShoppingPlanHandler materializes a shopping plan into
// a transaction against a chosen account. The transaction carries the plan's
// title and datetime; its displayed amount comes from the plan's item total
// through the listing join.
func createTransactionFromShoppingPlanHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		AccountID uuid.UUID `json:"accountId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	plans, err := shoppingPlansWithSummary(userID, &planID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(plans) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	owned, err := accountOwned(userID, req.AccountID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !owned {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	plan := plans[0]
	tx := models.Transaction{
		Datetime:       plan.Datetime,
		Description:    plan.Title,
		AccountID:      req.AccountID,
		ShoppingPlanID: &planID,
	}
	if err := db.Create(&tx).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "create failed")
		return
	}
	respondData(c, http.StatusCreated, []transactionResponse{transactionToResponse(tx)})
}

func getTransactionHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tx, err := getTransactionRow(userID, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if tx == nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []transactionResponse{transactionToResponse(*tx)})
}

// getTransactionBudgetHandler returns the budget plan and category a
// transaction is connected to, for pre-filling the connect form.
func getTransactionBudgetHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	validID, found, err := scopedTransactionID(userID, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	var rows []struct {
		PlanID     uuid.UUID
		CategoryID uuid.UUID
	}
	err = db.Table("transactions").
		Select(`budget_plans.id AS plan_id, transactions.budget_category_id AS category_id`).
		Joins("JOIN budget_categories ON budget_categories.id = transactions.budget_category_id").
		Joins("JOIN budget_plans ON budget_plans.id = budget_categories.budget_plan_id").
		Where("transactions.id = ?", validID).
		Scan(&rows).Error
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
		out = append(out, gin.H{"planId": r.PlanID, "categoryId": r.CategoryID})
	}
	respondData(c, http.StatusOK, out)
}

// getTransactionShoppingHandler returns the account of the transaction a
// shopping plan was materialized into; the path id is the shopping plan id.
func getTransactionShoppingHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var rows []struct {
		AccountID uuid.UUID
	}
	err := db.Table("transactions").
		Select(`transactions.account_id`).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.user_id = ? AND transactions.shopping_plan_id = ?", userID, id).
		Scan(&rows).Error
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
		out = append(out, gin.H{"accountId": r.AccountID})
	}
	respondData(c, http.StatusOK, out)
}

func updateTransactionHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	validID, found, err := scopedTransactionID(userID, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	// moving the transaction to another account stays within the user's own
	owned, err := accountOwned(userID, req.AccountID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !owned {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	datetime := req.Datetime
	if datetime.IsZero() {
		datetime = time.Now()
	}
	err = db.Model(&models.Transaction{}).
		Where("id = ?", validID).
		Updates(map[string]any{
			"datetime":    datetime,
			"description": req.Description,
			"amount":      money.ToMiliunits(req.Amount),
			"account_id":  req.AccountID,
			"category_id": req.CategoryID,
		}).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "update failed")
		return
	}
	var tx models.Transaction
	if err := db.First(&tx, "id = ?", validID).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []transactionResponse{transactionToResponse(tx)})
}

func connectTransactionBudgetHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		PlanID     uuid.UUID `json:"planId" binding:"required"`
		CategoryID uuid.UUID `json:"categoryId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	validID, found, err := scopedTransactionID(userID, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	_, found, err = scopedBudgetCategoryID(userID, req.CategoryID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	if err := db.Model(&models.Transaction{}).
		Where("id = ?", validID).
		Update("budget_category_id", req.CategoryID).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "update failed")
		return
	}
	var tx models.Transaction
	if err := db.First(&tx, "id = ?", validID).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []transactionResponse{transactionToResponse(tx)})
}

func linkTransactionShoppingHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		PlanID uuid.UUID `json:"planId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	validID, found, err := scopedTransactionID(userID, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	owned, err := shoppingPlanOwned(userID, req.PlanID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !owned {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	if err := db.Model(&models.Transaction{}).
		Where("id = ?", validID).
		Update("shopping_plan_id", req.PlanID).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "update failed")
		return
	}
	var tx models.Transaction
	if err := db.First(&tx, "id = ?", validID).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []transactionResponse{transactionToResponse(tx)})
}

// bulkDeleteTransactionsHandler deletes exactly the owned subset of the
// requested ids, silently skipping the rest, and returns the deleted rows.
func bulkDeleteTransactionsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	owned, err := scopedTransactionIDs(userID, parseIDs(req.IDs))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(owned) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	var deleted []models.Transaction
	if err := db.Find(&deleted, "id IN ?", owned).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if err := db.Delete(&models.Transaction{}, "id IN ?", owned).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	out := make([]transactionResponse, 0, len(deleted))
	for _, tx := range deleted {
		out = append(out, transactionToResponse(tx))
	}
	respondData(c, http.StatusOK, out)
}

func deleteTransactionHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	validID, found, err := scopedTransactionID(userID, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	var tx models.Transaction
	if err := db.First(&tx, "id = ?", validID).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	if err := db.Delete(&tx).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	respondData(c, http.StatusOK, []transactionResponse{transactionToResponse(tx)})
}

// transactionsSummaryHandler returns the all-time income/expense/net rollup.
func transactionsSummaryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	row, err := incomeExpenseSummary(userID, nil, nil)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	respondData(c, http.StatusOK, []gin.H{{
		"income":    money.FromMiliunits(row.Income),
		"expense":   money.FromMiliunits(row.Expense),
		"remaining": money.FromMiliunits(row.Remaining),
	}})
}

// exportTransactionsHandler streams the user's transactions as an XLSX
// workbook.
func exportTransactionsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	rows, err := listTransactions(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(rows) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Transactions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "export failed")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Description", "Amount", "Account", "Category"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, h)
	}
	for idx, r := range rows {
		row := idx + 2
		category := ""
		if r.Category != nil {
			category = *r.Category
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Datetime.Format("2006-01-02 15:04"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Description)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), money.FromMiliunits(r.Amount))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Account)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), category)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		respondError(c, http.StatusInternalServerError, "export failed")
	}
}
