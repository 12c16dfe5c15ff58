package main

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zoincas/models"
	"zoincas/pkg/summary"
)

// Aggregate queries. Every query here is scoped to the owning user before
// grouping; COALESCE keeps totals at 0 instead of null when no children
// exist.

type accountSummaryRow struct {
	ID             uuid.UUID
	Name           string
	InitialBalance int64
	Count          int64
	Total          int64
}

func accountsWithSummary(userID uuid.UUID) ([]accountSummaryRow, error) {
	var rows []accountSummaryRow
	err := db.Table("accounts").
		Select(`accounts.id, accounts.name, accounts.initial_balance,
			COUNT(transactions.id) AS count,
			COALESCE(SUM(transactions.amount), 0) AS total`).
		Joins("LEFT JOIN transactions ON transactions.account_id = accounts.id").
		Where("accounts.user_id = ?", userID).
		Group("accounts.id").
		Scan(&rows).Error
	return rows, err
}

type categorySummaryRow struct {
	ID    uuid.UUID
	Name  string
	Count int64
	Total int64
}

func categoriesWithSummary(userID uuid.UUID) ([]categorySummaryRow, error) {
	var rows []categorySummaryRow
	err := db.Table("categories").
		Select(`categories.id, categories.name,
			COUNT(transactions.id) AS count,
			COALESCE(SUM(transactions.amount), 0) AS total`).
		Joins("LEFT JOIN transactions ON transactions.category_id = categories.id").
		Where("categories.user_id = ?", userID).
		Group("categories.id").
		Scan(&rows).Error
	return rows, err
}

// shoppingItemTotals is the reusable per-plan rollup of item counts and
// totals, joined wherever a plan's derived total is displayed.
func shoppingItemTotals() *gorm.DB {
	return db.Table("shopping_items").
		Select(`shopping_items.shopping_plan_id,
			COUNT(*) AS count,
			SUM(shopping_items.total) AS total`).
		Group("shopping_items.shopping_plan_id")
}

type shoppingPlanSummaryRow struct {
	ID            uuid.UUID
	Datetime      time.Time
	Title         string
	Count         int64
	Total         int64
	TransactionID *uuid.UUID
}

func shoppingPlansWithSummary(userID uuid.UUID, planID *uuid.UUID) ([]shoppingPlanSummaryRow, error) {
	q := db.Table("shopping_plans").
		Select(`shopping_plans.id, shopping_plans.datetime, shopping_plans.title,
			COALESCE(items.count, 0) AS count,
			COALESCE(items.total, 0) AS total,
			transactions.id AS transaction_id`).
		Joins("LEFT JOIN (?) AS items ON items.shopping_plan_id = shopping_plans.id", shoppingItemTotals()).
		Joins("LEFT JOIN transactions ON transactions.shopping_plan_id = shopping_plans.id").
		Where("shopping_plans.user_id = ?", userID)
	if planID != nil {
		q = q.Where("shopping_plans.id = ?", *planID)
	}
	var rows []shoppingPlanSummaryRow
	err := q.Scan(&rows).Error
	return rows, err
}

type budgetCategorySpendRow struct {
	ID           uuid.UUID
	Name         string
	Amount       int64
	Spend        int64
	BudgetPlanID uuid.UUID
}

// budgetCategoriesWithSpend returns every budget category of the user with
// its derived spend (sum of linked transaction amounts, typically negative),
// alphabetical within each plan.
func budgetCategoriesWithSpend(userID uuid.UUID) ([]budgetCategorySpendRow, error) {
	var rows []budgetCategorySpendRow
	err := db.Table("budget_categories").
		Select(`budget_categories.id, budget_categories.name, budget_categories.amount,
			budget_categories.budget_plan_id,
			COALESCE(SUM(transactions.amount), 0) AS spend`).
		Joins("JOIN budget_plans ON budget_plans.id = budget_categories.budget_plan_id").
		Joins("LEFT JOIN transactions ON transactions.budget_category_id = budget_categories.id").
		Where("budget_plans.user_id = ?", userID).
		Group("budget_categories.id").
		Order("budget_categories.name ASC").
		Scan(&rows).Error
	return rows, err
}

type budgetCategoryOptionRow struct {
	BudgetPlanID uuid.UUID
	Name         string
	CategoryID   uuid.UUID
}

// budgetCategoryOptions lists {plan, category} pairs for the connect-budget
// picker, newest categories first.
func budgetCategoryOptions(userID uuid.UUID) ([]budgetCategoryOptionRow, error) {
	var rows []budgetCategoryOptionRow
	err := db.Table("budget_categories").
		Select(`budget_categories.budget_plan_id, budget_categories.name,
			budget_categories.id AS category_id`).
		Joins("JOIN budget_plans ON budget_plans.id = budget_categories.budget_plan_id").
		Where("budget_plans.user_id = ?", userID).
		Order("budget_categories.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

type transactionRow struct {
	ID                 uuid.UUID
	Datetime           time.Time
	Description        string
	Amount             int64
	AccountID          uuid.UUID
	CategoryID         *uuid.UUID
	ShoppingPlanID     *uuid.UUID
	BudgetCategoryID   *uuid.UUID
	Account            string
	Category           *string
	BudgetCategory     *string
	ShoppingPlanAmount int64
}

// transactionsQuery is the shared joined projection behind every transaction
// listing: account and category names, budget category name and the linked
// shopping plan's derived total.
func transactionsQuery(userID uuid.UUID) *gorm.DB {
	return db.Table("transactions").
		Select(`transactions.id, transactions.datetime, transactions.description,
			transactions.amount, transactions.account_id, transactions.category_id,
			transactions.shopping_plan_id, transactions.budget_category_id,
			accounts.name AS account,
			categories.name AS category,
			budget_categories.name AS budget_category,
			COALESCE(items.total, 0) AS shopping_plan_amount`).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Joins("LEFT JOIN budget_categories ON budget_categories.id = transactions.budget_category_id").
		Joins("LEFT JOIN (?) AS items ON items.shopping_plan_id = transactions.shopping_plan_id", shoppingItemTotals()).
		Where("accounts.user_id = ?", userID).
		Order("transactions.datetime DESC")
}

func listTransactions(userID uuid.UUID) ([]transactionRow, error) {
	var rows []transactionRow
	err := transactionsQuery(userID).Scan(&rows).Error
	return rows, err
}

func listTransactionsByAccount(userID, accountID uuid.UUID) ([]transactionRow, error) {
	var rows []transactionRow
	err := transactionsQuery(userID).
		Where("transactions.account_id = ?", accountID).
		Scan(&rows).Error
	return rows, err
}

func listTransactionsByBudgetPlan(userID, planID uuid.UUID) ([]transactionRow, error) {
	var rows []transactionRow
	err := transactionsQuery(userID).
		Where("budget_categories.budget_plan_id = ?", planID).
		Scan(&rows).Error
	return rows, err
}

func getTransactionRow(userID, id uuid.UUID) (*models.Transaction, error) {
	validID, ok, err := scopedTransactionID(userID, id)
	if err != nil || !ok {
		return nil, err
	}
	var tx models.Transaction
	if err := db.First(&tx, "id = ?", validID).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

type incomeExpenseRow struct {
	Income    int64
	Expense   int64
	Remaining int64
}

// incomeExpenseSummary computes the period rollup: income is the sum of
// positive amounts, expense the sum of negative ones, remaining the net.
// A nil period means all time.
func incomeExpenseSummary(userID uuid.UUID, p *summary.Period, accountID *uuid.UUID) (incomeExpenseRow, error) {
	q := db.Table("transactions").
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.user_id = ?", userID)
	if accountID != nil {
		q = q.Where("transactions.account_id = ?", *accountID)
	}
	if p != nil {
		q = q.Where("transactions.datetime >= ? AND transactions.datetime < ?", p.Start, p.ExclusiveEnd())
	}
	var row incomeExpenseRow
	err := q.Select(`
		COALESCE(SUM(CASE WHEN transactions.amount > 0 THEN transactions.amount ELSE 0 END), 0) AS income,
		COALESCE(SUM(CASE WHEN transactions.amount < 0 THEN transactions.amount ELSE 0 END), 0) AS expense,
		COALESCE(SUM(transactions.amount), 0) AS remaining`).
		Scan(&row).Error
	return row, err
}

// categoryBreakdown sums absolute expense amounts per category name over the
// period, descending by magnitude. Only negative-amount transactions count.
func categoryBreakdown(userID uuid.UUID, p summary.Period, accountID *uuid.UUID) ([]summary.CategoryAmount, error) {
	q := db.Table("transactions").
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("accounts.user_id = ?", userID).
		Where("transactions.amount < 0").
		Where("transactions.datetime >= ? AND transactions.datetime < ?", p.Start, p.ExclusiveEnd())
	if accountID != nil {
		q = q.Where("transactions.account_id = ?", *accountID)
	}
	var rows []summary.CategoryAmount
	err := q.Select(`categories.name, SUM(ABS(transactions.amount)) AS amount`).
		Group("categories.name").
		Order("amount DESC").
		Scan(&rows).Error
	return rows, err
}

// incomeExpenseByDay is the sparse per-day rollup behind the chart series;
// summary.FillMissingDays turns it into a gap-free range. Bucketing is
// pinned to UTC to match the UTC-midnight period bounds, independent of the
// session timezone.
func incomeExpenseByDay(userID uuid.UUID, p summary.Period, accountID *uuid.UUID) ([]summary.DayPoint, error) {
	q := db.Table("transactions").
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.user_id = ?", userID).
		Where("transactions.datetime >= ? AND transactions.datetime < ?", p.Start, p.ExclusiveEnd())
	if accountID != nil {
		q = q.Where("transactions.account_id = ?", *accountID)
	}
	var rows []summary.DayPoint
	err := q.Select(`to_char(transactions.datetime AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS date,
		COALESCE(SUM(CASE WHEN transactions.amount > 0 THEN transactions.amount ELSE 0 END), 0) AS income,
		COALESCE(SUM(CASE WHEN transactions.amount < 0 THEN transactions.amount ELSE 0 END), 0) AS expense`).
		Group("date").
		Order("date").
		Scan(&rows).Error
	return rows, err
}
