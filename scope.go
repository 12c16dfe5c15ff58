package main

import (
	"github.com/google/uuid"

	"zoincas/models"
)

// Ownership scoping: every mutating or single-entity read resolves the
// requested id (or id list) to the subset that both exists and belongs,
// directly or through a parent, to the authenticated user. The operation
// then runs against the validated ids only, so a foreign or unknown id
// simply affects zero rows and callers surface that as not-found.

func userByID(id uuid.UUID) (models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	return user, err
}

// scopedTransactionIDs keeps the ids whose owning account belongs to userID.
func scopedTransactionIDs(userID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var owned []uuid.UUID
	err := db.Model(&models.Transaction{}).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.user_id = ? AND transactions.id IN ?", userID, ids).
		Pluck("transactions.id", &owned).Error
	return owned, err
}

func scopedTransactionID(userID, id uuid.UUID) (uuid.UUID, bool, error) {
	owned, err := scopedTransactionIDs(userID, []uuid.UUID{id})
	if err != nil || len(owned) == 0 {
		return uuid.Nil, false, err
	}
	return owned[0], true, nil
}

// scopedShoppingItemIDs keeps the ids whose plan belongs to userID.
func scopedShoppingItemIDs(userID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var owned []uuid.UUID
	err := db.Model(&models.ShoppingItem{}).
		Joins("JOIN shopping_plans ON shopping_plans.id = shopping_items.shopping_plan_id").
		Where("shopping_plans.user_id = ? AND shopping_items.id IN ?", userID, ids).
		Pluck("shopping_items.id", &owned).Error
	return owned, err
}

func scopedShoppingItemID(userID, id uuid.UUID) (uuid.UUID, bool, error) {
	owned, err := scopedShoppingItemIDs(userID, []uuid.UUID{id})
	if err != nil || len(owned) == 0 {
		return uuid.Nil, false, err
	}
	return owned[0], true, nil
}

// scopedBudgetCategoryIDs keeps the ids whose plan belongs to userID.
func scopedBudgetCategoryIDs(userID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var owned []uuid.UUID
	err := db.Model(&models.BudgetCategory{}).
		Joins("JOIN budget_plans ON budget_plans.id = budget_categories.budget_plan_id").
		Where("budget_plans.user_id = ? AND budget_categories.id IN ?", userID, ids).
		Pluck("budget_categories.id", &owned).Error
	return owned, err
}

func scopedBudgetCategoryID(userID, id uuid.UUID) (uuid.UUID, bool, error) {
	owned, err := scopedBudgetCategoryIDs(userID, []uuid.UUID{id})
	if err != nil || len(owned) == 0 {
		return uuid.Nil, false, err
	}
	return owned[0], true, nil
}

// accountOwned reports whether the account exists and belongs to userID.
func accountOwned(userID, id uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&models.Account{}).
		Where("user_id = ? AND id = ?", userID, id).
		Count(&n).Error
	return n > 0, err
}

// shoppingPlanOwned reports whether the plan exists and belongs to userID.
func shoppingPlanOwned(userID, id uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&models.ShoppingPlan{}).
		Where("user_id = ? AND id = ?", userID, id).
		Count(&n).Error
	return n > 0, err
}

// budgetPlanOwned reports whether the plan exists and belongs to userID.
func budgetPlanOwned(userID, id uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&models.BudgetPlan{}).
		Where("user_id = ? AND id = ?", userID, id).
		Count(&n).Error
	return n > 0, err
}
