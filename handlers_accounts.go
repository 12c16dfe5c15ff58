package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zoincas/models"
	"zoincas/pkg/money"
)

type accountResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	InitialBalance float64   `json:"initialBalance"`
	Count          int64     `json:"count"`
	Total          float64   `json:"total"`
}

func accountToResponse(a models.Account) accountResponse {
	return accountResponse{
		ID:             a.ID,
		Name:           a.Name,
		InitialBalance: money.FromMiliunits(a.InitialBalance),
	}
}

type accountRequest struct {
	Name           string  `json:"name" binding:"required"`
	InitialBalance float64 `json:"initialBalance"`
}

func listAccountsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	rows, err := accountsWithSummary(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(rows) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	out := make([]accountResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, accountResponse{
			ID:             r.ID,
			Name:           r.Name,
			InitialBalance: money.FromMiliunits(r.InitialBalance),
			Count:          r.Count,
			Total:          money.FromMiliunits(r.Total),
		})
	}
	respondData(c, http.StatusOK, out)
}

func createAccountHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	account := models.Account{
		Name:           req.Name,
		InitialBalance: money.ToMiliunits(req.InitialBalance),
		UserID:         userID,
	}
	if err := db.Create(&account).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "create failed")
		return
	}
	respondData(c, http.StatusCreated, []accountResponse{accountToResponse(account)})
}

func getAccountHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var account models.Account
	if err := db.First(&account, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []accountResponse{accountToResponse(account)})
}

func updateAccountHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	res := db.Model(&models.Account{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(map[string]any{
			"name":            req.Name,
			"initial_balance": money.ToMiliunits(req.InitialBalance),
		})
	if res.Error != nil {
		respondError(c, http.StatusInternalServerError, "update failed")
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	var account models.Account
	if err := db.First(&account, "id = ?", id).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []accountResponse{accountToResponse(account)})
}

func deleteAccountHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var account models.Account
	if err := db.First(&account, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	// transactions cascade with the account
	if err := db.Delete(&account).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	respondData(c, http.StatusOK, []accountResponse{accountToResponse(account)})
}
