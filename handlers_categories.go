package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zoincas/models"
	"zoincas/pkg/money"
)

type categoryResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Count int64     `json:"count"`
	Total float64   `json:"total"`
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func listCategoriesHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	rows, err := categoriesWithSummary(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "query failed")
		return
	}
	if len(rows) == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	out := make([]categoryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, categoryResponse{
			ID:    r.ID,
			Name:  r.Name,
			Count: r.Count,
			Total: money.FromMiliunits(r.Total),
		})
	}
	respondData(c, http.StatusOK, out)
}

func createCategoryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	category := models.Category{Name: req.Name, UserID: userID}
	if err := db.Create(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "create failed")
		return
	}
	respondData(c, http.StatusCreated, []categoryResponse{{ID: category.ID, Name: category.Name}})
}

func getCategoryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var category models.Category
	if err := db.First(&category, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []categoryResponse{{ID: category.ID, Name: category.Name}})
}

func updateCategoryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	res := db.Model(&models.Category{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("name", req.Name)
	if res.Error != nil {
		respondError(c, http.StatusInternalServerError, "update failed")
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	respondData(c, http.StatusOK, []categoryResponse{{ID: id, Name: req.Name}})
}

func deleteCategoryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var category models.Category
	if err := db.First(&category, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		respondError(c, http.StatusNotFound, msgNotFound)
		return
	}
	// transactions keep existing, their category_id is set to null
	if err := db.Delete(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	respondData(c, http.StatusOK, []categoryResponse{{ID: category.ID, Name: category.Name}})
}
