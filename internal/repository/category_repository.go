package repository

import (
	"github.com/loftchat/loftchat-backend/internal/models"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *CategoryRepository) FindByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) ListByUser(userID uint) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("user_id = ?", userID).
		Order("rank ASC, id ASC").
		Find(&categories).Error
	return categories, err
}

// NextRank returns max(rank)+1 over the user's categories, or 0 when the user
// has none. Ranks are comparison keys only and are not kept dense.
func (r *CategoryRepository) NextRank(userID uint) (int, error) {
	var maxRank *int
	err := r.db.Model(&models.Category{}).
		Where("user_id = ?", userID).
		Select("MAX(rank)").
		Scan(&maxRank).Error
	if err != nil {
		return 0, err
	}
	if maxRank == nil {
		return 0, nil
	}
	return *maxRank + 1, nil
}

func (r *CategoryRepository) UpdateTitle(id uint, title string) error {
	return r.db.Model(&models.Category{}).Where("id = ?", id).
		Update("title", title).Error
}

func (r *CategoryRepository) UpdateRank(id uint, rank int) error {
	return r.db.Model(&models.Category{}).Where("id = ?", id).
		Update("rank", rank).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}
