package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// categoryRow is the persisted form of a Category.
type categoryRow struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
}

func (c *categoryRow) TableName() string {
	return "categories"
}

func (c categoryRow) toCategory() Category {
	id := c.ID
	return Category{
		ID:          &id,
		Name:        c.Name,
		Description: c.Description,
	}
}

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

// Migrate creates or updates the categories table.
func (r *CategoriesRepository) Migrate() error {
	return r.db.AutoMigrate(&categoryRow{})
}

func (r *CategoriesRepository) GetAllCategories() ([]Category, error) {
	var rows []categoryRow
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = row.toCategory()
	}
	return categories, nil
}

func (r *CategoriesRepository) GetCategory(id uint) (*Category, error) {
	var row categoryRow
	if err := r.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	category := row.toCategory()
	return &category, nil
}

// CreateCategory inserts the category, ignoring any ID it carries, and
// stores the assigned ID back on it.
func (r *CategoriesRepository) CreateCategory(category *Category) error {
	row := categoryRow{
		Name:        category.Name,
		Description: category.Description,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return err
	}
	*category = row.toCategory()
	return nil
}

func (r *CategoriesRepository) UpdateCategory(category *Category) error {
	if category.ID == nil {
		return ErrCategoryNotFound
	}

	res := r.db.Model(&categoryRow{ID: *category.ID}).
		Select("name", "description").
		Updates(categoryRow{Name: category.Name, Description: category.Description})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Updates reports zero rows for unchanged values on some drivers.
		if _, err := r.GetCategory(*category.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *CategoriesRepository) DeleteCategory(id uint) error {
	res := r.db.Delete(&categoryRow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
