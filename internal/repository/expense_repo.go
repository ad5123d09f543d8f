package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wallblue4/tustockya-backend/internal/model"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]model.Expense, error)
	FindByLocationAndRange(ctx context.Context, locationID uuid.UUID, from, to time.Time) ([]model.Expense, error)
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]model.Expense, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var expenses []model.Expense
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Order("created_at DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) FindByLocationAndRange(ctx context.Context, locationID uuid.UUID, from, to time.Time) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND created_at >= ? AND created_at < ?", locationID, from, to).
		Order("created_at DESC").
		Find(&expenses).Error
	return expenses, err
}
