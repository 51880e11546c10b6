package repository

import (
	"context"

	"github.com/Siva2k2k/ES-TM-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectRepository is the read side of the project directory.
type ProjectRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := GetDB(ctx, r.db).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}
