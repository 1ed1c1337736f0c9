package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/visit"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

type VisitGormRepository struct {
	db *gorm.DB
}

func NewVisitGormRepository(db *gorm.DB) *VisitGormRepository {
	return &VisitGormRepository{db: db}
}

func (r *VisitGormRepository) GetProperty(
	ctx context.Context,
	id uint,
) (*models.Property, error) {

	var p models.Property
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *VisitGormRepository) GetBroker(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *VisitGormRepository) GetVisit(
	ctx context.Context,
	id uint,
) (*models.Visit, error) {

	var v models.Visit
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// lockBroker trava a linha do corretor para serializar confirmações
// concorrentes no mesmo horário. sqlite não aceita FOR UPDATE; lá a
// própria transação serializa as escritas.
func lockBroker(tx *gorm.DB, corretorID uint) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	var u models.User
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&u, corretorID).Error
}

func confirmedSlotTaken(
	tx *gorm.DB,
	corretorID uint,
	data string,
	hora string,
	excludeID uint,
) (bool, error) {

	q := tx.Model(&models.Visit{}).
		Where(
			"corretor_id = ? AND data = ? AND hora = ? AND status = ?",
			corretorID, data, hora, string(domain.StatusConfirmado),
		)

	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *VisitGormRepository) CreateVisit(
	ctx context.Context,
	v *models.Visit,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBroker(tx, v.CorretorID); err != nil {
			return err
		}

		taken, err := confirmedSlotTaken(tx, v.CorretorID, v.Data, v.Hora, 0)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrBusiness("horario_indisponivel")
		}

		return tx.Create(v).Error
	})
}

func (r *VisitGormRepository) UpdateVisit(
	ctx context.Context,
	v *models.Visit,
	checkSlot bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if checkSlot {
			if err := lockBroker(tx, v.CorretorID); err != nil {
				return err
			}

			taken, err := confirmedSlotTaken(tx, v.CorretorID, v.Data, v.Hora, v.ID)
			if err != nil {
				return err
			}
			if taken {
				return httperr.ErrBusiness("horario_indisponivel")
			}
		}

		return tx.Save(v).Error
	})
}

// Compile-time check
var _ domain.Repository = (*VisitGormRepository)(nil)
