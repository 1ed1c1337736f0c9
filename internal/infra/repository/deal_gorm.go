package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/deal"
	propdomain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/property"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

type DealGormRepository struct {
	db *gorm.DB
}

func NewDealGormRepository(db *gorm.DB) *DealGormRepository {
	return &DealGormRepository{db: db}
}

// --------------------------------------------------
// Imóvel (linha travada dentro da transação)
// --------------------------------------------------

func lockedProperty(tx *gorm.DB, id uint) (*models.Property, error) {
	q := tx
	// sqlite não aceita FOR UPDATE; lá a própria transação serializa
	// as escritas.
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var p models.Property
	if err := q.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("imovel_nao_encontrado")
		}
		return nil, err
	}
	return &p, nil
}

func setPropertyStatus(tx *gorm.DB, id uint, status propdomain.Status) error {
	return tx.Model(&models.Property{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

// --------------------------------------------------
// Transação
// --------------------------------------------------

func (r *DealGormRepository) GetTransaction(
	ctx context.Context,
	id uint,
) (*models.Transaction, error) {

	var t models.Transaction
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *DealGormRepository) CreateTransaction(
	ctx context.Context,
	t *models.Transaction,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockedProperty(tx, t.ImovelID)
		if err != nil {
			return err
		}

		if p.Status != string(propdomain.StatusDisponivel) {
			return httperr.ErrBusiness("imovel_indisponivel")
		}

		if err := tx.Create(t).Error; err != nil {
			return err
		}

		return setPropertyStatus(tx, p.ID, propdomain.StatusAfterDeal(t.Tipo))
	})
}

func (r *DealGormRepository) UpdateTransaction(
	ctx context.Context,
	t *models.Transaction,
	releaseProperty bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(t).Error; err != nil {
			return err
		}

		if releaseProperty {
			return setPropertyStatus(tx, t.ImovelID, propdomain.StatusDisponivel)
		}
		return nil
	})
}

func (r *DealGormRepository) DeleteTransaction(
	ctx context.Context,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).Delete(&models.Transaction{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Contrato
// --------------------------------------------------

func (r *DealGormRepository) GetContract(
	ctx context.Context,
	id uint,
) (*models.Contract, error) {

	var ct models.Contract
	if err := r.db.WithContext(ctx).First(&ct, id).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *DealGormRepository) CreateContract(
	ctx context.Context,
	ct *models.Contract,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockedProperty(tx, ct.ImovelID)
		if err != nil {
			return err
		}

		if p.Status != string(propdomain.StatusDisponivel) {
			return httperr.ErrBusiness("imovel_indisponivel")
		}

		if err := tx.Create(ct).Error; err != nil {
			return err
		}

		return setPropertyStatus(tx, p.ID, propdomain.StatusAfterDeal(ct.Tipo))
	})
}

func (r *DealGormRepository) UpdateContract(
	ctx context.Context,
	ct *models.Contract,
	releaseProperty bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ct).Error; err != nil {
			return err
		}

		if releaseProperty {
			return setPropertyStatus(tx, ct.ImovelID, propdomain.StatusDisponivel)
		}
		return nil
	})
}

func (r *DealGormRepository) DeleteContract(
	ctx context.Context,
	id uint,
) (bool, error) {

	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ct models.Contract
		if err := tx.First(&ct, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		if err := setPropertyStatus(tx, ct.ImovelID, propdomain.StatusDisponivel); err != nil {
			return err
		}
		return tx.Delete(&ct).Error
	})
	return found, err
}

// Compile-time check
var _ domain.Repository = (*DealGormRepository)(nil)
