package postgres

import (
	"context"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// purchaseRepository implements the domain.PurchaseRepository interface.
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository is the constructor for purchaseRepository.
func NewPurchaseRepository(db *gorm.DB) repository.PurchaseRepository {
	return &purchaseRepository{db: db}
}

// Create persists a new purchase record.
func (repo *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	purchaseM := fromPurchaseDomain(purchase)
	if purchaseM.ID == uuid.Nil {
		purchaseM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(purchaseM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown product or purchaser reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create purchase")
	}

	purchase.ID = purchaseM.ID

	return nil
}

// List retrieves every purchase record, newest first.
func (repo *purchaseRepository) List(ctx context.Context) ([]*entity.Purchase, error) {
	var purchaseModels []*model.PurchaseModel
	if err := repo.db.WithContext(ctx).
		Order("time DESC").
		Find(&purchaseModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toPurchaseDomainSlice(purchaseModels), nil
}

// ListByPurchaser retrieves all purchases made by an account, newest first.
func (repo *purchaseRepository) ListByPurchaser(ctx context.Context, purchaserEmail string) ([]*entity.Purchase, error) {
	var purchaseModels []*model.PurchaseModel
	if err := repo.db.WithContext(ctx).
		Where("purchaser_email = ?", purchaserEmail).
		Order("time DESC").
		Find(&purchaseModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toPurchaseDomainSlice(purchaseModels), nil
}

// ListByProduct retrieves all purchases of one product, newest first.
func (repo *purchaseRepository) ListByProduct(ctx context.Context, productSlug string) ([]*entity.Purchase, error) {
	var purchaseModels []*model.PurchaseModel
	if err := repo.db.WithContext(ctx).
		Where("product_slug = ?", productSlug).
		Order("time DESC").
		Find(&purchaseModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toPurchaseDomainSlice(purchaseModels), nil
}

// ListByShop retrieves all purchases of products listed in a shop, newest first.
func (repo *purchaseRepository) ListByShop(ctx context.Context, shopSlug string) ([]*entity.Purchase, error) {
	var purchaseModels []*model.PurchaseModel
	if err := repo.db.WithContext(ctx).
		Joins("JOIN products ON products.slug = purchases.product_slug").
		Where("products.shop_slug = ?", shopSlug).
		Order("purchases.time DESC").
		Find(&purchaseModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toPurchaseDomainSlice(purchaseModels), nil
}

// --- Mapper Functions ---

func toPurchaseDomain(data *model.PurchaseModel) *entity.Purchase {
	if data == nil {
		return nil
	}

	return &entity.Purchase{
		ID:             data.ID,
		ProductSlug:    data.ProductSlug,
		PurchaserEmail: data.PurchaserEmail,
		Amount:         data.Amount,
		PaidCents:      data.PaidCents,
		Time:           data.Time,
	}
}

func toPurchaseDomainSlice(models []*model.PurchaseModel) []*entity.Purchase {
	purchases := make([]*entity.Purchase, 0, len(models))
	for _, purchaseM := range models {
		purchases = append(purchases, toPurchaseDomain(purchaseM))
	}

	return purchases
}

func fromPurchaseDomain(data *entity.Purchase) *model.PurchaseModel {
	if data == nil {
		return nil
	}

	return &model.PurchaseModel{
		ID:             data.ID,
		ProductSlug:    data.ProductSlug,
		PurchaserEmail: data.PurchaserEmail,
		Amount:         data.Amount,
		PaidCents:      data.PaidCents,
		Time:           data.Time,
	}
}
