package postgres

import (
	"context"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// shopRepository implements the domain.ShopRepository interface.
type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository is the constructor for shopRepository.
func NewShopRepository(db *gorm.DB) repository.ShopRepository {
	return &shopRepository{db: db}
}

// FindBySlug retrieves a single shop by its slug.
func (repo *shopRepository) FindBySlug(ctx context.Context, slug string) (*entity.Shop, error) {
	var shopM model.ShopModel
	if err := repo.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shopM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShopNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toShopDomain(&shopM), nil
}

// List retrieves all shops, ordered by slug.
func (repo *shopRepository) List(ctx context.Context) ([]*entity.Shop, error) {
	var shopModels []*model.ShopModel
	if err := repo.db.WithContext(ctx).
		Order("slug ASC").
		Find(&shopModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toShopDomainSlice(shopModels), nil
}

// ListByOwner retrieves all shops owned by an account.
func (repo *shopRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]*entity.Shop, error) {
	var shopModels []*model.ShopModel
	if err := repo.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("slug ASC").
		Find(&shopModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toShopDomainSlice(shopModels), nil
}

// Create persists a new shop.
func (repo *shopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	shopM := fromShopDomain(shop)

	if err := repo.db.WithContext(ctx).Create(shopM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrShopAlreadyExists.WrapMessage("shop slug already taken")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown shop owner")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create shop")
	}

	shop.CreatedAt = shopM.CreatedAt
	shop.UpdatedAt = shopM.UpdatedAt

	return nil
}

// Update modifies an existing shop addressed by its current slug.
func (repo *shopRepository) Update(ctx context.Context, slug string, shop *entity.Shop) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ShopModel{}).
		Where("slug = ?", slug).
		Updates(map[string]any{
			"slug":        shop.Slug,
			"name":        shop.Name,
			"color":       shop.Color,
			"logo":        shop.Logo,
			"owner_email": shop.OwnerEmail,
		})

	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrShopAlreadyExists.WrapMessage("shop slug already taken")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown shop owner")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update shop")
	}

	if result.RowsAffected == 0 {
		return repository.ErrShopNotFound
	}

	return nil
}

// Delete removes a shop by slug. Products cascade at the schema level.
func (repo *shopRepository) Delete(ctx context.Context, slug string) error {
	result := repo.db.WithContext(ctx).
		Where("slug = ?", slug).
		Delete(&model.ShopModel{})

	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete shop")
	}

	if result.RowsAffected == 0 {
		return repository.ErrShopNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toShopDomain(data *model.ShopModel) *entity.Shop {
	if data == nil {
		return nil
	}

	return &entity.Shop{
		Slug:       data.Slug,
		Name:       data.Name,
		Color:      data.Color,
		Logo:       data.Logo,
		OwnerEmail: data.OwnerEmail,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func toShopDomainSlice(models []*model.ShopModel) []*entity.Shop {
	shops := make([]*entity.Shop, 0, len(models))
	for _, shopM := range models {
		shops = append(shops, toShopDomain(shopM))
	}

	return shops
}

func fromShopDomain(data *entity.Shop) *model.ShopModel {
	if data == nil {
		return nil
	}

	return &model.ShopModel{
		Slug:       data.Slug,
		Name:       data.Name,
		Color:      data.Color,
		Logo:       data.Logo,
		OwnerEmail: data.OwnerEmail,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
