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

// productRepository implements the domain.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindBySlug retrieves a single product by its slug.
func (repo *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toProductDomain(&productM), nil
}

// List retrieves all products, ordered by slug.
func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel
	if err := repo.db.WithContext(ctx).
		Order("slug ASC").
		Find(&productModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toProductDomainSlice(productModels), nil
}

// ListByShop retrieves all products listed in a shop.
func (repo *productRepository) ListByShop(ctx context.Context, shopSlug string) ([]*entity.Product, error) {
	var productModels []*model.ProductModel
	if err := repo.db.WithContext(ctx).
		Where("shop_slug = ?", shopSlug).
		Order("slug ASC").
		Find(&productModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toProductDomainSlice(productModels), nil
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrProductAlreadyExists.WrapMessage("product slug already taken")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown shop reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product addressed by its current slug.
func (repo *productRepository) Update(ctx context.Context, slug string, product *entity.Product) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("slug = ?", slug).
		Updates(map[string]any{
			"slug":        product.Slug,
			"shop_slug":   product.ShopSlug,
			"name":        product.Name,
			"price_cents": product.PriceCents,
			"available":   product.Available,
			"sold":        product.Sold,
			"details":     product.Details,
			"picture":     product.Picture,
		})

	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrProductAlreadyExists.WrapMessage("product slug already taken")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown shop reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product by slug. Purchase references null out at the schema level.
func (repo *productRepository) Delete(ctx context.Context, slug string) error {
	result := repo.db.WithContext(ctx).
		Where("slug = ?", slug).
		Delete(&model.ProductModel{})

	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		Slug:       data.Slug,
		ShopSlug:   data.ShopSlug,
		Name:       data.Name,
		PriceCents: data.PriceCents,
		Available:  data.Available,
		Sold:       data.Sold,
		Details:    data.Details,
		Picture:    data.Picture,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func toProductDomainSlice(models []*model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(models))
	for _, productM := range models {
		products = append(products, toProductDomain(productM))
	}

	return products
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		Slug:       data.Slug,
		ShopSlug:   data.ShopSlug,
		Name:       data.Name,
		PriceCents: data.PriceCents,
		Available:  data.Available,
		Sold:       data.Sold,
		Details:    data.Details,
		Picture:    data.Picture,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
