package service

import (
	"context"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/assistec/assistec-api/internal/domain/repository"
	"github.com/assistec/assistec-api/pkg/apperror"
	"github.com/assistec/assistec-api/pkg/pagination"
	"github.com/google/uuid"
)

// ProductService handles the catalog: stocked products and services
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput represents catalog item create/update data
type ProductInput struct {
	Name     string        `json:"name"`
	Code     string        `json:"code"`
	Kind     enum.ItemKind `json:"kind"`
	Price    float64       `json:"price"`
	Cost     float64       `json:"cost"`
	Quantity int           `json:"quantity"`
	MinStock int           `json:"min_stock"`
	Notes    *string       `json:"notes"`
}

func (s *ProductService) validate(input *ProductInput) error {
	var fieldErrors []apperror.FieldError
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if input.Code == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "code", Message: "Code is required"})
	}
	if input.Price < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price cannot be negative"})
	}
	if input.Quantity < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity", Message: "Quantity cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateProduct creates a new catalog item
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A product with this code already exists")
	}

	product := &entity.Product{
		Name:     input.Name,
		Code:     input.Code,
		Kind:     input.Kind,
		Quantity: input.Quantity,
		MinStock: input.MinStock,
		Notes:    input.Notes,
	}
	product.SetPriceFromDecimal(input.Price)
	product.SetCostFromDecimal(input.Cost)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a catalog item by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates an existing catalog item
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	if input.Code != product.Code {
		existing, err := s.productRepo.GetByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, apperror.NewConflictError("A product with this code already exists")
		}
	}

	product.Name = input.Name
	product.Code = input.Code
	product.Kind = input.Kind
	product.Quantity = input.Quantity
	product.MinStock = input.MinStock
	product.Notes = input.Notes
	product.SetPriceFromDecimal(input.Price)
	product.SetCostFromDecimal(input.Cost)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft deletes a catalog item
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists catalog items with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListLowStock lists stocked products at or below their minimum
func (s *ProductService) ListLowStock(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Product], error) {
	kind := enum.ItemKindProduto
	return s.ListProducts(ctx, &repository.ProductFilterParams{
		Pagination: params,
		Kind:       &kind,
		LowStock:   true,
	})
}
