package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

const productImageFolder = "products"

// ProductService manages the product catalog.
type ProductService struct {
	repo    ports.ProductRepository
	storage ports.FileStorage
	log     zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, storage ports.FileStorage, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, storage: storage, log: log}
}

func (s *ProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrValidation
	}

	if _, err := s.repo.FindBySKU(ctx, in.SKU); err == nil {
		return nil, domain.ErrSKUTaken
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, fmt.Errorf("create product: %w", err)
	}

	images := make([]string, 0, len(in.Images))
	for _, f := range in.Images {
		url, err := s.storage.Upload(ctx, f, productImageFolder)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
		images = append(images, url)
	}

	status := in.Status
	if status == "" {
		status = domain.ProductActive
	}

	product := &domain.Product{
		Name:           in.Name,
		Brand:          in.Brand,
		Category:       in.Category,
		Model:          in.Model,
		SKU:            in.SKU,
		Discount:       in.Discount,
		Stock:          in.Stock,
		Warranty:       in.Warranty,
		Features:       in.Features,
		Specifications: in.Specifications,
		Usage:          in.Usage,
		Status:         status,
		Images:         images,
	}
	return s.repo.Create(ctx, product)
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.FindAll(ctx)
}

// Update applies the provided fields. Changing the SKU re-checks uniqueness;
// new images are appended to the gallery.
func (s *ProductService) Update(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.SKU != "" && in.SKU != product.SKU {
		if _, err := s.repo.FindBySKU(ctx, in.SKU); err == nil {
			return nil, domain.ErrSKUTaken
		} else if !errors.Is(err, domain.ErrProductNotFound) {
			return nil, fmt.Errorf("update product: %w", err)
		}
		product.SKU = in.SKU
	}

	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Brand != "" {
		product.Brand = in.Brand
	}
	if in.Category != "" {
		product.Category = in.Category
	}
	if in.Model != "" {
		product.Model = in.Model
	}
	if in.Warranty != "" {
		product.Warranty = in.Warranty
	}
	if in.Usage != "" {
		product.Usage = in.Usage
	}
	if in.Status != "" {
		product.Status = in.Status
	}
	if in.Features != nil {
		product.Features = in.Features
	}
	if in.Specifications != nil {
		product.Specifications = in.Specifications
	}
	if in.Discount != 0 {
		product.Discount = in.Discount
	}
	if in.Stock != 0 {
		product.Stock = in.Stock
	}

	for _, f := range in.Images {
		url, err := s.storage.Upload(ctx, f, productImageFolder)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
		product.Images = append(product.Images, url)
	}

	return s.repo.Update(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, url := range product.Images {
		if err := s.storage.Delete(ctx, url); err != nil {
			s.log.Warn().Err(err).Str("url", url).Msg("failed to delete product image")
		}
	}
	return nil
}

var _ ports.ProductService = (*ProductService)(nil)
