package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

const productCollection = "products"

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productCollection)}
}

type productDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Brand          string             `bson:"brand,omitempty"`
	Category       string             `bson:"category,omitempty"`
	Model          string             `bson:"model,omitempty"`
	SKU            string             `bson:"sku"`
	Discount       float64            `bson:"discount"`
	Stock          int                `bson:"stock"`
	Warranty       string             `bson:"warranty,omitempty"`
	Features       []string           `bson:"features"`
	Specifications map[string]string  `bson:"specifications"`
	Usage          string             `bson:"usage,omitempty"`
	Status         string             `bson:"status"`
	Images         []string           `bson:"images"`
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}

func (d *productDoc) toDomain() *domain.Product {
	return &domain.Product{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Brand:          d.Brand,
		Category:       d.Category,
		Model:          d.Model,
		SKU:            d.SKU,
		Discount:       d.Discount,
		Stock:          d.Stock,
		Warranty:       d.Warranty,
		Features:       d.Features,
		Specifications: d.Specifications,
		Usage:          d.Usage,
		Status:         d.Status,
		Images:         d.Images,
		CreatedAt:      unixToTime(d.CreatedAt),
		UpdatedAt:      unixToTime(d.UpdatedAt),
	}
}

func fromProduct(p *domain.Product) bson.M {
	return bson.M{
		"name":           p.Name,
		"brand":          p.Brand,
		"category":       p.Category,
		"model":          p.Model,
		"sku":            p.SKU,
		"discount":       p.Discount,
		"stock":          p.Stock,
		"warranty":       p.Warranty,
		"features":       p.Features,
		"specifications": p.Specifications,
		"usage":          p.Usage,
		"status":         p.Status,
		"images":         p.Images,
		"updated_at":     time.Now().UTC().Unix(),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	now := time.Now().UTC()
	doc := productDoc{
		Name:           product.Name,
		Brand:          product.Brand,
		Category:       product.Category,
		Model:          product.Model,
		SKU:            product.SKU,
		Discount:       product.Discount,
		Stock:          product.Stock,
		Warranty:       product.Warranty,
		Features:       product.Features,
		Specifications: product.Specifications,
		Usage:          product.Usage,
		Status:         product.Status,
		Images:         product.Images,
		CreatedAt:      now.Unix(),
		UpdatedAt:      now.Unix(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSKUTaken
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.findOne(ctx, bson.M{"sku": sku})
}

func (r *ProductRepository) findOne(ctx context.Context, filter bson.M) (*domain.Product, error) {
	var doc productDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cur.Close(ctx)

	var products []*domain.Product
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, doc.toDomain())
	}
	return products, cur.Err()
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fromProduct(product)})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSKUTaken
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProductNotFound
	}
	return r.FindByID(ctx, product.ID)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

var _ ports.ProductRepository = (*ProductRepository)(nil)
