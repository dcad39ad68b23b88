package mongostore

import (
	"context"

	"productapi/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) CreateProduct(ctx context.Context, p *model.Product) error {
	return insertOne(ctx, s.col(ColProducts), p)
}

func (s *Store) GetProducts(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	return findMany[model.Product](ctx, s.col(ColProducts), productFilter(filter))
}

func (s *Store) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	return findOne[model.Product](ctx, s.col(ColProducts), byID(id))
}

func (s *Store) UpdateProduct(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	if patch.Empty() {
		return s.GetProductByID(ctx, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := s.col(ColProducts).FindOneAndUpdate(ctx, byID(id), productUpdate(patch), opts)
	return decodeOne[model.Product](res)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) (*model.Product, error) {
	return decodeOne[model.Product](s.col(ColProducts).FindOneAndDelete(ctx, byID(id)))
}

// productFilter translates f into a query document. Comparisons are strict.
func productFilter(f model.ProductFilter) bson.D {
	filter := bson.D{}
	if f.Featured != nil {
		filter = append(filter, bson.E{Key: "featured", Value: *f.Featured})
	}
	if f.MaxPrice != nil {
		filter = append(filter, bson.E{Key: "price", Value: bson.D{{Key: "$lt", Value: *f.MaxPrice}}})
	}
	if f.MinRating != nil {
		filter = append(filter, bson.E{Key: "rating", Value: bson.D{{Key: "$gt", Value: *f.MinRating}}})
	}
	return filter
}

// productUpdate builds the update document for a non-empty patch.
func productUpdate(p model.ProductPatch) bson.D {
	update := bson.D{}
	if set := productSet(p); len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	if p.Rating == nil && p.ClearRating {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "rating", Value: ""}}})
	}
	return update
}

func productSet(p model.ProductPatch) bson.D {
	set := bson.D{}
	if p.ProductID != nil {
		set = append(set, bson.E{Key: "productId", Value: *p.ProductID})
	}
	if p.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *p.Name})
	}
	if p.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *p.Price})
	}
	if p.Featured != nil {
		set = append(set, bson.E{Key: "featured", Value: *p.Featured})
	}
	if p.Rating != nil {
		set = append(set, bson.E{Key: "rating", Value: *p.Rating})
	}
	if p.CreatedAt != nil {
		set = append(set, bson.E{Key: "createdAt", Value: *p.CreatedAt})
	}
	if p.Company != nil {
		set = append(set, bson.E{Key: "company", Value: *p.Company})
	}
	return set
}
