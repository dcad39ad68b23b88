// Package seed loads products from a CSV file into the catalog.
package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"productapi/internal/model"
)

// Columns is the expected CSV header.
var Columns = []string{"productId", "name", "price", "featured", "rating", "createdAt", "company"}

// Creator persists one product. *catalog.Service satisfies it.
type Creator interface {
	Create(ctx context.Context, p model.Product) (*model.Product, error)
}

func ImportProductsFromCSV(ctx context.Context, creator Creator, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open CSV file: %w", err)
	}
	defer file.Close()

	return ImportProducts(ctx, creator, file)
}

// ImportProducts reads CSV rows from r and creates a product per row. The first
// row is the header. Rows that fail to parse or to save are logged and skipped.
func ImportProducts(ctx context.Context, creator Creator, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("could not read CSV: %w", err)
	}
	if len(records) == 0 || len(records[0]) != len(Columns) {
		return 0, fmt.Errorf("could not read CSV: header must have %d columns", len(Columns))
	}

	imported := 0
	for i, row := range records {
		if i == 0 {
			continue
		}
		if len(row) != len(Columns) {
			slog.Warn("skipping product row", "row", i+1, "error", fmt.Sprintf("expected %d fields, got %d", len(Columns), len(row)))
			continue
		}

		product, err := parseRow(row)
		if err != nil {
			slog.Warn("skipping product row", "row", i+1, "error", err)
			continue
		}

		if _, err := creator.Create(ctx, product); err != nil {
			slog.Warn("failed to insert product", "row", i+1, "error", err)
			continue
		}
		imported++
	}

	return imported, nil
}

func parseRow(row []string) (model.Product, error) {
	price, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return model.Product{}, fmt.Errorf("price: %w", err)
	}

	var featured bool
	if row[3] != "" {
		if featured, err = strconv.ParseBool(row[3]); err != nil {
			return model.Product{}, fmt.Errorf("featured: %w", err)
		}
	}

	var rating *float64
	if row[4] != "" {
		v, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return model.Product{}, fmt.Errorf("rating: %w", err)
		}
		rating = &v
	}

	createdAt, err := model.ParseTime(strings.TrimSpace(row[5]))
	if err != nil {
		return model.Product{}, fmt.Errorf("createdAt: %w", err)
	}

	return model.Product{
		ProductID: strings.TrimSpace(row[0]),
		Name:      strings.TrimSpace(row[1]),
		Price:     price,
		Featured:  featured,
		Rating:    rating,
		CreatedAt: createdAt,
		Company:   strings.TrimSpace(row[6]),
	}, nil
}
