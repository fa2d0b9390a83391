package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/storefront/pkg/catalog"
	"github.com/aretw0/storefront/pkg/domain"
)

// Loader builds a catalog from a Loam repository where each document is one product.
type Loader struct {
	Repo *loam.TypedRepository[ProductMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ProductMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and loads its catalog.
func Open(ctx context.Context, dir string) (*catalog.Catalog, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog dir: %w", err)
	}
	repo, err := loam.Init(absPath, loam.WithReadOnly(true), loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("failed to open loam repository: %w", err)
	}
	return New(loam.NewTypedRepository[ProductMetadata](repo)).Load(ctx)
}

// Load reads every document and assembles the catalog.
//
// Products are ordered by id. Categories appear in the order of their
// lowest product id.
func (l *Loader) Load(ctx context.Context) (*catalog.Catalog, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		p, err := toProduct(doc.ID, doc.Data)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		products = append(products, p)
	}

	sort.SliceStable(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	var categories []domain.Category
	index := make(map[string]int)
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			categories = append(categories, domain.Category{Name: p.Category})
			i = len(categories) - 1
			index[p.Category] = i
		}
		categories[i].Products = append(categories[i].Products, p)
	}

	return catalog.New(categories...)
}

func toProduct(docID string, meta ProductMetadata) (domain.Product, error) {
	rawID := meta.ID
	if rawID == nil || rawID == "" {
		rawID = filepath.Base(trimExtension(docID))
	}
	id, err := toInt(rawID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid id: %w", err)
	}

	price, err := toMoney(meta.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid price: %w", err)
	}

	return domain.Product{
		ID:       id,
		Name:     meta.Name,
		Price:    price,
		Image:    meta.Image,
		Category: meta.Category,
	}, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%v is not a whole number", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func toMoney(v any) (domain.Money, error) {
	switch n := v.(type) {
	case nil:
		return 0, fmt.Errorf("missing")
	case int:
		return domain.Cents(int64(n) * 100), nil
	case int64:
		return domain.Cents(n * 100), nil
	case uint64:
		return domain.Cents(int64(n) * 100), nil
	case float64:
		return domain.MoneyFromFloat(n), nil
	case json.Number:
		return domain.ParseMoney(n.String())
	case string:
		return domain.ParseMoney(n)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
