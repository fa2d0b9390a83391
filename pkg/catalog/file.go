package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/storefront/pkg/domain"
	"gopkg.in/yaml.v3"
)

// File is the on-disk catalog layout shared by YAML and JSON files.
//
//	categories:
//	  - name: Flowering Plants
//	    products:
//	      - id: 1
//	        name: Rose
//	        price: 25.99
//	        image: rose.jpeg
type File struct {
	Categories []fileCategory `yaml:"categories" json:"categories"`
}

type fileCategory struct {
	Name     string        `yaml:"name" json:"name"`
	Products []fileProduct `yaml:"products" json:"products"`
}

type fileProduct struct {
	ID    int          `yaml:"id" json:"id"`
	Name  string       `yaml:"name" json:"name"`
	Price domain.Money `yaml:"-" json:"price"`
	Image string       `yaml:"image" json:"image"`

	// YAML goes through yamlPrice since domain.Money stays free of yaml tags.
	YAMLPrice yamlPrice `yaml:"price" json:"-"`
}

type yamlPrice struct {
	set   bool
	value domain.Money
}

func (p *yamlPrice) UnmarshalYAML(node *yaml.Node) error {
	v, err := parsePrice(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	p.value, p.set = v, true
	return nil
}

func parsePrice(raw string) (domain.Money, error) {
	v, err := domain.ParseMoney(raw)
	if err == nil {
		return v, nil
	}
	f, ferr := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if ferr != nil {
		return 0, err
	}
	return domain.MoneyFromFloat(f), nil
}

// LoadFile reads a catalog file. Files ending in .json are parsed as JSON,
// everything else as YAML.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	format := "yaml"
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = "json"
	}
	return Parse(data, format)
}

// Parse decodes catalog data in the given format ("yaml" or "json").
func Parse(data []byte, format string) (*Catalog, error) {
	var f File
	switch format {
	case "json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse catalog json: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
		}
		for ci := range f.Categories {
			for pi := range f.Categories[ci].Products {
				p := &f.Categories[ci].Products[pi]
				if p.YAMLPrice.set {
					p.Price = p.YAMLPrice.value
				}
			}
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	categories := make([]domain.Category, 0, len(f.Categories))
	for _, fc := range f.Categories {
		cat := domain.Category{Name: fc.Name}
		for _, fp := range fc.Products {
			cat.Products = append(cat.Products, domain.Product{
				ID:       fp.ID,
				Name:     fp.Name,
				Price:    fp.Price,
				Image:    fp.Image,
				Category: fc.Name,
			})
		}
		categories = append(categories, cat)
	}
	return New(categories...)
}
