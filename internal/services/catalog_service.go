package services

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
	"shopfront/internal/repos"
	"shopfront/internal/slug"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// ---------- Categories ----------

func (s *CatalogService) ListCategories(includeInactive bool) ([]domain.Category, error) {
	return s.Cats.List(includeInactive)
}

func (s *CatalogService) GetCategory(id string) (domain.Category, error) {
	return s.Cats.Get(id)
}

func (s *CatalogService) CreateCategory(name string) (domain.Category, error) {
	sl := slug.Make(name)
	if sl == "" {
		return domain.Category{}, apperr.Validation("category name must contain letters or digits")
	}
	taken, err := s.Cats.SlugExists(sl, "")
	if err != nil {
		return domain.Category{}, err
	}
	if taken {
		return domain.Category{}, apperr.Conflict("category slug %q already exists", sl)
	}
	c := domain.Category{ID: uuid.NewString(), Name: name, Slug: sl, Active: true}
	if err := s.Cats.Create(&c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(id, name string) (domain.Category, error) {
	c, err := s.Cats.Get(id)
	if err != nil {
		return domain.Category{}, err
	}
	sl := slug.Make(name)
	if sl == "" {
		return domain.Category{}, apperr.Validation("category name must contain letters or digits")
	}
	taken, err := s.Cats.SlugExists(sl, id)
	if err != nil {
		return domain.Category{}, err
	}
	if taken {
		return domain.Category{}, apperr.Conflict("category slug %q already exists", sl)
	}
	c.Name, c.Slug = name, sl
	if err := s.Cats.Update(&c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

// DeleteCategory soft-deletes; a category carrying products stays.
func (s *CatalogService) DeleteCategory(id string) error {
	n, err := s.Cats.ProductCount(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("category has %d products and cannot be deleted", n)
	}
	return s.Cats.SoftDelete(id)
}

// ---------- Products ----------

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Search(q, category string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.Search(q, category, pageSize, offset)
}

type ProductInput struct {
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

func (s *CatalogService) validateProduct(in ProductInput) error {
	if in.Price.IsNegative() {
		return apperr.Validation("price must not be negative")
	}
	if in.Stock < 0 {
		return apperr.Validation("stock must not be negative")
	}
	cat, err := s.Cats.Get(in.CategoryID)
	if err != nil {
		return err
	}
	if !cat.Active {
		return apperr.Validation("category %s is inactive", in.CategoryID)
	}
	return nil
}

func (s *CatalogService) CreateProduct(in ProductInput) (domain.Product, error) {
	sl := slug.Make(in.Name)
	if sl == "" {
		return domain.Product{}, apperr.Validation("product name must contain letters or digits")
	}
	if err := s.validateProduct(in); err != nil {
		return domain.Product{}, err
	}
	taken, err := s.Prods.SlugExists(sl, "")
	if err != nil {
		return domain.Product{}, err
	}
	if taken {
		return domain.Product{}, apperr.Conflict("product slug %q already exists", sl)
	}
	p := domain.Product{
		ID:          uuid.NewString(),
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Slug:        sl,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Active:      true,
	}
	if err := s.Prods.Create(&p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// UpdateProduct rewrites descriptive fields; stock moves only through
// the stock ledger.
func (s *CatalogService) UpdateProduct(id string, in ProductInput) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	sl := slug.Make(in.Name)
	if sl == "" {
		return domain.Product{}, apperr.Validation("product name must contain letters or digits")
	}
	if err := s.validateProduct(in); err != nil {
		return domain.Product{}, err
	}
	taken, err := s.Prods.SlugExists(sl, id)
	if err != nil {
		return domain.Product{}, err
	}
	if taken {
		return domain.Product{}, apperr.Conflict("product slug %q already exists", sl)
	}
	p.CategoryID, p.Name, p.Slug, p.Description, p.Price = in.CategoryID, in.Name, sl, in.Description, in.Price
	if err := s.Prods.Update(&p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(id string) error {
	return s.Prods.SoftDelete(id)
}
