package services

import (
	"github.com/google/uuid"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
	"shopfront/internal/repos"
	"shopfront/internal/validate"
)

type ReviewService struct {
	Reviews *repos.ReviewRepo
	Prods   *repos.ProductRepo
}

func NewReviewService(reviews *repos.ReviewRepo, prods *repos.ProductRepo) *ReviewService {
	return &ReviewService{Reviews: reviews, Prods: prods}
}

type ProductReviews struct {
	Reviews       []domain.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
}

func (s *ReviewService) ListForProduct(productID string) (ProductReviews, error) {
	if _, err := s.Prods.Get(productID); err != nil {
		return ProductReviews{}, err
	}
	rvs, err := s.Reviews.ListByProduct(productID)
	if err != nil {
		return ProductReviews{}, err
	}
	avg, err := s.Reviews.AverageRating(productID)
	if err != nil {
		return ProductReviews{}, err
	}
	return ProductReviews{Reviews: rvs, AverageRating: avg}, nil
}

func (s *ReviewService) Create(productID, userID string, rating int, comment string) (domain.Review, error) {
	if !validate.Rating(rating) {
		return domain.Review{}, apperr.Validation("rating must be between 1 and 5")
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return domain.Review{}, err
	}
	if !p.Active {
		return domain.Review{}, apperr.NotFound("product")
	}
	exists, err := s.Reviews.Exists(productID, userID)
	if err != nil {
		return domain.Review{}, err
	}
	if exists {
		return domain.Review{}, apperr.Conflict("you have already reviewed this product")
	}
	rv := domain.Review{ID: uuid.NewString(), ProductID: productID, UserID: userID, Rating: rating, Comment: comment}
	if err := s.Reviews.Create(&rv); err != nil {
		return domain.Review{}, err
	}
	return s.Reviews.Get(rv.ID)
}

// Update edits the caller's own review; admins may edit any.
func (s *ReviewService) Update(id, userID, role string, rating int, comment string) (domain.Review, error) {
	if !validate.Rating(rating) {
		return domain.Review{}, apperr.Validation("rating must be between 1 and 5")
	}
	rv, err := s.Reviews.Get(id)
	if err != nil {
		return domain.Review{}, err
	}
	if rv.UserID != userID && role != "ADMIN" {
		return domain.Review{}, apperr.ErrForbidden
	}
	rv.Rating, rv.Comment = rating, comment
	if err := s.Reviews.Update(&rv); err != nil {
		return domain.Review{}, err
	}
	return s.Reviews.Get(id)
}

func (s *ReviewService) Delete(id, userID, role string) error {
	rv, err := s.Reviews.Get(id)
	if err != nil {
		return err
	}
	if rv.UserID != userID && role != "ADMIN" {
		return apperr.ErrForbidden
	}
	return s.Reviews.Delete(id)
}
