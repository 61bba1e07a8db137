package services

import (
	"github.com/google/uuid"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
	"shopfront/internal/repos"
)

type AddressService struct {
	Addrs *repos.AddressRepo
}

func NewAddressService(addrs *repos.AddressRepo) *AddressService {
	return &AddressService{Addrs: addrs}
}

type AddressInput struct {
	Label      string `json:"label"`
	Recipient  string `json:"recipient"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"is_default"`
}

func checkAddress(in AddressInput) error {
	switch {
	case in.Recipient == "":
		return apperr.Validation("recipient is required")
	case in.Line1 == "":
		return apperr.Validation("line1 is required")
	case in.City == "":
		return apperr.Validation("city is required")
	case in.PostalCode == "":
		return apperr.Validation("postal code is required")
	}
	return nil
}

func (s *AddressService) List(userID string) ([]domain.Address, error) {
	return s.Addrs.ListByUser(userID)
}

func (s *AddressService) Create(userID string, in AddressInput) (domain.Address, error) {
	if err := checkAddress(in); err != nil {
		return domain.Address{}, err
	}
	a := domain.Address{
		ID: uuid.NewString(), UserID: userID,
		Label: in.Label, Recipient: in.Recipient,
		Line1: in.Line1, Line2: in.Line2, City: in.City,
		PostalCode: in.PostalCode, Phone: in.Phone, IsDefault: in.IsDefault,
	}
	if err := s.Addrs.Create(&a); err != nil {
		return domain.Address{}, err
	}
	return s.Addrs.Get(a.ID)
}

// Update edits the caller's own address; foreign ids surface as NotFound.
func (s *AddressService) Update(id, userID string, in AddressInput) (domain.Address, error) {
	if err := checkAddress(in); err != nil {
		return domain.Address{}, err
	}
	a, err := s.Addrs.Get(id)
	if err != nil {
		return domain.Address{}, err
	}
	if a.UserID != userID {
		return domain.Address{}, apperr.NotFound("address")
	}
	a.Label, a.Recipient = in.Label, in.Recipient
	a.Line1, a.Line2, a.City = in.Line1, in.Line2, in.City
	a.PostalCode, a.Phone, a.IsDefault = in.PostalCode, in.Phone, in.IsDefault
	if err := s.Addrs.Update(&a); err != nil {
		return domain.Address{}, err
	}
	return s.Addrs.Get(id)
}

func (s *AddressService) Delete(id, userID string) error {
	return s.Addrs.Delete(id, userID)
}
