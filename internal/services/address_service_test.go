package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/apperr"
	"shopfront/internal/repos"
	"shopfront/internal/services"
)

func addressFixtures(t *testing.T) *services.AddressService {
	t.Helper()
	db := memdb(t)
	if _, err := db.Exec(`
	  INSERT INTO users(id,email,name,password_hash,role) VALUES
	    ('u-1','one@shopfront.test','One','x','USER'),
	    ('u-2','two@shopfront.test','Two','x','USER');
	`); err != nil {
		t.Fatal(err)
	}
	return services.NewAddressService(repos.NewAddressRepo(db))
}

func addr(label string, isDefault bool) services.AddressInput {
	return services.AddressInput{
		Label: label, Recipient: "Jo Tester", Line1: "12 Elm St",
		City: "Springfield", PostalCode: "12345", IsDefault: isDefault,
	}
}

func TestAddressCreate_DefaultClearsPrevious(t *testing.T) {
	svc := addressFixtures(t)

	a1, err := svc.Create("u-1", addr("home", true))
	require.NoError(t, err)
	assert.True(t, a1.IsDefault)

	// a new default demotes the old one
	a2, err := svc.Create("u-1", addr("office", true))
	require.NoError(t, err)
	assert.True(t, a2.IsDefault)

	list, err := svc.List("u-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	defaults := 0
	for _, a := range list {
		if a.IsDefault {
			defaults++
			assert.Equal(t, a2.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	// promoting via update also demotes the current default
	_, err = svc.Update(a1.ID, "u-1", addr("home", true))
	require.NoError(t, err)
	got, err := svc.List("u-1")
	require.NoError(t, err)
	for _, a := range got {
		assert.Equal(t, a.ID == a1.ID, a.IsDefault, "address %s", a.Label)
	}
}

func TestAddressValidationAndOwnership(t *testing.T) {
	svc := addressFixtures(t)

	in := addr("home", false)
	in.Recipient = ""
	_, err := svc.Create("u-1", in)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	a, err := svc.Create("u-1", addr("home", false))
	require.NoError(t, err)

	// another user's addresses are invisible
	_, err = svc.Update(a.ID, "u-2", addr("hijack", false))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	err = svc.Delete(a.ID, "u-2")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, svc.Delete(a.ID, "u-1"))
	list, err := svc.List("u-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
