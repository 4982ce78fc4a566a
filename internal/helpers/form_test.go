package helpers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessForm(t *testing.T) {
	values := url.Values{
		"name":            {"Annapurna"},
		"area":            {"Kothrud"},
		"priceRange":      {"2500"},
		"phone":           {"98765"},
		"photos":          {"https://img/1.jpg", " ", "https://img/2.jpg"},
		"isMenuAvailable": {"true"},
		"menu":            {`{"monday":{"lunch":{"item":"Thali","description":"Rice and dal"}}}`},
		"unknownField":    {"ignored"},
	}

	payload, err := DecodeMessForm(values)
	require.NoError(t, err)
	require.NoError(t, payload.MenuErr)

	in := payload.Input
	assert.Equal(t, "Annapurna", *in.Name)
	assert.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, in.Photos)
	require.NotNil(t, in.IsMenuAvailable)
	assert.True(t, *in.IsMenuAvailable)
	require.NotNil(t, in.Menu)
	require.NotNil(t, in.Menu.Monday)
	assert.Equal(t, "Thali", in.Menu.Monday.Lunch.Item)
	assert.Nil(t, in.WhatsappLink)
}

func TestDecodeMessFormMenuFlag(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"false", false},
		{"yes", false},
		{"1", false},
		{"TRUE", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			payload, err := DecodeMessForm(url.Values{"isMenuAvailable": {tt.value}})
			require.NoError(t, err)
			require.NotNil(t, payload.Input.IsMenuAvailable)
			assert.Equal(t, tt.want, *payload.Input.IsMenuAvailable)
		})
	}

	payload, err := DecodeMessForm(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, payload.Input.IsMenuAvailable, "absent flag is not supplied")
}

func TestDecodeMessFormMalformedMenu(t *testing.T) {
	payload, err := DecodeMessForm(url.Values{
		"name": {"Annapurna"},
		"menu": {"{not json"},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, payload.MenuErr, ErrMalformedMenu)
	assert.Nil(t, payload.Input.Menu)
	assert.Equal(t, "Annapurna", *payload.Input.Name)
}

func TestDecodeMessJSON(t *testing.T) {
	t.Run("object menu and bool flag", func(t *testing.T) {
		payload, err := DecodeMessJSON([]byte(`{
			"name": "Annapurna",
			"area": "Kothrud",
			"isMenuAvailable": true,
			"menu": {"friday": {"dinner": {"item": "Biryani", "description": "Veg"}}},
			"logo": {"url": "https://img/logo.png", "public_id": "findmymess_logos/x"}
		}`))
		require.NoError(t, err)
		require.NoError(t, payload.MenuErr)

		in := payload.Input
		assert.True(t, *in.IsMenuAvailable)
		assert.Equal(t, "Biryani", in.Menu.Friday.Dinner.Item)
		assert.Equal(t, "findmymess_logos/x", in.Logo.PublicID)
		assert.Nil(t, in.PriceRange)
	})

	t.Run("string menu and string flag", func(t *testing.T) {
		payload, err := DecodeMessJSON([]byte(`{
			"isMenuAvailable": "true",
			"menu": "{\"monday\":{\"breakfast\":{\"item\":\"Poha\",\"description\":\"\"}}}"
		}`))
		require.NoError(t, err)
		require.NoError(t, payload.MenuErr)
		assert.True(t, *payload.Input.IsMenuAvailable)
		assert.Equal(t, "Poha", payload.Input.Menu.Monday.Breakfast.Item)
	})

	t.Run("malformed menu string", func(t *testing.T) {
		payload, err := DecodeMessJSON([]byte(`{"name": "A", "menu": "oops"}`))
		require.NoError(t, err)
		assert.ErrorIs(t, payload.MenuErr, ErrMalformedMenu)
		assert.Nil(t, payload.Input.Menu)
	})

	t.Run("invalid body", func(t *testing.T) {
		_, err := DecodeMessJSON([]byte(`{"name":`))
		assert.Error(t, err)
	})
}
