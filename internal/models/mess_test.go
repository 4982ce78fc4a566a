package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func strPtr(s string) *string { return &s }

func validMess() *Mess {
	return &Mess{
		Name:       "Annapurna",
		Area:       "Kothrud",
		PriceRange: "2500-3000",
		Phone:      "9876543210",
		Status:     StatusPending,
	}
}

func TestMessValidation(t *testing.T) {
	require.NoError(t, Validate.Struct(validMess()))

	for _, field := range []string{"Name", "Area", "PriceRange", "Phone"} {
		t.Run("missing "+field, func(t *testing.T) {
			m := validMess()
			switch field {
			case "Name":
				m.Name = ""
			case "Area":
				m.Area = ""
			case "PriceRange":
				m.PriceRange = ""
			case "Phone":
				m.Phone = ""
			}
			assert.Error(t, Validate.Struct(m))
		})
	}

	m := validMess()
	m.Status = "ARCHIVED"
	assert.Error(t, Validate.Struct(m))
}

func TestMessBeforeCreate(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := validMess()
	m.BeforeCreate(now)

	assert.False(t, m.ID.IsZero())
	assert.Equal(t, now, m.CreatedAt)
	assert.Equal(t, now, m.UpdatedAt)
	assert.NotNil(t, m.Photos)

	id := m.ID
	m.BeforeCreate(now)
	assert.Equal(t, id, m.ID, "an assigned id is kept")
}

func TestMessAfterLoadHidesUnavailableMenu(t *testing.T) {
	menu := &WeeklyMenu{Monday: &MealPlan{Lunch: &MenuItem{Item: "Thali"}}}

	m := validMess()
	m.Menu = menu
	m.IsMenuAvailable = false
	m.AfterLoad()
	assert.Nil(t, m.Menu)

	m.Menu = menu
	m.IsMenuAvailable = true
	m.AfterLoad()
	assert.Equal(t, menu, m.Menu)
}

func TestWeeklyMenuDays(t *testing.T) {
	var nilMenu *WeeklyMenu
	assert.Nil(t, nilMenu.Days())

	menu := &WeeklyMenu{
		Sunday:    &MealPlan{Dinner: &MenuItem{Item: "Biryani"}},
		Monday:    &MealPlan{Lunch: &MenuItem{Item: "Thali"}},
		Wednesday: &MealPlan{},
	}
	days := menu.Days()
	require.Len(t, days, 3)
	assert.Equal(t, "Monday", days[0].Day)
	assert.Equal(t, "Wednesday", days[1].Day)
	assert.Equal(t, "Sunday", days[2].Day)
}

func TestMessInputToMess(t *testing.T) {
	on := true
	in := &MessInput{
		Name:            strPtr("  Annapurna "),
		Area:            strPtr("Kothrud"),
		PriceRange:      strPtr("2500"),
		Phone:           strPtr("98765"),
		IsMenuAvailable: &on,
		Logo:            &Logo{URL: "https://img/logo.png", PublicID: "findmymess_logos/logo"},
	}

	m := in.ToMess()
	assert.Equal(t, "Annapurna", m.Name)
	assert.Equal(t, "", m.WhatsappLink)
	assert.True(t, m.IsMenuAvailable)
	assert.Equal(t, "findmymess_logos/logo", m.Logo.PublicID)
	assert.Empty(t, m.Status, "status is decided by the service")
}

func TestMessInputValidateUpdate(t *testing.T) {
	assert.NoError(t, (&MessInput{}).ValidateUpdate())
	assert.NoError(t, (&MessInput{Name: strPtr("New name")}).ValidateUpdate())

	err := (&MessInput{Area: strPtr("   ")}).ValidateUpdate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "area")

	// optional fields may be cleared
	assert.NoError(t, (&MessInput{WhatsappLink: strPtr("")}).ValidateUpdate())
}

func TestMessInputFields(t *testing.T) {
	off := false
	in := &MessInput{
		Name:            strPtr(" Renamed "),
		Photos:          []string{},
		IsMenuAvailable: &off,
	}

	fields := in.Fields()
	assert.Equal(t, bson.M{
		"name":            "Renamed",
		"photos":          []string{},
		"isMenuAvailable": false,
	}, fields)

	assert.Empty(t, (&MessInput{}).Fields())
}
