package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MessColName = "messes"

type MenuItem struct {
	Item        string `bson:"item" json:"item"`
	Description string `bson:"description" json:"description"`
}

type MealPlan struct {
	Breakfast *MenuItem `bson:"breakfast,omitempty" json:"breakfast,omitempty"`
	Lunch     *MenuItem `bson:"lunch,omitempty" json:"lunch,omitempty"`
	Dinner    *MenuItem `bson:"dinner,omitempty" json:"dinner,omitempty"`
}

// WeeklyMenu is keyed by weekday; any day may be left out.
type WeeklyMenu struct {
	Monday    *MealPlan `bson:"monday,omitempty" json:"monday,omitempty"`
	Tuesday   *MealPlan `bson:"tuesday,omitempty" json:"tuesday,omitempty"`
	Wednesday *MealPlan `bson:"wednesday,omitempty" json:"wednesday,omitempty"`
	Thursday  *MealPlan `bson:"thursday,omitempty" json:"thursday,omitempty"`
	Friday    *MealPlan `bson:"friday,omitempty" json:"friday,omitempty"`
	Saturday  *MealPlan `bson:"saturday,omitempty" json:"saturday,omitempty"`
	Sunday    *MealPlan `bson:"sunday,omitempty" json:"sunday,omitempty"`
}

type DayMenu struct {
	Day  string
	Plan *MealPlan
}

// Days returns the defined days in calendar order.
func (w *WeeklyMenu) Days() []DayMenu {
	if w == nil {
		return nil
	}
	all := []DayMenu{
		{"Monday", w.Monday},
		{"Tuesday", w.Tuesday},
		{"Wednesday", w.Wednesday},
		{"Thursday", w.Thursday},
		{"Friday", w.Friday},
		{"Saturday", w.Saturday},
		{"Sunday", w.Sunday},
	}
	days := make([]DayMenu, 0, len(all))
	for _, d := range all {
		if d.Plan != nil {
			days = append(days, d)
		}
	}
	return days
}

// Logo references an image held by the blob store.
type Logo struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id" json:"public_id"`
}

type Mess struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name            string             `bson:"name" json:"name" validate:"required"`
	Area            string             `bson:"area" json:"area" validate:"required"`
	PriceRange      string             `bson:"priceRange" json:"priceRange" validate:"required"`
	Phone           string             `bson:"phone" json:"phone" validate:"required"`
	WhatsappLink    string             `bson:"whatsappLink,omitempty" json:"whatsappLink,omitempty"`
	Logo            *Logo              `bson:"logo,omitempty" json:"logo,omitempty"`
	Photos          []string           `bson:"photos" json:"photos"`
	IsMenuAvailable bool               `bson:"isMenuAvailable" json:"isMenuAvailable"`
	Menu            *WeeklyMenu        `bson:"menu,omitempty" json:"menu,omitempty"`
	Status          MessStatus         `bson:"status" json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (m *Mess) GetID() primitive.ObjectID {
	return m.ID
}

func (m *Mess) BeforeCreate(now time.Time) {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if m.Photos == nil {
		m.Photos = []string{}
	}
	m.CreatedAt = now
	m.UpdatedAt = now
}

// AfterLoad hides the menu of messes that do not publish one.
func (m *Mess) AfterLoad() {
	if !m.IsMenuAvailable {
		m.Menu = nil
	}
	if m.Photos == nil {
		m.Photos = []string{}
	}
}

// MessInput carries the fields a create or update request supplied.
// Nil fields were not supplied.
type MessInput struct {
	Name            *string
	Area            *string
	PriceRange      *string
	Phone           *string
	WhatsappLink    *string
	Photos          []string
	IsMenuAvailable *bool
	Menu            *WeeklyMenu
	Logo            *Logo
}

func (in *MessInput) ToMess() *Mess {
	m := &Mess{
		Name:         deref(in.Name),
		Area:         deref(in.Area),
		PriceRange:   deref(in.PriceRange),
		Phone:        deref(in.Phone),
		WhatsappLink: deref(in.WhatsappLink),
		Photos:       in.Photos,
		Menu:         in.Menu,
		Logo:         in.Logo,
	}
	if in.IsMenuAvailable != nil {
		m.IsMenuAvailable = *in.IsMenuAvailable
	}
	return m
}

// ValidateUpdate rejects supplied required fields that are blank.
func (in *MessInput) ValidateUpdate() error {
	required := map[string]*string{
		"name":       in.Name,
		"area":       in.Area,
		"priceRange": in.PriceRange,
		"phone":      in.Phone,
	}
	for field, v := range required {
		if v != nil && strings.TrimSpace(*v) == "" {
			return fmt.Errorf("%w: %s cannot be empty", ErrValidation, field)
		}
	}
	return nil
}

// Fields returns the supplied values keyed by their document field names.
func (in *MessInput) Fields() bson.M {
	fields := bson.M{}
	setString := func(key string, v *string) {
		if v != nil {
			fields[key] = strings.TrimSpace(*v)
		}
	}
	setString("name", in.Name)
	setString("area", in.Area)
	setString("priceRange", in.PriceRange)
	setString("phone", in.Phone)
	setString("whatsappLink", in.WhatsappLink)
	if in.Photos != nil {
		fields["photos"] = in.Photos
	}
	if in.IsMenuAvailable != nil {
		fields["isMenuAvailable"] = *in.IsMenuAvailable
	}
	if in.Menu != nil {
		fields["menu"] = in.Menu
	}
	if in.Logo != nil {
		fields["logo"] = in.Logo
	}
	return fields
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
