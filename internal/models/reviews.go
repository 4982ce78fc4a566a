package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReviewColName      = "reviews"
	ReviewTextMaxChars = 500
)

type Review struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MessID         primitive.ObjectID `bson:"messId" json:"messId"`
	UserIdentifier string             `bson:"userIdentifier" json:"userIdentifier" validate:"required"`
	Rating         int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Text           string             `bson:"text" json:"text" validate:"required,max=500"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (r *Review) GetID() primitive.ObjectID {
	return r.ID
}

func (r *Review) BeforeCreate(now time.Time) {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	r.CreatedAt = now
	r.UpdatedAt = now
}

func (r *Review) AfterLoad() {}

func (r *Review) Sanitize() {
	r.UserIdentifier = strings.TrimSpace(r.UserIdentifier)
	r.Text = strings.TrimSpace(r.Text)
}
