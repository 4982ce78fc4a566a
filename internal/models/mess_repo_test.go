package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAreaFilterQuotesInput(t *testing.T) {
	filter := AreaFilter("Sector 1.5 (East)", StatusApproved)

	re, ok := filter["area"].(primitive.Regex)
	if assert.True(t, ok) {
		assert.Equal(t, `Sector 1\.5 \(East\)`, re.Pattern)
		assert.Equal(t, "i", re.Options)
	}
	assert.Equal(t, StatusApproved, filter["status"])
}
