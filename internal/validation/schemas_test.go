package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidator(t *testing.T) {
	sv, err := NewSchemaValidator()
	require.NoError(t, err)

	t.Run("valid movie passes", func(t *testing.T) {
		result := sv.ValidateMovie(map[string]interface{}{
			"id":     "tt0000001",
			"title":  "Some Film",
			"genres": []string{"Drama"},
			"rating": 7.5,
		})
		assert.True(t, result.Valid, "errors: %v", result.Errors)
	})

	t.Run("movie without genres fails", func(t *testing.T) {
		result := sv.ValidateMovie(map[string]interface{}{
			"id":    "tt0000001",
			"title": "Some Film",
		})
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Errors)
	})

	t.Run("song with out-of-range energy fails", func(t *testing.T) {
		result := sv.ValidateSong(map[string]interface{}{
			"id":     "sg99",
			"title":  "Loud",
			"artist": "Someone",
			"genres": []string{"Rock"},
			"energy": 140,
		})
		assert.False(t, result.Valid)
	})

	t.Run("podcast requires categories", func(t *testing.T) {
		result := sv.ValidatePodcast(map[string]interface{}{
			"id":         "pc99",
			"title":      "Empty",
			"categories": []string{},
		})
		assert.False(t, result.Valid)
	})

	t.Run("feedback with unknown type fails", func(t *testing.T) {
		result := sv.ValidateFeedback(map[string]interface{}{
			"user_id":       "u1",
			"item_id":       "sg01",
			"domain":        "music",
			"feedback_type": "meh",
		})
		assert.False(t, result.Valid)
	})

	t.Run("like feedback passes without rating", func(t *testing.T) {
		result := sv.ValidateFeedback(map[string]interface{}{
			"user_id":       "u1",
			"item_id":       "sg01",
			"domain":        "music",
			"feedback_type": "like",
		})
		assert.True(t, result.Valid, "errors: %v", result.Errors)
	})
}
