package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWeight_UnmarshalBSON(t *testing.T) {
	dec, err := primitive.ParseDecimal128("2.10")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value interface{}
		want  Weight
	}{
		{"string", "2.4 kg", "2.4 kg"},
		{"double", 2.5, "2.5"},
		{"int32", int32(3), "3"},
		{"int64", int64(4), "4"},
		{"decimal128", dec, "2.10"},
		{"null", nil, ""},
		{"bool", true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := bson.Marshal(bson.D{{Key: "_id", Value: "r-1"}, {Key: "weight", Value: tc.value}})
			require.NoError(t, err)

			var r Rooster
			require.NoError(t, bson.Unmarshal(doc, &r))
			assert.Equal(t, tc.want, r.Weight)
			assert.Equal(t, "r-1", r.ID)
		})
	}
}

func TestWeight_UnmarshalJSON(t *testing.T) {
	var roosters []Rooster
	body := `[{"weight":"2.4"},{"weight":2.75},{"weight":null},{"weight":{"kg":2}}]`
	require.NoError(t, json.Unmarshal([]byte(body), &roosters))

	require.Len(t, roosters, 4)
	assert.Equal(t, Weight("2.4"), roosters[0].Weight)
	assert.Equal(t, Weight("2.75"), roosters[1].Weight)
	assert.Empty(t, roosters[2].Weight)
	assert.Empty(t, roosters[3].Weight)
}
