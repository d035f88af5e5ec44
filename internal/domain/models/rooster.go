package models

import (
	"encoding/json"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// HealthGrade is the ordinal health assessment recorded for a rooster.
type HealthGrade string

const (
	HealthExcellent HealthGrade = "excellent"
	HealthGood      HealthGrade = "good"
	HealthFair      HealthGrade = "fair"
	HealthPoor      HealthGrade = "poor"
)

// RoosterStatus is the inventory state of a rooster.
type RoosterStatus string

const (
	RoosterAvailable  RoosterStatus = "Available"
	RoosterSold       RoosterStatus = "Sold"
	RoosterReserved   RoosterStatus = "Reserved"
	RoosterQuarantine RoosterStatus = "Quarantine"
	RoosterDeceased   RoosterStatus = "Deceased"
)

// Rooster is one bird in the inventory.
type Rooster struct {
	ID        string        `bson:"_id,omitempty" json:"id"`
	Breed     string        `bson:"breed" json:"breed"`
	Health    HealthGrade   `bson:"health" json:"health"`
	Status    RoosterStatus `bson:"status" json:"status"`
	Weight    Weight        `bson:"weight" json:"weight"`
	DateAdded string        `bson:"dateAdded" json:"dateAdded"`
}

// Weight is a rooster weight in kg as recorded, e.g. "2.4" or "2.4 kg". Numeric
// values decode to their decimal text; values of any other type decode empty.
type Weight string

// UnmarshalBSONValue accepts string and numeric BSON values.
func (w *Weight) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*w = Weight(raw.StringValue())
	case bsontype.Double:
		*w = Weight(strconv.FormatFloat(raw.Double(), 'f', -1, 64))
	case bsontype.Int32:
		*w = Weight(strconv.FormatInt(int64(raw.Int32()), 10))
	case bsontype.Int64:
		*w = Weight(strconv.FormatInt(raw.Int64(), 10))
	case bsontype.Decimal128:
		*w = Weight(raw.Decimal128().String())
	default:
		*w = ""
	}
	return nil
}

// UnmarshalJSON accepts JSON strings and numbers.
func (w *Weight) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*w = Weight(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*w = Weight(num.String())
		return nil
	}
	*w = ""
	return nil
}

// RoosterStats counts roosters by status.
type RoosterStats struct {
	Total      int `json:"total"`
	Available  int `json:"available"`
	Sold       int `json:"sold"`
	Reserved   int `json:"reserved"`
	Quarantine int `json:"quarantine"`
	Deceased   int `json:"deceased"`
}

// Add increments the counter matching status.
func (s *RoosterStats) Add(status RoosterStatus, n int) {
	s.Total += n
	switch status {
	case RoosterAvailable:
		s.Available += n
	case RoosterSold:
		s.Sold += n
	case RoosterReserved:
		s.Reserved += n
	case RoosterQuarantine:
		s.Quarantine += n
	case RoosterDeceased:
		s.Deceased += n
	}
}
