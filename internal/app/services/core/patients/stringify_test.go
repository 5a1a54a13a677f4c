package patients

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStringifyDocument(t *testing.T) {
	objectID, err := primitive.ObjectIDFromHex("65a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err)
	decimal, err := primitive.ParseDecimal128("12.50")
	require.NoError(t, err)

	raw := mustRaw(t, bson.D{
		{Key: "_id", Value: objectID},
		{Key: "Name", Value: "Alice"},
		{Key: "PatientID", Value: "P1"},
		{Key: "Visits", Value: int32(3)},
		{Key: "Counter", Value: int64(9007199254740993)},
		{Key: "Weight", Value: 70.0},
		{Key: "Height", Value: 1.82},
		{Key: "Active", Value: true},
		{Key: "Deleted", Value: nil},
		{Key: "CreatedAt", Value: primitive.NewDateTimeFromTime(time.Date(2024, 3, 1, 9, 30, 0, 125000000, time.UTC))},
		{Key: "Balance", Value: decimal},
		{Key: "Address", Value: bson.D{{Key: "city", Value: "Jakarta"}, {Key: "zip", Value: int32(10110)}}},
		{Key: "Tags", Value: bson.A{"a", int32(1)}},
	})

	document, err := StringifyDocument(raw)
	require.NoError(t, err)

	expected := [][2]string{
		{"_id", "65a1f0c2e4b0a1b2c3d4e5f6"},
		{"Name", "Alice"},
		{"PatientID", "P1"},
		{"Visits", "3"},
		{"Counter", "9007199254740993"},
		{"Weight", "70.0"},
		{"Height", "1.82"},
		{"Active", "true"},
		{"Deleted", "null"},
		{"CreatedAt", "2024-03-01T09:30:00.125Z"},
		{"Balance", "12.50"},
		{"Address", `{"city":"Jakarta","zip":10110}`},
		{"Tags", `["a",1]`},
	}
	require.Len(t, document, len(expected))
	for i, field := range expected {
		assert.Equal(t, field[0], document[i].Key, "key at position %d", i)
		assert.Equal(t, field[1], document[i].Value, "value of %s", field[0])
	}
}

func TestStringifyDocument_Malformed(t *testing.T) {
	_, err := StringifyDocument(bson.Raw{0x0c, 0x00, 0x00, 0x00, 0x02, 'N', 0x00})
	assert.Error(t, err)
}

func TestFormatDouble(t *testing.T) {
	testCases := []struct {
		input    float64
		expected string
	}{
		{5, "5.0"},
		{-0.5, "-0.5"},
		{0, "0.0"},
		{1234567.25, "1234567.25"},
		{1e7, "1.0E7"},
		{1.5e-5, "1.5E-5"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, formatDouble(tc.input), "formatDouble(%v)", tc.input)
	}
}
