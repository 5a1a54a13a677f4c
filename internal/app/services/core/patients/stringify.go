package patients

import (
	"bytes"
	"math"
	"patient-service/internal/pkg/dto/responses"
	"patient-service/internal/pkg/exceptions"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const stringifiedDateTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// StringifyDocument converts every top-level field of a stored document into
// text. The projection is lossy on purpose: numbers, ids and nested values all
// become strings.
func StringifyDocument(raw bson.Raw) (responses.StringifiedDocument, error) {
	elements, err := raw.Elements()
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	document := make(responses.StringifiedDocument, 0, len(elements))
	for _, element := range elements {
		key := element.Key()
		value, err := StringifyValue(element.Value())
		if err != nil {
			return nil, exceptions.ErrCannotStringifyField(err, key)
		}
		document = append(document, responses.StringifiedField{Key: key, Value: value})
	}
	return document, nil
}

func StringifyValue(value bson.RawValue) (string, error) {
	switch value.Type {
	case bson.TypeString:
		return value.StringValue(), nil
	case bson.TypeObjectID:
		return value.ObjectID().Hex(), nil
	case bson.TypeInt32:
		return strconv.FormatInt(int64(value.Int32()), 10), nil
	case bson.TypeInt64:
		return strconv.FormatInt(value.Int64(), 10), nil
	case bson.TypeDouble:
		return formatDouble(value.Double()), nil
	case bson.TypeBoolean:
		return strconv.FormatBool(value.Boolean()), nil
	case bson.TypeNull, bson.TypeUndefined:
		return "null", nil
	case bson.TypeDateTime:
		return time.UnixMilli(value.DateTime()).UTC().Format(stringifiedDateTimeLayout), nil
	case bson.TypeDecimal128:
		return value.Decimal128().String(), nil
	default:
		return marshalRelaxedValue(value)
	}
}

// formatDouble follows the usual JVM rendering of doubles: integral values
// keep a trailing ".0" and very small or large magnitudes use E notation.
func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		text := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
		return text
	}

	text := strconv.FormatFloat(f, 'E', -1, 64)
	mantissa, exponent, _ := strings.Cut(text, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	exp, err := strconv.Atoi(exponent)
	if err != nil {
		return text
	}
	return mantissa + "E" + strconv.Itoa(exp)
}

var (
	relaxedWrapperPrefix = []byte(`{"v":`)
	relaxedWrapperSuffix = []byte(`}`)
)

// marshalRelaxedValue renders a single value as relaxed Extended JSON. The
// encoder only accepts documents, so the value is wrapped and unwrapped.
func marshalRelaxedValue(value bson.RawValue) (string, error) {
	out, err := bson.MarshalExtJSON(bson.D{{Key: "v", Value: value}}, false, false)
	if err != nil {
		return "", err
	}
	out = bytes.TrimPrefix(out, relaxedWrapperPrefix)
	out = bytes.TrimSuffix(out, relaxedWrapperSuffix)
	return string(out), nil
}
