package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"codeberg.org/algorave/errorhandler/internal/logger"
)

// a raw validation failure as produced by a binder or validator; Field is empty
// for object-level failures
type Violation struct {
	Message string
	Field   string
	Value   any
}

// reports whether the violation is tied to a single field
func (v Violation) FieldScoped() bool {
	return v.Field != ""
}

// deduplicating collection of records keyed by message text; iteration order is
// insertion order but callers must not rely on it
type RecordSet struct {
	seen    map[Record]struct{}
	records []Record
}

func NewRecordSet(records ...Record) *RecordSet {
	s := &RecordSet{seen: make(map[Record]struct{}, len(records))}
	for _, r := range records {
		s.Add(r)
	}

	return s
}

// adds r unless an equal record is already present, reporting whether it was added
func (s *RecordSet) Add(r Record) bool {
	if s.seen == nil {
		s.seen = make(map[Record]struct{})
	}

	if _, ok := s.seen[r]; ok {
		return false
	}

	s.seen[r] = struct{}{}
	s.records = append(s.records, r)

	return true
}

func (s *RecordSet) Contains(r Record) bool {
	_, ok := s.seen[r]
	return ok
}

func (s *RecordSet) Len() int {
	return len(s.records)
}

// returns a copy of the records
func (s *RecordSet) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)

	return out
}

// converts raw violations into a deduplicated set of records. A violation whose
// message is a serialized record is decoded; if decoding fails the entry is
// logged and skipped.
func Extract(violations []Violation) *RecordSet {
	set := NewRecordSet()

	for _, v := range violations {
		record, err := toRecord(v)
		if err != nil {
			logger.ErrorErr(err, "skipping unparseable structured validation message",
				"field", v.Field,
				"message", v.Message,
			)
			continue
		}

		set.Add(record)
	}

	return set
}

func toRecord(v Violation) (Record, error) {
	switch {
	case isStructured(v.Message):
		return ParseRecord(v.Message)
	case v.FieldScoped():
		return Record{Message: fmt.Sprintf("%s value:%s is not valid", v.Field, formatValue(v.Value))}, nil
	default:
		return Record{Message: v.Message}, nil
	}
}

func isStructured(msg string) bool {
	return strings.HasPrefix(msg, "{") && strings.HasSuffix(msg, "}")
}

// decodes a serialized record such as {"errorMessage":"bad"}
func ParseRecord(raw string) (Record, error) {
	var record Record

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&record); err != nil {
		return Record{}, fmt.Errorf("failed to decode structured message: %w", err)
	}

	if dec.More() {
		return Record{}, fmt.Errorf("failed to decode structured message: trailing data")
	}

	return record, nil
}

// renders a rejected value, nil and nil pointers print as null
func formatValue(v any) string {
	if v == nil {
		return "null"
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "null"
		}

		return fmt.Sprint(rv.Elem().Interface())
	}

	return fmt.Sprint(v)
}
