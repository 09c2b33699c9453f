package domain

import (
	"bytes"
	"encoding/json"
)

// Optional models the three-state patch field of spec §9 ("Optional-
// nullable fields"): a JSON key can be absent (no change), present and
// null (clear), or present with a value (set). Present distinguishes the
// first case from the other two; when Present is true, Null distinguishes
// "clear" from "set".
//
// UnmarshalJSON is only invoked by encoding/json when the key is present
// in the source object, so a field of this type left at its zero value
// (Present: false) after decoding faithfully means "the caller didn't
// mention this field".
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// IsSet reports the "Set(v)" case.
func (o Optional[T]) IsSet() bool {
	return o.Present && !o.Null
}

// IsClear reports the "Clear" case (present, explicit null).
func (o Optional[T]) IsClear() bool {
	return o.Present && o.Null
}
