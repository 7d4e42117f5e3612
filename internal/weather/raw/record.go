package raw

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

// MissingFieldsError reports keys the provider always sends that are absent
// or null.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (h *Hourly) UnmarshalJSON(b []byte) error {
	type plain Hourly
	return decodeRecord(b, (*plain)(h))
}

func (t *ThreeHourly) UnmarshalJSON(b []byte) error {
	type plain ThreeHourly
	return decodeRecord(b, (*plain)(t))
}

func (d *Daily) UnmarshalJSON(b []byte) error {
	type plain Daily
	return decodeRecord(b, (*plain)(d))
}

func (l *Location) UnmarshalJSON(b []byte) error {
	type plain Location
	return decodeRecord(b, (*plain)(l))
}

// UnmarshalJSON requires every envelope key before decoding.
func (p *Properties[T]) UnmarshalJSON(b []byte) error {
	keys, err := requireKeys(b, []string{"location", "requestPointDistance", "modelRunDate", "timeSeries"})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(keys["location"], &p.Location); err != nil {
		return err
	}
	if err := json.Unmarshal(keys["requestPointDistance"], &p.RequestPointDistance); err != nil {
		return err
	}
	if err := json.Unmarshal(keys["modelRunDate"], &p.ModelRunDate); err != nil {
		return err
	}
	return json.Unmarshal(keys["timeSeries"], &p.TimeSeries)
}

// decodeRecord checks that every non-pointer field of the record is present
// and not null, then decodes it as usual.
func decodeRecord[T any](b []byte, v *T) error {
	if _, err := requireKeys(b, requiredKeys(reflect.TypeOf(v).Elem())); err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

var null = []byte("null")

// requireKeys decodes the object's keys and fails if any of names is absent
// or null. encoding/json would leave those fields at their zero value.
func requireKeys(b []byte, names []string) (map[string]json.RawMessage, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return nil, err
	}
	var missing []string
	for _, name := range names {
		v, ok := keys[name]
		if !ok || bytes.Equal(bytes.TrimSpace(v), null) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}
	return keys, nil
}

var requiredCache sync.Map // reflect.Type -> []string

func requiredKeys(t reflect.Type) []string {
	if cached, ok := requiredCache.Load(t); ok {
		return cached.([]string)
	}
	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Pointer {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		names = append(names, name)
	}
	requiredCache.Store(t, names)
	return names
}
