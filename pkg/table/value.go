package table

import (
	"encoding/json"
	"fmt"
)

//Kind is the type of a table entry
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindText
	KindNumberArray
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindBool:
		return "Bool"
	case KindText:
		return "Text"
	case KindNumberArray:
		return "NumberArray"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

//Value is a single table entry. On the wire it is tagged with its kind name,
//e.g. {"Number":1.5} or {"NumberArray":[1,2]}, the shape the robot telemetry server uses.
type Value struct {
	Kind        Kind
	Number      float64
	Bool        bool
	Text        string
	NumberArray []float64
}

func NumberValue(v float64) Value { return Value{Kind: KindNumber, Number: v} }

func BoolValue(v bool) Value { return Value{Kind: KindBool, Bool: v} }

func TextValue(v string) Value { return Value{Kind: KindText, Text: v} }

//NumberArrayValue copies values, the caller may reuse its slice
func NumberArrayValue(values []float64) Value {
	return Value{Kind: KindNumberArray, NumberArray: append([]float64{}, values...)}
}

func (v Value) MarshalJSON() ([]byte, error) {
	var payload interface{}
	switch v.Kind {
	case KindNumber:
		payload = v.Number
	case KindBool:
		payload = v.Bool
	case KindText:
		payload = v.Text
	case KindNumberArray:
		if v.NumberArray == nil {
			payload = []float64{}
		} else {
			payload = v.NumberArray
		}
	default:
		return nil, fmt.Errorf("Value: unknown kind %v", v.Kind)
	}

	return json.Marshal(map[string]interface{}{v.Kind.String(): payload})
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("Value: %w", err)
	}

	if len(tagged) != 1 {
		return fmt.Errorf("Value: expected exactly one kind, got %d", len(tagged))
	}

	for kind, raw := range tagged {
		var err error
		var parsed Value
		switch kind {
		case "Number":
			parsed.Kind = KindNumber
			err = json.Unmarshal(raw, &parsed.Number)
		case "Bool":
			parsed.Kind = KindBool
			err = json.Unmarshal(raw, &parsed.Bool)
		case "Text":
			parsed.Kind = KindText
			err = json.Unmarshal(raw, &parsed.Text)
		case "NumberArray":
			parsed.Kind = KindNumberArray
			err = json.Unmarshal(raw, &parsed.NumberArray)
		default:
			return fmt.Errorf("Value: unknown kind '%s'", kind)
		}

		if err != nil {
			return fmt.Errorf("Value: bad %s payload: %w", kind, err)
		}
		*v = parsed
	}

	return nil
}
