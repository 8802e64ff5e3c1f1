package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/beanbridge-dev/beanbridge/native"
)

// MarshalModel serializes a model with its kind under a leading "ty" key,
// so polymorphic collections can be decoded again. Models whose JSON form
// is not an object (Inventory) are serialized as-is.
func MarshalModel(m Model) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 || b[0] != '{' {
		return b, nil
	}
	head := fmt.Sprintf(`{"ty":%q`, string(m.Kind()))
	out := make([]byte, 0, len(head)+len(b))
	out = append(out, head...)
	if !bytes.Equal(b, []byte("{}")) {
		out = append(out, ',')
	}
	out = append(out, b[1:]...)
	return out, nil
}

// UnmarshalModel decodes a model previously serialized by MarshalModel,
// dispatching on the "ty" discriminator and validating the result.
func UnmarshalModel(data []byte) (Model, error) {
	var probe struct {
		Ty string `json:"ty"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	m, err := emptyModel(native.Kind(probe.Ty))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", probe.Ty, err)
	}
	if err := checkModel(m); err != nil {
		return nil, err
	}
	return m.(Model), nil
}

// emptyModel returns a pointer to a zero value of the struct model for
// the given kind. Inventory has no object form and is not constructed
// here.
func emptyModel(kind native.Kind) (any, error) {
	switch kind {
	case native.KindAmount:
		return &Amount{}, nil
	case native.KindBalance:
		return &Balance{}, nil
	case native.KindClose:
		return &Close{}, nil
	case native.KindCommodity:
		return &Commodity{}, nil
	case native.KindCost:
		return &Cost{}, nil
	case native.KindCostSpec:
		return &CostSpec{}, nil
	case native.KindCurrencyContext:
		return &CurrencyContext{}, nil
	case native.KindCustom:
		return &Custom{}, nil
	case native.KindDisplayContext:
		return &DisplayContext{}, nil
	case native.KindDistribution:
		return &Distribution{}, nil
	case native.KindDocument:
		return &Document{}, nil
	case native.KindEvent:
		return &Event{}, nil
	case native.KindNote:
		return &Note{}, nil
	case native.KindOpen:
		return &Open{}, nil
	case native.KindPad:
		return &Pad{}, nil
	case native.KindPosition:
		return &Position{}, nil
	case native.KindPosting:
		return &Posting{}, nil
	case native.KindPrice:
		return &Price{}, nil
	case native.KindQuery:
		return &Query{}, nil
	case native.KindRealAccount:
		return &RealAccount{}, nil
	case native.KindTransaction:
		return &Transaction{}, nil
	case native.KindTxnPosting:
		return &TxnPosting{}, nil
	default:
		return nil, &UnsupportedKindError{Kind: kind}
	}
}

// marshalAnyMap serializes an open mapping whose values may include
// models, tagging those with their kind.
func marshalAnyMap(m map[string]any) ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m))
	for key, value := range m {
		var (
			raw []byte
			err error
		)
		if mv, ok := value.(Model); ok {
			raw, err = MarshalModel(mv)
		} else {
			raw, err = json.Marshal(value)
		}
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", key, err)
		}
		out[key] = raw
	}
	return json.Marshal(out)
}

// unmarshalAnyMap is the inverse of marshalAnyMap: objects carrying a
// known "ty" discriminator decode into models, everything else decodes
// generically (numbers as float64, the documented JSON limitation).
func unmarshalAnyMap(data []byte) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		decoded, err := unmarshalAnyValue(value)
		if err != nil {
			return nil, fmt.Errorf("decoding %q: %w", key, err)
		}
		out[key] = decoded
	}
	return out, nil
}

func unmarshalAnyValue(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe struct {
			Ty string `json:"ty"`
		}
		if err := json.Unmarshal(trimmed, &probe); err == nil && probe.Ty != "" {
			if _, err := emptyModel(native.Kind(probe.Ty)); err == nil {
				return UnmarshalModel(trimmed)
			}
		}
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return generic, nil
}
