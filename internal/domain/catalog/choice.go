package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Choice is a form value that is either one of a catalog's entries or
// free text typed by the operator. It is resolved to a plain string before
// a record is stored, so nothing downstream sees a placeholder token.
type Choice struct {
	value  string
	custom bool
}

// Known selects a catalog entry.
func Known(v string) Choice { return Choice{value: v} }

// Custom carries operator-typed text.
func Custom(text string) Choice { return Choice{value: text, custom: true} }

func (c Choice) IsCustom() bool { return c.custom }

func (c Choice) IsZero() bool { return strings.TrimSpace(c.value) == "" }

// Resolve returns the stored string. Custom text is trimmed.
func (c Choice) Resolve() string {
	if c.custom {
		return strings.TrimSpace(c.value)
	}
	return c.value
}

// Validate checks a Known choice against its catalog. Custom text only has
// to be non-empty.
func (c Choice) Validate(list []string) error {
	if c.IsZero() {
		return errors.New("value is required")
	}
	if !c.custom && !Contains(list, c.value) {
		return errors.New("value " + c.value + " is not in the catalog; send it as custom text")
	}
	return nil
}

// ChoiceOf classifies a plain string against a catalog: catalog entries
// become Known, anything else Custom. Used when editing stored records
// whose value may have been typed free-hand.
func ChoiceOf(v string, list []string) Choice {
	if Contains(list, v) {
		return Known(v)
	}
	return Custom(v)
}

// UnmarshalJSON accepts either a bare string ("IGBT") or an object of the
// form {"custom": "Line 7"}.
func (c *Choice) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = Choice{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Known(s)
		return nil
	}
	var obj struct {
		Custom *string `json:"custom"`
		Known  *string `json:"known"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	switch {
	case obj.Custom != nil:
		*c = Custom(*obj.Custom)
	case obj.Known != nil:
		*c = Known(*obj.Known)
	default:
		return errors.New(`choice object needs "custom" or "known"`)
	}
	return nil
}

func (c Choice) MarshalJSON() ([]byte, error) {
	if c.custom {
		return json.Marshal(map[string]string{"custom": c.value})
	}
	return json.Marshal(c.value)
}
