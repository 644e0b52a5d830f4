package models

import "encoding/json"

// MarshalJSON encodes an expression node's entries as a JSON array of
// {key, value} objects: an ordered list of assignments.
func (c ExpressionContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Entries)
}

// UnmarshalJSON decodes an expression node's content array.
func (c *ExpressionContent) UnmarshalJSON(data []byte) error {
	var entries []ExpressionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	c.Entries = entries
	return nil
}

// MarshalJSON encodes a decision-table rule as a flat object of cell
// strings keyed by input/output column id, with the rule's own id (if set)
// under the reserved key "_id".
func (r DecisionTableRule) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(r.Cells)+1)
	for k, v := range r.Cells {
		out[k] = v
	}
	if r.ID != "" {
		out["_id"] = r.ID
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a decision-table rule's flat cell object. The
// reserved key "_id" (if present) becomes the rule's ID and is excluded
// from Cells so it never gets mistaken for a column.
func (r *DecisionTableRule) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Cells = make(map[string]string, len(raw))
	for k, v := range raw {
		if k == "_id" {
			r.ID = v
			continue
		}
		r.Cells[k] = v
	}
	return nil
}

// DecodeContent decodes a node's raw `any` content (as produced by
// encoding/json's default map[string]any decode) into the typed content
// struct appropriate for the node's declared kind.
func DecodeContent(kind string, raw any) (any, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	switch kind {
	case NodeKindExpression:
		var c ExpressionContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case NodeKindDecisionTable:
		var c DecisionTableContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case NodeKindSwitch:
		var c SwitchContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case NodeKindFunction:
		var c FunctionContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		// inputNode / outputNode carry no content.
		return nil, nil
	}
}
