package project

import "encoding/json"

// MergePatch shallow-merges patch over existing, field by field: patch fields
// win, untouched fields survive. The id is always sourced from the trusted
// path parameter, never from the merged payload.
func MergePatch(existing, patch map[string]interface{}, id string) map[string]interface{} {
	merged := make(map[string]interface{}, len(existing)+len(patch))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	merged["id"] = id
	return merged
}

func toMap(p *Project) (map[string]interface{}, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromMap(m map[string]interface{}) (*Project, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
