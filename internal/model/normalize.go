package model

// ToDynamic returns doc in section-list shape.
//
// A document that already has "sections" is returned as is, except that any
// section carrying "items" has that key renamed to "entries" in place.
// Otherwise doc is read as the flat shape and converted: contact fields are
// copied, and every non-empty section in StaticOrder becomes one section whose
// entries are the original list, untouched. Applying ToDynamic twice equals
// applying it once.
func ToDynamic(doc Document) Document {
	if doc == nil {
		doc = Document{}
	}
	if raw, ok := doc["sections"]; ok {
		list, _ := raw.([]any)
		for _, item := range list {
			section, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if items, ok := section["items"]; ok {
				section["entries"] = items
				delete(section, "items")
			}
		}
		return doc
	}
	return flatToDynamic(doc)
}

func flatToDynamic(doc Document) Document {
	out := Document{}
	for _, k := range contactKeys {
		if v, ok := doc[k]; ok && v != nil {
			out[k] = v
		} else {
			out[k] = ""
		}
	}
	sections := []any{}
	for _, t := range StaticOrder {
		v := doc[string(t)]
		if isEmpty(v) {
			continue
		}
		if t == SectionSummary {
			sections = append(sections, map[string]any{"type": string(t), "content": v})
			continue
		}
		sections = append(sections, map[string]any{"type": string(t), "entries": v})
	}
	out["sections"] = sections
	return out
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case bool:
		return !t
	case float64:
		return t == 0
	}
	return false
}
