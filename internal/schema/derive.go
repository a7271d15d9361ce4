package schema

import "fmt"

// derived is one field of a ForCreate, ForUpdate or Filter type.
type derived struct {
	Name string
	Type string
	Tag  string
	// Deref is set when the derived field holds the value and the entity
	// field the pointer, so conversion takes its address.
	Deref bool
}

type entityView struct {
	Entity
	Snake  string
	Plural string
	IDName string
	Create []derived
	Update []derived
	Filter []derived
}

func view(e Entity) (entityView, error) {
	id, _ := e.ID()
	v := entityView{
		Entity: e,
		Snake:  SnakeCase(e.Name),
		Plural: Plural(e.Name),
		IDName: id.Name,
	}
	for _, f := range e.Fields {
		if !f.IsID() && !f.SkipCreate {
			d, err := createField(f)
			if err != nil {
				return v, fmt.Errorf("%s.%s: %w", e.Name, f.Name, err)
			}
			v.Create = append(v.Create, d)
		}
		if !f.IsID() && !f.SkipUpdate {
			v.Update = append(v.Update, derived{Name: f.Name, Type: f.Type, Tag: f.Tag})
		}
		if !f.SkipFilter {
			v.Filter = append(v.Filter, derived{Name: f.Name, Type: f.Type, Tag: f.Tag})
		}
	}
	return v, nil
}

// createField derives a ForCreate field. Required fields lose their pointer
// and gain a binding tag so the request is rejected when they are missing.
func createField(f Field) (derived, error) {
	d := derived{Name: f.Name, Type: f.Type, Tag: f.Tag}
	if !f.Required {
		return d, nil
	}
	if f.Pointer {
		d.Type = f.Elem
		d.Deref = true
	}
	tags, err := parseTags(f.Tag)
	if err != nil {
		return d, err
	}
	d.Tag = tags.with("binding", TagRequired).String()
	return d, nil
}
