package base

import (
	"fmt"

	"github.com/chirino/docmodel/internal/model"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	// IDField is the document key holding the store-native identifier.
	IDField = "_id"
	// OwnerField is stamped on create by controllers that report HasOwnerID.
	OwnerField = "owner_id"
)

// Documents are shaped by walking the marshalled bson.Raw form of a record.
// Each bson.RawValue carries its bson.Type tag, so every rule below is a
// switch over the value kind (document, null, string, ...).

// InsertDoc shapes a record for insertion: the record is serialized as-is
// and every null field, at any depth, is omitted.
func InsertDoc(v any) (bson.D, error) {
	raw, err := toRaw(v)
	if err != nil {
		return nil, err
	}
	return compact(raw)
}

// UpdateDoc shapes a record into a {"$set": ...} envelope. Absent fields are
// never part of the envelope, so an update cannot null a field by omission.
// The identifier is immutable and never set. A nil document is returned when
// the record carries nothing to set.
func UpdateDoc(v any) (bson.D, error) {
	raw, err := toRaw(v)
	if err != nil {
		return nil, err
	}
	set, err := compact(raw)
	if err != nil {
		return nil, err
	}
	set = removeKey(set, IDField)
	if len(set) == 0 {
		return nil, nil
	}
	return bson.D{{Key: "$set", Value: set}}, nil
}

// FilterDoc shapes a record into a match filter. Nested documents are
// flattened into dotted paths, null fields impose no constraint, and a string
// identifier is converted to the store-native form. An identifier that is not
// a valid ObjectID hex string fails with model.ErrObID.
func FilterDoc(v any) (bson.D, error) {
	raw, err := toRaw(v)
	if err != nil {
		return nil, err
	}
	filter, err := flatten("", raw, bson.D{})
	if err != nil {
		return nil, model.Wrap(model.ErrDocument, err)
	}
	return convertFilterID(filter)
}

func toRaw(v any) (bson.Raw, error) {
	b, err := bson.Marshal(v)
	if err != nil {
		return nil, model.Wrap(model.ErrDocument, err)
	}
	return bson.Raw(b), nil
}

func isNull(t bson.Type) bool {
	return t == bson.TypeNull || t == bson.TypeUndefined
}

// compact drops null elements recursively while keeping the nesting. A nested
// document that ends up empty is kept: the caller supplied it.
func compact(raw bson.Raw) (bson.D, error) {
	elems, err := raw.Elements()
	if err != nil {
		return nil, model.Wrap(model.ErrDocument, err)
	}
	out := bson.D{}
	for _, el := range elems {
		val := el.Value()
		switch {
		case isNull(val.Type):
			continue
		case val.Type == bson.TypeEmbeddedDocument:
			inner, err := compact(val.Document())
			if err != nil {
				return nil, err
			}
			out = append(out, bson.E{Key: el.Key(), Value: inner})
		default:
			out = append(out, bson.E{Key: el.Key(), Value: val})
		}
	}
	return out, nil
}

// flatten descends into nested documents and reattaches their leaves to the
// parent under dot-joined keys. Null leaves are dropped, so a nested record
// whose fields are all absent contributes nothing. Arrays are leaves.
func flatten(prefix string, raw bson.Raw, out bson.D) (bson.D, error) {
	elems, err := raw.Elements()
	if err != nil {
		return nil, err
	}
	for _, el := range elems {
		key := el.Key()
		if prefix != "" {
			key = prefix + "." + key
		}
		val := el.Value()
		switch {
		case isNull(val.Type):
			continue
		case val.Type == bson.TypeEmbeddedDocument:
			out, err = flatten(key, val.Document(), out)
			if err != nil {
				return nil, err
			}
		default:
			out = append(out, bson.E{Key: key, Value: val})
		}
	}
	return out, nil
}

func convertFilterID(filter bson.D) (bson.D, error) {
	for i, e := range filter {
		if e.Key != IDField {
			continue
		}
		rv, ok := e.Value.(bson.RawValue)
		if !ok {
			continue
		}
		s, ok := rv.StringValueOK()
		if !ok {
			continue
		}
		oid, err := bson.ObjectIDFromHex(s)
		if err != nil {
			return nil, model.Wrap(model.ErrObID, fmt.Errorf("invalid id %q: %w", s, err))
		}
		filter[i].Value = oid
	}
	return filter, nil
}

// translateID replaces a store-native identifier with its hex string so the
// document decodes into records whose identifier is a string.
func translateID(doc bson.D) bson.D {
	for i, e := range doc {
		if e.Key != IDField {
			continue
		}
		if oid, ok := e.Value.(bson.ObjectID); ok {
			doc[i].Value = oid.Hex()
		}
	}
	return doc
}

func hasKey(doc bson.D, key string) bool {
	for _, e := range doc {
		if e.Key == key {
			return true
		}
	}
	return false
}

func removeKey(doc bson.D, key string) bson.D {
	out := doc[:0]
	for _, e := range doc {
		if e.Key != key {
			out = append(out, e)
		}
	}
	return out
}

func decodeDoc[T any](doc bson.D, out *T) error {
	b, err := bson.Marshal(translateID(doc))
	if err != nil {
		return err
	}
	return bson.Unmarshal(b, out)
}
