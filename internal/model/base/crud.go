// Package base is the generic CRUD engine shared by every entity controller.
//
// Each operation is parameterized by the controller type C, which names the
// collection, and by the record type it shapes. The tenant in the request
// context selects the logical database, so no operation can cross tenants.
package base

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chirino/docmodel/internal/model"
	"github.com/chirino/docmodel/internal/reqctx"
	"github.com/chirino/docmodel/internal/security"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// DbController binds an entity to its collection. Implementations are
// zero-size types; the engine calls methods on the zero value of C.
type DbController interface {
	Collection() string
	HasOwnerID() bool
}

func collection[C DbController](rc reqctx.Ctx, mm *model.ModelManager) (*mongo.Collection, C) {
	var mc C
	return mm.Collection(rc.TenantID(), mc.Collection()), mc
}

func observe(op, coll string, start time.Time, err *error) {
	security.ObserveStore(op, coll, start)
	if *err != nil {
		security.CountStoreError(op, model.KindOf(*err))
	}
}

// Create inserts data and returns the identifier the store assigned to it.
// When the controller owns its documents, the caller's user id is stamped
// into owner_id unless data already carries one.
func Create[C DbController, D any](ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, data D) (id string, err error) {
	coll, mc := collection[C](rc, mm)
	defer observe("create", mc.Collection(), time.Now(), &err)

	doc, err := InsertDoc(data)
	if err != nil {
		return "", err
	}
	if mc.HasOwnerID() && !hasKey(doc, OwnerField) {
		doc = append(doc, bson.E{Key: OwnerField, Value: rc.UserID()})
	}

	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", model.Wrap(model.ErrCreate, errors.Join(
				&model.UniqueViolationError{Table: mc.Collection(), Constraint: duplicateIndex(err)}, err))
		}
		return "", model.Wrap(model.ErrCreate, err)
	}

	switch v := res.InsertedID.(type) {
	case bson.ObjectID:
		return v.Hex(), nil
	case string:
		return v, nil
	default:
		return "", model.Wrap(model.ErrCreate, fmt.Errorf("unexpected inserted id type %T", v))
	}
}

// duplicateIndex names the unique index a rejected insert collided with.
func duplicateIndex(err error) string {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if _, rest, ok := strings.Cut(e.Message, "index: "); ok {
				name, _, _ := strings.Cut(rest, " ")
				return name
			}
		}
	}
	return IDField
}

// Update sets the non-null fields of data on the document with the given id.
// Updating a missing document is not an error.
func Update[C DbController, D any](ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, id string, data D) (err error) {
	coll, mc := collection[C](rc, mm)
	defer observe("update", mc.Collection(), time.Now(), &err)

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.Wrap(model.ErrObID, fmt.Errorf("invalid id %q: %w", id, err))
	}
	update, err := UpdateDoc(data)
	if err != nil {
		return err
	}
	if update == nil {
		log.Debug("Update has no fields to set", "collection", mc.Collection(), "id", id)
		return nil
	}

	res, err := coll.UpdateOne(ctx, bson.D{{Key: IDField, Value: oid}}, update)
	if err != nil {
		return model.Wrap(model.ErrUpdate, err)
	}
	if res.MatchedCount == 0 {
		log.Debug("Update matched no document", "collection", mc.Collection(), "id", id)
	}
	return nil
}

// Delete removes the first document matching filter. Deleting a missing
// document is not an error.
func Delete[C DbController, F any](ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, filter F) (err error) {
	coll, mc := collection[C](rc, mm)
	defer observe("delete", mc.Collection(), time.Now(), &err)

	f, err := FilterDoc(filter)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, f)
	if err != nil {
		return model.Wrap(model.ErrDelete, err)
	}
	if res.DeletedCount == 0 {
		log.Debug("Delete matched no document", "collection", mc.Collection())
	}
	return nil
}

// Get returns the first document matching filter. No match is a
// model.ErrRead.
func Get[C DbController, T any](ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, filter T) (out T, err error) {
	coll, mc := collection[C](rc, mm)
	defer observe("get", mc.Collection(), time.Now(), &err)

	f, err := FilterDoc(filter)
	if err != nil {
		return out, err
	}
	var doc bson.D
	if err := coll.FindOne(ctx, f).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return out, model.Wrap(model.ErrRead, err)
		}
		return out, model.Wrap(model.ErrQuery, err)
	}
	if err := decodeDoc(doc, &out); err != nil {
		return out, model.Wrap(model.ErrRead, err)
	}
	return out, nil
}

// List returns every document matching filter, in store order. No match is
// an empty slice.
func List[C DbController, T any](ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, filter T) (out []T, err error) {
	coll, mc := collection[C](rc, mm)
	defer observe("list", mc.Collection(), time.Now(), &err)

	f, err := FilterDoc(filter)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, f)
	if err != nil {
		return nil, model.Wrap(model.ErrQuery, err)
	}
	var docs []bson.D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, model.Wrap(model.ErrQuery, err)
	}

	out = make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := decodeDoc(doc, &item); err != nil {
			return nil, model.Wrap(model.ErrQuery, err)
		}
		out = append(out, item)
	}
	return out, nil
}
