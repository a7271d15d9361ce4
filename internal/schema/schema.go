// Package schema compiles entity declarations into CRUD and RPC source.
//
// An entity is a Go struct whose doc comment carries a Marker line:
//
//	// Example is a demo entity.
//	//docmodel:crud rpc
//	type Example struct {
//		ID   *string `bson:"_id" json:"id"`
//		Name *string `bson:"name" json:"name" crud:"required"`
//	}
//
// From each entity the compiler derives ForCreate, ForUpdate and Filter
// record types, conversions back into the entity, and a controller bound to
// the "<Entity>Controller" collection. Entities marked rpc additionally get
// typed RPC handlers. Output depends only on the declarations: entities are
// emitted sorted by name and fields in declaration order.
package schema

// Marker introduces an entity declaration. Options follow on the same line.
const Marker = "//docmodel:crud"

// Entity options accepted after the Marker.
const (
	OptionOwner = "owner"
	OptionRPC   = "rpc"
)

// Field annotations accepted in the crud struct tag.
const (
	TagSkipCreate = "skip_create"
	TagSkipUpdate = "skip_update"
	TagSkipFilter = "skip_filter"
	TagRequired   = "required"
)

// IDKey is the document key of the identifier field.
const IDKey = "_id"

// GeneratedPrefix names the files the generator owns. The parser skips them.
const GeneratedPrefix = "zz_generated_"

// Package is the parsed form of an entity package.
type Package struct {
	Name     string
	Imports  []Import
	Entities []Entity
}

// Import is an import used by an entity field type.
type Import struct {
	Name string
	Path string
}

// Spec renders the import as it appears inside an import block.
func (i Import) Spec() string {
	if i.Name == "" {
		return `"` + i.Path + `"`
	}
	return i.Name + ` "` + i.Path + `"`
}

// Entity is one marked struct.
type Entity struct {
	Name   string
	Owner  bool
	RPC    bool
	Fields []Field
}

// Field is one entity field.
type Field struct {
	Name    string
	Type    string
	Elem    string
	Pointer bool
	Nilable bool
	Key     string
	Tag     string

	SkipCreate bool
	SkipUpdate bool
	SkipFilter bool
	Required   bool
}

// IsID reports whether f holds the document identifier.
func (f Field) IsID() bool { return f.Key == IDKey }

// ID returns the identifier field of e.
func (e Entity) ID() (Field, bool) {
	for _, f := range e.Fields {
		if f.IsID() {
			return f, true
		}
	}
	return Field{}, false
}

// Collection is the collection name bound to e.
func (e Entity) Collection() string { return e.Name + "Controller" }
