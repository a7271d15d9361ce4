package schema

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entitySrc = `package entity

import "time"

// Widget is a test entity.
//docmodel:crud owner rpc
type Widget struct {
	ID       *string    ` + "`bson:\"_id\" json:\"id\"`" + `
	Name     *string    ` + "`bson:\"name\" json:\"name\" crud:\"required\"`" + `
	Tags     []string   ` + "`bson:\"tags\" json:\"tags\"`" + `
	Seen     *time.Time ` + "`bson:\"seen\" json:\"seen\" crud:\"skip_create,skip_filter\"`" + `
	OwnerID  *string    ` + "`bson:\"owner_id\" json:\"owner_id\" crud:\"skip_create,skip_update\"`" + `
	internal int
}

//docmodel:crud
type Alpha struct {
	ID *string ` + "`bson:\"_id\"`" + `
}

// Plain is not an entity.
type Plain struct {
	Value int
}
`

var testOptions = Options{
	Module:       "example.com/app",
	EntityImport: "example.com/app/internal/entity",
	RPCPackage:   "rpc",
}

func parseTestEntities(t *testing.T) *Package {
	t.Helper()
	pkg, err := Parse("widget.go", []byte(entitySrc))
	require.NoError(t, err)
	return pkg
}

func TestParse(t *testing.T) {
	pkg := parseTestEntities(t)
	assert.Equal(t, "entity", pkg.Name)
	require.Len(t, pkg.Entities, 2)
	assert.Equal(t, "Alpha", pkg.Entities[0].Name)
	assert.Equal(t, []Import{{Path: "time"}}, pkg.Imports)

	w := pkg.Entities[1]
	assert.Equal(t, "Widget", w.Name)
	assert.True(t, w.Owner)
	assert.True(t, w.RPC)
	assert.Equal(t, "WidgetController", w.Collection())
	require.Len(t, w.Fields, 5)

	id, ok := w.ID()
	require.True(t, ok)
	assert.Equal(t, "ID", id.Name)

	name := w.Fields[1]
	assert.True(t, name.Required)
	assert.Equal(t, "string", name.Elem)
	assert.Equal(t, `bson:"name" json:"name"`, name.Tag)

	seen := w.Fields[3]
	assert.Equal(t, "*time.Time", seen.Type)
	assert.True(t, seen.SkipCreate)
	assert.True(t, seen.SkipFilter)
	assert.False(t, seen.SkipUpdate)
}

func TestParse_DefaultKeyIsLowercaseName(t *testing.T) {
	pkg, err := Parse("x.go", []byte(`package x
//docmodel:crud
type X struct {
	ID   *string `+"`bson:\"_id\"`"+`
	Name *string
}
`))
	require.NoError(t, err)
	assert.Equal(t, "name", pkg.Entities[0].Fields[1].Key)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"non nilable", "ID *string `bson:\"_id\"`\n Age int", "cannot be absent"},
		{"missing id", "Name *string", "exactly one"},
		{"id type", "ID *int `bson:\"_id\"`", "must be *string"},
		{"required skipped", "ID *string `bson:\"_id\"`\n N *string `crud:\"required,skip_create\"`", "required field skipped"},
		{"unknown annotation", "ID *string `bson:\"_id\"`\n N *string `crud:\"bogus\"`", "unknown crud annotation"},
		{"duplicate key", "ID *string `bson:\"_id\"`\n A *string `bson:\"a\"`\n B *string `bson:\"a\"`", "share key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "package x\n//docmodel:crud\ntype X struct {\n" + tt.body + "\n}\n"
			_, err := Parse("x.go", []byte(src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_RejectsUnknownOption(t *testing.T) {
	_, err := Parse("x.go", []byte("package x\n//docmodel:crud bogus\ntype X struct {\nID *string `bson:\"_id\"`\n}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown option")
}

func TestView_DerivesRecordTypes(t *testing.T) {
	pkg := parseTestEntities(t)
	v, err := view(pkg.Entities[1])
	require.NoError(t, err)

	names := func(ds []derived) []string {
		var out []string
		for _, d := range ds {
			out = append(out, d.Name)
		}
		return out
	}
	assert.Equal(t, []string{"Name", "Tags"}, names(v.Create))
	assert.Equal(t, []string{"Name", "Tags", "Seen"}, names(v.Update))
	assert.Equal(t, []string{"ID", "Name", "Tags", "OwnerID"}, names(v.Filter))

	assert.Equal(t, "string", v.Create[0].Type)
	assert.True(t, v.Create[0].Deref)
	assert.Contains(t, v.Create[0].Tag, `binding:"required"`)
	assert.Equal(t, "*string", v.Update[0].Type)
	assert.Equal(t, "widget", v.Snake)
}

func TestGenerateCRUD(t *testing.T) {
	out, err := GenerateCRUD(parseTestEntities(t), testOptions)
	require.NoError(t, err)
	src := string(out)

	_, err = parser.ParseFile(token.NewFileSet(), "crud.go", out, 0)
	require.NoError(t, err, src)

	assert.True(t, strings.HasPrefix(src, "// Code generated"))
	assert.Contains(t, src, `"time"`)
	assert.Contains(t, src, "type WidgetForCreate struct")
	assert.Contains(t, src, "Name: &d.Name,")
	assert.Contains(t, src, `func (WidgetController) Collection() string { return "WidgetController" }`)
	assert.Contains(t, src, "func (WidgetController) HasOwnerID() bool { return true }")
	assert.Contains(t, src, "func (AlphaController) HasOwnerID() bool { return false }")
	assert.Contains(t, src, "base.Update[WidgetController](ctx, rc, mm, id, data.Entity())")
	assert.Less(t, strings.Index(src, "type AlphaFilter"), strings.Index(src, "type WidgetFilter"))
}

func TestGenerateRPC(t *testing.T) {
	out, err := GenerateRPC(parseTestEntities(t), testOptions)
	require.NoError(t, err)
	src := string(out)

	_, err = parser.ParseFile(token.NewFileSet(), "rpc.go", out, 0)
	require.NoError(t, err, src)

	assert.Contains(t, src, "package rpc")
	assert.Contains(t, src, `"example.com/app/internal/entity"`)
	assert.Contains(t, src, `r.Add("list_widgets", Method(ListWidgets))`)
	assert.Contains(t, src, "func DeleteWidget(")
	assert.NotContains(t, src, "RegisterAlpha")
}

func TestGenerate_IsDeterministic(t *testing.T) {
	a, err := GenerateCRUD(parseTestEntities(t), testOptions)
	require.NoError(t, err)
	b, err := GenerateCRUD(parseTestEntities(t), testOptions)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Example":      "example",
		"ExampleOwner": "example_owner",
		"HTTPServer":   "http_server",
		"UserID":       "user_id",
		"V2Thing":      "v2_thing",
	}
	for in, want := range tests {
		assert.Equal(t, want, SnakeCase(in), in)
	}
}

func TestFieldTags(t *testing.T) {
	tags, err := parseTags(`json:"name,omitempty" bson:"name" crud:"required"`)
	require.NoError(t, err)

	name, opts, ok := tags.get("json")
	require.True(t, ok)
	assert.Equal(t, "name", name)
	assert.Equal(t, []string{"omitempty"}, opts)

	_, _, ok = tags.get("xml")
	assert.False(t, ok)

	assert.Equal(t, `json:"name,omitempty" bson:"name"`, tags.without("crud").String())
	assert.Equal(t, `json:"name,omitempty" bson:"name" crud:"required" binding:"required"`,
		tags.with("binding", "required").String())
	assert.Equal(t, `json:"n" bson:"name" crud:"required"`, tags.with("json", "n").String())

	empty, err := parseTags("")
	require.NoError(t, err)
	assert.Equal(t, "", empty.String())
	assert.Equal(t, `binding:"required"`, empty.with("binding", "required").String())

	_, err = parseTags(`json:name`)
	assert.Error(t, err)
}
