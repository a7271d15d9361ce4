package schema

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

// Options locate the packages generated code refers to.
type Options struct {
	// Module is the module path hosting the model and reqctx packages.
	Module string
	// EntityImport is the import path of the entity package.
	EntityImport string
	// RPCPackage is the package name of the RPC output.
	RPCPackage string
}

func (o Options) entityName() string { return path.Base(o.EntityImport) }

type fileData struct {
	Package   string
	Std       []string
	Third     []string
	EntityPkg string
	Entities  []entityView
}

// GenerateCRUD renders derived types, conversions and controllers for every
// entity of pkg.
func GenerateCRUD(pkg *Package, opts Options) ([]byte, error) {
	data := fileData{
		Package: pkg.Name,
		Std:     []string{`"context"`},
		Third: []string{
			fmt.Sprintf("%q", opts.Module+"/internal/model"),
			fmt.Sprintf("%q", opts.Module+"/internal/model/base"),
			fmt.Sprintf("%q", opts.Module+"/internal/reqctx"),
		},
	}
	for _, imp := range pkg.Imports {
		if isStd(imp.Path) {
			data.Std = append(data.Std, imp.Spec())
		} else {
			data.Third = append(data.Third, imp.Spec())
		}
	}
	for _, e := range pkg.Entities {
		v, err := view(e)
		if err != nil {
			return nil, err
		}
		data.Entities = append(data.Entities, v)
	}
	return render(crudTemplate, GeneratedPrefix+"crud.go", data)
}

// GenerateRPC renders the RPC handlers and their registration for every
// entity of pkg marked rpc.
func GenerateRPC(pkg *Package, opts Options) ([]byte, error) {
	data := fileData{
		Package:   opts.RPCPackage,
		Std:       []string{`"context"`},
		EntityPkg: opts.entityName(),
		Third: []string{
			fmt.Sprintf("%q", opts.Module+"/internal/model"),
			fmt.Sprintf("%q", opts.Module+"/internal/reqctx"),
			fmt.Sprintf("%q", opts.EntityImport),
		},
	}
	for _, e := range pkg.Entities {
		if !e.RPC {
			continue
		}
		v, err := view(e)
		if err != nil {
			return nil, err
		}
		data.Entities = append(data.Entities, v)
	}
	return render(rpcTemplate, GeneratedPrefix+"rpc.go", data)
}

func render(t *template.Template, filename string, data fileData) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", filename, err)
	}
	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{Comments: true, TabIndent: true, TabWidth: 8})
	if err != nil {
		return nil, fmt.Errorf("format %s: %w\n%s", filename, err, buf.Bytes())
	}
	return out, nil
}

func isStd(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}

const header = `// Code generated by docmodel generate. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Std}}
	{{.}}
{{- end}}
{{range .Third}}
	{{.}}
{{- end}}
)
`

var crudTemplate = template.Must(template.New("crud").Parse(header + `
{{- range .Entities}}
{{- $e := .Name}}

// {{$e}}ForCreate holds the fields accepted on create.
type {{$e}}ForCreate struct {
{{- range .Create}}
	{{.Name}} {{.Type}}{{with .Tag}} ` + "`{{.}}`" + `{{end}}
{{- end}}
}

// Entity converts d to {{$e}}. Fields d does not carry stay absent.
func (d {{$e}}ForCreate) Entity() {{$e}} {
	return {{$e}}{
{{- range .Create}}
		{{.Name}}: {{if .Deref}}&d.{{.Name}}{{else}}d.{{.Name}}{{end}},
{{- end}}
	}
}

// {{$e}}ForUpdate holds the fields an update may replace. Nil fields are
// left untouched.
type {{$e}}ForUpdate struct {
{{- range .Update}}
	{{.Name}} {{.Type}}{{with .Tag}} ` + "`{{.}}`" + `{{end}}
{{- end}}
}

// Entity converts d to {{$e}}. Fields d does not carry stay absent.
func (d {{$e}}ForUpdate) Entity() {{$e}} {
	return {{$e}}{
{{- range .Update}}
		{{.Name}}: d.{{.Name}},
{{- end}}
	}
}

// {{$e}}Filter selects {{$e}} documents. Nil fields impose no constraint.
type {{$e}}Filter struct {
{{- range .Filter}}
	{{.Name}} {{.Type}}{{with .Tag}} ` + "`{{.}}`" + `{{end}}
{{- end}}
}

// {{$e}}FilterByID returns a filter matching the {{$e}} with the given id.
func {{$e}}FilterByID(id string) *{{$e}}Filter {
	return &{{$e}}Filter{ {{- .IDName}}: &id}
}

// Entity converts f to {{$e}}. A nil filter matches everything.
func (f *{{$e}}Filter) Entity() {{$e}} {
	if f == nil {
		return {{$e}}{}
	}
	return {{$e}}{
{{- range .Filter}}
		{{.Name}}: f.{{.Name}},
{{- end}}
	}
}

// {{$e}}Controller stores {{$e}} documents in the {{printf "%q" .Collection}} collection.
type {{$e}}Controller struct{}

func ({{$e}}Controller) Collection() string { return {{printf "%q" .Collection}} }

func ({{$e}}Controller) HasOwnerID() bool { return {{.Owner}} }

// Create inserts data and returns the new id.
func ({{$e}}Controller) Create(ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, data {{$e}}ForCreate) (string, error) {
	return base.Create[{{$e}}Controller](ctx, rc, mm, data.Entity())
}

// Update replaces the fields data carries on the document with the given id.
func ({{$e}}Controller) Update(ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, id string, data {{$e}}ForUpdate) error {
	return base.Update[{{$e}}Controller](ctx, rc, mm, id, data.Entity())
}

// Get returns the first document matching filter.
func ({{$e}}Controller) Get(ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, filter *{{$e}}Filter) ({{$e}}, error) {
	return base.Get[{{$e}}Controller](ctx, rc, mm, filter.Entity())
}

// List returns every document matching filter.
func ({{$e}}Controller) List(ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, filter *{{$e}}Filter) ([]{{$e}}, error) {
	return base.List[{{$e}}Controller](ctx, rc, mm, filter.Entity())
}

// Delete removes the first document matching filter.
func ({{$e}}Controller) Delete(ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, filter *{{$e}}Filter) error {
	return base.Delete[{{$e}}Controller](ctx, rc, mm, filter.Entity())
}
{{- end}}
`))

var rpcTemplate = template.Must(template.New("rpc").Parse(header + `
{{- $p := .EntityPkg}}

func registerGenerated(r *Router) {
{{- range .Entities}}
	Register{{.Name}}(r)
{{- end}}
}
{{- range .Entities}}
{{- $e := .Name}}

// Register{{$e}} adds the {{.Snake}} methods to r.
func Register{{$e}}(r *Router) {
	r.Add("create_{{.Snake}}", Method(Create{{$e}}))
	r.Add("get_{{.Snake}}", Method(Get{{$e}}))
	r.Add("list_{{.Snake}}s", Method(List{{.Plural}}))
	r.Add("update_{{.Snake}}", Method(Update{{$e}}))
	r.Add("delete_{{.Snake}}", Method(Delete{{$e}}))
}

// Create{{$e}} stores params.Data and returns the stored {{$e}}.
func Create{{$e}}(ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, params ParamsForCreate[{{$p}}.{{$e}}ForCreate]) (DataResult[{{$p}}.{{$e}}], error) {
	id, err := {{$p}}.{{$e}}Controller{}.Create(ctx, rc, mm, params.Data)
	if err != nil {
		return DataResult[{{$p}}.{{$e}}]{}, err
	}
	return Get{{$e}}(ctx, rc, mm, ParamsIded{ID: id})
}

// Get{{$e}} returns the {{$e}} with the given id.
func Get{{$e}}(ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, params ParamsIded) (DataResult[{{$p}}.{{$e}}], error) {
	out, err := {{$p}}.{{$e}}Controller{}.Get(ctx, rc, mm, {{$p}}.{{$e}}FilterByID(params.ID))
	if err != nil {
		return DataResult[{{$p}}.{{$e}}]{}, err
	}
	return Data(out), nil
}

// List{{.Plural}} returns every {{$e}} matching the optional filter.
func List{{.Plural}}(ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, params ParamsList[{{$p}}.{{$e}}Filter]) (DataResult[[]{{$p}}.{{$e}}], error) {
	out, err := {{$p}}.{{$e}}Controller{}.List(ctx, rc, mm, params.Filter)
	if err != nil {
		return DataResult[[]{{$p}}.{{$e}}]{}, err
	}
	return Data(out), nil
}

// Update{{$e}} applies params.Data and returns the updated {{$e}}.
func Update{{$e}}(ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, params ParamsForUpdate[{{$p}}.{{$e}}ForUpdate]) (DataResult[{{$p}}.{{$e}}], error) {
	if err := ({{$p}}.{{$e}}Controller{}).Update(ctx, rc, mm, params.ID, params.Data); err != nil {
		return DataResult[{{$p}}.{{$e}}]{}, err
	}
	return Get{{$e}}(ctx, rc, mm, ParamsIded{ID: params.ID})
}

// Delete{{$e}} deletes the {{$e}} with the given id and returns it as it was.
func Delete{{$e}}(ctx context.Context, rc reqctx.Ctx, mm *model.ModelManager, params ParamsIded) (DataResult[{{$p}}.{{$e}}], error) {
	out, err := Get{{$e}}(ctx, rc, mm, params)
	if err != nil {
		return DataResult[{{$p}}.{{$e}}]{}, err
	}
	if err := ({{$p}}.{{$e}}Controller{}).Delete(ctx, rc, mm, {{$p}}.{{$e}}FilterByID(params.ID)); err != nil {
		return DataResult[{{$p}}.{{$e}}]{}, err
	}
	return out, nil
}
{{- end}}
`))
