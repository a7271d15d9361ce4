package schema

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ParseDir parses the entity declarations of the package in dir. Test files
// and files starting with GeneratedPrefix are ignored.
func ParseDir(dir string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read entity dir: %w", err)
	}
	c := newCollector()
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") ||
			strings.HasSuffix(name, "_test.go") || strings.HasPrefix(name, GeneratedPrefix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		src, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if err := c.add(name, src); err != nil {
			return nil, err
		}
	}
	return c.finish()
}

// Parse parses the entity declarations of a single source file.
func Parse(filename string, src []byte) (*Package, error) {
	c := newCollector()
	if err := c.add(filename, src); err != nil {
		return nil, err
	}
	return c.finish()
}

type collector struct {
	fset    *token.FileSet
	pkg     Package
	imports map[string]Import
}

func newCollector() *collector {
	return &collector{fset: token.NewFileSet(), imports: map[string]Import{}}
}

func (c *collector) add(filename string, src []byte) error {
	file, err := parser.ParseFile(c.fset, filename, src, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	switch c.pkg.Name {
	case "":
		c.pkg.Name = file.Name.Name
	case file.Name.Name:
	default:
		return fmt.Errorf("%s: package %s, expected %s", filename, file.Name.Name, c.pkg.Name)
	}

	fileImports := importsByName(file)
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			opts, ok := marker(doc)
			if !ok {
				continue
			}
			pos := c.fset.Position(ts.Pos())
			st, ok := ts.Type.(*ast.StructType)
			if !ok || ts.TypeParams != nil {
				return fmt.Errorf("%s: %s must be a non-generic struct", pos, ts.Name.Name)
			}
			e, used, err := newEntity(ts.Name.Name, opts, st)
			if err != nil {
				return fmt.Errorf("%s: %w", pos, err)
			}
			for name := range used {
				imp, ok := fileImports[name]
				if !ok {
					return fmt.Errorf("%s: %s uses unknown package %s", pos, e.Name, name)
				}
				c.imports[imp.Path] = imp
			}
			c.pkg.Entities = append(c.pkg.Entities, e)
		}
	}
	return nil
}

func (c *collector) finish() (*Package, error) {
	sort.Slice(c.pkg.Entities, func(i, j int) bool {
		return c.pkg.Entities[i].Name < c.pkg.Entities[j].Name
	})
	for _, imp := range c.imports {
		c.pkg.Imports = append(c.pkg.Imports, imp)
	}
	sort.Slice(c.pkg.Imports, func(i, j int) bool {
		return c.pkg.Imports[i].Path < c.pkg.Imports[j].Path
	})
	pkg := c.pkg
	return &pkg, nil
}

// marker returns the options of the Marker line in doc.
func marker(doc *ast.CommentGroup) ([]string, bool) {
	if doc == nil {
		return nil, false
	}
	// CommentGroup.Text drops directive lines, so scan the raw comments.
	for _, cm := range doc.List {
		rest, found := strings.CutPrefix(cm.Text, Marker)
		if !found {
			continue
		}
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		return strings.Fields(rest), true
	}
	return nil, false
}

func importsByName(file *ast.File) map[string]Import {
	out := map[string]Import{}
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := Import{Path: p}
		name := path.Base(p)
		if spec.Name != nil {
			imp.Name = spec.Name.Name
			name = spec.Name.Name
		}
		out[name] = imp
	}
	return out
}

func newEntity(name string, opts []string, st *ast.StructType) (Entity, map[string]bool, error) {
	e := Entity{Name: name}
	for _, opt := range opts {
		switch opt {
		case OptionOwner:
			e.Owner = true
		case OptionRPC:
			e.RPC = true
		default:
			return e, nil, fmt.Errorf("%s: unknown option %q", name, opt)
		}
	}

	used := map[string]bool{}
	for _, af := range st.Fields.List {
		if len(af.Names) == 0 {
			return e, nil, fmt.Errorf("%s: embedded fields are not supported", name)
		}
		raw := ""
		if af.Tag != nil {
			var err error
			if raw, err = strconv.Unquote(af.Tag.Value); err != nil {
				return e, nil, fmt.Errorf("%s: bad tag: %w", name, err)
			}
		}
		for _, n := range af.Names {
			if !n.IsExported() {
				continue
			}
			f, err := newField(n.Name, af.Type, raw)
			if err != nil {
				return e, nil, fmt.Errorf("%s.%s: %w", name, n.Name, err)
			}
			e.Fields = append(e.Fields, f)
		}
		ast.Inspect(af.Type, func(node ast.Node) bool {
			if sel, ok := node.(*ast.SelectorExpr); ok {
				if id, ok := sel.X.(*ast.Ident); ok {
					used[id.Name] = true
				}
			}
			return true
		})
	}
	return e, used, validate(e)
}

func newField(name string, typ ast.Expr, raw string) (Field, error) {
	f := Field{
		Name:    name,
		Type:    types.ExprString(typ),
		Elem:    types.ExprString(typ),
		Nilable: nilable(typ),
		Key:     strings.ToLower(name),
	}
	if star, ok := typ.(*ast.StarExpr); ok {
		f.Pointer = true
		f.Elem = types.ExprString(star.X)
	}

	tags, err := parseTags(raw)
	if err != nil {
		return f, fmt.Errorf("parse tag: %w", err)
	}
	if err := tags.validate(); err != nil {
		return f, err
	}
	if crud, opts, ok := tags.get("crud"); ok {
		for _, opt := range append([]string{crud}, opts...) {
			switch strings.TrimSpace(opt) {
			case TagSkipCreate:
				f.SkipCreate = true
			case TagSkipUpdate:
				f.SkipUpdate = true
			case TagSkipFilter:
				f.SkipFilter = true
			case TagRequired:
				f.Required = true
			case "":
			default:
				return f, fmt.Errorf("unknown crud annotation %q", opt)
			}
		}
		tags = tags.without("crud")
	}
	if key, _, ok := tags.get("bson"); ok {
		if key == "-" {
			return f, fmt.Errorf(`bson:"-" fields cannot be stored`)
		}
		if key != "" {
			f.Key = key
		}
	}
	f.Tag = tags.String()
	return f, nil
}

// nilable reports whether a field of this type can be absent.
func nilable(e ast.Expr) bool {
	switch t := e.(type) {
	case *ast.StarExpr, *ast.MapType, *ast.InterfaceType:
		return true
	case *ast.ArrayType:
		return t.Len == nil
	case *ast.Ident:
		return t.Name == "any"
	}
	return false
}

func validate(e Entity) error {
	keys := map[string]string{}
	ids := 0
	for _, f := range e.Fields {
		if other, dup := keys[f.Key]; dup {
			return fmt.Errorf("%s: fields %s and %s share key %q", e.Name, other, f.Name, f.Key)
		}
		keys[f.Key] = f.Name
		if !f.Nilable {
			return fmt.Errorf("%s.%s: type %s cannot be absent, use a pointer", e.Name, f.Name, f.Type)
		}
		if f.Required && f.SkipCreate {
			return fmt.Errorf("%s.%s: required field skipped on create", e.Name, f.Name)
		}
		if f.IsID() {
			ids++
			if f.Type != "*string" {
				return fmt.Errorf("%s.%s: identifier must be *string, got %s", e.Name, f.Name, f.Type)
			}
			if f.SkipFilter || f.Required {
				return fmt.Errorf("%s.%s: identifier cannot be skip_filter or required", e.Name, f.Name)
			}
		}
	}
	if ids != 1 {
		return fmt.Errorf("%s: needs exactly one %q field", e.Name, IDKey)
	}
	return nil
}
