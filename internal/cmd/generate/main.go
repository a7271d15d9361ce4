// Package main orchestrates all code generation for docmodel.
// Run via: go generate ./...
// This generates:
//   - internal/entity/zz_generated_crud.go: derived record types and controllers
//   - internal/rpc/zz_generated_rpc.go: RPC handlers for entities marked rpc
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"

	"github.com/chirino/docmodel/internal/schema"
	"golang.org/x/mod/modfile"
)

func main() {
	root := findProjectRoot()
	module := modulePath(root)

	entityDir := filepath.Join(root, "internal", "entity")
	rpcDir := filepath.Join(root, "internal", "rpc")

	fmt.Println("Parsing entity declarations...")
	pkg, err := schema.ParseDir(entityDir)
	if err != nil {
		fail("parse entities", err)
	}
	fmt.Printf("Found %d entities.\n", len(pkg.Entities))

	opts := schema.Options{
		Module:       module,
		EntityImport: path.Join(module, "internal", "entity"),
		RPCPackage:   "rpc",
	}

	fmt.Println("Generating controllers...")
	crud, err := schema.GenerateCRUD(pkg, opts)
	if err != nil {
		fail("generate controllers", err)
	}
	write(filepath.Join(entityDir, schema.GeneratedPrefix+"crud.go"), crud)

	fmt.Println("Generating RPC handlers...")
	rpc, err := schema.GenerateRPC(pkg, opts)
	if err != nil {
		fail("generate rpc handlers", err)
	}
	write(filepath.Join(rpcDir, schema.GeneratedPrefix+"rpc.go"), rpc)

	// Align struct tags in generated Go code
	fmt.Println("Aligning struct tags...")
	run("go", "run", "github.com/4meepo/tagalign/cmd/tagalign", "-fix", "-sort", "-order", "json,bson,binding,crud", "./internal/entity/...", "./internal/rpc/...")

	// Format all generated Go code
	fmt.Println("Formatting generated Go code...")
	run("gofmt", "-w", entityDir, rpcDir)

	fmt.Println("Code generation complete.")
}

func modulePath(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		fail("read go.mod", err)
	}
	module := modfile.ModulePath(data)
	if module == "" {
		fail("read go.mod", fmt.Errorf("no module directive"))
	}
	return module
}

func write(file string, data []byte) {
	if err := os.WriteFile(file, data, 0o644); err != nil {
		fail("write "+file, err)
	}
	fmt.Printf("Wrote %s\n", file)
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}

func run(name string, args ...string) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "command failed: %s %v: %v\n", name, args, err)
		os.Exit(1)
	}
}

func findProjectRoot() string {
	// Walk up from the working directory to find go.mod
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot get working directory: %v\n", err)
		os.Exit(1)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			fmt.Fprintf(os.Stderr, "cannot find project root (go.mod)\n")
			os.Exit(1)
		}
		dir = parent
	}
}
