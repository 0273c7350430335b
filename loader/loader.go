// Package loader compiles Lua world content into engine definitions.
package loader

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/zuul/engine/state"
)

// ErrNoContent is returned when a directory holds no .lua files.
var ErrNoContent = errors.New("no .lua files found")

// entryFile is executed before every other content file.
const entryFile = "game.lua"

// collector accumulates Lua definitions while content files run.
type collector struct {
	game       *lua.LTable
	rooms      []rawDef
	items      []rawDef
	npcs       []rawDef
	quests     []rawDef
	milestones []rawDef
	dictionary []rawDef
	handlers   []rawHandler
}

// Load compiles the .lua files in dir.
func Load(dir string) (*state.Defs, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("opening content directory %s: %w", dir, err)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS runs every .lua file at the root of fsys in a sandboxed VM,
// compiles what they declared and validates the result. The VM does not
// outlive the call.
func LoadFS(fsys fs.FS) (*state.Defs, error) {
	files, err := luaSources(fsys)
	if err != nil {
		return nil, err
	}

	L := newSandbox()
	defer L.Close()
	coll := &collector{}
	registerAPI(L, coll)

	for _, name := range files {
		if err := runFile(L, fsys, name); err != nil {
			return nil, err
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}
	if err := validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// luaSources lists the root .lua files, entry file first and the rest by name.
func luaSources(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing content: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && path.Ext(e.Name()) == ".lua" {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, ErrNoContent
	}
	slices.SortFunc(files, func(a, b string) int {
		switch {
		case a == entryFile:
			return -1
		case b == entryFile:
			return 1
		}
		return cmp.Compare(a, b)
	})
	return files, nil
}

func runFile(L *lua.LState, fsys fs.FS, name string) error {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	fn, err := L.LoadString(string(src))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}

// Content gets base, table, string and math. Everything that reaches the
// file system, loads code or draws random numbers is removed.
var (
	safeLibs = []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath}

	blockedGlobals = []string{
		"dofile", "loadfile", "load", "loadstring", "require",
		"rawset", "rawget", "rawequal", "collectgarbage",
	}
	blockedMath = []string{"random", "randomseed"}
)

func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range safeLibs {
		L.Push(L.NewFunction(open))
		L.Call(0, 0)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	if math, ok := L.GetGlobal(lua.MathLibName).(*lua.LTable); ok {
		for _, name := range blockedMath {
			math.RawSetString(name, lua.LNil)
		}
	}
	return L
}
