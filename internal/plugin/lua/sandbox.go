package lua

import (
	"strings"

	"github.com/tliron/commonlog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stabilize/internal/logging"
)

// ModuleName is the global under which script helpers are installed.
const ModuleName = "stabilize"

// blockedGlobals can load code from disk or strings and are removed.
var blockedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// Sandbox restricts what scripts can reach.
type Sandbox struct {
	L   *lua.LState
	log commonlog.Logger
}

// NewSandbox creates a sandbox for L.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{
		L:   L,
		log: logging.Logger("lua"),
	}
}

// Install removes the loaders and installs the helper module.
func (s *Sandbox) Install() {
	for _, name := range blockedGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}

	mod := s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"is_blank": s.isBlank,
		"log":      s.logMessage,
	})
	s.L.SetGlobal(ModuleName, mod)
}

// Blocked reports whether name is one of the removed globals.
func (s *Sandbox) Blocked(name string) bool {
	for _, b := range blockedGlobals {
		if b == name {
			return true
		}
	}
	return false
}

func (s *Sandbox) isBlank(L *lua.LState) int {
	L.Push(lua.LBool(strings.TrimSpace(L.CheckString(1)) == ""))
	return 1
}

func (s *Sandbox) logMessage(L *lua.LState) int {
	s.log.Debugf("script: %s", L.CheckString(1))
	return 0
}
