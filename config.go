package zis

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the typed, path-keyed settings map the hosting layer builds
// from defaults and environment variables, in the same style as the
// teacher pack's own grammar/compiler Config (config.go): one map,
// string paths, a small closed set of value types, panics on type
// mismatch since a wrong Get/Set pairing is a programmer error, not a
// runtime condition.
type Config map[string]*cfgVal

type cfgValType int

const (
	cfgValUndefined cfgValType = iota
	cfgValInt
	cfgValString
)

func (vt cfgValType) String() string {
	switch vt {
	case cfgValInt:
		return "int"
	case cfgValString:
		return "string"
	default:
		return "undefined"
	}
}

type cfgVal struct {
	typ      cfgValType
	asInt    int
	asString string
}

func (v *cfgVal) assignType(vt cfgValType) {
	if v.typ != vt && v.typ != cfgValUndefined {
		panic(fmt.Sprintf("config: can't assign %s to a %s setting", vt, v.typ))
	}
	v.typ = vt
}

func (v *cfgVal) checkType(vt cfgValType) {
	if v.typ != vt {
		panic(fmt.Sprintf("config: can't retrieve %s from a %s setting", vt, v.typ))
	}
}

func (c Config) SetInt(path string, v int) {
	c[path] = &cfgVal{}
	c[path].assignType(cfgValInt)
	c[path].asInt = v
}

func (c Config) SetString(path string, v string) {
	c[path] = &cfgVal{}
	c[path].assignType(cfgValString)
	c[path].asString = v
}

func (c Config) GetInt(path string) int {
	if val, ok := c[path]; ok {
		val.checkType(cfgValInt)
		return val.asInt
	}
	panic(fmt.Sprintf("config: int setting %q does not exist", path))
}

func (c Config) GetString(path string) string {
	if val, ok := c[path]; ok {
		val.checkType(cfgValString)
		return val.asString
	}
	panic(fmt.Sprintf("config: string setting %q does not exist", path))
}

// NewConfig creates a Config primed with the runtime's defaults.
func NewConfig() Config {
	c := make(Config)
	c.SetInt("memory.stack_size", 1<<16)
	c.SetInt("memory.new_space", 4096)
	c.SetInt("memory.old_space_new", 4096)
	c.SetInt("memory.old_space_max", 1<<20)
	c.SetInt("memory.big_space_new", 256)
	c.SetInt("memory.big_space_max", 1<<16)
	c.SetString("debug.log_level", "")
	c.SetString("debug.log_group", "")
	c.SetString("debug.log_file", "")
	return c
}

// LoadEnv overlays the hosting layer's environment variables onto c,
// per spec.md §6's "Environment variables the hosting layer honors":
// ZIS_STACK_SIZE (a bare integer), ZIS_MEMORY_CONFIG
// ("STACK_SZ;NEW_SPC,OLD_SPC_NEW:OLD_SPC_MAX,BIG_SPC_NEW:BIG_SPC_MAX"),
// and ZIS_DEBUG_LOG ("LEVEL:GROUP:FILE"). Malformed fields are left at
// their default rather than aborting the host process.
func (c Config) LoadEnv() {
	if s := os.Getenv("ZIS_STACK_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			c.SetInt("memory.stack_size", n)
		}
	}
	if s := os.Getenv("ZIS_MEMORY_CONFIG"); s != "" {
		c.parseMemoryConfig(s)
	}
	if s := os.Getenv("ZIS_DEBUG_LOG"); s != "" {
		parts := strings.SplitN(s, ":", 3)
		if len(parts) > 0 && parts[0] != "" {
			c.SetString("debug.log_level", parts[0])
		}
		if len(parts) > 1 && parts[1] != "" {
			c.SetString("debug.log_group", parts[1])
		}
		if len(parts) > 2 && parts[2] != "" {
			c.SetString("debug.log_file", parts[2])
		}
	}
}

func (c Config) parseMemoryConfig(s string) {
	top := strings.SplitN(s, ";", 2)
	if len(top) > 0 && top[0] != "" {
		if n, err := strconv.Atoi(top[0]); err == nil {
			c.SetInt("memory.stack_size", n)
		}
	}
	if len(top) < 2 {
		return
	}
	spaces := strings.Split(top[1], ",")
	setPair := func(field string, spec string) {
		kv := strings.SplitN(spec, ":", 2)
		if len(kv) > 0 {
			if n, err := strconv.Atoi(kv[0]); err == nil {
				c.SetInt(field+"_new", n)
			}
		}
		if len(kv) > 1 {
			if n, err := strconv.Atoi(kv[1]); err == nil {
				c.SetInt(field+"_max", n)
			}
		}
	}
	if len(spaces) > 0 && spaces[0] != "" {
		if n, err := strconv.Atoi(spaces[0]); err == nil {
			c.SetInt("memory.new_space", n)
		}
	}
	if len(spaces) > 1 {
		setPair("memory.old_space", spaces[1])
	}
	if len(spaces) > 2 {
		setPair("memory.big_space", spaces[2])
	}
}

// NewContextFromConfig builds a Context sized according to c's
// memory.stack_size and memory.new_space settings.
func NewContextFromConfig(c Config) *Context {
	return NewContext(c.GetInt("memory.new_space"), c.GetInt("memory.stack_size"))
}
