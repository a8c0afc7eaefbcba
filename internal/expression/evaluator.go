// Package expression evaluates the string form of cell class rules.
//
// Rules are Lua expressions such as "value < 0" or "data.stock.qty == 0".
// The cell value is bound to both value and x, the row data to data, and the
// grid context to ctx. A rule that uses the return keyword is treated as
// a function body instead of a single expression.
//
// Results follow the truthiness of the rule language the grid grew up with:
// nil, false, 0, NaN and the empty string are false; everything else is
// true.
package expression

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sync"
	"time"

	"github.com/Iron-Ham/cellgrid/internal/errors"
	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single evaluation.
const DefaultTimeout = 50 * time.Millisecond

// Evaluator compiles and runs rule expressions. Compiled rules are cached
// by source. It is safe for concurrent use.
type Evaluator struct {
	mu      sync.Mutex
	L       *lua.LState
	cache   map[string]*lua.FunctionProto
	timeout time.Duration
	closed  bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithTimeout sets the per-evaluation time limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Evaluator) { e.timeout = d }
}

// New creates an evaluator with only the base, string, table and math
// libraries loaded.
func New(opts ...Option) *Evaluator {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	e := &Evaluator{
		L:       L,
		cache:   make(map[string]*lua.FunctionProto),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Close releases the Lua state.
func (e *Evaluator) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.L.Close()
		e.closed = true
	}
}

// Evaluate runs expr against params. Compile and runtime failures are
// returned wrapping errors.ErrExpressionFailed.
func (e *Evaluator) Evaluate(expr string, params grid.ClassRuleParams) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false, fmt.Errorf("%w: evaluator closed", errors.ErrExpressionFailed)
	}

	proto, err := e.compile(expr)
	if err != nil {
		return false, fmt.Errorf("%w: %q: %v", errors.ErrExpressionFailed, expr, err)
	}

	fn := e.L.NewFunctionFromProto(proto)
	fn.Env = e.env(params)

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	top := e.L.GetTop()
	e.L.Push(fn)
	if err := e.L.PCall(0, 1, nil); err != nil {
		e.L.SetTop(top)
		return false, fmt.Errorf("%w: %q: %v", errors.ErrExpressionFailed, expr, err)
	}
	result := e.L.Get(-1)
	e.L.SetTop(top)

	return Truthy(result), nil
}

func (e *Evaluator) compile(expr string) (*lua.FunctionProto, error) {
	if proto, ok := e.cache[expr]; ok {
		return proto, nil
	}
	src := expr
	if !isFunctionBody(expr) {
		src = "return (" + expr + ")"
	}
	fn, err := e.L.LoadString(src)
	if err != nil {
		return nil, err
	}
	e.cache[expr] = fn.Proto
	return fn.Proto, nil
}

var (
	stringLiteral = regexp.MustCompile(`'(\\.|[^'\\])*'|"(\\.|[^"\\])*"`)
	returnKeyword = regexp.MustCompile(`\breturn\b`)
)

// isFunctionBody reports whether expr uses the return keyword. Names such as
// data.returned and text inside string literals do not count.
func isFunctionBody(expr string) bool {
	return returnKeyword.MatchString(stringLiteral.ReplaceAllString(expr, `""`))
}

// env builds the per-evaluation globals. Lookups that miss fall through to
// the real globals so that string, math and friends stay reachable.
func (e *Evaluator) env(params grid.ClassRuleParams) *lua.LTable {
	env := e.L.NewTable()
	meta := e.L.NewTable()
	meta.RawSetString("__index", e.L.G.Global)
	e.L.SetMetatable(env, meta)

	value := e.toLua(params.Value)
	env.RawSetString("value", value)
	env.RawSetString("x", value)
	env.RawSetString("data", e.toLua(params.Data))
	env.RawSetString("rowIndex", lua.LNumber(params.RowIndex))
	env.RawSetString("ctx", e.toLua(params.Context))
	if params.Column != nil {
		env.RawSetString("colId", lua.LString(params.Column.ID()))
	}
	return env
}

// toLua converts row values. Unsupported types become their string form.
func (e *Evaluator) toLua(v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case string:
		return lua.LString(val)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return lua.LNumber(cast.ToFloat64(val))
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return lua.LString(val.String())
		}
		return lua.LNumber(f)
	case json.RawMessage:
		return e.toLua(gjson.ParseBytes(val).Value())
	case []any:
		t := e.L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, e.toLua(item))
		}
		return t
	case []string:
		t := e.L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, lua.LString(item))
		}
		return t
	case map[string]any:
		t := e.L.NewTable()
		for k, item := range val {
			t.RawSetString(k, e.toLua(item))
		}
		return t
	case map[string]string:
		t := e.L.NewTable()
		for k, item := range val {
			t.RawSetString(k, lua.LString(item))
		}
		return t
	default:
		return lua.LString(cast.ToString(val))
	}
}

// Truthy reports whether a rule result counts as true.
func Truthy(v lua.LValue) bool {
	switch val := v.(type) {
	case *lua.LNilType:
		return false
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		return f != 0 && !math.IsNaN(f)
	case lua.LString:
		return val != ""
	default:
		return v != nil
	}
}
