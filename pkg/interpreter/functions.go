package interpreter

import (
	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/diag"
	"calc/interpreter-go/pkg/runtime"
)

// defineFunction registers fn in the function table, replacing any earlier
// definition, and captures a snapshot of the current scope.
func (i *Interpreter) defineFunction(def *ast.FunctionDefinition) {
	params := make([]string, 0, len(def.Params))
	for _, param := range def.Params {
		params = append(params, param.Name)
	}
	i.functions[def.ID.Name] = &Function{
		Name:    def.ID.Name,
		Params:  params,
		Body:    def.Body,
		Closure: i.scopes.Top().Snapshot(),
	}
	i.logger.Debug("function defined", "name", def.ID.Name, "params", len(params))
}

func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall) (runtime.Value, error) {
	name := call.Callee.Name
	fn, ok := i.functions[name]
	if !ok {
		return nil, diag.ErrorAt(diag.CategoryName, call.Position(), "function '%s' is not defined", name)
	}
	if len(call.Arguments) != len(fn.Params) {
		return nil, diag.ErrorAt(diag.CategoryType, call.Position(), "function '%s' expects %d arguments, got %d", name, len(fn.Params), len(call.Arguments))
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		val, err := i.evaluateOperand(arg, "argument")
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return i.invokeFunction(fn, args, call.Position())
}

// invokeFunction runs fn in a scope built from its closure and the bound
// parameters. The scope is popped however the body completes.
func (i *Interpreter) invokeFunction(fn *Function, args []runtime.Value, pos diag.Pos) (runtime.Value, error) {
	if i.callDepth >= i.maxCallDepth {
		return nil, diag.ErrorAt(diag.CategoryRecursion, pos, "maximum call depth %d exceeded calling '%s'", i.maxCallDepth, fn.Name)
	}
	scope := fn.Closure.Snapshot()
	for idx, param := range fn.Params {
		scope.Define(param, args[idx])
	}
	i.scopes.Push(scope)
	i.callDepth++
	defer func() {
		i.logger.Debug("return", "function", fn.Name, "depth", i.callDepth)
		i.callDepth--
		i.scopes.Pop()
	}()
	i.logger.Debug("call", "function", fn.Name, "depth", i.callDepth)

	for _, stmt := range fn.Body {
		c, err := i.execStatement(stmt)
		if err != nil {
			return nil, err
		}
		switch c.kind {
		case completionReturn:
			return c.value, nil
		case completionBreak, completionContinue:
			return nil, c.escaped(stmt)
		}
	}
	return nil, nil
}
