package build

import (
	"fmt"
	"rolec/generate"
	"rolec/logging"
	"rolec/mods"
	"rolec/typing"
	"rolec/walk"
	"strings"
)

// CoercionResult is the outcome of one coercion query against the root module
type CoercionResult struct {
	// Check is the configured check this result answers.  It is nil for ad
	// hoc queries.
	Check *mods.CoercionCheck

	From, To typing.DataType
	Verdict  *typing.Verdict
}

// Accepted reports whether the coercion is allowed without conditions
func (cr *CoercionResult) Accepted() bool {
	return cr.Verdict.Answer == typing.Yes
}

// Query answers whether one type written in source syntax can be coerced to
// another in the root module.  The root module must have been analyzed
// successfully.
func (c *Compiler) Query(from, to string) (*CoercionResult, error) {
	pkg := c.RootPackage()
	if pkg == nil || !pkg.Resolved() {
		return nil, fmt.Errorf("module `%s` has not been checked", c.rootMod.Name)
	}

	a, err := walk.ParseAndLowerType(from, pkg.Symbols)
	if err != nil {
		return nil, fmt.Errorf("invalid type `%s`: %s", from, err.Error())
	}

	b, err := walk.ParseAndLowerType(to, pkg.Symbols)
	if err != nil {
		return nil, fmt.Errorf("invalid type `%s`: %s", to, err.Error())
	}

	return &CoercionResult{
		From:    a,
		To:      b,
		Verdict: typing.QueryWithDepth(pkg.Roles, a, b, c.rootMod.CoercionDepth),
	}, nil
}

// runCoercionChecks runs every coercion check configured for the root module
// and logs an error for each one whose answer differs from the expected one.
// A conditional answer counts as not coercible.
func (c *Compiler) runCoercionChecks() {
	lctx := c.RootPackage().LogContextFor("")

	for _, check := range c.rootMod.Coercions {
		result, err := c.Query(check.From, check.To)
		if err != nil {
			logging.LogCompileError(
				lctx,
				fmt.Sprintf("coercion check from `%s` to `%s`: %s", check.From, check.To, err.Error()),
				logging.LMKCoerce,
				nil,
			)

			continue
		}

		result.Check = check
		c.results = append(c.results, result)

		if msg, ok := checkFailure(result, c.rootMod.CoercionDepth); ok {
			logging.LogCompileError(lctx, msg, logging.LMKCoerce, nil)
		}
	}
}

// checkFailure describes why a coercion check failed, if it did
func checkFailure(result *CoercionResult, depth int) (string, bool) {
	from, to := result.From.Repr(), result.To.Repr()
	verdict := result.Verdict

	if verdict.Exhausted {
		return fmt.Sprintf("coercion check from `%s` to `%s` exceeded its recursion budget of %d", from, to, depth), true
	}

	switch {
	case result.Check.Expect && verdict.Answer == typing.No:
		return fmt.Sprintf("expected `%s` to be coercible to `%s` but it is not: %s", from, to, verdict.Reason), true
	case result.Check.Expect && verdict.Answer == typing.Conditional:
		obs := make([]string, len(verdict.Obligations))
		for i, o := range verdict.Obligations {
			obs[i] = o.Repr()
		}

		return fmt.Sprintf("expected `%s` to be coercible to `%s` but it requires %s", from, to, strings.Join(obs, ", ")), true
	case !result.Check.Expect && verdict.Answer == typing.Yes:
		return fmt.Sprintf("expected `%s` not to be coercible to `%s` but it is", from, to), true
	}

	return "", false
}

// emitShims writes the coercion shims of every accepted check between closed
// types to an LLVM module
func (c *Compiler) emitShims(path string) {
	g := generate.NewGenerator(c.rootMod.Name)

	for _, result := range c.results {
		if result.Accepted() && typing.IsClosed(result.From) && typing.IsClosed(result.To) {
			g.AddCoercion(result.From, result.To)
		}
	}

	if err := g.WriteFile(path); err != nil {
		logging.LogConfigError("Output", err.Error())
	}
}
