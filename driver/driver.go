// Package driver runs a program through the whole pipeline: parsing, name
// resolution, type checking and normalization.
package driver

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/smasher164/dtt/core"
	"github.com/smasher164/dtt/names"
	"github.com/smasher164/dtt/nbe"
	"github.com/smasher164/dtt/parse"
	"github.com/smasher164/dtt/typecheck"
)

// Options configures a run.
type Options struct {
	// TextualNames resolves variables by comparing their names. Otherwise
	// every variable resolves to the innermost binder in scope.
	TextualNames bool
	// DeBruijn renders results with indices instead of names.
	DeBruijn bool
}

// Result is a well-typed program in normal form.
type Result struct {
	Term   core.Term
	Normal core.Term
	Type   core.Term

	debruijn bool
}

func (r Result) render(t core.Term) string {
	if r.debruijn {
		return t.DeBruijnString()
	}
	return t.ContextString(nil)
}

// String renders the normal form followed by its type.
func (r Result) String() string {
	return r.render(r.Normal) + " : " + r.render(r.Type)
}

// Run processes src. The error is a *parse.Error, a *typecheck.TypeError,
// or wraps core.ErrInternal.
func Run(src string, opts Options) (Result, error) {
	start := time.Now()
	defer func() { log.Debugf("run took %s", time.Since(start)) }()

	st, err := parse.Parse(src)
	if err != nil {
		log.Debugf("parse failed: %v", err)
		return Result{}, err
	}
	log.Debugf("parsed %s", st)

	r := names.Resolver{Eq: names.Vacuous}
	if opts.TextualNames {
		r.Eq = names.Textual
	}
	t, err := r.Resolve(nil, st)
	if err != nil {
		log.Debugf("resolve failed: %v", err)
		return Result{}, err
	}
	log.Debugf("resolved %s", t.DeBruijnString())

	// Ill-typed terms may get stuck during evaluation, so checking comes
	// first and reports them as type errors.
	ty, err := typecheck.Infer(nil, t)
	if err != nil {
		log.Debugf("type check failed: %v", err)
		return Result{}, err
	}
	if ty, err = nbe.Normalize(ty); err != nil {
		return Result{}, err
	}
	log.Debugf("inferred %s", ty.DeBruijnString())

	nf, err := nbe.Normalize(t)
	if err != nil {
		log.Debugf("normalize failed: %v", err)
		return Result{}, err
	}
	log.Debugf("normalized %s", nf.DeBruijnString())

	return Result{Term: t, Normal: nf, Type: ty, debruijn: opts.DeBruijn}, nil
}
