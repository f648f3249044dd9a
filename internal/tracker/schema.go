package tracker

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

const trackerDef = "#Tracker"

var (
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaVal  cue.Value
	schemaErr  error
)

// loadSchema compiles the embedded schema once per process.
// A cue.Context is not safe for concurrent use, so validate holds schemaMu.
func loadSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		v := schemaCtx.CompileString(schemaSource, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compile tracker schema: %w", err)
			return
		}
		schemaVal = v.LookupPath(cue.ParsePath(trackerDef))
		if !schemaVal.Exists() {
			schemaErr = fmt.Errorf("compile tracker schema: %s not defined", trackerDef)
		}
	})
	return schemaCtx, schemaVal, schemaErr
}

var schemaMu sync.Mutex

// validate checks a decoded document (the generic map/slice form produced by
// encoding/json or yaml.v3) against #Tracker. Returns nil or a *SchemaError.
func validate(path string, doc any) error {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	ctx, schema, err := loadSchema()
	if err != nil {
		return err
	}

	data := ctx.Encode(doc)
	if err := data.Err(); err != nil {
		return &SchemaError{Path: path, Issues: convertCUEErrors(err)}
	}

	unified := schema.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &SchemaError{Path: path, Issues: convertCUEErrors(err)}
	}
	return nil
}

// convertCUEErrors flattens a CUE error list into schema issues with paths
// relative to the tracker root.
func convertCUEErrors(err error) []SchemaIssue {
	var issues []SchemaIssue
	seen := make(map[string]bool)
	for _, e := range cueerrors.Errors(err) {
		selectors := e.Path()
		if len(selectors) > 0 && selectors[0] == trackerDef {
			selectors = selectors[1:]
		}
		format, args := e.Msg()
		issue := SchemaIssue{
			Field:   strings.Join(selectors, "."),
			Message: fmt.Sprintf(format, args...),
		}
		key := issue.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		issues = append(issues, issue)
	}
	if len(issues) == 0 {
		issues = append(issues, SchemaIssue{Message: err.Error()})
	}
	return issues
}
