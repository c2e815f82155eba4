package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/descriptor.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ParseIssue describes one manifest entry rejected by schema validation.
type ParseIssue struct {
	Index   int    // position of the entry in the manifest array
	Path    string // instance location inside the entry (e.g., "/filename")
	Message string // human-readable reason
}

func (p ParseIssue) Error() string {
	if p.Path == "" {
		return fmt.Sprintf("entry %d: %s", p.Index, p.Message)
	}
	return fmt.Sprintf("entry %d %s: %s", p.Index, p.Path, p.Message)
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("descriptor.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("descriptor.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validateEntry validates one decoded manifest element. The error return is
// for schema compilation failures; rejections come back as issues.
func validateEntry(index int, entry any) ([]ParseIssue, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	err = schema.Validate(entry)
	if err == nil {
		return nil, nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []ParseIssue
	collectIssues(index, ve, &issues)
	if len(issues) == 0 {
		issues = append(issues, ParseIssue{Index: index, Message: ve.Error()})
	}
	return issues, nil
}

// collectIssues walks the error tree and keeps leaf errors.
func collectIssues(index int, ve *jsonschema.ValidationError, issues *[]ParseIssue) {
	if len(ve.Causes) == 0 {
		path := ""
		if len(ve.InstanceLocation) > 0 {
			path = "/" + strings.Join(ve.InstanceLocation, "/")
		}

		msg := ve.Error()
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		*issues = append(*issues, ParseIssue{Index: index, Path: path, Message: msg})
		return
	}

	for _, cause := range ve.Causes {
		collectIssues(index, cause, issues)
	}
}
