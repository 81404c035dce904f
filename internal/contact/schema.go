package contact

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/submission.json
var submissionSchema []byte

const submissionSchemaURL = "schema/submission.json"

var compiledSubmission = mustCompile()

func mustCompile() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(submissionSchemaURL, bytes.NewReader(submissionSchema)); err != nil {
		panic(fmt.Sprintf("contact: add schema: %v", err))
	}
	return compiler.MustCompile(submissionSchemaURL)
}

// DecodeSubmission validates a JSON body against the submission schema and
// decodes it.
func DecodeSubmission(body []byte) (Submission, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return Submission{}, fmt.Errorf("contact: body is not valid JSON: %w", err)
	}
	if err := compiledSubmission.Validate(v); err != nil {
		return Submission{}, fmt.Errorf("contact: schema validation failed: %w", err)
	}
	var sub Submission
	if err := json.Unmarshal(body, &sub); err != nil {
		return Submission{}, fmt.Errorf("contact: decode submission: %w", err)
	}
	return sub, nil
}
