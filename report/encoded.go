package report

import (
	"encoding/json"
	"io"

	"github.com/viant/patternlint/engine"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// jsonWriter writes issues as a JSON array of flat records
type jsonWriter struct{}

func (j *jsonWriter) Write(w io.Writer, result *engine.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(result).Issues)
}

type yamlWriter struct{}

func (y *yamlWriter) Write(w io.Writer, result *engine.Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(NewDocument(result)); err != nil {
		return err
	}
	return encoder.Close()
}

// msgpackWriter writes the document keyed by the JSON field names
type msgpackWriter struct{}

func (m *msgpackWriter) Write(w io.Writer, result *engine.Result) error {
	encoder := msgpack.NewEncoder(w)
	encoder.SetCustomStructTag("json")
	encoder.SetOmitEmpty(true)
	return encoder.Encode(NewDocument(result))
}
