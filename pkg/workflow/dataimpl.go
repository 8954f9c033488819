package workflow

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

const (
	contentTypeKey     = "Content-Type"
	contentLocationKey = "Content-Location"
)

type dataImpl struct {
	identifier Identifier
	header     http.Header
	payload    interface{}
}

// NewDataFromInput creates output data derived from input. The fragment and the content location
// of input are carried over so results can be traced back to the invocation that produced them.
func NewDataFromInput(input Data, typeIdentifier Identifier, contentType string, payload interface{}) Data {
	if len(typeIdentifier.Path) == 0 {
		panic("given identifier is not a type identifier")
	}

	dataIdentifier := *typeIdentifier
	dataIdentifier.Scheme = "did"

	output := &dataImpl{
		identifier: &dataIdentifier,
		header:     http.Header{contentTypeKey: {contentType}},
		payload:    payload,
	}

	if input != nil {
		dataIdentifier.Fragment = input.GetIdentifier().Fragment
		if loc := input.GetContentLocation(); len(loc) > 0 {
			output.SetContentLocation(loc)
		}
	} else {
		dataIdentifier.Fragment = uuid.NewString()
	}

	return output
}

func NewData(id Identifier, contentType string, payload interface{}) Data {
	return NewDataFromInput(nil, id, contentType, payload)
}

func (d *dataImpl) SetMetaData(key string, value string) {
	d.header.Set(key, value)
}

func (d *dataImpl) GetMetaData(key string) (string, error) {
	values, ok := d.header[http.CanonicalHeaderKey(key)]
	if !ok || len(values) == 0 {
		return "", fmt.Errorf("key '%s' not found", key)
	}
	return values[0], nil
}

func (d *dataImpl) SetPayload(payload interface{}) {
	d.payload = payload
}

func (d *dataImpl) GetPayload() interface{} {
	return d.payload
}

func (d *dataImpl) GetIdentifier() Identifier {
	return d.identifier
}

func (d *dataImpl) GetContentType() string {
	result, _ := d.GetMetaData(contentTypeKey)
	return result
}

func (d *dataImpl) GetContentLocation() string {
	result, _ := d.GetMetaData(contentLocationKey)
	return result
}

func (d *dataImpl) SetContentLocation(location string) {
	d.SetMetaData(contentLocationKey, location)
}

func (d *dataImpl) String() string {
	return fmt.Sprintf("{data, id: %q, content-type: %q}", d.identifier.String(), d.GetContentType())
}
