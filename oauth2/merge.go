package oauth2

import (
	"encoding/json"
	"maps"

	"github.com/jrsteele09/go-oauth2-models/internal/errors"
)

// MergeJSON encodes each value and merges the resulting objects into one
// document. When a key appears more than once the last value wins, which lets
// an application add or override parameters of a standard message.
func MergeJSON(values ...any) ([]byte, error) {
	objects := make([]map[string]json.RawMessage, 0, len(values))
	for i, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding value %d", i)
		}
		var object map[string]json.RawMessage
		if err := json.Unmarshal(data, &object); err != nil || object == nil {
			return nil, errors.Wrapf(errors.ErrNotJSONObject, "value %d", i)
		}
		objects = append(objects, object)
	}
	return json.Marshal(MergeObjects(objects...))
}

// MergeObjects merges already encoded objects, later keys winning.
func MergeObjects(objects ...map[string]json.RawMessage) map[string]json.RawMessage {
	merged := make(map[string]json.RawMessage)
	for _, object := range objects {
		maps.Copy(merged, object)
	}
	return merged
}
