// FILE: lixenwraith/confchain/preferences/store.go
package preferences

import (
	"fmt"

	"github.com/lixenwraith/confchain"
	"github.com/lixenwraith/confchain/codec"
	"github.com/lixenwraith/confchain/internal/fileutil"
	"github.com/lixenwraith/confchain/internal/tree"
)

// Save writes the current input of every preference to path atomically.
// Dotted ids become nested tables. The format follows the file extension and
// defaults to TOML.
func (r *Registry) Save(path string) error {
	format := codec.FormatForPath(path)
	if format == "" {
		format = codec.FormatTOML
	}
	c, err := codec.New(format, codec.Pretty())
	if err != nil {
		return err
	}

	nested := make(map[string]any)
	for id, input := range r.Snapshot() {
		tree.SetNested(nested, id, input)
	}

	data, err := c.Marshal(nested)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := fileutil.WriteAtomic(path, data, 0644); err != nil {
		return err
	}
	return nil
}

// Load applies the preferences stored in path and returns the changed ids.
// Unknown ids are ignored; invalid inputs are reported after the valid ones are applied.
func (r *Registry) Load(path string) ([]string, error) {
	props := confchain.NewProperties()
	if err := props.LoadFile(path); err != nil {
		return nil, err
	}
	return r.Apply(props.Snapshot())
}
