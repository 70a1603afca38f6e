package seed

import "context"

// BuiltinSource serves the demo fixtures.
type BuiltinSource struct{}

// Load returns a fresh copy of Builtin.
func (BuiltinSource) Load(context.Context) (Data, error) {
	return Builtin(), nil
}

// FileRepository keeps seed data in a YAML file.
type FileRepository struct {
	Path string
}

// Load reads and validates the file.
func (r FileRepository) Load(context.Context) (Data, error) {
	return LoadYAML(r.Path)
}

// Save validates d and writes it to the file.
func (r FileRepository) Save(_ context.Context, d Data) error {
	if err := Validate(d); err != nil {
		return err
	}
	return WriteYAML(r.Path, d)
}
