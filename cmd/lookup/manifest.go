package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/lookup/dtype"
	"github.com/hupe1980/lookup/loader"
)

// Manifest describes the tables the CLI builds from vocabulary files.
//
//	tables:
//	  - name: words
//	    key_type: custom[string]64
//	    value_type: int64
//	    file: s3://bucket/vocab/words.txt.gz
//	    vocabulary_size: 30000
type Manifest struct {
	Tables []TableSpec `yaml:"tables"`
}

// TableSpec is one table of a manifest. Omitted indexes default to
// mapping each whole line to its line number.
type TableSpec struct {
	Name           string `yaml:"name"`
	KeyType        string `yaml:"key_type"`
	ValueType      string `yaml:"value_type"`
	File           string `yaml:"file"`
	VocabularySize int64  `yaml:"vocabulary_size"`
	KeyIndex       int64  `yaml:"key_index"`
	ValueIndex     int64  `yaml:"value_index"`
	Delimiter      string `yaml:"delimiter"`
}

// UnmarshalYAML fills loader defaults before decoding the node.
func (s *TableSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain TableSpec
	def := loader.DefaultConfig()
	p := plain{
		VocabularySize: def.VocabularySize,
		KeyIndex:       def.KeyIndex,
		ValueIndex:     def.ValueIndex,
		Delimiter:      def.Delimiter,
	}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = TableSpec(p)
	return nil
}

func (s TableSpec) kinds() (dtype.Kind, dtype.Kind, error) {
	k, err := dtype.Parse(s.KeyType)
	if err != nil {
		return dtype.KindInvalid, dtype.KindInvalid, fmt.Errorf("table %q key_type: %w", s.Name, err)
	}
	v, err := dtype.Parse(s.ValueType)
	if err != nil {
		return dtype.KindInvalid, dtype.KindInvalid, fmt.Errorf("table %q value_type: %w", s.Name, err)
	}
	return k, v, nil
}

// Validate checks names, types and files of every table.
func (m *Manifest) Validate() error {
	if len(m.Tables) == 0 {
		return errors.New("manifest has no tables")
	}

	seen := make(map[string]bool, len(m.Tables))
	for i, t := range m.Tables {
		if t.Name == "" {
			return fmt.Errorf("table %d: missing name", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("table %q: duplicate name", t.Name)
		}
		seen[t.Name] = true

		if t.File == "" {
			return fmt.Errorf("table %q: missing file", t.Name)
		}
		if _, _, err := t.kinds(); err != nil {
			return err
		}
	}
	return nil
}

// Table returns the spec named name.
func (m *Manifest) Table(name string) (TableSpec, error) {
	for _, t := range m.Tables {
		if t.Name == name {
			return t, nil
		}
	}
	return TableSpec{}, fmt.Errorf("table %q not in manifest", name)
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadManifest parses the manifest file at path.
func ReadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseManifest(f)
}
