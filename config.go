package gpt_pairs

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/wbrown/gpt_pairs/resources"
	"gopkg.in/yaml.v3"
)

// PathList is an ordered list of corpus paths. In YAML it is either a
// sequence or a single semicolon-joined string.
type PathList []string

func (paths *PathList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*paths = SplitPaths(value.Value)
		return nil
	}
	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*paths = list
	return nil
}

// LoadConfig
// Reads a YAML run description into a PairsBuilder that starts from
// NewPairsBuilder defaults. Keys absent from the file keep their defaults.
func LoadConfig(path string) (*PairsBuilder, error) {
	contents, err := resources.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config `%s`", path)
	}
	builder := NewPairsBuilder()
	if err = yaml.Unmarshal(contents, &builder); err != nil {
		return nil, errors.Wrapf(err, "parsing config `%s`", path)
	}
	return &builder, nil
}

// SplitPaths splits a semicolon-joined path list, dropping empty entries.
func SplitPaths(joined string) PathList {
	paths := make(PathList, 0)
	for _, path := range strings.Split(joined, ";") {
		if path = strings.TrimSpace(path); path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}
