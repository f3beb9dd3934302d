package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/gnmatch/pkg/config"
	"github.com/gnames/gnmatch/pkg/match"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var ConfigYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.SFGADir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// ReadQueries reads a list of name queries from a YAML or JSON file.
// Null elements of the list are kept as nil queries.
func ReadQueries(path string) ([]*match.NameQuery, error) {
	var res []*match.NameQuery
	err := readList(path, &res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ReadTaxonIDs reads a list of taxon identifiers from a YAML or JSON file.
// Null elements of the list are kept as nil identifiers.
func ReadTaxonIDs(path string) ([]*string, error) {
	var res []*string
	err := readList(path, &res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func readList(path string, list any) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return ReadFileError(path, err)
	}

	// JSON documents are valid YAML
	err = yaml.Unmarshal(bs, list)
	if err != nil {
		return BulkInputError(path, err)
	}
	return nil
}
