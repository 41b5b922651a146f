package params

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
)

// ParseEnvFile parses environment file content in .env format.
// It returns a map of key-value pairs.
func ParseEnvFile(content []byte) (map[string]string, error) {
	values, err := godotenv.UnmarshalBytes(content)
	if err != nil {
		return nil, fmt.Errorf("invalid .env content: %w", err)
	}
	return values, nil
}

// LoadEnvFiles loads parameters from multiple .env files.
// Later files override earlier ones.
func LoadEnvFiles(fsys filesystem.FileSystemProvider, paths []string) (map[string]string, error) {
	parameters := make(map[string]string)

	for _, path := range paths {
		content, err := fsys.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read params file '%s': %w\n\nTip: Verify the path or use --param to set parameters directly", path, err)
		}

		fileParams, err := ParseEnvFile(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse params file '%s': %w\n\nTip: Verify the file format (KEY=VALUE)", path, err)
		}

		for k, v := range fileParams {
			parameters[k] = v
		}
	}

	return parameters, nil
}
