package redeemer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/photodrop/internal/filex"
)

// LoadFile reads the image at path. The media type comes from the file
// extension, or from the content when the extension is unknown.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)
	return &File{Name: name, ContentType: filex.MediaType(name, data), Data: data}, nil
}
