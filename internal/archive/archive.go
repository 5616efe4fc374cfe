package archive

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/klauspost/compress/zip"
	"github.com/samber/lo"
)

// ImageExtensions are extensions of archive entries which are indexed.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// Index is case-insensitive lookup of archive images by bare file name and by full path.
type Index struct {
	images map[string]models.Image
}

// Extract decompresses zip archive and indexes all image entries.
// Empty data results in empty index.
func Extract(data []byte) (*Index, error) {
	index := &Index{images: map[string]models.Image{}}
	if len(data) == 0 {
		return index, nil
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return index, fmt.Errorf("can't open archive: %w", err)
	}

	for _, file := range reader.File {
		if !isImage(file) {
			continue
		}

		content, err := readFile(file)
		if err != nil {
			return &Index{images: map[string]models.Image{}}, fmt.Errorf("can't read %q: %w", file.Name, err)
		}

		entryPath := strings.ToLower(file.Name)
		image := models.Image{
			Name: path.Base(file.Name),
			Data: content,
		}
		index.images[strings.ToLower(image.Name)] = image
		index.images[entryPath] = image
	}

	return index, nil
}

// Lookup returns image indexed under provided name or path.
func (i *Index) Lookup(name string) (models.Image, bool) {
	image, ok := i.images[strings.ToLower(strings.TrimSpace(name))]
	return image, ok
}

// Len returns number of index keys.
func (i *Index) Len() int {
	return len(i.images)
}

// SortedKeys returns all index keys in lexicographic order.
func (i *Index) SortedKeys() []string {
	keys := lo.Keys(i.images)
	sort.Strings(keys)
	return keys
}

func isImage(file *zip.File) bool {
	if file.FileInfo().IsDir() {
		return false
	}

	name := strings.ToLower(file.Name)
	if strings.HasPrefix(name, "__macosx/") || strings.HasPrefix(path.Base(name), "._") {
		return false
	}

	return lo.Contains(ImageExtensions, path.Ext(name))
}

func readFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
