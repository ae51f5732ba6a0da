package IconStore

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"IconForge/Database"
	"IconForge/ImageFetcher"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	PrefixBase         = "Base"
	PrefixHighContrast = "HighContrast"
)

var separator = strings.Repeat("-", 50)

type Store struct {
	Root  string
	RunID string
	// Index is optional; written icons are added to it after each Save.
	Index Database.IconIndex
}

func New(root string, index Database.IconIndex) *Store {
	return &Store{Root: root, Index: index}
}

// Dir is where icons of a theme and prefix are written.
func (s *Store) Dir(theme string, prefix string) string {
	return filepath.Join(s.Root, theme, prefix)
}

// FileName is "<theme>_<prefix>_<index>.png".
func FileName(theme string, prefix string, index int) string {
	return theme + "_" + prefix + "_" + strconv.Itoa(index) + ".png"
}

// Save writes icons as PNG files named by their position, creating the directory
// first even when there is nothing to write. Existing files are overwritten.
func (s *Store) Save(icons []image.Image, theme string, prefix string) ([]string, error) {
	if cwd, err := os.Getwd(); err == nil {
		log.Debug("Current working directory: ", cwd)
	}

	dir := s.Dir(theme, prefix)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	paths := make([]string, 0, len(icons))
	for i, icon := range icons {
		path := filepath.Join(dir, FileName(theme, prefix, i))
		if err := imaging.Save(icon, path); err != nil {
			return paths, fmt.Errorf("saving %s: %w", path, err)
		}
		paths = append(paths, path)
		log.Info("Saved image: ", path)
	}
	log.Info("Finished saving images for theme: ", theme, string(filepath.Separator), prefix)
	log.Info(separator)

	if s.Index != nil {
		entries := s.entries(icons, paths, theme, prefix)
		if err := s.Index.AddIcons(entries); err != nil {
			log.Error("Failed to index icons: ", err)
		}
	}

	return paths, nil
}

func (s *Store) entries(icons []image.Image, paths []string, theme string, prefix string) []Database.IconEntry {
	added := strconv.FormatInt(time.Now().Unix(), 10)
	entries := make([]Database.IconEntry, 0, len(paths))
	for i, path := range paths {
		size := icons[i].Bounds().Size()
		entries = append(entries, Database.IconEntry{
			ID:     uuid.New().String(),
			Theme:  theme,
			Prefix: prefix,
			Index:  i,
			Path:   path,
			Width:  size.X,
			Height: size.Y,
			PHash:  ImageFetcher.GeneratePHash(icons[i]),
			Added:  added,
			RunID:  s.RunID,
		})
	}
	return entries
}
