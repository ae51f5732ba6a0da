package ImageFetcher

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"

	"IconForge/Database"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
)

const UserAgent = "IconForge Fetcher"

const DefaultBatchSize = 1

var DefaultResolution = Resolution{Width: 64, Height: 64}

var separator = strings.Repeat("-", 50)

var failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

type Fetcher struct {
	Http      *http.Client
	BaseURL   string
	AccessKey string

	MatchAspectRatio bool
	// SkipFailedImages logs and drops an image that fails to download or decode
	// instead of aborting the whole fetch.
	SkipFailedImages bool
	// DedupeDistance drops images whose pHash is closer than this to an image
	// already kept. Zero disables it.
	DedupeDistance int

	Cache    Database.SearchCache
	Progress io.Writer
}

func NewFetcher(cfg Database.Configuration, cache Database.SearchCache) *Fetcher {
	return &Fetcher{
		Http:             &http.Client{Timeout: cfg.HTTPTimeout},
		BaseURL:          cfg.UnsplashURL,
		AccessKey:        cfg.AccessKey,
		MatchAspectRatio: cfg.MatchAspectRatio,
		SkipFailedImages: cfg.SkipFailedImages,
		DedupeDistance:   cfg.DedupeDistance,
		Cache:            cache,
	}
}

// Fetch searches Unsplash for the theme and returns the matching images resized
// to res, in the order the API returned them. A rejected search yields an empty
// slice and no error.
func (f *Fetcher) Fetch(ctx context.Context, theme string, res Resolution, batchSize int) ([]image.Image, error) {
	if res.Width <= 0 || res.Height <= 0 {
		return nil, fmt.Errorf("invalid resolution %s", res)
	}

	log.Info("Fetching images for theme: ", theme)

	result, ok, err := f.search(ctx, theme, batchSize)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []image.Image{}, nil
	}

	pbar := progressbar.NewOptions(len(result.Results),
		progressbar.OptionSetWriter(f.progressWriter()),
		progressbar.OptionSetDescription("Downloading..."),
		progressbar.OptionClearOnFinish(),
	)

	images := make([]image.Image, 0, len(result.Results))
	var hashes []uint64

	for i, photo := range result.Results {
		img, err := f.download(ctx, photo.Urls.Small)
		_ = pbar.Add(1)
		if err != nil {
			if f.SkipFailedImages {
				log.Error("Image ", i+1, " skipped, failed to fetch: ", err)
				continue
			}
			return nil, fmt.Errorf("image %d (%s): %w", i+1, photo.ID, err)
		}

		if f.MatchAspectRatio && !isSquare(img) {
			log.Info("Image ", i+1, " skipped due to unequal aspect ratio")
			continue
		}

		if f.DedupeDistance > 0 {
			hash := GeneratePHash(img)
			if IsNearDuplicate(hash, hashes, f.DedupeDistance) {
				log.Info("Image ", i+1, " skipped as a near duplicate of an earlier image")
				continue
			}
			hashes = append(hashes, hash)
		}

		images = append(images, imaging.Resize(img, res.Width, res.Height, imaging.CatmullRom))
		log.Info("Image ", i+1, " fetched and resized")
	}
	_ = pbar.Finish()

	log.Info("Finished fetching images for theme: ", theme)
	log.Info("Number of images retrieved: ", len(images))
	if len(images) == 0 {
		log.Warn(failStyle.Render("No images were retrieved."))
	}
	log.Info(separator)

	return images, nil
}

func (f *Fetcher) download(ctx context.Context, imageURL string) (image.Image, error) {
	if imageURL == "" {
		return nil, errors.New("result has no image url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)

	res, err := f.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download returned status %d", res.StatusCode)
	}

	return DecodeImage(res.Body)
}

func (f *Fetcher) client() *http.Client {
	if f.Http == nil {
		return http.DefaultClient
	}
	return f.Http
}

func (f *Fetcher) progressWriter() io.Writer {
	if f.Progress == nil {
		return io.Discard
	}
	return f.Progress
}

func isSquare(img image.Image) bool {
	size := img.Bounds().Size()
	return size.X == size.Y
}
