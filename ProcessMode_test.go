package main

import (
	"IconForge/Database"
	"IconForge/IconStore"
	"IconForge/ImageFetcher"
	"IconForge/Prompt"
	"IconForge/TaskManager"
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newUnsplash serves a search returning one result per size, or status when it
// is not 200.
func newUnsplash(t *testing.T, status int, sizes ...image.Point) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/photos", func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		var result ImageFetcher.UnsplashSearchResult
		for i := range sizes {
			result.Results = append(result.Results, ImageFetcher.UnsplashPhoto{
				ID:   strconv.Itoa(i),
				Urls: ImageFetcher.UnsplashUrls{Small: "http://" + r.Host + "/img/" + strconv.Itoa(i)},
			})
		}
		_ = json.NewEncoder(w).Encode(result)
	})
	for i, size := range sizes {
		img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				img.Set(x, y, color.RGBA{R: uint8(x * 3), G: 40, B: uint8(y * 2), A: 255})
			}
		}
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, img))
		body := buf.Bytes()
		mux.HandleFunc("/img/"+strconv.Itoa(i), func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(body)
		})
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newPipeline(t *testing.T, serverURL string, matchAspectRatio bool) (Pipeline, string) {
	cfg := Database.DefaultConfiguration()
	cfg.UnsplashURL = serverURL
	cfg.AccessKey = "key"
	cfg.MatchAspectRatio = matchAspectRatio
	cfg.IconDir = t.TempDir()

	tasks := TaskManager.NewTaskList()
	store := IconStore.New(cfg.IconDir, nil)
	store.RunID = tasks.RunID

	return Pipeline{
		Fetcher: ImageFetcher.NewFetcher(cfg, nil),
		Store:   store,
		Tasks:   tasks,
	}, cfg.IconDir
}

func listDir(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestProcessSingleImage(t *testing.T) {
	server := newUnsplash(t, http.StatusOK, image.Pt(64, 64))
	pipeline, root := newPipeline(t, server.URL, false)

	req := Prompt.Request{Theme: "theme", Resolution: ImageFetcher.DefaultResolution, BatchSize: 1}
	result, err := ProcessImages(context.Background(), pipeline, req)
	require.NoError(t, err)

	assert.Equal(t, []string{"theme_Base_0.png"}, listDir(t, filepath.Join(root, "theme", "Base")))
	assert.Equal(t, []string{"theme_HighContrast_0.png"}, listDir(t, filepath.Join(root, "theme", "HighContrast")))

	base, err := imaging.Open(result.Base[0])
	require.NoError(t, err)
	assert.Equal(t, image.Pt(64, 64), base.Bounds().Size())

	f, err := os.Open(result.HighContrast[0])
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 64, cfg.Height)
	assert.Equal(t, color.GrayModel, cfg.ColorModel)
}

func TestProcessSearchNotFound(t *testing.T) {
	server := newUnsplash(t, http.StatusNotFound)
	pipeline, root := newPipeline(t, server.URL, false)

	req := Prompt.Request{Theme: "nothing", Resolution: ImageFetcher.DefaultResolution, BatchSize: 1}
	result, err := ProcessImages(context.Background(), pipeline, req)
	require.NoError(t, err)

	assert.Empty(t, result.Base)
	assert.Empty(t, result.HighContrast)
	assert.Empty(t, listDir(t, filepath.Join(root, "nothing", "Base")))
	assert.Empty(t, listDir(t, filepath.Join(root, "nothing", "HighContrast")))
}

func TestProcessMatchAspectRatio(t *testing.T) {
	server := newUnsplash(t, http.StatusOK, image.Pt(100, 100), image.Pt(100, 200))
	pipeline, root := newPipeline(t, server.URL, true)

	req := Prompt.Request{Theme: "squares", Resolution: ImageFetcher.DefaultResolution, BatchSize: 2}
	_, err := ProcessImages(context.Background(), pipeline, req)
	require.NoError(t, err)

	assert.Equal(t, []string{"squares_Base_0.png"}, listDir(t, filepath.Join(root, "squares", "Base")))
	assert.Len(t, listDir(t, filepath.Join(root, "squares", "HighContrast")), 1)
}

func TestProcessTracksStages(t *testing.T) {
	server := newUnsplash(t, http.StatusOK, image.Pt(20, 20), image.Pt(30, 30))
	pipeline, _ := newPipeline(t, server.URL, false)

	req := Prompt.Request{Theme: "stages", Resolution: ImageFetcher.Resolution{Width: 16, Height: 8}, BatchSize: 2}
	_, err := ProcessImages(context.Background(), pipeline, req)
	require.NoError(t, err)

	tasks := pipeline.Tasks.GetTasks()
	require.Len(t, tasks, 4)
	types := []string{"fetch", "save-base", "transform", "save-highcontrast"}
	for i, task := range tasks {
		assert.Equal(t, types[i], task.Type)
		assert.Equal(t, TaskManager.StatusDone, task.Status)
	}
	assert.Equal(t, 2, tasks[0].Returned)
}

func TestProcessFetchFailureStopsRun(t *testing.T) {
	server := newUnsplash(t, http.StatusOK)
	pipeline, root := newPipeline(t, server.URL, false)
	server.Close()

	req := Prompt.Request{Theme: "offline", Resolution: ImageFetcher.DefaultResolution, BatchSize: 1}
	_, err := ProcessImages(context.Background(), pipeline, req)
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, "offline"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, TaskManager.StatusFailed, pipeline.Tasks.GetTasks()[0].Status)
}
