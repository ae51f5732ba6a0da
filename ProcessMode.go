package main

import (
	"IconForge/IconStore"
	"IconForge/ImageFetcher"
	"IconForge/Prompt"
	"IconForge/Styler"
	"IconForge/TaskManager"
	"context"
	"image"

	log "github.com/sirupsen/logrus"
)

type Pipeline struct {
	Fetcher *ImageFetcher.Fetcher
	Store   *IconStore.Store
	Tasks   *TaskManager.TaskList
}

// RunResult lists the files written for each variant.
type RunResult struct {
	Base         []string
	HighContrast []string
}

// ProcessImages fetches the icons for req, saves them, then saves their high
// contrast variants. Both directories are created even when nothing was found.
func ProcessImages(ctx context.Context, p Pipeline, req Prompt.Request) (RunResult, error) {
	var result RunResult
	runLog := log.WithField("run", p.Tasks.RunID)
	runLog.Info("Processing theme ", req.Theme, " at ", req.Resolution, ", batch size ", req.BatchSize)

	var icons []image.Image
	err := runStage(p.Tasks, "fetch", func() (interface{}, error) {
		var err error
		icons, err = p.Fetcher.Fetch(ctx, req.Theme, req.Resolution, req.BatchSize)
		return len(icons), err
	})
	if err != nil {
		return result, err
	}

	err = runStage(p.Tasks, "save-base", func() (interface{}, error) {
		var err error
		result.Base, err = p.Store.Save(icons, req.Theme, IconStore.PrefixBase)
		return result.Base, err
	})
	if err != nil {
		return result, err
	}

	var highContrast []image.Image
	_ = runStage(p.Tasks, "transform", func() (interface{}, error) {
		highContrast = Styler.HighContrastSet(icons)
		return len(highContrast), nil
	})

	err = runStage(p.Tasks, "save-highcontrast", func() (interface{}, error) {
		var err error
		result.HighContrast, err = p.Store.Save(highContrast, req.Theme, IconStore.PrefixHighContrast)
		return result.HighContrast, err
	})
	if err != nil {
		return result, err
	}

	for _, task := range p.Tasks.GetTasks() {
		runLog.Debug("Stage ", task.Type, " ", task.Status, " in ", task.Elapsed)
	}
	runLog.Info("Wrote ", len(result.Base), " base and ", len(result.HighContrast), " high contrast icons")

	return result, nil
}

func runStage(tasks *TaskManager.TaskList, name string, stage func() (interface{}, error)) error {
	id := tasks.NewTask(name)
	tasks.StartTask(id)
	output, err := stage()
	tasks.FinishTask(id, output, err)
	return err
}
