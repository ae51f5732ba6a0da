package main

import (
	"IconForge/Database"
	"IconForge/IconStore"
	"IconForge/ImageFetcher"
	"IconForge/Prompt"
	"IconForge/TaskManager"
	"context"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetOutput(os.Stdout)

	cfg, err := Database.LoadConfiguration()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cache Database.SearchCache
	if cfg.CacheEnabled() {
		redisClient, err := Database.ConnectRedis(ctx, cfg.RedisHost, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("Search cache disabled: ", err)
		} else {
			defer redisClient.Close()
			cache = Database.NewRedisSearchCache(redisClient)
		}
	}

	var index Database.IconIndex
	if cfg.IndexEnabled() {
		meiliClient, err := Database.ConnectMeilisearch(cfg.MeiliHost, cfg.MeiliKey)
		if err == nil {
			index, err = Database.NewMeiliIconIndex(meiliClient)
		}
		if err != nil {
			log.Warn("Icon index disabled: ", err)
			index = nil
		}
	}

	req, err := Prompt.New(os.Stdin, os.Stdout).Collect()
	if err != nil {
		log.WithError(err).Fatal("Failed to read input")
	}

	tasks := TaskManager.NewTaskList()

	fetcher := ImageFetcher.NewFetcher(cfg, cache)
	fetcher.Progress = os.Stderr

	store := IconStore.New(cfg.IconDir, index)
	store.RunID = tasks.RunID

	_, err = ProcessImages(ctx, Pipeline{Fetcher: fetcher, Store: store, Tasks: tasks}, req)
	if err != nil {
		log.WithFields(log.Fields{
			"run":   tasks.RunID,
			"theme": req.Theme,
			"error": err.Error(),
		}).Fatal("Icon run failed")
	}
}
