package Database

import (
	"fmt"
	"time"

	"github.com/meilisearch/meilisearch-go"
	log "github.com/sirupsen/logrus"
)

const IconIndexUID = "icons"

// IconIndex records written icons somewhere searchable.
type IconIndex interface {
	AddIcons(entries []IconEntry) error
}

type MeiliIconIndex struct {
	index *meilisearch.Index
}

// NewMeiliIconIndex creates the icons index if needed and makes Theme and Prefix
// filterable.
func NewMeiliIconIndex(client *meilisearch.Client) (*MeiliIconIndex, error) {
	task, err := client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        IconIndexUID,
		PrimaryKey: "ID",
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s index: %w", IconIndexUID, err)
	}
	if !WaitForMeilisearchTask(client, task) {
		return nil, fmt.Errorf("creating %s index failed", IconIndexUID)
	}

	index := client.Index(IconIndexUID)
	task, err = index.UpdateFilterableAttributes(&[]string{"Theme", "Prefix", "RunID"})
	if err != nil {
		return nil, fmt.Errorf("updating filterable attributes: %w", err)
	}
	if !WaitForMeilisearchTask(client, task) {
		return nil, fmt.Errorf("updating filterable attributes failed")
	}

	return &MeiliIconIndex{index: index}, nil
}

func (m *MeiliIconIndex) AddIcons(entries []IconEntry) error {
	if len(entries) == 0 {
		return nil
	}

	_, err := m.index.AddDocuments(entries)
	if err != nil {
		return fmt.Errorf("adding %d documents to %s: %w", len(entries), IconIndexUID, err)
	}

	log.Info("Sent ", len(entries), " icon entries to MeiliSearch")
	return nil
}

// WaitForMeilisearchTask polls a task until it settles, returning true on success.
func WaitForMeilisearchTask(client *meilisearch.Client, info *meilisearch.TaskInfo) bool {
	for {
		task, err := client.GetTask(info.TaskUID)
		if err != nil {
			log.Error("Failed to get task: ", err)
			return false
		}
		if task.Status == "failed" {
			if task.Error.Code == "index_already_exists" {
				return true
			}
			log.Error("MeiliSearch task failed: ", task.Error.Message, " - ", task.Error.Code)
			return false
		}
		if task.Status == "succeeded" {
			return true
		}
		time.Sleep(time.Millisecond * 500)
	}
}
