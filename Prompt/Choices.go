package Prompt

import (
	"IconForge/ImageFetcher"
	"strings"
)

type ResolutionChoice int

const (
	Resolution64x64 ResolutionChoice = iota + 1
	Resolution1000x420
	ResolutionCustom
)

var resolutionLabels = []string{"64x64", "1000x420", "custom"}

// ParseResolutionChoice maps a menu answer to a choice. Anything unrecognized is
// the 64x64 preset.
func ParseResolutionChoice(answer string) ResolutionChoice {
	switch strings.TrimSpace(answer) {
	case "2":
		return Resolution1000x420
	case "3":
		return ResolutionCustom
	default:
		return Resolution64x64
	}
}

// Preset returns the fixed resolution for the choice, or false for custom.
func (c ResolutionChoice) Preset() (ImageFetcher.Resolution, bool) {
	switch c {
	case Resolution1000x420:
		return ImageFetcher.Resolution{Width: 1000, Height: 420}, true
	case ResolutionCustom:
		return ImageFetcher.Resolution{}, false
	default:
		return ImageFetcher.DefaultResolution, true
	}
}

type BatchChoice int

const (
	Batch1 BatchChoice = iota + 1
	Batch10
	BatchCustom
)

var batchLabels = []string{"1", "10", "custom"}

// ParseBatchChoice maps a menu answer to a choice. Anything unrecognized is a
// batch of one.
func ParseBatchChoice(answer string) BatchChoice {
	switch strings.TrimSpace(answer) {
	case "2":
		return Batch10
	case "3":
		return BatchCustom
	default:
		return Batch1
	}
}

func (c BatchChoice) Preset() (int, bool) {
	switch c {
	case Batch10:
		return 10, true
	case BatchCustom:
		return 0, false
	default:
		return ImageFetcher.DefaultBatchSize, true
	}
}
