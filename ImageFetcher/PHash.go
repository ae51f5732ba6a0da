package ImageFetcher

import (
	"fmt"
	"image"
	"io"

	"github.com/corona10/goimagehash"
	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
)

func DecodeImage(r io.Reader) (image.Image, error) {
	decodedImg, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	log.Trace("Decoded image of size ", decodedImg.Bounds().Size())
	return decodedImg, nil
}

// GeneratePHash returns the perception hash of img, or 0 when it cannot be computed.
func GeneratePHash(img image.Image) uint64 {
	log.Trace("Generating PHash for image with size ", img.Bounds().Size())
	hash, err := goimagehash.PerceptionHash(img)

	if err != nil {
		log.Error("Failed to generate pHash: ", err.Error())
		return 0
	}

	log.Trace("Generated PHash ", hash.GetHash(), " for image with size ", img.Bounds().Size())

	return hash.GetHash()
}

// IsNearDuplicate reports whether needle is closer than maxDistance to any of
// the kept hashes. Zero hashes never match.
func IsNearDuplicate(needle uint64, kept []uint64, maxDistance int) bool {
	if needle == 0 {
		return false
	}

	needleHash := goimagehash.NewImageHash(needle, goimagehash.PHash)
	for _, other := range kept {
		if other == 0 {
			continue
		}

		distance, err := needleHash.Distance(goimagehash.NewImageHash(other, goimagehash.PHash))
		if err != nil {
			log.Error("Failed to get distance between hashes: ", err)
			continue
		}
		if distance < maxDistance {
			return true
		}
	}

	return false
}
