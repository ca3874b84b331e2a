package ocr

import (
	"bytes"
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/image-draw-mcp/internal/draw"
)

// DefaultLanguage is used when WordOptions.Language is empty.
const DefaultLanguage = "eng"

// Word is a recognized word and the box around it.
//
// Origin, Height and Width follow draw.Box, so the box edges run through the
// outermost pixels Tesseract assigned to the word.
type Word struct {
	// Text is the recognized word.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	Origin draw.Coord `json:"origin"`
	Height int        `json:"height"`
	Width  int        `json:"width"`
}

// WordsResult contains the words found in an image, in reading order.
type WordsResult struct {
	Words    []Word `json:"words"`
	Count    int    `json:"count"`
	Language string `json:"language"`
}

// WordOptions controls DetectWords.
type WordOptions struct {
	// Language is a Tesseract language code such as "eng" or "deu". The
	// language data must be installed.
	Language string

	// MinConfidence drops words scored below it (0.0 to 1.0).
	MinConfidence float64
}

// DetectWords runs Tesseract over img and returns word-level boxes.
//
// The image is handed to Tesseract as an in-memory PNG, so no temporary
// files are created. Coordinates are (row, col) relative to the image's
// top-left corner.
func DetectWords(img image.Image, opts WordOptions) (*WordsResult, error) {
	if opts.MinConfidence < 0 || opts.MinConfidence > 1 {
		return nil, fmt.Errorf("min_confidence must be between 0 and 1, got %g", opts.MinConfidence)
	}
	language := opts.Language
	if language == "" {
		language = DefaultLanguage
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := wordsFromBoxes(boxes, opts.MinConfidence)
	return &WordsResult{
		Words:    words,
		Count:    len(words),
		Language: language,
	}, nil
}

// Languages lists the installed Tesseract languages.
func Languages() ([]string, error) {
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return nil, fmt.Errorf("failed to list OCR languages: %w", err)
	}
	sort.Strings(langs)
	return langs, nil
}

// wordsFromBoxes converts Tesseract boxes, whose Max corner is exclusive and
// whose confidence is a percentage. Blank words and empty boxes are skipped.
func wordsFromBoxes(boxes []gosseract.BoundingBox, minConfidence float64) []Word {
	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" || box.Box.Empty() {
			continue
		}
		confidence := box.Confidence / 100.0
		if confidence < minConfidence {
			continue
		}
		words = append(words, Word{
			Text:       text,
			Confidence: confidence,
			Origin:     draw.Pt(box.Box.Min.Y, box.Box.Min.X),
			Height:     box.Box.Dy() - 1,
			Width:      box.Box.Dx() - 1,
		})
	}
	return words
}
