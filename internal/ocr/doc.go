// Package ocr locates words in images using Tesseract (via gosseract/v2), so
// they can be outlined with the draw primitives.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// The default language is English ("eng"). Languages reports what is
// installed.
//
// # Error Handling
//
// DetectWords fails when the language data is missing, Tesseract cannot be
// initialized, or the image cannot be encoded. An image without text is not
// an error; it yields an empty word list.
package ocr
