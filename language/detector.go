package language

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pemistahl/lingua-go"
	"github.com/poiesic/dalil/core"
)

// Detector classifies input text by language.
// Implementations must be thread-safe for concurrent use.
type Detector interface {
	// Detect returns the language tag of the text.
	// It succeeds only for English and Arabic; any other detected language,
	// and any classification failure, is reported as core.ErrUnsupportedLanguage.
	Detect(text string) (core.Language, error)
}

// LinguaDetector implements Detector using the lingua language classifier.
// The classifier is built over the full language set so that text in an
// unsupported language is identified as such rather than forced into the
// nearest supported one.
type LinguaDetector struct {
	detector lingua.LanguageDetector
	logger   *slog.Logger
}

var _ Detector = (*LinguaDetector)(nil)

// NewDetector creates a language detector.
// Building the classifier loads language models lazily; the returned detector
// is stateless and safe for concurrent use.
func NewDetector() *LinguaDetector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &LinguaDetector{
		detector: detector,
		logger:   slog.Default().With("component", "language-detector"),
	}
}

// Detect classifies text as English or Arabic.
func (d *LinguaDetector) Detect(text string) (core.Language, error) {
	detected, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		d.logger.Debug("language classification failed", "length", len(text))
		return "", fmt.Errorf("%w: undetermined", core.ErrUnsupportedLanguage)
	}

	code := strings.ToLower(detected.IsoCode639_1().String())
	lang, err := core.ParseLanguage(code)
	if err != nil {
		d.logger.Debug("detected unsupported language", "code", code)
		return "", err
	}
	return lang, nil
}
