package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"invoicelens/internal/domain"
	"invoicelens/internal/port"
)

// DefaultDocumentID names documents uploaded without a filename.
const DefaultDocumentID = "uploaded"

// errPagesNotArray marks a reply whose "pages" key holds something other than an array.
var errPagesNotArray = errors.New(`reply field "pages" is not an array`)

// ProcessInput is the DTO for processing one uploaded document.
type ProcessInput struct {
	Filename string
	Data     []byte
}

// DocumentService defines the document extraction contract.
type DocumentService interface {
	Process(ctx context.Context, input ProcessInput) (*domain.DocumentResult, error)
}

type documentService struct {
	splitter  port.PageSplitter
	extractor port.PageExtractor
	logger    logrus.FieldLogger
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(splitter port.PageSplitter, extractor port.PageExtractor, logger logrus.FieldLogger) DocumentService {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &documentService{
		splitter:  splitter,
		extractor: extractor,
		logger:    logger,
	}
}

// Process splits the upload into pages, extracts each page in order and
// aggregates the results. A failing page yields a placeholder entry; only a
// splitter failure fails the whole document.
func (s *documentService) Process(ctx context.Context, input ProcessInput) (*domain.DocumentResult, error) {
	docID := input.Filename
	if docID == "" {
		docID = DefaultDocumentID
	}
	log := s.logger.WithField("document_id", docID)

	pages, err := s.splitter.Split(input.Data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	log.WithField("pages", len(pages)).Info("document split")

	result := &domain.DocumentResult{
		DocumentID: docID,
		Pages:      make([]domain.PageResult, 0, len(pages)),
	}

	for i := range pages {
		pageNum := i + 1
		entries, err := s.extractPage(ctx, docID, pageNum, &pages[i])
		if err != nil {
			log.WithFields(logrus.Fields{
				"page":  pageNum,
				"error": err,
			}).Warn("page extraction failed")
			result.Pages = append(result.Pages, domain.FailedPage(pageNum, err))
			continue
		}
		result.Pages = append(result.Pages, entries...)
	}

	result.OverallConfidence = OverallConfidence(result.Pages)
	log.WithFields(logrus.Fields{
		"line_items": result.LineItemCount(),
		"confidence": result.OverallConfidence,
	}).Info("document processed")
	return result, nil
}

func (s *documentService) extractPage(ctx context.Context, docID string, pageNum int, page *domain.PageImage) ([]domain.PageResult, error) {
	obj, err := s.extractor.Extract(ctx, port.ExtractInput{
		EncodedImage: page.Encoded,
		JPEG:         page.JPEG,
		Schema:       domain.NewPageSchema(docID, pageNum),
		Filename:     docID,
		PageNum:      pageNum,
	})
	if err != nil {
		return nil, err
	}
	return PageEntries(obj, pageNum)
}

// OverallConfidence returns the mean of all line item confidences rounded to
// two decimals, or 0 when no item carries one.
func OverallConfidence(pages []domain.PageResult) float64 {
	var sum float64
	n := 0
	for i := range pages {
		for _, item := range pages[i].LineItems {
			if item.Confidence == nil {
				continue
			}
			sum += *item.Confidence
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum/float64(n)*100) / 100
}
