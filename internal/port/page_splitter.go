package port

import "invoicelens/internal/domain"

// PageSplitter turns raw upload bytes into ordered page images.
type PageSplitter interface {
	Split(data []byte) ([]domain.PageImage, error)
}
