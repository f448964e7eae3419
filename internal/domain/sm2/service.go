package sm2

import (
	"errors"
	"time"

	"github.com/studystack/studystack-api/internal/domain"
)

// Common errors
var (
	ErrNilData        = errors.New("sm2 data cannot be nil")
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")
)

// Service defines the interface for SM2 algorithm operations.
type Service interface {
	// Review computes the post-review SM2 state for a card given a
	// quality score in [0,5]. The input is not mutated.
	Review(data *domain.SM2Data, quality int, now time.Time) (domain.SM2Data, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates an SM2 service with the classic parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates an SM2 service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// Review implements the Service interface.
func (s *defaultService) Review(
	data *domain.SM2Data,
	quality int,
	now time.Time,
) (domain.SM2Data, error) {
	if data == nil {
		return domain.SM2Data{}, ErrNilData
	}

	if quality < 0 || quality > 5 {
		return domain.SM2Data{}, ErrInvalidQuality
	}

	return calculateNextData(data, quality, now, s.params), nil
}
