package domain

import (
	"fmt"
	"time"

	surveydomain "github.com/ncd-navigator/resource-mobilization/api/internal/survey/domain"
	"github.com/ncd-navigator/resource-mobilization/api/internal/vocab"
)

// StatusSubmitted marks a finalized partner-mapping record.
const StatusSubmitted = "submitted"

// MappingRecord is one organisation's set of partner-mapping entries for a
// reporting cycle. Like surveys, submitted records are immutable.
type MappingRecord struct {
	ID        string
	UserID    string
	Entries   []Entry
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entry describes a single partner engagement.
type Entry struct {
	ID           string
	Year         Year
	WorkNature   WorkNature
	Organization string
	ProjectName  string
	Region       surveydomain.Region
	District     string
	Disease      surveydomain.Disease
	PartnerName  string
	PartnerRole  PartnerRole
}

type Year int

// NewYear validates the reporting year against the supported range.
func NewYear(value int) (Year, error) {
	if !vocab.ValidYear(value) {
		return 0, fmt.Errorf("year %d outside supported reporting range %d-%d", value, vocab.MinReportingYear, vocab.MaxReportingYear())
	}
	return Year(value), nil
}

func (y Year) Int() int {
	return int(y)
}

type WorkNature string

func NewWorkNature(value string) (WorkNature, error) {
	canonical, err := vocab.CanonicalWorkNature(value)
	if err != nil {
		return "", err
	}
	return WorkNature(canonical), nil
}

func (w WorkNature) String() string {
	return string(w)
}

type PartnerRole string

func NewPartnerRole(value string) (PartnerRole, error) {
	canonical, err := vocab.CanonicalPartnerRole(value)
	if err != nil {
		return "", err
	}
	return PartnerRole(canonical), nil
}

func (p PartnerRole) String() string {
	return string(p)
}
