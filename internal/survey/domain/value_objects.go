package domain

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/ncd-navigator/resource-mobilization/api/internal/vocab"
)

type Region string

func NewRegion(value string) (Region, error) {
	canonical, err := vocab.CanonicalRegion(value)
	if err != nil {
		return "", err
	}
	return Region(canonical), nil
}

func (r Region) String() string {
	return string(r)
}

type Sector string

func NewSector(value string) (Sector, error) {
	canonical, err := vocab.CanonicalSector(value)
	if err != nil {
		return "", err
	}
	return Sector(canonical), nil
}

func (s Sector) String() string {
	return string(s)
}

type Disease string

func NewDisease(value string) (Disease, error) {
	canonical, err := vocab.CanonicalDisease(value)
	if err != nil {
		return "", err
	}
	return Disease(canonical), nil
}

func (d Disease) String() string {
	return string(d)
}

type DiseaseList []Disease

// NewDiseaseList normalises and de-duplicates the targeted NCD names.
func NewDiseaseList(values []string) (DiseaseList, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one targeted NCD is required")
	}
	result := make([]Disease, 0, len(values))
	seen := make(map[Disease]struct{})
	for _, raw := range values {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		disease, err := NewDisease(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[disease]; ok {
			continue
		}
		seen[disease] = struct{}{}
		result = append(result, disease)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("at least one targeted NCD is required")
	}
	return DiseaseList(result), nil
}

func (l DiseaseList) Strings() []string {
	result := make([]string, 0, len(l))
	for _, v := range l {
		result = append(result, string(v))
	}
	return result
}

type FundingSource string

func NewFundingSource(value string) (FundingSource, error) {
	canonical, err := vocab.CanonicalFundingSource(value)
	if err != nil {
		return "", err
	}
	return FundingSource(canonical), nil
}

func (f FundingSource) String() string {
	return string(f)
}

type Email string

func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > 254 {
		return "", fmt.Errorf("email too long")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", fmt.Errorf("invalid email: %w", err)
	}
	return Email(trimmed), nil
}

func (e Email) String() string {
	return string(e)
}
