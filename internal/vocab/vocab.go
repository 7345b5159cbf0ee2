// Package vocab holds the controlled vocabularies shared by the survey and
// partner-mapping form families: administrative regions, NCD names,
// organisation sectors, work-nature categories, partner roles and funding
// sources, plus the supported reporting-year range.
package vocab

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// Regions lists the sixteen administrative regions of Ghana.
	Regions = []string{
		"Ahafo", "Ashanti", "Bono", "Bono East", "Central", "Eastern",
		"Greater Accra", "North East", "Northern", "Oti", "Savannah",
		"Upper East", "Upper West", "Volta", "Western", "Western North",
	}

	// Diseases lists the NCDs tracked by the programme.
	Diseases = []string{
		"Diabetes", "Hypertension", "Cardiovascular Disease", "Stroke",
		"Cervical Cancer", "Breast Cancer", "Childhood Cancer",
		"Chronic Respiratory Disease", "Sickle Cell Disease",
		"Chronic Kidney Disease", "Mental Health",
	}

	// Sectors lists the organisation sectors accepted on survey submissions.
	Sectors = []string{
		"Government", "Private", "NGO", "Academia",
		"Faith-Based Organisation", "Civil Society", "International Partner",
	}

	// WorkNatures lists the partner-mapping work-nature categories.
	WorkNatures = []string{
		"Advocacy", "Service Delivery", "Research", "Capacity Building",
		"Financing", "Policy Development", "Health Promotion",
	}

	// PartnerRoles lists the roles a partner can play on a project.
	PartnerRoles = []string{
		"Funder", "Implementer", "Technical Support", "Coordinator", "Convener",
	}

	// FundingSources lists the accepted project funding sources.
	FundingSources = []string{
		"Government Budget", "Donor Grant", "Internally Generated Funds",
		"Private Sponsorship", "Mixed",
	}

	regionSet        = makeFoldedSet(Regions)
	diseaseSet       = makeFoldedSet(Diseases)
	sectorSet        = makeFoldedSet(Sectors)
	workNatureSet    = makeFoldedSet(WorkNatures)
	partnerRoleSet   = makeFoldedSet(PartnerRoles)
	fundingSourceSet = makeFoldedSet(FundingSources)
)

// MinReportingYear is the earliest reporting cycle the system accepts.
const MinReportingYear = 2018

// MaxReportingYear returns the latest acceptable reporting year.
func MaxReportingYear() int {
	return time.Now().UTC().Year()
}

// ReportingYears returns the supported reporting range, newest first.
func ReportingYears() []int {
	max := MaxReportingYear()
	years := make([]int, 0, max-MinReportingYear+1)
	for y := max; y >= MinReportingYear; y-- {
		years = append(years, y)
	}
	return years
}

// ValidYear reports whether year falls within the supported reporting range.
func ValidYear(year int) bool {
	return year >= MinReportingYear && year <= MaxReportingYear()
}

func makeFoldedSet(items []string) map[string]string {
	set := make(map[string]string, len(items))
	for _, item := range items {
		set[strings.ToLower(strings.TrimSpace(item))] = item
	}
	return set
}

func canonical(set map[string]string, value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false
	}
	match, ok := set[strings.ToLower(trimmed)]
	return match, ok
}

// CanonicalRegion normalises case and whitespace variants into the canonical
// region label, resolving a few aliases seen in legacy imports.
func CanonicalRegion(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "gt accra", "accra", "greater-accra":
		return "Greater Accra", nil
	case "brong ahafo", "brong-ahafo":
		// Pre-2019 region split; legacy records map to Bono.
		return "Bono", nil
	}
	if match, ok := canonical(regionSet, trimmed); ok {
		return match, nil
	}
	if trimmed == "" {
		return "", errors.New("region is required")
	}
	return "", fmt.Errorf("unknown region: %s", trimmed)
}

// CanonicalDisease normalises an NCD name against the controlled list.
func CanonicalDisease(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "cvd":
		return "Cardiovascular Disease", nil
	case "crd", "copd", "asthma":
		return "Chronic Respiratory Disease", nil
	case "scd":
		return "Sickle Cell Disease", nil
	case "ckd":
		return "Chronic Kidney Disease", nil
	}
	if match, ok := canonical(diseaseSet, trimmed); ok {
		return match, nil
	}
	if trimmed == "" {
		return "", errors.New("disease is required")
	}
	return "", fmt.Errorf("unknown disease: %s", trimmed)
}

// CanonicalSector validates an organisation sector.
func CanonicalSector(value string) (string, error) {
	if match, ok := canonical(sectorSet, value); ok {
		return match, nil
	}
	if strings.TrimSpace(value) == "" {
		return "", errors.New("sector is required")
	}
	return "", fmt.Errorf("unknown sector: %s", strings.TrimSpace(value))
}

// CanonicalWorkNature validates a partner-mapping work-nature category.
func CanonicalWorkNature(value string) (string, error) {
	if match, ok := canonical(workNatureSet, value); ok {
		return match, nil
	}
	if strings.TrimSpace(value) == "" {
		return "", errors.New("work nature is required")
	}
	return "", fmt.Errorf("unknown work nature: %s", strings.TrimSpace(value))
}

// CanonicalPartnerRole validates a partner role.
func CanonicalPartnerRole(value string) (string, error) {
	if match, ok := canonical(partnerRoleSet, value); ok {
		return match, nil
	}
	if strings.TrimSpace(value) == "" {
		return "", errors.New("partner role is required")
	}
	return "", fmt.Errorf("unknown partner role: %s", strings.TrimSpace(value))
}

// CanonicalFundingSource validates a funding source.
func CanonicalFundingSource(value string) (string, error) {
	if match, ok := canonical(fundingSourceSet, value); ok {
		return match, nil
	}
	if strings.TrimSpace(value) == "" {
		return "", errors.New("funding source is required")
	}
	return "", fmt.Errorf("unknown funding source: %s", strings.TrimSpace(value))
}
