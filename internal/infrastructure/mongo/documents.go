package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyDocument is the MongoDB schema of one submitted organisational
// survey. Submitted documents are never updated.
type SurveyDocument struct {
	ID             primitive.ObjectID        `bson:"_id"`
	Status         string                    `bson:"status"`
	Organisation   OrganisationInfoDocument  `bson:"organisationInfo"`
	Project        ProjectInfoDocument       `bson:"projectInfo"`
	Activities     ProjectActivitiesDocument `bson:"projectActivities"`
	SubmissionDate time.Time                 `bson:"submissionDate"`
	CreatedBy      SubmitterDocument         `bson:"createdBy"`
}

// OrganisationInfoDocument embeds the submitting organisation's details.
type OrganisationInfoDocument struct {
	Name          string `bson:"organisationName"`
	Region        string `bson:"region"`
	Sector        string `bson:"sector"`
	ContactPerson string `bson:"contactPerson,omitempty"`
	ContactEmail  string `bson:"contactEmail,omitempty"`
	ContactPhone  string `bson:"contactPhone,omitempty"`
}

// ProjectInfoDocument embeds the reported project's details.
type ProjectInfoDocument struct {
	Name            string            `bson:"projectName"`
	Description     string            `bson:"description,omitempty"`
	StartDate       *time.Time        `bson:"startDate,omitempty"`
	EndDate         *time.Time        `bson:"endDate,omitempty"`
	TargetedNCDs    []string          `bson:"targetedNCDs"`
	FundingSource   string            `bson:"fundingSource,omitempty"`
	NCDSpecificInfo map[string]string `bson:"ncdSpecificInfo,omitempty"`
}

// ProjectActivitiesDocument holds the per-NCD activity map keyed by NCD name.
type ProjectActivitiesDocument struct {
	NCDActivities map[string]ActivityDetailDocument `bson:"ncdActivities,omitempty"`
}

// ActivityDetailDocument embeds one NCD's activity description.
type ActivityDetailDocument struct {
	Description      string `bson:"description,omitempty"`
	TargetPopulation string `bson:"targetPopulation,omitempty"`
	Coverage         string `bson:"coverage,omitempty"`
}

// SubmitterDocument references the authenticated submitter.
type SubmitterDocument struct {
	UserID      string `bson:"userId"`
	DisplayName string `bson:"displayName,omitempty"`
}

// DraftDocument is the per-user in-progress form state for one form family.
// Exactly zero or one document exists per userId in each draft collection;
// every save is an upsert keyed on userId.
type DraftDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userId"`
	FormData    bson.M             `bson:"formData"`
	CurrentStep int                `bson:"currentStep"`
	CreatedAt   time.Time          `bson:"createdAt"`
	LastUpdated time.Time          `bson:"lastUpdated"`
}

// PartnerMappingDocument is one organisation's submitted set of
// partner-mapping entries for a reporting cycle.
type PartnerMappingDocument struct {
	ID        primitive.ObjectID     `bson:"_id"`
	UserID    string                 `bson:"userId"`
	Data      []PartnerEntryDocument `bson:"data"`
	Status    string                 `bson:"status"`
	CreatedAt time.Time              `bson:"createdAt"`
	UpdatedAt time.Time              `bson:"updatedAt"`
}

// PartnerEntryDocument embeds a single partner engagement row.
type PartnerEntryDocument struct {
	ID           string `bson:"id"`
	Year         int    `bson:"year"`
	WorkNature   string `bson:"workNature"`
	Organization string `bson:"organization"`
	ProjectName  string `bson:"projectName,omitempty"`
	Region       string `bson:"region"`
	District     string `bson:"district,omitempty"`
	Disease      string `bson:"disease"`
	PartnerName  string `bson:"partnerName"`
	PartnerRole  string `bson:"partnerRole"`
}

// UserDocument is an account record.
type UserDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Email        string             `bson:"email"`
	DisplayName  string             `bson:"displayName,omitempty"`
	Organisation string             `bson:"organisation,omitempty"`
	Role         string             `bson:"role"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// ResourceDocument stores uploaded-file metadata; the file body lives in
// object storage under StoredPath.
type ResourceDocument struct {
	ID            string    `bson:"_id"`
	Title         string    `bson:"title"`
	Description   string    `bson:"description,omitempty"`
	Category      string    `bson:"category,omitempty"`
	FileName      string    `bson:"fileName,omitempty"`
	StoredPath    string    `bson:"storedPath"`
	ContentType   string    `bson:"contentType,omitempty"`
	SizeBytes     int64     `bson:"sizeBytes,omitempty"`
	DownloadCount int       `bson:"downloadCount"`
	UploadedBy    string    `bson:"uploadedBy,omitempty"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}
