package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/ncd-navigator/resource-mobilization/api/internal/survey/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SurveyRepository handles submitted survey records in MongoDB.
type SurveyRepository struct {
	surveys *mongo.Collection
}

// NewSurveyRepository binds the surveys collection.
func NewSurveyRepository(db *mongo.Database, surveyCollection string) *SurveyRepository {
	return &SurveyRepository{surveys: db.Collection(surveyCollection)}
}

// Insert persists one immutable submitted record and reflects the generated
// identifier back onto the domain entity.
func (r *SurveyRepository) Insert(ctx context.Context, survey *domain.Survey) error {
	if survey == nil {
		return errors.New("survey payload is nil")
	}
	doc := mapSurveyToDocument(survey)
	doc.ID = primitive.NewObjectID()
	if _, err := r.surveys.InsertOne(ctx, doc); err != nil {
		return err
	}
	survey.ID = doc.ID.Hex()
	return nil
}

// AdminFilter expresses the admin listing criteria.
type AdminFilter struct {
	Region  string
	Keyword string
}

// AdminPaging controls the admin listing pagination.
type AdminPaging struct {
	Page  int
	Limit int
}

// FindSubmitted translates the admin filter into a Mongo query and returns
// submitted surveys newest first.
func (r *SurveyRepository) FindSubmitted(ctx context.Context, filter AdminFilter, paging AdminPaging) ([]domain.Survey, error) {
	mongoFilter := bson.M{"status": domain.StatusSubmitted}
	if region := strings.TrimSpace(filter.Region); region != "" {
		mongoFilter["organisationInfo.region"] = region
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
		mongoFilter["$or"] = bson.A{
			bson.M{"organisationInfo.organisationName": pattern},
			bson.M{"projectInfo.projectName": pattern},
			bson.M{"projectInfo.description": pattern},
		}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "submissionDate", Value: -1}})
	if paging.Limit > 0 {
		findOpts.SetLimit(int64(paging.Limit))
		if paging.Page > 1 {
			findOpts.SetSkip(int64((paging.Page - 1) * paging.Limit))
		}
	}

	cursor, err := r.surveys.Find(ctx, mongoFilter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	surveys := make([]domain.Survey, 0)
	for cursor.Next(ctx) {
		var doc SurveyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		surveys = append(surveys, mapSurveyDocument(doc))
	}
	return surveys, cursor.Err()
}

// FindByID restores a single submitted survey.
func (r *SurveyRepository) FindByID(ctx context.Context, id string) (*domain.Survey, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var doc SurveyDocument
	if err := r.surveys.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, err
	}
	survey := mapSurveyDocument(doc)
	return &survey, nil
}

func mapSurveyToDocument(survey *domain.Survey) SurveyDocument {
	activities := make(map[string]ActivityDetailDocument, len(survey.Activities))
	for name, detail := range survey.Activities {
		activities[name] = ActivityDetailDocument{
			Description:      detail.Description,
			TargetPopulation: detail.TargetPopulation,
			Coverage:         detail.Coverage,
		}
	}

	return SurveyDocument{
		Status: survey.Status,
		Organisation: OrganisationInfoDocument{
			Name:          survey.Organisation.Name,
			Region:        survey.Organisation.Region.String(),
			Sector:        survey.Organisation.Sector.String(),
			ContactPerson: survey.Organisation.ContactPerson,
			ContactEmail:  survey.Organisation.ContactEmail.String(),
			ContactPhone:  survey.Organisation.ContactPhone,
		},
		Project: ProjectInfoDocument{
			Name:            survey.Project.Name,
			Description:     survey.Project.Description,
			StartDate:       survey.Project.StartDate,
			EndDate:         survey.Project.EndDate,
			TargetedNCDs:    survey.Project.TargetedNCDs.Strings(),
			FundingSource:   survey.Project.FundingSource.String(),
			NCDSpecificInfo: survey.Project.NCDSpecificInfo,
		},
		Activities:     ProjectActivitiesDocument{NCDActivities: activities},
		SubmissionDate: survey.SubmissionDate.UTC(),
		CreatedBy: SubmitterDocument{
			UserID:      survey.CreatedBy.UserID,
			DisplayName: survey.CreatedBy.DisplayName,
		},
	}
}

// mapSurveyDocument restores a stored document into the domain entity.
// Stored values already passed the domain constructors at submission time,
// so the controlled-vocabulary types are restored directly.
func mapSurveyDocument(doc SurveyDocument) domain.Survey {
	targeted := make(domain.DiseaseList, 0, len(doc.Project.TargetedNCDs))
	for _, name := range doc.Project.TargetedNCDs {
		targeted = append(targeted, domain.Disease(name))
	}

	activities := make(map[string]domain.ActivityDetail, len(doc.Activities.NCDActivities))
	for name, detail := range doc.Activities.NCDActivities {
		activities[name] = domain.ActivityDetail{
			Description:      detail.Description,
			TargetPopulation: detail.TargetPopulation,
			Coverage:         detail.Coverage,
		}
	}

	return domain.Survey{
		ID:     doc.ID.Hex(),
		Status: doc.Status,
		Organisation: domain.OrganisationInfo{
			Name:          doc.Organisation.Name,
			Region:        domain.Region(doc.Organisation.Region),
			Sector:        domain.Sector(doc.Organisation.Sector),
			ContactPerson: doc.Organisation.ContactPerson,
			ContactEmail:  domain.Email(doc.Organisation.ContactEmail),
			ContactPhone:  doc.Organisation.ContactPhone,
		},
		Project: domain.ProjectInfo{
			Name:            doc.Project.Name,
			Description:     doc.Project.Description,
			StartDate:       doc.Project.StartDate,
			EndDate:         doc.Project.EndDate,
			TargetedNCDs:    targeted,
			FundingSource:   domain.FundingSource(doc.Project.FundingSource),
			NCDSpecificInfo: doc.Project.NCDSpecificInfo,
		},
		Activities:     activities,
		SubmissionDate: doc.SubmissionDate,
		CreatedBy: domain.Submitter{
			UserID:      doc.CreatedBy.UserID,
			DisplayName: doc.CreatedBy.DisplayName,
		},
	}
}
