package mongo

import (
	"context"
	"time"

	statsapp "github.com/ncd-navigator/resource-mobilization/api/internal/stats/application"
	surveydomain "github.com/ncd-navigator/resource-mobilization/api/internal/survey/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatsRepository runs the read-only aggregation pipelines the dashboard
// statistics are derived from.
type StatsRepository struct {
	surveys *mongo.Collection
	drafts  *mongo.Collection
	users   *mongo.Collection
}

// NewStatsRepository binds the surveys, survey_drafts and users collections.
func NewStatsRepository(db *mongo.Database, surveyCollection, draftCollection, userCollection string) *StatsRepository {
	return &StatsRepository{
		surveys: db.Collection(surveyCollection),
		drafts:  db.Collection(draftCollection),
		users:   db.Collection(userCollection),
	}
}

func submittedFilter() bson.M {
	return bson.M{"status": surveydomain.StatusSubmitted}
}

func (r *StatsRepository) CountSurveys(ctx context.Context) (int64, error) {
	return r.surveys.CountDocuments(ctx, submittedFilter())
}

func (r *StatsRepository) CountSurveysSince(ctx context.Context, since time.Time) (int64, error) {
	filter := submittedFilter()
	filter["submissionDate"] = bson.M{"$gte": since.UTC()}
	return r.surveys.CountDocuments(ctx, filter)
}

func (r *StatsRepository) CountDrafts(ctx context.Context) (int64, error) {
	return r.drafts.CountDocuments(ctx, bson.D{})
}

func (r *StatsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.users.CountDocuments(ctx, bson.D{})
}

func (r *StatsRepository) DistinctOrganisations(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "organisationInfo.organisationName")
}

func (r *StatsRepository) DistinctRegions(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "organisationInfo.region")
}

func (r *StatsRepository) distinctStrings(ctx context.Context, field string) ([]string, error) {
	values, err := r.surveys.Distinct(ctx, field, submittedFilter())
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		if s, ok := value.(string); ok {
			result = append(result, s)
		}
	}
	return result, nil
}

// SurveyNCDNames projects, per survey, the targeted NCD array and the keys
// of the activity map. The cross-source dedup happens service-side.
func (r *StatsRepository) SurveyNCDNames(ctx context.Context) ([]statsapp.NCDNames, error) {
	opts := options.Find().SetProjection(bson.M{
		"projectInfo.targetedNCDs":        1,
		"projectActivities.ncdActivities": 1,
	})
	cursor, err := r.surveys.Find(ctx, submittedFilter(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := make([]statsapp.NCDNames, 0)
	for cursor.Next(ctx) {
		var doc struct {
			Project struct {
				TargetedNCDs []string `bson:"targetedNCDs"`
			} `bson:"projectInfo"`
			Activities struct {
				NCDActivities bson.M `bson:"ncdActivities"`
			} `bson:"projectActivities"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(doc.Activities.NCDActivities))
		for key := range doc.Activities.NCDActivities {
			keys = append(keys, key)
		}
		rows = append(rows, statsapp.NCDNames{
			Targeted:     doc.Project.TargetedNCDs,
			ActivityKeys: keys,
		})
	}
	return rows, cursor.Err()
}

func (r *StatsRepository) CountByRegion(ctx context.Context) ([]statsapp.GroupCount, error) {
	return r.groupCount(ctx, "$organisationInfo.region")
}

func (r *StatsRepository) CountBySector(ctx context.Context) ([]statsapp.GroupCount, error) {
	return r.groupCount(ctx, "$organisationInfo.sector")
}

func (r *StatsRepository) groupCount(ctx context.Context, field string) ([]statsapp.GroupCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: submittedFilter()}},
		{{Key: "$group", Value: bson.M{
			"_id":   field,
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := r.surveys.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	groups := make([]statsapp.GroupCount, 0)
	for cursor.Next(ctx) {
		var row struct {
			Name  string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		if row.Name == "" {
			continue
		}
		groups = append(groups, statsapp.GroupCount{Name: row.Name, Count: row.Count})
	}
	return groups, cursor.Err()
}

func (r *StatsRepository) MonthlySurveyCounts(ctx context.Context, from time.Time) (map[statsapp.MonthKey]int, error) {
	return monthlyCounts(ctx, r.surveys, "submissionDate", submittedFilter(), from)
}

func (r *StatsRepository) MonthlyDraftCounts(ctx context.Context, from time.Time) (map[statsapp.MonthKey]int, error) {
	return monthlyCounts(ctx, r.drafts, "createdAt", bson.M{}, from)
}

// monthlyCounts buckets documents by the (year, month) of dateField.
// Zero-fill for empty months is the service's concern.
func monthlyCounts(ctx context.Context, collection *mongo.Collection, dateField string, match bson.M, from time.Time) (map[statsapp.MonthKey]int, error) {
	match[dateField] = bson.M{"$gte": from.UTC()}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$" + dateField},
				"month": bson.M{"$month": "$" + dateField},
			},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[statsapp.MonthKey]int)
	for cursor.Next(ctx) {
		var row struct {
			ID struct {
				Year  int `bson:"year"`
				Month int `bson:"month"`
			} `bson:"_id"`
			Count int `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[statsapp.MonthKey{Year: row.ID.Year, Month: time.Month(row.ID.Month)}] = row.Count
	}
	return counts, cursor.Err()
}

// RecentSurveys returns the most recently submitted surveys projected down
// to the activity-feed fields.
func (r *StatsRepository) RecentSurveys(ctx context.Context, limit int) ([]statsapp.ActivityItem, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "submissionDate", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{
			"status":                            1,
			"submissionDate":                    1,
			"organisationInfo.organisationName": 1,
			"organisationInfo.region":           1,
			"projectInfo.projectName":           1,
			"createdBy.displayName":             1,
		})

	cursor, err := r.surveys.Find(ctx, submittedFilter(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]statsapp.ActivityItem, 0, limit)
	for cursor.Next(ctx) {
		var doc SurveyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, statsapp.ActivityItem{
			OrganisationName: doc.Organisation.Name,
			ProjectName:      doc.Project.Name,
			Region:           doc.Organisation.Region,
			Status:           doc.Status,
			CreatedBy:        doc.CreatedBy.DisplayName,
			SubmissionDate:   doc.SubmissionDate,
		})
	}
	return items, cursor.Err()
}
