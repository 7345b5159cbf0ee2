// Command seed populates a development database with demonstration surveys,
// partner mappings and a bootstrap admin account.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/ncd-navigator/resource-mobilization/api/internal/config"
	mongodoc "github.com/ncd-navigator/resource-mobilization/api/internal/infrastructure/mongo"
	surveydomain "github.com/ncd-navigator/resource-mobilization/api/internal/survey/domain"
	userdomain "github.com/ncd-navigator/resource-mobilization/api/internal/user/domain"
	"github.com/ncd-navigator/resource-mobilization/api/internal/vocab"
)

type seedOptions struct {
	surveyCount     int
	mappingCount    int
	dropCollections bool
	randomSeed      int64
}

func main() {
	opts := seedOptions{}
	flag.IntVar(&opts.surveyCount, "surveys", 25, "number of demonstration surveys to insert")
	flag.IntVar(&opts.mappingCount, "mappings", 10, "number of partner-mapping records to insert")
	flag.BoolVar(&opts.dropCollections, "drop", false, "drop target collections before seeding")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed for reproducible data")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := cfg.ServerLog

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Printf("error while disconnecting MongoDB: %v", err)
		}
	}()

	db := client.Database(cfg.MongoDatabase)
	rng := rand.New(rand.NewSource(opts.randomSeed))

	if opts.dropCollections {
		for _, name := range []string{cfg.SurveyCollection, cfg.SurveyDraftCollection, cfg.PartnerCollection, cfg.PartnerDraftCollection, cfg.ResourceCollection} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				logger.Fatalf("failed to drop collection %s: %v", name, err)
			}
		}
		logger.Printf("dropped existing collections")
	}

	adminID, err := ensureAdminUser(ctx, db, cfg)
	if err != nil {
		logger.Fatalf("failed to ensure admin user: %v", err)
	}
	logger.Printf("admin account ready: %s", adminID)

	if err := seedSurveys(ctx, db.Collection(cfg.SurveyCollection), rng, opts.surveyCount, adminID); err != nil {
		logger.Fatalf("failed to seed surveys: %v", err)
	}
	logger.Printf("inserted %d surveys", opts.surveyCount)

	if err := seedMappings(ctx, db.Collection(cfg.PartnerCollection), rng, opts.mappingCount, adminID); err != nil {
		logger.Fatalf("failed to seed partner mappings: %v", err)
	}
	logger.Printf("inserted %d partner-mapping records", opts.mappingCount)

	if err := seedResources(ctx, db.Collection(cfg.ResourceCollection), adminID); err != nil {
		logger.Fatalf("failed to seed resources: %v", err)
	}
	logger.Printf("seeding complete")
}

// ensureAdminUser upserts the bootstrap administrator from config so the
// admin surface is reachable on a fresh database.
func ensureAdminUser(ctx context.Context, db *mongo.Database, cfg config.Config) (string, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminBootstrapEmail))
	if email == "" {
		email = "admin@ncd-navigator.org"
	}
	password := cfg.AdminBootstrapPassword
	if password == "" {
		password = "change-me-now"
		fmt.Fprintln(os.Stderr, "warning: ADMIN_BOOTSTRAP_PASSWORD not set, using default development password")
	}

	users := db.Collection(cfg.UserCollection)

	var existing mongodoc.UserDocument
	err := users.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return existing.ID.Hex(), nil
	}
	if err != mongo.ErrNoDocuments {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	doc := mongodoc.UserDocument{
		ID:           primitive.NewObjectID(),
		Email:        email,
		DisplayName:  "Programme Administrator",
		Organisation: "Ghana NCD Programme",
		Role:         userdomain.RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := users.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

func seedSurveys(ctx context.Context, collection *mongo.Collection, rng *rand.Rand, count int, userID string) error {
	organisations := []string{
		"Ghana Health Service", "WHO Country Office", "Korle Bu Teaching Hospital",
		"Christian Health Association of Ghana", "University of Ghana School of Public Health",
		"Ghana NCD Alliance", "World Diabetes Foundation Ghana", "PATH Ghana",
	}
	sectors := vocab.Sectors
	regions := vocab.Regions
	diseases := vocab.Diseases
	fundingSources := vocab.FundingSources

	docs := make([]any, 0, count)
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		// Spread submissions across the trailing six months so the trend
		// buckets have data.
		submitted := now.AddDate(0, -rng.Intn(6), -rng.Intn(28))

		targeted := pickDistinct(rng, diseases, 1+rng.Intn(3))
		activities := make(map[string]mongodoc.ActivityDetailDocument, len(targeted))
		for _, disease := range targeted {
			activities[disease] = mongodoc.ActivityDetailDocument{
				Description:      fmt.Sprintf("Community screening and education for %s", strings.ToLower(disease)),
				TargetPopulation: "Adults 18+",
				Coverage:         "District-wide",
			}
		}

		start := submitted.AddDate(0, -6, 0)
		end := submitted.AddDate(1, 0, 0)
		org := organisations[rng.Intn(len(organisations))]
		docs = append(docs, mongodoc.SurveyDocument{
			ID:     primitive.NewObjectID(),
			Status: surveydomain.StatusSubmitted,
			Organisation: mongodoc.OrganisationInfoDocument{
				Name:          org,
				Region:        regions[rng.Intn(len(regions))],
				Sector:        sectors[rng.Intn(len(sectors))],
				ContactPerson: "Programme Officer",
				ContactEmail:  "contact@example.org",
			},
			Project: mongodoc.ProjectInfoDocument{
				Name:          fmt.Sprintf("%s NCD initiative %d", org, i+1),
				Description:   "Demonstration record inserted by the seed command.",
				StartDate:     &start,
				EndDate:       &end,
				TargetedNCDs:  targeted,
				FundingSource: fundingSources[rng.Intn(len(fundingSources))],
			},
			Activities:     mongodoc.ProjectActivitiesDocument{NCDActivities: activities},
			SubmissionDate: submitted,
			CreatedBy:      mongodoc.SubmitterDocument{UserID: userID, DisplayName: "Programme Administrator"},
		})
	}

	_, err := collection.InsertMany(ctx, docs)
	return err
}

func seedMappings(ctx context.Context, collection *mongo.Collection, rng *rand.Rand, count int, userID string) error {
	docs := make([]any, 0, count)
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		entryCount := 1 + rng.Intn(4)
		entries := make([]mongodoc.PartnerEntryDocument, 0, entryCount)
		for j := 0; j < entryCount; j++ {
			entries = append(entries, mongodoc.PartnerEntryDocument{
				ID:           uuid.NewString(),
				Year:         vocab.MinReportingYear + rng.Intn(vocab.MaxReportingYear()-vocab.MinReportingYear+1),
				WorkNature:   vocab.WorkNatures[rng.Intn(len(vocab.WorkNatures))],
				Organization: "Regional Health Directorate",
				ProjectName:  fmt.Sprintf("Partner project %d-%d", i+1, j+1),
				Region:       vocab.Regions[rng.Intn(len(vocab.Regions))],
				District:     "Central District",
				Disease:      vocab.Diseases[rng.Intn(len(vocab.Diseases))],
				PartnerName:  "Local Implementation Partner",
				PartnerRole:  vocab.PartnerRoles[rng.Intn(len(vocab.PartnerRoles))],
			})
		}

		created := now.AddDate(0, -rng.Intn(6), -rng.Intn(28))
		docs = append(docs, mongodoc.PartnerMappingDocument{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Data:      entries,
			Status:    surveydomain.StatusSubmitted,
			CreatedAt: created,
			UpdatedAt: created,
		})
	}

	_, err := collection.InsertMany(ctx, docs)
	return err
}

func seedResources(ctx context.Context, collection *mongo.Collection, userID string) error {
	now := time.Now().UTC()
	docs := []any{
		mongodoc.ResourceDocument{
			ID:          uuid.NewString(),
			Title:       "National NCD Policy 2022",
			Description: "Policy framework for non-communicable disease prevention and control.",
			Category:    "policy",
			FileName:    "national-ncd-policy-2022.pdf",
			StoredPath:  "resources/national-ncd-policy-2022.pdf",
			ContentType: "application/pdf",
			SizeBytes:   2_400_000,
			UploadedBy:  userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		mongodoc.ResourceDocument{
			ID:          uuid.NewString(),
			Title:       "Resource Mobilization Survey Guide",
			Description: "Step-by-step guide for completing the organisational survey.",
			Category:    "guide",
			FileName:    "survey-guide.pdf",
			StoredPath:  "resources/survey-guide.pdf",
			ContentType: "application/pdf",
			SizeBytes:   860_000,
			UploadedBy:  userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	_, err := collection.InsertMany(ctx, docs)
	return err
}

func pickDistinct(rng *rand.Rand, values []string, n int) []string {
	if n > len(values) {
		n = len(values)
	}
	perm := rng.Perm(len(values))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, values[idx])
	}
	return out
}
