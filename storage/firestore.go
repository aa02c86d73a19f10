package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/talentmatch/backend/config"
	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/utils"
)

const (
	candidatesCollection = "candidates"
	companiesCollection  = "companies"
)

// ErrNotFound is returned when a candidate or company does not exist.
var ErrNotFound = errors.New("not found")

// CandidateStore is the profile-store interface the core consumes:
// keyed lookup and listing, no transactional semantics.
type CandidateStore interface {
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
}

// FirestoreClient wraps Firestore operations for candidate and company profiles
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient creates a new Firestore client
func NewFirestoreClient(ctx context.Context, cfg *config.Config) (*FirestoreClient, error) {
	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreClient{client: client}, nil
}

// Close closes the Firestore client
func (f *FirestoreClient) Close() error {
	return f.client.Close()
}

// candidateDoc is the stored shape of a candidate. Work-history dates
// arrive as free-form strings from ingestion and are normalized on read.
type candidateDoc struct {
	Name            string            `firestore:"name"`
	Email           string            `firestore:"email,omitempty"`
	Phone           string            `firestore:"phone,omitempty"`
	Skills          []string          `firestore:"skills"`
	ExperienceYears float64           `firestore:"experienceYears"`
	ExperienceLevel string            `firestore:"experienceLevel,omitempty"`
	Availability    string            `firestore:"availability,omitempty"`
	Location        string            `firestore:"location,omitempty"`
	Bio             string            `firestore:"bio,omitempty"`
	WorkHistory     []workHistoryDoc  `firestore:"workHistory,omitempty"`
	CultureAnswers  map[string]string `firestore:"cultureAnswers,omitempty"`
}

type workHistoryDoc struct {
	Role      string `firestore:"role"`
	Company   string `firestore:"company"`
	StartDate string `firestore:"startDate"`
	EndDate   string `firestore:"endDate,omitempty"`
}

func (d *candidateDoc) toCandidate(id string, now time.Time) models.Candidate {
	cand := models.Candidate{
		ID:              id,
		Name:            d.Name,
		Email:           d.Email,
		Phone:           d.Phone,
		Skills:          d.Skills,
		ExperienceYears: d.ExperienceYears,
		ExperienceLevel: models.NormalizeExperienceLevel(d.ExperienceLevel),
		Availability:    models.NormalizeAvailability(d.Availability),
		Location:        d.Location,
		Bio:             d.Bio,
		CultureAnswers:  d.CultureAnswers,
	}

	if cand.ExperienceLevel == models.LevelAny {
		cand.ExperienceLevel = models.LevelFromYears(d.ExperienceYears)
	}

	for _, job := range d.WorkHistory {
		start, ok := utils.ParseFlexibleDate(job.StartDate, now)
		if !ok {
			continue
		}
		exp := models.WorkExperience{
			Role:    job.Role,
			Company: job.Company,
			Start:   start,
		}
		// "Present" and friends stay ongoing; anything else that parses
		// becomes a concrete end instant.
		if job.EndDate != "" && !isPresent(job.EndDate) {
			if end, ok := utils.ParseFlexibleDate(job.EndDate, now); ok {
				exp.End = &end
			}
		}
		cand.WorkHistory = append(cand.WorkHistory, exp)
	}

	return cand
}

func isPresent(raw string) bool {
	switch raw {
	case "Present", "present", "Current", "current", "Now", "now":
		return true
	}
	return false
}

// GetCandidate retrieves one candidate by id
func (f *FirestoreClient) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	doc, err := f.client.Collection(candidatesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	var data candidateDoc
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("failed to parse candidate data: %w", err)
	}

	cand := data.toCandidate(doc.Ref.ID, time.Now())
	return &cand, nil
}

// ListCandidates retrieves the full candidate universe
func (f *FirestoreClient) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	now := time.Now()

	iter := f.client.Collection(candidatesCollection).Documents(ctx)
	defer iter.Stop()

	var candidates []models.Candidate
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list candidates: %w", err)
		}

		var data candidateDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, fmt.Errorf("failed to parse candidate %s: %w", doc.Ref.ID, err)
		}
		candidates = append(candidates, data.toCandidate(doc.Ref.ID, now))
	}

	return candidates, nil
}

// GetCompanyProfile retrieves a company profile by id
func (f *FirestoreClient) GetCompanyProfile(ctx context.Context, id string) (*models.CompanyProfile, error) {
	doc, err := f.client.Collection(companiesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company profile: %w", err)
	}

	var profile models.CompanyProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse company data: %w", err)
	}
	return &profile, nil
}
