package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"time"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/extractor"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/nlp"
	mongorepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/mongo"
	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/storage"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type IngestionKind string

const (
	StorageFailed     IngestionKind = models.IngestionStorageFailed
	ExtractionFailed  IngestionKind = models.IngestionExtractionFailed
	PersistenceFailed IngestionKind = models.IngestionPersistenceFailed
)

// IngestionError is carried inside the AppError returned by CVService.Ingest.
type IngestionError struct {
	Kind IngestionKind
	Err  error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// IngestionKindOf returns the ingestion failure kind in err's chain, if any.
func IngestionKindOf(err error) (IngestionKind, bool) {
	var ie *IngestionError
	if errors.As(err, &ie) {
		return ie.Kind, true
	}
	return "", false
}

type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Submission is one CV as sent by a user. File wins over Text when both are set.
type Submission struct {
	File *UploadedFile
	Text string
}

type TextExtractor interface {
	Extract(ctx context.Context, in extractor.Input) (string, error)
	Supports(ext string) bool
}

type CVService interface {
	Ingest(ctx context.Context, ownerID string, sub Submission) (*models.CV, error)
	List(ctx context.Context, ownerID string, limit int) ([]models.CV, error)
	Get(ctx context.Context, ownerID, id string) (*models.CV, error)
	FileURL(ctx context.Context, ownerID, id string) (string, error)
	History(ctx context.Context, ownerID string, limit int) ([]models.IngestionEvent, error)
}

type CVDeps struct {
	Tx        pgrepo.TxRunner
	CVs       pgrepo.CVRepository
	Skills    pgrepo.SkillRepository
	Uploader  storage.Uploader
	Extractor TextExtractor
	Events    mongorepo.IngestionEventRepository // optional
	SignTTL   time.Duration
	Log       *logrus.Logger
}

type cvService struct {
	CVDeps
}

func NewCVService(d CVDeps) CVService {
	if d.Extractor == nil {
		d.Extractor = extractor.NewDefault()
	}
	if d.SignTTL <= 0 {
		d.SignTTL = 15 * time.Minute
	}
	return &cvService{CVDeps: d}
}

func (s *cvService) Ingest(ctx context.Context, ownerID string, sub Submission) (*models.CV, error) {
	const op = "CVService.Ingest"

	if ownerID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "owner is required", nil)
	}

	ev := &models.IngestionEvent{UserID: ownerID}
	row := &models.CV{ID: uuid.NewString(), UserID: ownerID}

	in := extractor.TextInput(sub.Text)
	if f := sub.File; f != nil {
		ext := extractor.NormalizeExtension(filepath.Ext(f.Filename))
		ev.Filename, ev.Extension = f.Filename, ext
		ev.RawFallback = !s.Extractor.Supports(ext)

		contentType := f.ContentType
		if contentType == "" {
			contentType = mime.TypeByExtension("." + ext)
		}

		stored, err := s.store(ctx, ownerID, ext, contentType, f.Data)
		if err != nil {
			s.record(ctx, ev, StorageFailed, err)
			return nil, utils.E(utils.CodeUnavailable, op, "failed to store cv file", &IngestionError{Kind: StorageFailed, Err: err})
		}
		ev.StoragePath = stored

		row.OriginalFilename = &f.Filename
		row.StoragePath = &stored
		if contentType != "" {
			row.MimeType = &contentType
		}
		in = extractor.FileInput(f.Data, ext)
	}

	text, err := s.Extractor.Extract(ctx, in)
	if err != nil {
		s.record(ctx, ev, ExtractionFailed, err)
		return nil, utils.E(utils.CodeUnprocessable, op, "could not read text from the document", &IngestionError{Kind: ExtractionFailed, Err: err})
	}

	vocabulary, err := s.Skills.ListNames(ctx)
	if err != nil {
		s.record(ctx, ev, PersistenceFailed, err)
		return nil, utils.E(utils.CodeInternal, op, "failed to load skills", &IngestionError{Kind: PersistenceFailed, Err: err})
	}
	matched := nlp.MatchSkills(text, vocabulary)

	now := time.Now().UTC()
	row.TextContent = text
	row.MatchedSkills = datatypes.JSONSlice[string](matched)
	row.ParsedAt = now
	row.CreatedAt = now

	err = s.Tx.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.CVs.WithTx(tx).Insert(ctx, row); err != nil {
			return err
		}
		skills := s.Skills.WithTx(tx)
		ids, err := skills.IDsByNames(ctx, matched)
		if err != nil {
			return err
		}
		atts := make([]models.SkillAttachment, 0, len(ids))
		for _, name := range matched {
			if id, ok := ids[name]; ok {
				atts = append(atts, models.SkillAttachment{SkillID: id})
			}
		}
		return skills.Attach(ctx, ownerID, atts)
	})
	if err != nil {
		s.record(ctx, ev, PersistenceFailed, err)
		return nil, utils.E(utils.CodeInternal, op, "failed to save cv", &IngestionError{Kind: PersistenceFailed, Err: err})
	}

	ev.CVID = row.ID
	ev.TextLength = len(text)
	ev.MatchedCount = len(matched)
	s.record(ctx, ev, models.IngestionOK, nil)
	return row, nil
}

func (s *cvService) store(ctx context.Context, ownerID, ext, contentType string, data []byte) (string, error) {
	if s.Uploader == nil {
		return "", errors.New("uploader is not configured")
	}
	return s.Uploader.Upload(ctx, storage.CVObjectName(ownerID, ext), contentType, bytes.NewReader(data))
}

// record logs the attempt and appends it to the audit log when one is configured.
func (s *cvService) record(ctx context.Context, ev *models.IngestionEvent, outcome IngestionKind, cause error) {
	ev.Outcome = string(outcome)
	entry := s.Log.WithFields(logrus.Fields{
		"user_id":   ev.UserID,
		"cv_id":     ev.CVID,
		"outcome":   ev.Outcome,
		"extension": ev.Extension,
		"raw":       ev.RawFallback,
		"matched":   ev.MatchedCount,
	})
	if cause != nil {
		ev.Error = cause.Error()
		entry.WithError(cause).Warn("cv ingestion failed")
	} else {
		entry.Info("cv ingested")
	}

	if s.Events == nil {
		return
	}
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.Events.Insert(actx, ev); err != nil {
		s.Log.WithError(err).Warn("ingestion audit insert failed")
	}
}

func (s *cvService) List(ctx context.Context, ownerID string, limit int) ([]models.CV, error) {
	const op = "CVService.List"

	if ownerID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "owner is required", nil)
	}
	rows, err := s.CVs.ListByUser(ctx, ownerID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list cvs", err)
	}
	return rows, nil
}

func (s *cvService) Get(ctx context.Context, ownerID, id string) (*models.CV, error) {
	const op = "CVService.Get"

	if ownerID == "" || id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "owner and id are required", nil)
	}
	row, err := s.CVs.GetForOwner(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "cv not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get cv", err)
	}
	return row, nil
}

func (s *cvService) FileURL(ctx context.Context, ownerID, id string) (string, error) {
	const op = "CVService.FileURL"

	row, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return "", err
	}
	if row.StoragePath == nil || *row.StoragePath == "" {
		return "", utils.E(utils.CodeNotFound, op, "cv has no stored file", nil)
	}
	signer, ok := s.Uploader.(storage.Signer)
	if !ok {
		return "", utils.E(utils.CodeUnavailable, op, "storage backend does not issue download urls", nil)
	}
	url, err := signer.SignedGetURL(ctx, *row.StoragePath, s.SignTTL)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to sign download url", err)
	}
	return url, nil
}

func (s *cvService) History(ctx context.Context, ownerID string, limit int) ([]models.IngestionEvent, error) {
	const op = "CVService.History"

	if ownerID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "owner is required", nil)
	}
	if s.Events == nil {
		return []models.IngestionEvent{}, nil
	}
	rows, err := s.Events.ListByUser(ctx, ownerID, int64(limit))
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to read ingestion history", err)
	}
	return rows, nil
}
