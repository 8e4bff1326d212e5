package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/jobtracker-ai/internal/model"
	"github.com/fadilmartias/jobtracker-ai/internal/util"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxUploadSize is the largest document accepted, 5MB.
const MaxUploadSize = 5 * 1024 * 1024

type UploadInput struct {
	FileName    string
	FileType    string
	Size        int64
	LinkedJobID string
	Content     io.Reader
}

type DocumentUsecase struct {
	repo         DocumentRepository
	applications JobApplicationRepository
	uploadDir    string
	baseURL      string
	extract      func(path string) (string, error)
}

func NewDocumentUsecase(repo DocumentRepository, applications JobApplicationRepository, uploadDir, baseURL string) *DocumentUsecase {
	return &DocumentUsecase{
		repo:         repo,
		applications: applications,
		uploadDir:    uploadDir,
		baseURL:      strings.TrimRight(baseURL, "/"),
		extract:      util.ExtractDocumentText,
	}
}

func (uc *DocumentUsecase) validateUpload(ctx context.Context, userID string, in UploadInput) (*uuid.UUID, error) {
	errs := map[string]string{}
	if strings.TrimSpace(in.FileName) == "" {
		errs["file"] = "file is required"
	}
	if !model.IsDocumentType(in.FileType) {
		errs["file_type"] = "file type must be resume, cover-letter, portfolio or other"
	}
	if in.Size > MaxUploadSize {
		errs["file"] = "file size is too large (max 5MB)"
	}
	var linked *uuid.UUID
	if in.LinkedJobID != "" {
		id, err := uuid.Parse(in.LinkedJobID)
		if err != nil {
			errs["linked_job_id"] = "linked job id is invalid"
		} else if _, err := uc.applications.FindByID(ctx, userID, id.String()); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			errs["linked_job_id"] = "linked job application not found"
		} else {
			linked = &id
		}
	}
	if len(errs) > 0 {
		return nil, newValidationError(errs)
	}
	return linked, nil
}

// Upload stores the file under <uploadDir>/<user>/<type>/ and records it.
// Resume text extraction is best effort; a failure is noted in the content
// instead of failing the upload.
func (uc *DocumentUsecase) Upload(ctx context.Context, userID string, in UploadInput) (*model.Document, error) {
	linked, err := uc.validateUpload(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	ext := strings.ToLower(filepath.Ext(in.FileName))
	dir := filepath.Join(uc.uploadDir, userID, in.FileType)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	storagePath := filepath.Join(dir, id.String()+ext)
	size, err := writeFile(storagePath, in.Content)
	if err != nil {
		return nil, err
	}
	if size > MaxUploadSize {
		_ = os.Remove(storagePath)
		return nil, newValidationError(map[string]string{"file": "file size is too large (max 5MB)"})
	}

	doc := &model.Document{
		ID:          id,
		UserID:      userID,
		FileName:    filepath.Base(in.FileName),
		FileType:    in.FileType,
		FileURL:     fmt.Sprintf("%s/documents/%s/file", uc.baseURL, id),
		FileSize:    size,
		StoragePath: storagePath,
		LinkedJobID: linked,
		UploadedOn:  time.Now(),
	}
	if in.FileType == model.DocumentTypeResume {
		content, err := uc.extract(storagePath)
		if err != nil {
			log.Printf("Error extracting text from resume %s: %v", doc.FileName, err)
			content = fmt.Sprintf("Failed to extract content from %s.", doc.FileName)
		}
		doc.ResumeContent = &content
	}

	if err := uc.repo.Create(ctx, doc); err != nil {
		_ = os.Remove(storagePath)
		return nil, err
	}
	return doc, nil
}

func writeFile(path string, r io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("cannot save file: %w", err)
	}
	defer f.Close()
	n, err := io.Copy(f, io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("cannot save file: %w", err)
	}
	return n, nil
}

func (uc *DocumentUsecase) List(ctx context.Context, userID string) ([]model.Document, error) {
	return uc.repo.List(ctx, userID)
}

func (uc *DocumentUsecase) Get(ctx context.Context, userID, id string) (*model.Document, error) {
	return uc.repo.FindByID(ctx, userID, id)
}

// ResumeText returns the extracted text of one of the user's resumes.
func (uc *DocumentUsecase) ResumeText(ctx context.Context, userID, id string) (string, error) {
	doc, err := uc.repo.FindByID(ctx, userID, id)
	if err != nil {
		return "", err
	}
	if doc.ResumeContent == nil || strings.TrimSpace(*doc.ResumeContent) == "" {
		return "", newValidationError(map[string]string{"document_id": "document has no extracted resume text"})
	}
	return *doc.ResumeContent, nil
}

func (uc *DocumentUsecase) Delete(ctx context.Context, userID, id string) error {
	doc, err := uc.repo.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	if doc.StoragePath != "" {
		if err := os.Remove(doc.StoragePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("Could not remove stored file %s: %v", doc.StoragePath, err)
		}
	}
	return nil
}
