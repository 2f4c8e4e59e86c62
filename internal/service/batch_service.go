package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/manifest"
	"gpcaffidavit/internal/port"
	"gpcaffidavit/internal/session"
)

// ManifestFileName is the workbook added to every batch bundle.
const ManifestFileName = "manifest.xlsx"

// BatchFile is one uploaded GPC.
type BatchFile struct {
	FileName string
	Data     []byte
}

// BatchResult is the outcome of a processed batch.
type BatchResult struct {
	ID     uuid.UUID
	Items  []session.Item
	Counts session.Counts
	// Bundle is a zip of every generated affidavit plus the manifest.
	Bundle []byte
	// BundleURL is a presigned download link when the bundle was uploaded.
	BundleURL string
}

// BatchService processes a set of uploads one file at a time.
type BatchService interface {
	Process(ctx context.Context, files []BatchFile) (*BatchResult, error)
}

type batchService struct {
	extraction ExtractionService
	affidavits AffidavitService
	storage    port.ObjectStorage
	s3         config.S3Config
	maxFiles   int
}

// NewBatchService creates a new BatchService implementation. storage may be
// nil, in which case bundles are only returned inline.
func NewBatchService(
	extraction ExtractionService,
	affidavits AffidavitService,
	storage port.ObjectStorage,
	s3Cfg config.S3Config,
	upload config.UploadConfig,
) BatchService {
	return &batchService{
		extraction: extraction,
		affidavits: affidavits,
		storage:    storage,
		s3:         s3Cfg,
		maxFiles:   upload.MaxBatchFiles,
	}
}

func (s *batchService) Process(ctx context.Context, files []BatchFile) (*BatchResult, error) {
	if len(files) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if s.maxFiles > 0 && len(files) > s.maxFiles {
		return nil, fmt.Errorf("%w: %d files (limit %d)", domain.ErrTooManyFiles, len(files), s.maxFiles)
	}

	sess := session.New()
	defer sess.Reset()
	for _, f := range files {
		sess.Add(f.FileName)
	}
	log.Printf("batchService.Process: batch %s started with %d file(s)", sess.ID, len(files))

	for i := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.processFile(ctx, sess, i, &files[i])
		log.Printf("batchService.Process: batch %s progress %.0f%%", sess.ID, sess.Progress()*100)
	}

	result := &BatchResult{
		ID:     sess.ID,
		Items:  sess.Items(),
		Counts: sess.Counts(),
	}

	bundle, err := buildBundle(result.Items, sess.Affidavits())
	if err != nil {
		return nil, err
	}
	result.Bundle = bundle
	result.BundleURL = s.publish(ctx, sess.ID, bundle)

	log.Printf("batchService.Process: batch %s done: %d completed, %d failed",
		sess.ID, result.Counts.Completed, result.Counts.Failed)
	return result, nil
}

// processFile runs one file through extraction and generation. Failures are
// recorded on the item and never abort the batch.
func (s *batchService) processFile(ctx context.Context, sess *session.Session, i int, f *BatchFile) {
	fail := func(err error) {
		log.Printf("batchService.processFile: %s failed: %v", f.FileName, err)
		if ferr := sess.Fail(i, err); ferr != nil {
			log.Printf("batchService.processFile: %v", ferr)
		}
	}

	if err := sess.Transition(i, domain.FileStatusExtracting); err != nil {
		fail(err)
		return
	}
	c, err := s.extraction.Extract(ctx, &ExtractInput{FileName: f.FileName, Data: f.Data})
	if err != nil {
		fail(err)
		return
	}
	if err := sess.SetCase(i, c); err != nil {
		fail(err)
		return
	}

	if err := sess.Transition(i, domain.FileStatusGenerating); err != nil {
		fail(err)
		return
	}
	affidavits, err := s.affidavits.GenerateForCase(ctx, c)
	if err != nil {
		fail(err)
		return
	}
	if err := sess.Complete(i, affidavits); err != nil {
		fail(err)
	}
}

// publish uploads the bundle when an output bucket is configured and returns
// a presigned link, or "" when there is nothing to link to.
func (s *batchService) publish(ctx context.Context, id uuid.UUID, bundle []byte) string {
	if s.storage == nil || s.s3.OutputBucket == "" {
		return ""
	}
	ref := port.ObjectRef{Bucket: s.s3.OutputBucket, Key: fmt.Sprintf("batches/%s/affidavits.zip", id)}
	if err := s.storage.Put(ctx, port.Object{
		Ref:         ref,
		Body:        bundle,
		ContentType: "application/zip",
		FileName:    "affidavits_" + id.String() + ".zip",
	}); err != nil {
		log.Printf("batchService.publish: upload of %s failed: %v", ref, err)
		return ""
	}
	url, err := s.storage.PresignGet(ctx, ref, s.s3.PresignExpiry())
	if err != nil {
		log.Printf("batchService.publish: presigning %s failed: %v", ref, err)
		return ""
	}
	return url
}

// buildBundle zips the affidavits in upload order followed by the manifest.
// Repeated file names get a numeric suffix.
func buildBundle(items []session.Item, affidavits []domain.GeneratedAffidavit) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	used := map[string]int{}
	for _, a := range affidavits {
		w, err := zw.Create(uniqueName(used, a.FileName))
		if err != nil {
			return nil, fmt.Errorf("adding %s to bundle: %w", a.FileName, err)
		}
		if _, err := w.Write(a.Content); err != nil {
			return nil, fmt.Errorf("writing %s to bundle: %w", a.FileName, err)
		}
	}

	sheet, err := manifest.XLSX(items)
	if err != nil {
		return nil, err
	}
	w, err := zw.Create(ManifestFileName)
	if err != nil {
		return nil, fmt.Errorf("adding manifest to bundle: %w", err)
	}
	if _, err := w.Write(sheet); err != nil {
		return nil, fmt.Errorf("writing manifest to bundle: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing bundle: %w", err)
	}
	return buf.Bytes(), nil
}

func uniqueName(used map[string]int, name string) string {
	used[name]++
	n := used[name]
	if n == 1 {
		return name
	}
	ext := ""
	if i := strings.LastIndex(name, "."); i > 0 {
		name, ext = name[:i], name[i:]
	}
	return fmt.Sprintf("%s_%d%s", name, n, ext)
}
