package workers

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/onsia-realty/auction-crawler/models"
	"github.com/onsia-realty/auction-crawler/storage"
)

// PhotoWorker drains the case_photos queue: download, hash, upload.
type PhotoWorker struct {
	store      *storage.PostgresStore
	httpClient *http.Client
	uploader   Uploader
	keyPrefix  string
}

// Uploader stores one object in a bucket and knows its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) error
	PublicURL(key string) string
}

func NewPhotoWorker(store *storage.PostgresStore, httpClient *http.Client, uploader Uploader, keyPrefix string) *PhotoWorker {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if keyPrefix == "" {
		keyPrefix = "photos"
	}
	return &PhotoWorker{
		store:      store,
		httpClient: httpClient,
		uploader:   uploader,
		keyPrefix:  keyPrefix,
	}
}

// PhotoProcessResult is the outcome of one queue item.
type PhotoProcessResult struct {
	PhotoID     uuid.UUID
	S3Key       string
	PublicURL   string
	ContentHash string
	Size        int64
	Error       error
}

// Process downloads one photo, hashes the bytes, and uploads the object.
func (w *PhotoWorker) Process(ctx context.Context, photo *models.CasePhoto) PhotoProcessResult {
	result := PhotoProcessResult{PhotoID: photo.ID}

	req, err := http.NewRequestWithContext(ctx, "GET", photo.OriginalURL, nil)
	if err != nil {
		result.Error = fmt.Errorf("create request: %w", err)
		return result
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "image/*,*/*")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Errorf("download: %w", err)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		result.Error = fmt.Errorf("download status: %d", resp.StatusCode)
		return result
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 20*1024*1024))
	if err != nil {
		result.Error = fmt.Errorf("read body: %w", err)
		return result
	}
	result.Size = int64(len(data))

	hash := sha256.Sum256(data)
	result.ContentHash = hex.EncodeToString(hash[:])

	ext := guessExtension(photo.OriginalURL, resp.Header.Get("Content-Type"))
	result.S3Key = fmt.Sprintf("%s/%s/%s%s", w.keyPrefix, result.ContentHash[:2], result.ContentHash, ext)

	if w.uploader != nil {
		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}
		if err := w.uploader.Upload(ctx, result.S3Key, bytes.NewReader(data), contentType); err != nil {
			result.Error = fmt.Errorf("upload: %w", err)
			return result
		}
		result.PublicURL = w.uploader.PublicURL(result.S3Key)
	}

	return result
}

// guessExtension determines file extension from URL or content-type
func guessExtension(url, contentType string) string {
	ext := strings.ToLower(path.Ext(url))
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if ext != "" && isImageExt(ext) {
		return ext
	}

	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func isImageExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp":
		return true
	}
	return false
}

// Run starts the photo worker loop
func (w *PhotoWorker) Run(ctx context.Context, batchSize int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Photo worker stopping")
			return
		case <-ticker.C:
			w.processBatch(ctx, batchSize)
		}
	}
}

func (w *PhotoWorker) processBatch(ctx context.Context, batchSize int) {
	photos, err := w.store.GetPendingPhotos(ctx, batchSize)
	if err != nil {
		log.Printf("Photo worker: query error: %v", err)
		return
	}
	if len(photos) == 0 {
		return
	}

	log.Printf("Photo worker: processing %d items", len(photos))

	var processed, failed int
	for i := range photos {
		p := &photos[i]

		result := w.Process(ctx, p)
		if result.Error != nil {
			log.Printf("Photo worker: failed %s: %v", p.OriginalURL, result.Error)
			failed++
			if err := w.store.MarkPhotoFailed(ctx, p.ID); err != nil {
				log.Printf("Photo worker: failed to update %s: %v", p.ID, err)
			}
			continue
		}

		if err := w.store.MarkPhotoUploaded(ctx, p.ID, result.S3Key, result.PublicURL, result.ContentHash); err != nil {
			log.Printf("Photo worker: failed to update %s: %v", p.ID, err)
			failed++
			continue
		}

		processed++
		log.Printf("Photo worker: uploaded %s -> %s (%d bytes)", p.ID, result.S3Key, result.Size)

		// Rate limit between downloads
		time.Sleep(200 * time.Millisecond)
	}

	if processed > 0 || failed > 0 {
		log.Printf("Photo worker: processed %d, failed %d", processed, failed)
	}
}

// NoOpUploader drains the reader and skips the actual upload.
type NoOpUploader struct{}

func (u *NoOpUploader) Upload(ctx context.Context, key string, data io.Reader, contentType string) error {
	io.Copy(io.Discard, data)
	return nil
}

func (u *NoOpUploader) PublicURL(key string) string {
	return ""
}
