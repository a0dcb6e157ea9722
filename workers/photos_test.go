package workers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/onsia-realty/auction-crawler/models"
)

type fakeUploader struct {
	keys         []string
	contentTypes []string
	sizes        []int
	err          error
}

func (u *fakeUploader) Upload(ctx context.Context, key string, data io.Reader, contentType string) error {
	if u.err != nil {
		return u.err
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	u.keys = append(u.keys, key)
	u.contentTypes = append(u.contentTypes, contentType)
	u.sizes = append(u.sizes, len(b))
	return nil
}

func (u *fakeUploader) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func TestProcess_DownloadHashUpload(t *testing.T) {
	payload := []byte("not really a png, but stable bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)

	up := &fakeUploader{}
	w := NewPhotoWorker(nil, srv.Client(), up, "auction-photos")
	photo := &models.CasePhoto{ID: uuid.New(), OriginalURL: srv.URL + "/C/photo.png"}

	result := w.Process(context.Background(), photo)
	if result.Error != nil {
		t.Fatalf("process failed: %v", result.Error)
	}

	sum := sha256.Sum256(payload)
	wantHash := hex.EncodeToString(sum[:])
	if result.ContentHash != wantHash {
		t.Fatalf("unexpected hash %s", result.ContentHash)
	}
	wantKey := fmt.Sprintf("auction-photos/%s/%s.png", wantHash[:2], wantHash)
	if result.S3Key != wantKey {
		t.Fatalf("unexpected key %s, want %s", result.S3Key, wantKey)
	}
	if result.PublicURL != "https://cdn.example.com/"+wantKey {
		t.Fatalf("unexpected public url %s", result.PublicURL)
	}
	if result.Size != int64(len(payload)) {
		t.Fatalf("unexpected size %d", result.Size)
	}
	if len(up.keys) != 1 || up.keys[0] != wantKey {
		t.Fatalf("uploader saw keys %v", up.keys)
	}
	if up.contentTypes[0] != "image/png" {
		t.Fatalf("uploader saw content type %s", up.contentTypes[0])
	}
	if up.sizes[0] != len(payload) {
		t.Fatalf("uploader saw %d bytes", up.sizes[0])
	}
}

func TestProcess_DownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	up := &fakeUploader{}
	w := NewPhotoWorker(nil, srv.Client(), up, "auction-photos")
	photo := &models.CasePhoto{ID: uuid.New(), OriginalURL: srv.URL + "/missing.jpg"}

	result := w.Process(context.Background(), photo)
	if result.Error == nil {
		t.Fatal("expected a download error")
	}
	if !strings.Contains(result.Error.Error(), "download status") {
		t.Fatalf("unexpected error %v", result.Error)
	}
	if len(up.keys) != 0 {
		t.Fatal("nothing should be uploaded on a failed download")
	}
}

func TestProcess_UploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg bytes"))
	}))
	t.Cleanup(srv.Close)

	up := &fakeUploader{err: fmt.Errorf("bucket unavailable")}
	w := NewPhotoWorker(nil, srv.Client(), up, "auction-photos")
	photo := &models.CasePhoto{ID: uuid.New(), OriginalURL: srv.URL + "/a.jpg"}

	result := w.Process(context.Background(), photo)
	if result.Error == nil || !strings.Contains(result.Error.Error(), "upload") {
		t.Fatalf("expected upload error, got %v", result.Error)
	}
	if result.PublicURL != "" {
		t.Fatal("failed upload should not yield a public url")
	}
}

func TestGuessExtension(t *testing.T) {
	cases := []struct {
		url         string
		contentType string
		want        string
	}{
		{"http://x/photo.png", "", ".png"},
		{"http://x/photo.JPG", "", ".jpg"},
		{"http://x/photo.jpeg?itemNo=3", "image/png", ".jpeg"},
		{"http://x/photo", "image/png", ".png"},
		{"http://x/photo.laf", "image/webp", ".webp"},
		{"http://x/photo", "", ".jpg"},
	}
	for _, tc := range cases {
		if got := guessExtension(tc.url, tc.contentType); got != tc.want {
			t.Errorf("guessExtension(%q, %q) = %q, want %q", tc.url, tc.contentType, got, tc.want)
		}
	}
}
