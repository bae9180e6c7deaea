package objectstore

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
)

type fakeClient struct {
	objects map[string][]byte
	putErr  error
	listErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: make(map[string][]byte)}
}

func (f *fakeClient) PutObject(_ context.Context, _, objectName string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[objectName] = data
	return minio.UploadInfo{Key: objectName, Size: int64(len(data))}, nil
}

func (f *fakeClient) RemoveObject(_ context.Context, _, objectName string, _ minio.RemoveObjectOptions) error {
	delete(f.objects, objectName)
	return nil
}

func (f *fakeClient) StatObject(_ context.Context, _, objectName string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if _, ok := f.objects[objectName]; !ok {
		return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"}
	}
	return minio.ObjectInfo{Key: objectName}, nil
}

func (f *fakeClient) ListObjects(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	go func() {
		defer close(ch)
		if f.listErr != nil {
			ch <- minio.ObjectInfo{Err: f.listErr}
			return
		}
		for key := range f.objects {
			if strings.HasPrefix(key, opts.Prefix) {
				ch <- minio.ObjectInfo{Key: key}
			}
		}
	}()
	return ch
}

func TestPublicURLShape(t *testing.T) {
	s := NewWithClient(newFakeClient(), "brand-assets", "https://cdn.example.com/", nil)

	got, err := s.PublicURL(context.Background(), "logo.png")
	if err != nil {
		t.Fatalf("PublicURL: %v", err)
	}
	want := "https://cdn.example.com/storage/v1/object/public/brand-assets/logo.png"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}

	if _, err := s.PublicURL(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty filename")
	}
}

func TestUploadStoresBytesAndReturnsURL(t *testing.T) {
	fc := newFakeClient()
	s := NewWithClient(fc, "brand-assets", "https://cdn.example.com", nil)

	payload := []byte{0x89, 'P', 'N', 'G'}
	url, err := s.Upload(context.Background(), "kits/1/logo.png", "image/png", bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasSuffix(url, "/brand-assets/kits/1/logo.png") {
		t.Fatalf("unexpected url %q", url)
	}
	if !bytes.Equal(fc.objects["kits/1/logo.png"], payload) {
		t.Fatal("stored bytes differ from upload")
	}
}

func TestExistsAndRemove(t *testing.T) {
	fc := newFakeClient()
	fc.objects["present.png"] = []byte{1}
	s := NewWithClient(fc, "brand-assets", "https://cdn.example.com", nil)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "present.png")
	if err != nil || !ok {
		t.Fatalf("Exists(present) = %v, %v", ok, err)
	}
	ok, err = s.Exists(ctx, "absent.png")
	if err != nil || ok {
		t.Fatalf("Exists(absent) = %v, %v", ok, err)
	}

	if err := s.Remove(ctx, "present.png"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	ok, _ = s.Exists(ctx, "present.png")
	if ok {
		t.Fatal("expected object to be gone after Remove")
	}
}

func TestListFiltersByPrefix(t *testing.T) {
	fc := newFakeClient()
	fc.objects["kits/1/a.png"] = []byte{1}
	fc.objects["kits/1/b.png"] = []byte{2}
	fc.objects["kits/2/c.png"] = []byte{3}
	s := NewWithClient(fc, "brand-assets", "https://cdn.example.com", nil)

	names, err := s.List(context.Background(), "kits/1/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("List returned %d names, want 2: %v", len(names), names)
	}
}
