package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type fakeDeleteStore struct {
	paths        []string
	chunksErr    error
	pagesErr     error
	docErr       error
	chunksCalled bool
	pagesCalled  bool
	docCalled    bool
}

func (f *fakeDeleteStore) ListPageImagePaths(_ context.Context, _ string) ([]string, error) {
	return f.paths, nil
}
func (f *fakeDeleteStore) DeleteChunksByDocument(_ context.Context, _ string) error {
	f.chunksCalled = true
	return f.chunksErr
}
func (f *fakeDeleteStore) DeletePagesByDocument(_ context.Context, _ string) error {
	f.pagesCalled = true
	return f.pagesErr
}
func (f *fakeDeleteStore) DeleteDocument(_ context.Context, _ string) error {
	f.docCalled = true
	return f.docErr
}

type fakeAssets struct {
	deleted int
	failed  []string
	got     []string
}

func (f *fakeAssets) UploadFile(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "https://bucket/" + key, nil
}
func (f *fakeAssets) DeleteFiles(_ context.Context, keys []string) (int, []string) {
	f.got = keys
	return f.deleted, f.failed
}

func TestDeleteDocumentHappyPath(t *testing.T) {
	store := &fakeDeleteStore{paths: []string{"d1/page_0001.png", "d1/page_0002.png"}}
	assets := &fakeAssets{deleted: 2}
	svc := NewDeleteService(store, assets, zerolog.Nop())

	res := svc.DeleteDocument(context.Background(), "d1")
	if !res.OK {
		t.Fatalf("Expected OK, got error %q", res.Error)
	}
	if res.StorageDeleted != 2 || len(res.StorageFailed) != 0 {
		t.Errorf("Storage counts wrong: %+v", res)
	}
	if !store.chunksCalled || !store.pagesCalled || !store.docCalled {
		t.Error("All three metadata deletes must run")
	}
	if len(assets.got) != 2 {
		t.Errorf("Expected 2 keys passed to storage, got %v", assets.got)
	}
}

func TestDeleteDocumentStorageFailureIsNotFatal(t *testing.T) {
	store := &fakeDeleteStore{paths: []string{"d1/page_0001.png"}}
	assets := &fakeAssets{deleted: 0, failed: []string{"d1/page_0001.png"}}
	svc := NewDeleteService(store, assets, zerolog.Nop())

	res := svc.DeleteDocument(context.Background(), "d1")
	if !res.OK {
		t.Fatal("Failed storage deletes must not fail the metadata deletion")
	}
	if len(res.StorageFailed) != 1 {
		t.Errorf("Failed paths must be reported, got %v", res.StorageFailed)
	}
}

func TestDeleteDocumentMetadataFailureReported(t *testing.T) {
	store := &fakeDeleteStore{pagesErr: errors.New("pages delete failed")}
	svc := NewDeleteService(store, &fakeAssets{}, zerolog.Nop())

	res := svc.DeleteDocument(context.Background(), "d1")
	if res.OK {
		t.Fatal("Metadata failure must report ok=false")
	}
	if res.Error == "" {
		t.Error("Error text must be carried in the result")
	}
	if store.docCalled {
		t.Error("Document delete must not run after a pages-delete failure")
	}
}
