package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tastebite-server/internal/model"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr         error
	putKey         string
	putContentType string
	putSize        int64
	putBody        []byte

	getRC  io.ReadCloser
	getErr error

	removeErr error

	statInfo minioLib.ObjectInfo
	statErr  error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, name string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = name
	return f.makeBucketErr
}

func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, r io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putKey, f.putSize, f.putContentType = key, size, opts.ContentType
	f.putBody, _ = io.ReadAll(r)
	return minioLib.UploadInfo{}, f.putErr
}

func (f *fakeMinio) GetObject(_ context.Context, _ string, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}

func (f *fakeMinio) RemoveObject(_ context.Context, _ string, _ string, _ minioLib.RemoveObjectOptions) error {
	return f.removeErr
}

func (f *fakeMinio) StatObject(_ context.Context, _ string, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return f.statInfo, f.statErr
}

func TestNewClientWithAPI(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket exists", func(t *testing.T) {
		api := &fakeMinio{bucketExists: true}
		c, err := NewClientWithAPI(ctx, api, "images")
		require.NoError(t, err)
		assert.Equal(t, "images", c.bucket)
		assert.Empty(t, api.madeBucket)
	})

	t.Run("bucket created", func(t *testing.T) {
		api := &fakeMinio{}
		_, err := NewClientWithAPI(ctx, api, "images")
		require.NoError(t, err)
		assert.Equal(t, "images", api.madeBucket)
	})

	t.Run("errors", func(t *testing.T) {
		for _, api := range []*fakeMinio{
			{bucketExistsErr: errors.New("boom")},
			{makeBucketErr: errors.New("fail")},
		} {
			c, err := NewClientWithAPI(ctx, api, "images")
			assert.Nil(t, c)
			assert.ErrorContains(t, err, "failed to ensure bucket exists")
		}
	})
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b"}
		err := c.Upload(ctx, "u/1.png", "image/png", bytes.NewReader([]byte("data")), 4)
		require.NoError(t, err)
		assert.Equal(t, "u/1.png", api.putKey)
		assert.Equal(t, "image/png", api.putContentType)
		assert.Equal(t, int64(4), api.putSize)
		assert.Equal(t, []byte("data"), api.putBody)
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{putErr: errors.New("put-fail")}, bucket: "b"}
		err := c.Upload(ctx, "k", "image/png", bytes.NewReader(nil), 0)
		assert.ErrorContains(t, err, "failed to upload object")
	})
}

func TestClient_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{
			getRC:    io.NopCloser(bytes.NewReader([]byte("abc"))),
			statInfo: minioLib.ObjectInfo{ContentType: "image/jpeg", Size: 3},
		}
		c := &Client{api: api, bucket: "b"}
		obj, err := c.Open(ctx, "k")
		require.NoError(t, err)
		defer obj.Body.Close()
		body, err := io.ReadAll(obj.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), body)
		assert.Equal(t, "image/jpeg", obj.ContentType)
		assert.Equal(t, int64(3), obj.Size)
	})

	t.Run("not found", func(t *testing.T) {
		c := &Client{api: &fakeMinio{statErr: minioLib.ErrorResponse{Code: "NoSuchKey"}}, bucket: "b"}
		_, err := c.Open(ctx, "absent")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("get error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{getErr: errors.New("get-fail")}, bucket: "b"}
		_, err := c.Open(ctx, "k")
		assert.ErrorContains(t, err, "failed to get object")
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	c := &Client{api: &fakeMinio{}, bucket: "b"}
	assert.NoError(t, c.Delete(ctx, "k"))

	c = &Client{api: &fakeMinio{removeErr: errors.New("remove-fail")}, bucket: "b"}
	assert.ErrorContains(t, c.Delete(ctx, "k"), "failed to delete object")
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()

	t.Run("exists", func(t *testing.T) {
		c := &Client{api: &fakeMinio{}, bucket: "b"}
		ok, err := c.Exists(ctx, "k")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("not found", func(t *testing.T) {
		c := &Client{api: &fakeMinio{statErr: minioLib.ErrorResponse{Code: "NoSuchKey"}}, bucket: "b"}
		ok, err := c.Exists(ctx, "absent")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("other error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{statErr: errors.New("stat-fail")}, bucket: "b"}
		ok, err := c.Exists(ctx, "k")
		assert.False(t, ok)
		assert.ErrorContains(t, err, "failed to stat object")
	})
}
